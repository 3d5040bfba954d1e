package main

import (
	"context"
	"fmt"
	"io"
	"text/template"

	"github.com/Payphone-Digital/dashboard/internal/client"
	"github.com/Payphone-Digital/dashboard/internal/listview"
	"github.com/spf13/cobra"
)

// printNotifier shows list view messages on the terminal.
type printNotifier struct {
	out, errOut io.Writer
}

func (n printNotifier) Success(message string) { fmt.Fprintln(n.out, message) }
func (n printNotifier) Error(message string)   { fmt.Fprintln(n.errOut, "Delete failed: "+message) }

func deleteCmd(opts *globalOptions) *cobra.Command {
	var (
		location     string
		sizes        []int
		templateText string
	)

	cmd := &cobra.Command{
		Use:   "delete <entity> <id>",
		Short: "Delete a row and print the refreshed page",
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.ExactArgs(2)(cmd, args); err != nil {
				return err
			}
			return entityArg(cmd, args[:1])
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
			defer cancel()

			c, err := opts.connect(ctx)
			if err != nil {
				return err
			}
			notifier := printNotifier{out: cmd.OutOrStdout(), errOut: cmd.ErrOrStderr()}
			res := client.NewResource[client.Row](c, args[0])
			tmpl, err := parseRowTemplate(templateText)
			if err != nil {
				return err
			}
			return runDelete(ctx, cmd.OutOrStdout(), res, location, sizes, listview.ParseRowKey(args[1]), notifier, tmpl)
		},
	}

	cmd.Flags().StringVar(&location, "url", "", "location query string of the page to refresh")
	cmd.Flags().IntSliceVar(&sizes, "page-size-options", listview.DefaultPageSizeOptions, "allowed page sizes; the first is the default")
	cmd.Flags().StringVar(&templateText, "template", "", "render each row with a Go template (sprig functions available)")
	return cmd
}

func runDelete(ctx context.Context, out io.Writer, res *client.Resource[client.Row], location string, sizes []int, key listview.RowKey, notifier listview.Notifier, tmpl *template.Template) error {
	view, loc := openView(res, location, sizes, notifier)
	defer view.Close()

	if err := view.Activate(ctx); err != nil {
		return err
	}
	view.Wait()

	if err := view.DeleteRow(ctx, key); err != nil {
		return err
	}
	view.Wait()

	snap := view.Snapshot()
	if snap.Err != nil {
		return snap.Err
	}
	return printPage(out, res.Entity(), snap, loc.URL(), tmpl)
}
