package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/Payphone-Digital/dashboard/internal/client"
	"github.com/Payphone-Digital/dashboard/internal/listview"
	"github.com/Payphone-Digital/dashboard/internal/repository"
	"github.com/spf13/cobra"
)

// entityColumns are the columns printed per entity, in order.
var entityColumns = map[string][]string{
	"users":     {"id", "name", "email", "status", "is_admin"},
	"articles":  {"id", "title", "slug", "status", "created_at"},
	"coupons":   {"id", "code", "name", "amount", "over_amount", "status", "start_time", "expire_time"},
	"addresses": {"id", "consignee", "phone", "province", "city", "zip", "status"},
}

// entitySortable mirrors the server's orderBy whitelist so the printed
// location matches the query the server actually ran.
var entitySortable = map[string][]string{
	"users":     repository.UserListSpec.Sortable(),
	"articles":  repository.ArticleListSpec.Sortable(),
	"coupons":   repository.CouponListSpec.Sortable(),
	"addresses": repository.AddressListSpec.Sortable(),
}

func entityArg(cmd *cobra.Command, args []string) error {
	if err := cobra.ExactArgs(1)(cmd, args); err != nil {
		return err
	}
	if _, ok := entityColumns[args[0]]; !ok {
		return fmt.Errorf("unknown entity %q (want one of users, articles, coupons, addresses)", args[0])
	}
	return nil
}

type listOptions struct {
	location  string
	search    string
	searchSet bool
	orderBy   string
	orderSort string
	page      int
	pageSize  int
	sizes     []int
	template  string
}

func listCmd(opts *globalOptions) *cobra.Command {
	lo := &listOptions{}

	cmd := &cobra.Command{
		Use:   "list <entity>",
		Short: "Print one page of users, articles, coupons or addresses",
		Example: `  dashctl list users --url "page=2&orderBy=email&orderSort=descend"
  dashctl list coupons --search spring --order-by expire_time --order-sort ascend`,
		Args: entityArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			lo.searchSet = cmd.Flags().Changed("search")
			ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
			defer cancel()

			c, err := opts.connect(ctx)
			if err != nil {
				return err
			}
			return runList(ctx, cmd.OutOrStdout(), client.NewResource[client.Row](c, args[0]), lo)
		},
	}

	f := cmd.Flags()
	f.StringVar(&lo.location, "url", "", "starting location query string, e.g. page=2&orderBy=email&orderSort=descend")
	f.StringVar(&lo.search, "search", "", "filter text; an empty value clears the filter")
	f.StringVar(&lo.orderBy, "order-by", "", "sort column")
	f.StringVar(&lo.orderSort, "order-sort", "", "sort direction: ascend or descend")
	f.IntVar(&lo.page, "page", 0, "page number")
	f.IntVar(&lo.pageSize, "page-size", 0, "rows per page")
	f.IntSliceVar(&lo.sizes, "page-size-options", listview.DefaultPageSizeOptions, "allowed page sizes; the first is the default")
	f.StringVar(&lo.template, "template", "", "render each row with a Go template (sprig functions available)")
	return cmd
}

// tableChange turns the paging and sort flags into one table event, or nil.
func (lo *listOptions) tableChange() *listview.TableChange {
	var change listview.TableChange
	touched := false
	if lo.page > 0 {
		change.Page = &lo.page
		touched = true
	}
	if lo.pageSize > 0 {
		change.PageSize = &lo.pageSize
		touched = true
	}
	if lo.orderBy != "" || lo.orderSort != "" {
		change.OrderBy = &lo.orderBy
		change.OrderSortRaw = &lo.orderSort
		touched = true
	}
	if !touched {
		return nil
	}
	return &change
}

func openView(res *client.Resource[client.Row], location string, sizes []int, notifier listview.Notifier) (*listview.ListView[client.Row], *listview.MemoryLocation) {
	loc := listview.NewMemoryLocation("/" + res.Entity() + "?" + strings.TrimPrefix(location, "?"))
	view := listview.NewListView(listview.ViewConfig[client.Row]{
		Controller: listview.NewController(listview.Options{
			PageSizeOptions: sizes,
			SortableColumns: entitySortable[res.Entity()],
		}),
		Location:   loc,
		Fetcher:    res,
		Deleter:    res,
		Notifier:   notifier,
	})
	return view, loc
}

func runList(ctx context.Context, out io.Writer, res *client.Resource[client.Row], lo *listOptions) error {
	tmpl, err := parseRowTemplate(lo.template)
	if err != nil {
		return err
	}

	view, loc := openView(res, lo.location, lo.sizes, nil)
	defer view.Close()

	if err := view.Activate(ctx); err != nil {
		return err
	}
	if lo.searchSet {
		if err := view.Search(ctx, lo.search); err != nil {
			return err
		}
	}
	if change := lo.tableChange(); change != nil {
		if err := view.Change(ctx, *change); err != nil {
			return err
		}
	}
	view.Wait()

	snap := view.Snapshot()
	if snap.Err != nil {
		return snap.Err
	}
	return printPage(out, res.Entity(), snap, loc.URL(), tmpl)
}
