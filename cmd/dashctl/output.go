package main

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"text/tabwriter"
	"text/template"

	"github.com/Payphone-Digital/dashboard/internal/client"
	"github.com/Payphone-Digital/dashboard/internal/constants"
	"github.com/Payphone-Digital/dashboard/internal/listview"
)

// printPage writes the rows as a table, or through tmpl when one is given,
// followed by the paging summary and the replaced location.
func printPage(out io.Writer, entity string, snap listview.Snapshot[client.Row], location string, tmpl *template.Template) error {
	if tmpl != nil {
		if err := printTemplated(out, snap, tmpl); err != nil {
			return err
		}
		printSummary(out, snap, location)
		return nil
	}

	columns := entityColumns[entity]

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.ToUpper(strings.Join(columns, "\t")))

	if snap.Data != nil {
		for _, row := range snap.Data.Items {
			cells := make([]string, len(columns))
			for i, col := range columns {
				cells[i] = formatCell(row[col])
			}
			fmt.Fprintln(tw, strings.Join(cells, "\t"))
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	printSummary(out, snap, location)
	return nil
}

func printTemplated(out io.Writer, snap listview.Snapshot[client.Row], tmpl *template.Template) error {
	if snap.Data == nil {
		return nil
	}
	for _, row := range snap.Data.Items {
		if err := tmpl.Execute(out, row); err != nil {
			return fmt.Errorf("render row: %w", err)
		}
		fmt.Fprintln(out)
	}
	return nil
}

func printSummary(out io.Writer, snap listview.Snapshot[client.Row], location string) {
	var total int64
	if snap.Data != nil {
		total = snap.Data.Total
	}
	pageTotal := constants.PageTotal(total, snap.Params.PageSize)
	fmt.Fprintf(out, "\npage %d of %d, %d rows total\n", snap.Params.Page, pageTotal, total)
	fmt.Fprintf(out, "location: %s\n", location)
}

func formatCell(v any) string {
	switch x := v.(type) {
	case nil:
		return "-"
	case float64:
		if x == math.Trunc(x) && math.Abs(x) < 1e15 {
			return strconv.FormatInt(int64(x), 10)
		}
		return strconv.FormatFloat(x, 'f', -1, 64)
	case string:
		return x
	default:
		return fmt.Sprint(x)
	}
}
