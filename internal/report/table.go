package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"invdash/internal"
	"invdash/internal/inventory"
	"invdash/internal/storage"
)

var (
	notebookHeader = []string{"S/N", "Model", "Status"}
	handheldHeader = []string{"ID", "S/N", "Status"}
	printerHeader  = []string{"ID", "IP", "S/N"}
)

func newTable(w io.Writer, header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	return table
}

func render[T any](w io.Writer, header []string, items []T, row func(T) []string) {
	table := newTable(w, header)
	for _, item := range items {
		table.Append(row(item))
	}
	table.Render()
}

func Notebooks(w io.Writer, items []internal.Notebook) {
	render(w, notebookHeader, items, internal.Notebook.Row)
}

func Handhelds(w io.Writer, items []internal.Handheld) {
	render(w, handheldHeader, items, internal.Handheld.Row)
}

func Printers(w io.Writer, items []internal.Printer) {
	render(w, printerHeader, items, internal.Printer.Row)
}

// NotebooksByStatus prints one titled table per status, in chart order, the
// way the dashboard splits the stock view.
func NotebooksByStatus(w io.Writer, inv internal.Inventory) {
	for _, status := range internal.NotebookStatuses {
		items := inv.NotebooksWithStatus(status)
		fmt.Fprintf(w, "%s (%d)\n", status, len(items))
		Notebooks(w, items)
		fmt.Fprintln(w)
	}
}

// Category prints the table for one category. records is what
// inventory.FilterInventory returns.
func Category(w io.Writer, cat internal.Category, records any) error {
	switch items := records.(type) {
	case []internal.Notebook:
		Notebooks(w, items)
	case []internal.Handheld:
		Handhelds(w, items)
	case []internal.Printer:
		Printers(w, items)
	default:
		return fmt.Errorf("%w: %s", inventory.ErrUnknownCategory, cat)
	}
	return nil
}

func Record(w io.Writer, cat internal.Category, record any) error {
	switch item := record.(type) {
	case internal.Notebook:
		return Category(w, cat, []internal.Notebook{item})
	case internal.Handheld:
		return Category(w, cat, []internal.Handheld{item})
	case internal.Printer:
		return Category(w, cat, []internal.Printer{item})
	default:
		return fmt.Errorf("%w: %s", inventory.ErrUnknownCategory, cat)
	}
}

func Stats(w io.Writer, st inventory.Stats) {
	table := newTable(w, []string{"Counter", "Value"})
	for _, cat := range internal.Categories {
		table.Append([]string{"total " + string(cat), strconv.Itoa(st.Totals[cat])})
	}
	for _, status := range internal.NotebookStatuses {
		table.Append([]string{"notebooks " + string(status), strconv.Itoa(st.NotebookByStatus[status])})
	}
	table.Append([]string{"handhelds ok", strconv.Itoa(st.HandheldOK)})
	table.Append([]string{"handhelds error", strconv.Itoa(st.HandheldError)})
	table.Render()
}

func Runs(w io.Writer, runs []internal.RunRecord) {
	table := newTable(w, []string{"Run", "When", "Source", "Notebooks", "Handhelds", "Printers", "Missing", "Took"})
	for _, r := range runs {
		table.Append([]string{
			r.ID,
			r.CreatedAt,
			r.Source,
			strconv.Itoa(r.Notebooks),
			strconv.Itoa(r.Handhelds),
			strconv.Itoa(r.Printers),
			strings.Join(storage.ParseMissingSheets(r.MissingSheets), ", "),
			strconv.FormatInt(r.DurationMs, 10) + "ms",
		})
	}
	table.Render()
}
