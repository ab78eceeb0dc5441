package inventory

import (
	"strings"

	"invdash/internal"
	"invdash/internal/util"
)

type Stats struct {
	Totals           map[internal.Category]int
	NotebookByStatus map[internal.NotebookStatus]int
	HandheldOK       int
	HandheldError    int
}

func (s *State) Stats() Stats {
	return ComputeStats(s.Snapshot())
}

func ComputeStats(inv internal.Inventory) Stats {
	st := Stats{
		Totals:           map[internal.Category]int{},
		NotebookByStatus: map[internal.NotebookStatus]int{},
	}
	for _, cat := range internal.Categories {
		st.Totals[cat] = inv.Count(cat)
	}
	for _, status := range internal.NotebookStatuses {
		st.NotebookByStatus[status] = 0
	}
	for _, n := range inv.Notebooks {
		st.NotebookByStatus[n.Status]++
	}
	for _, h := range inv.Handhelds {
		if h.OK() {
			st.HandheldOK++
		} else {
			st.HandheldError++
		}
	}
	return st
}

// Filter keeps the records whose rendered row contains query, ignoring case.
// The result is a []internal.Notebook, []internal.Handheld or []internal.Printer.
func (s *State) Filter(cat internal.Category, query string) (any, error) {
	return FilterInventory(s.Snapshot(), cat, query)
}

func FilterInventory(inv internal.Inventory, cat internal.Category, query string) (any, error) {
	q := strings.TrimSpace(query)
	switch cat {
	case internal.CategoryNotebooks:
		return filterRows(inv.Notebooks, q, internal.Notebook.Row), nil
	case internal.CategoryHandhelds:
		return filterRows(inv.Handhelds, q, internal.Handheld.Row), nil
	case internal.CategoryPrinters:
		return filterRows(inv.Printers, q, internal.Printer.Row), nil
	default:
		return nil, ErrUnknownCategory
	}
}

func filterRows[T any](items []T, query string, row func(T) []string) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if query == "" || util.ContainsFold(strings.Join(row(item), " "), query) {
			out = append(out, item)
		}
	}
	return out
}
