package pipeline

import (
	"invdash/internal"
)

// A sheet that does not exist reports ok=false and no error.
type SheetReader interface {
	Rows(sheet string) ([][]string, bool, error)
	Records(sheet string) ([]map[string]string, bool, error)
}

type Summary struct {
	MissingSheets []string
	Unreadable    map[string]error
}

func (s *Summary) note(sheet string, ok bool, err error) bool {
	if err != nil {
		if s.Unreadable == nil {
			s.Unreadable = map[string]error{}
		}
		s.Unreadable[sheet] = err
		return false
	}
	if !ok {
		s.MissingSheets = append(s.MissingSheets, sheet)
		return false
	}
	return true
}

// Ingest builds a fresh Inventory from the workbook. Missing or unreadable
// sheets contribute no records and never fail the whole ingestion.
func Ingest(r SheetReader, layout Layout) (internal.Inventory, Summary) {
	inv := internal.Inventory{
		Notebooks: []internal.Notebook{},
		Handhelds: []internal.Handheld{},
		Printers:  []internal.Printer{},
	}
	var summary Summary

	rows, ok, err := r.Rows(layout.Notebooks.Sheet)
	if summary.note(layout.Notebooks.Sheet, ok, err) {
		inv.Notebooks = ParseNotebooks(rows, layout.Notebooks)
	}

	records, ok, err := r.Records(layout.Handhelds.Sheet)
	if summary.note(layout.Handhelds.Sheet, ok, err) {
		inv.Handhelds = ParseHandhelds(records, layout.Handhelds)
	}

	rows, ok, err = r.Rows(layout.Printers.Sheet)
	if summary.note(layout.Printers.Sheet, ok, err) {
		inv.Printers = ParsePrinters(rows, layout.Printers)
	}

	return inv, summary
}
