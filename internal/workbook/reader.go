package workbook

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Workbook is a read-only view over a parsed spreadsheet. Sheets are addressed
// either as a row matrix or as header-keyed records.
type Workbook struct {
	f      *excelize.File
	sheets []string
}

func Open(content []byte) (*Workbook, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	return &Workbook{f: f, sheets: f.GetSheetList()}, nil
}

func (w *Workbook) Close() error {
	return w.f.Close()
}

func (w *Workbook) SheetNames() []string {
	return append([]string{}, w.sheets...)
}

func (w *Workbook) HasSheet(name string) bool {
	for _, s := range w.sheets {
		if s == name {
			return true
		}
	}
	return false
}

func (w *Workbook) Rows(sheet string) (rows [][]string, ok bool, err error) {
	if !w.HasSheet(sheet) {
		return nil, false, nil
	}
	rows, err = w.f.GetRows(sheet)
	if err != nil {
		return nil, true, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	return rows, true, nil
}

// Records returns the sheet keyed by its first row. Blank header cells and
// fully blank data rows are skipped; a repeated header keeps its first column.
func (w *Workbook) Records(sheet string) ([]map[string]string, bool, error) {
	rows, ok, err := w.Rows(sheet)
	if !ok || err != nil {
		return nil, ok, err
	}
	return RecordsFromRows(rows), true, nil
}

func RecordsFromRows(rows [][]string) []map[string]string {
	if len(rows) == 0 {
		return nil
	}

	headers := make([]string, len(rows[0]))
	seen := map[string]struct{}{}
	for i, h := range rows[0] {
		h = strings.TrimSpace(h)
		if h == "" {
			continue
		}
		if _, dup := seen[h]; dup {
			continue
		}
		seen[h] = struct{}{}
		headers[i] = h
	}

	out := make([]map[string]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := map[string]string{}
		for i, cell := range row {
			if i >= len(headers) || headers[i] == "" {
				continue
			}
			if strings.TrimSpace(cell) == "" {
				continue
			}
			rec[headers[i]] = cell
		}
		if len(rec) == 0 {
			continue
		}
		out = append(out, rec)
	}
	return out
}
