package workbook

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

type Sheet struct {
	Name   string
	Header []string
	Rows   [][]any
}

func Build(sheets []Sheet) (*excelize.File, error) {
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook needs at least one sheet")
	}

	f := excelize.NewFile()
	for i, sheet := range sheets {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), sheet.Name); err != nil {
				_ = f.Close()
				return nil, err
			}
		} else if _, err := f.NewSheet(sheet.Name); err != nil {
			_ = f.Close()
			return nil, err
		}

		if err := writeRow(f, sheet.Name, 1, toAny(sheet.Header)); err != nil {
			_ = f.Close()
			return nil, err
		}
		for r, row := range sheet.Rows {
			if err := writeRow(f, sheet.Name, r+2, row); err != nil {
				_ = f.Close()
				return nil, err
			}
		}
	}
	f.SetActiveSheet(0)
	return f, nil
}

func Write(w io.Writer, sheets []Sheet) error {
	f, err := Build(sheets)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = f.WriteTo(w)
	return err
}

func WriteFile(outputPath string, sheets []Sheet) error {
	f, err := Build(sheets)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	return f.SaveAs(outputPath)
}

func writeRow(f *excelize.File, sheet string, rowNo int, values []any) error {
	if len(values) == 0 {
		return nil
	}
	cell, err := excelize.CoordinatesToCellName(1, rowNo)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

func toAny(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
