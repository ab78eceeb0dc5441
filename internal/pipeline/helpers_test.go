package pipeline

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type fixtureSheet struct {
	name string
	rows [][]any
}

func mkXLSX(t *testing.T, sheets ...fixtureSheet) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for i, sheet := range sheets {
		if i == 0 {
			require.NoError(t, f.SetSheetName(f.GetSheetName(0), sheet.name))
		} else {
			_, err := f.NewSheet(sheet.name)
			require.NoError(t, err)
		}
		for r, row := range sheet.rows {
			for c, v := range row {
				if v == nil {
					continue
				}
				cell, _ := excelize.CoordinatesToCellName(c+1, r+1)
				require.NoError(t, f.SetCellValue(sheet.name, cell, v))
			}
		}
	}

	buf := bytes.NewBuffer(nil)
	_, err := f.WriteTo(buf)
	require.NoError(t, err)
	return buf.Bytes()
}

// nbRow places up to three zone entries at the stock sheet's columns.
func nbRow(serialA, modelA, serialB, modelB, serialC, modelC string) []string {
	row := make([]string, 16)
	row[1], row[3] = serialA, modelA
	row[8], row[9] = serialB, modelB
	row[14], row[15] = serialC, modelC
	return row
}

func anyRow(cells []string) []any {
	out := make([]any, len(cells))
	for i, c := range cells {
		if c != "" {
			out[i] = c
		}
	}
	return out
}

var stockHeader = [][]string{
	{"Inventory"},
	{"", "Formatting", "", "", "", "", "", "", "Backup", "", "", "", "", "", "Powered off"},
	{"", "S/N", "", "Model", "", "", "", "", "S/N", "Model", "", "", "", "", "S/N", "Model"},
}
