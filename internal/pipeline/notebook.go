package pipeline

import (
	"strings"

	"invdash/internal"
	"invdash/internal/util"
)

// ParseNotebooks walks the stock sheet below its header rows. Zones are read
// independently, so one row yields between zero and len(Zones) notebooks.
func ParseNotebooks(rows [][]string, layout NotebookLayout) []internal.Notebook {
	out := make([]internal.Notebook, 0)
	sentinel := strings.ToUpper(strings.TrimSpace(layout.Sentinel))

	for i := layout.HeaderRows; i < len(rows); i++ {
		row := rows[i]
		if len(row) == 0 {
			continue
		}
		for _, zone := range layout.Zones {
			serial := util.CanonicalSerial(util.Cell(row, zone.SerialColumn))
			if serial == "" {
				continue
			}
			if sentinel != "" && strings.Contains(serial, sentinel) {
				continue
			}
			out = append(out, internal.Notebook{
				SerialNumber: serial,
				Model:        util.FirstNonBlank(internal.DefaultNotebookModel, util.Cell(row, zone.SerialColumn+zone.ModelOffset)),
				Status:       zone.Status,
			})
		}
	}
	return out
}
