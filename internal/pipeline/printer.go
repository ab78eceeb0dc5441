package pipeline

import (
	"invdash/internal"
	"invdash/internal/util"
)

// ParsePrinters scans each row left to right and takes the first cell accepted
// by the layout predicate as the serial number. Neighbours outside the row
// count as absent.
func ParsePrinters(rows [][]string, layout PrinterLayout) []internal.Printer {
	match := layout.Predicate()
	out := make([]internal.Printer, 0)
	for _, row := range rows {
		for j := range row {
			serial := util.CanonicalSerial(row[j])
			if serial == "" || !match(serial) {
				continue
			}
			out = append(out, internal.Printer{
				ID:           util.FirstNonBlank(internal.DefaultRecordID, util.Cell(row, j+layout.IDOffset)),
				IPAddress:    NormalizeIP(util.Cell(row, j+layout.IPOffset)),
				SerialNumber: serial,
			})
			break
		}
	}
	return out
}
