package pipeline

import (
	"io"

	"invdash/internal"
	"invdash/internal/workbook"
)

const (
	ExportNotebookSheet = "Notebooks"
	ExportHandheldSheet = "Handhelds"
	ExportPrinterSheet  = "Printers"
)

// ExportSheets lays the inventory out flat, one sheet per category and one row
// per record. It does not reproduce the zoned layout of the source workbook.
func ExportSheets(inv internal.Inventory) []workbook.Sheet {
	notebooks := workbook.Sheet{Name: ExportNotebookSheet, Header: []string{"serialNumber", "model", "status"}}
	for _, n := range inv.Notebooks {
		notebooks.Rows = append(notebooks.Rows, []any{n.SerialNumber, n.Model, string(n.Status)})
	}

	handhelds := workbook.Sheet{Name: ExportHandheldSheet, Header: []string{"id", "serialNumber", "status"}}
	for _, h := range inv.Handhelds {
		handhelds.Rows = append(handhelds.Rows, []any{h.ID, h.SerialNumber, h.Status})
	}

	printers := workbook.Sheet{Name: ExportPrinterSheet, Header: []string{"id", "ipAddress", "serialNumber"}}
	for _, p := range inv.Printers {
		printers.Rows = append(printers.Rows, []any{p.ID, p.IPAddress, p.SerialNumber})
	}

	return []workbook.Sheet{notebooks, handhelds, printers}
}

func ExportInventory(w io.Writer, inv internal.Inventory) error {
	return workbook.Write(w, ExportSheets(inv))
}

func ExportInventoryToXLSX(inv internal.Inventory, outputPath string) error {
	return workbook.WriteFile(outputPath, ExportSheets(inv))
}
