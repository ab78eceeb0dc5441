package internal

import (
	"fmt"
	"strings"
)

type Category string

const (
	CategoryNotebooks Category = "notebooks"
	CategoryHandhelds Category = "handhelds"
	CategoryPrinters  Category = "printers"
)

var Categories = []Category{CategoryNotebooks, CategoryHandhelds, CategoryPrinters}

// ParseCategory accepts the full category name or the short dashboard alias (nb, hh, pr).
func ParseCategory(input string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "notebooks", "notebook", "nb":
		return CategoryNotebooks, nil
	case "handhelds", "handheld", "hh":
		return CategoryHandhelds, nil
	case "printers", "printer", "pr":
		return CategoryPrinters, nil
	default:
		return "", fmt.Errorf("unknown category: %q", input)
	}
}

type NotebookStatus string

const (
	StatusFormatting  NotebookStatus = "Formatting"
	StatusBackup      NotebookStatus = "Backup"
	StatusPoweredOff  NotebookStatus = "PoweredOff"
	StatusInOperation NotebookStatus = "InOperation"
)

// NotebookStatuses is the chart order used by the dashboard.
var NotebookStatuses = []NotebookStatus{StatusBackup, StatusFormatting, StatusPoweredOff, StatusInOperation}

func ParseNotebookStatus(input string) (NotebookStatus, bool) {
	norm := strings.ToLower(strings.Join(strings.Fields(input), ""))
	for _, s := range NotebookStatuses {
		if strings.ToLower(string(s)) == norm {
			return s, true
		}
	}
	return "", false
}

// Default values applied when a source cell or a manual input is blank.
const (
	DefaultNotebookModel  = "Dell"
	DefaultRecordID       = "?"
	DefaultHandheldStatus = "Ok"
	ManualRecordID        = "New"
)

type Notebook struct {
	SerialNumber string         `db:"serial_number" json:"serialNumber"`
	Model        string         `db:"model" json:"model"`
	Status       NotebookStatus `db:"status" json:"status"`
}

type Handheld struct {
	ID           string `db:"id" json:"id"`
	SerialNumber string `db:"serial_number" json:"serialNumber"`
	Status       string `db:"status" json:"status"`
}

func (h Handheld) OK() bool {
	return h.Status == DefaultHandheldStatus
}

type Printer struct {
	ID           string `db:"id" json:"id"`
	IPAddress    string `db:"ip_address" json:"ipAddress"`
	SerialNumber string `db:"serial_number" json:"serialNumber"`
}

// Row returns the rendered table cells of a record, in display order.
func (n Notebook) Row() []string { return []string{n.SerialNumber, n.Model, string(n.Status)} }
func (h Handheld) Row() []string { return []string{"#" + h.ID, h.SerialNumber, h.Status} }
func (p Printer) Row() []string  { return []string{"#" + p.ID, p.IPAddress, p.SerialNumber} }

type Inventory struct {
	Notebooks []Notebook `json:"notebooks"`
	Handhelds []Handheld `json:"handhelds"`
	Printers  []Printer  `json:"printers"`
}

func (inv Inventory) Clone() Inventory {
	return Inventory{
		Notebooks: append([]Notebook{}, inv.Notebooks...),
		Handhelds: append([]Handheld{}, inv.Handhelds...),
		Printers:  append([]Printer{}, inv.Printers...),
	}
}

func (inv Inventory) Count(cat Category) int {
	switch cat {
	case CategoryNotebooks:
		return len(inv.Notebooks)
	case CategoryHandhelds:
		return len(inv.Handhelds)
	case CategoryPrinters:
		return len(inv.Printers)
	default:
		return 0
	}
}

func (inv Inventory) NotebooksWithStatus(status NotebookStatus) []Notebook {
	out := make([]Notebook, 0)
	for _, n := range inv.Notebooks {
		if n.Status == status {
			out = append(out, n)
		}
	}
	return out
}

type RunRecord struct {
	ID            string `db:"id"`
	Source        string `db:"source"`
	ContentHash   string `db:"content_hash"`
	Notebooks     int    `db:"notebooks"`
	Handhelds     int    `db:"handhelds"`
	Printers      int    `db:"printers"`
	MissingSheets string `db:"missing_sheets"`
	DurationMs    int64  `db:"duration_ms"`
	CreatedAt     string `db:"created_at"`
}
