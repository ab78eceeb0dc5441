package pipeline

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"invdash/internal"
)

// Layout describes where inventory data sits inside the source workbook. All
// positional assumptions about the sheets live here.
type Layout struct {
	Notebooks NotebookLayout `yaml:"notebooks"`
	Handhelds HandheldLayout `yaml:"handhelds"`
	Printers  PrinterLayout  `yaml:"printers"`
}

// NotebookLayout addresses the stock sheet as a row matrix. Each data row holds
// up to one notebook per zone.
type NotebookLayout struct {
	Sheet      string `yaml:"sheet"`
	HeaderRows int    `yaml:"headerRows"`
	Zones      []Zone `yaml:"zones"`
	// Sentinel marks header echoes inside a zone; matched case-insensitively.
	Sentinel string `yaml:"sentinel"`
}

type Zone struct {
	SerialColumn int                     `yaml:"serialColumn"`
	ModelOffset  int                     `yaml:"modelOffset"`
	Status       internal.NotebookStatus `yaml:"status"`
}

type HandheldLayout struct {
	Sheet         string   `yaml:"sheet"`
	SerialAliases []string `yaml:"serialAliases"`
	IDHeader      string   `yaml:"idHeader"`
	StatusHeader  string   `yaml:"statusHeader"`
}

// PrinterLayout addresses an irregular sheet: the serial cell is found by
// Predicate and the id/ip cells sit at fixed offsets from it.
type PrinterLayout struct {
	Sheet                 string   `yaml:"sheet"`
	IDOffset              int      `yaml:"idOffset"`
	IPOffset              int      `yaml:"ipOffset"`
	SerialPrefixes        []string `yaml:"serialPrefixes"`
	SerialMarker          string   `yaml:"serialMarker"`
	SerialMarkerMinLength int      `yaml:"serialMarkerMinLength"`

	// Match overrides the predicate built from the prefix/marker fields.
	Match SerialPredicate `yaml:"-"`
}

const (
	NotebookSheet = "Notebooks Stock"
	HandheldSheet = "Handhelds"
	PrinterSheet  = "Printers"

	notebookHeaderRows = 3
	zoneASerialColumn  = 1
	zoneBSerialColumn  = 8
	zoneCSerialColumn  = 14
	headerSentinel     = "S/N"

	printerIDOffset        = -2
	printerIPOffset        = -1
	printerSerialPrefix    = "XXZ"
	printerSerialMarker    = "VN"
	printerMarkerMinLength = 10
)

func DefaultLayout() Layout {
	return Layout{
		Notebooks: NotebookLayout{
			Sheet:      NotebookSheet,
			HeaderRows: notebookHeaderRows,
			Zones: []Zone{
				{SerialColumn: zoneASerialColumn, ModelOffset: 2, Status: internal.StatusFormatting},
				{SerialColumn: zoneBSerialColumn, ModelOffset: 1, Status: internal.StatusBackup},
				{SerialColumn: zoneCSerialColumn, ModelOffset: 1, Status: internal.StatusPoweredOff},
			},
			Sentinel: headerSentinel,
		},
		Handhelds: HandheldLayout{
			Sheet:         HandheldSheet,
			SerialAliases: []string{"S/N", "SN", "Serial"},
			IDHeader:      "ID",
			StatusHeader:  "Status",
		},
		Printers: PrinterLayout{
			Sheet:                 PrinterSheet,
			IDOffset:              printerIDOffset,
			IPOffset:              printerIPOffset,
			SerialPrefixes:        []string{printerSerialPrefix},
			SerialMarker:          printerSerialMarker,
			SerialMarkerMinLength: printerMarkerMinLength,
		},
	}
}

// LoadLayout reads a YAML layout on top of DefaultLayout. An empty path yields
// the defaults.
func LoadLayout(path string) (Layout, error) {
	layout := DefaultLayout()
	if strings.TrimSpace(path) == "" {
		return layout, nil
	}

	blob, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("read layout: %w", err)
	}
	if err := yaml.Unmarshal(blob, &layout); err != nil {
		return Layout{}, fmt.Errorf("parse layout %s: %w", path, err)
	}
	if err := layout.Validate(); err != nil {
		return Layout{}, fmt.Errorf("layout %s: %w", path, err)
	}
	return layout, nil
}

func (l Layout) Validate() error {
	var errs []error
	if strings.TrimSpace(l.Notebooks.Sheet) == "" {
		errs = append(errs, errors.New("notebooks.sheet is empty"))
	}
	if l.Notebooks.HeaderRows < 0 {
		errs = append(errs, errors.New("notebooks.headerRows is negative"))
	}
	for i, z := range l.Notebooks.Zones {
		if z.SerialColumn < 0 {
			errs = append(errs, fmt.Errorf("notebooks.zones[%d].serialColumn is negative", i))
		}
		if _, ok := internal.ParseNotebookStatus(string(z.Status)); !ok {
			errs = append(errs, fmt.Errorf("notebooks.zones[%d].status %q is unknown", i, z.Status))
		}
	}
	if strings.TrimSpace(l.Handhelds.Sheet) == "" {
		errs = append(errs, errors.New("handhelds.sheet is empty"))
	}
	if len(l.Handhelds.SerialAliases) == 0 {
		errs = append(errs, errors.New("handhelds.serialAliases is empty"))
	}
	if strings.TrimSpace(l.Printers.Sheet) == "" {
		errs = append(errs, errors.New("printers.sheet is empty"))
	}
	return errors.Join(errs...)
}
