package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"invdash/internal/pipeline"
	"invdash/internal/report"
	"invdash/internal/source"
)

var loadFile string

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Ingest the stock workbook and replace the session inventory",
	Long: `Fetch the workbook from the configured source (SOURCE_KIND) or from --file and
replace notebooks, handhelds and printers wholesale. When the source cannot be
reached the current inventory is kept.`,
	RunE: runLoad,
}

func init() {
	loadCmd.Flags().StringVar(&loadFile, "file", "", "read this workbook instead of the configured source")
}

func runLoad(cmd *cobra.Command, args []string) error {
	a := current

	var src source.Source
	if strings.TrimSpace(loadFile) != "" {
		src = source.NewFileSource(loadFile)
	} else {
		var err error
		if src, err = source.FromConfig(a.cfg); err != nil {
			return err
		}
	}

	svc := pipeline.NewLoadService(src, a.state, a.db, a.layout, a.logger)
	res, err := svc.Load(cmd.Context())
	if err != nil {
		return fmt.Errorf("load %s: %w", src.Name(), err)
	}
	a.gen = res.Generation

	report.Notify(os.Stdout, report.KindSuccess, fmt.Sprintf("loaded %d notebooks, %d handhelds, %d printers",
		res.Notebooks, res.Handhelds, res.Printers))
	if len(res.MissingSheets) > 0 {
		report.Notify(os.Stdout, report.KindInfo, "sheets not found: "+strings.Join(res.MissingSheets, ", "))
	}
	return nil
}
