package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"invdash/internal"
	"invdash/internal/pipeline"
	"invdash/internal/report"
)

var showCmd = &cobra.Command{
	Use:   "show [category]",
	Short: "Print the inventory, or one category of it",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		inv := current.state.Snapshot()
		if len(args) == 0 {
			report.NotebooksByStatus(os.Stdout, inv)
			fmt.Println("Handhelds")
			report.Handhelds(os.Stdout, inv.Handhelds)
			fmt.Println("\nPrinters")
			report.Printers(os.Stdout, inv.Printers)
			return nil
		}
		cat, err := internal.ParseCategory(args[0])
		if err != nil {
			return err
		}
		if cat == internal.CategoryNotebooks {
			report.NotebooksByStatus(os.Stdout, inv)
			return nil
		}
		records, err := current.state.Filter(cat, "")
		if err != nil {
			return err
		}
		return report.Category(os.Stdout, cat, records)
	},
}

var getCmd = &cobra.Command{
	Use:   "get <category> <serial>",
	Short: "Print the record of a category with the given serial",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := internal.ParseCategory(args[0])
		if err != nil {
			return err
		}
		record, ok := current.state.Find(cat, args[1])
		if !ok {
			return fmt.Errorf("no %s with serial %s", cat, args[1])
		}
		return report.Record(os.Stdout, cat, record)
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print counters and chart series",
	RunE: func(cmd *cobra.Command, args []string) error {
		report.Stats(os.Stdout, current.state.Stats())
		return nil
	},
}

var filterCmd = &cobra.Command{
	Use:   "filter <category> <text>",
	Short: "List records of a category whose row contains text",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := internal.ParseCategory(args[0])
		if err != nil {
			return err
		}
		records, err := current.state.Filter(cat, args[1])
		if err != nil {
			return err
		}
		return report.Category(os.Stdout, cat, records)
	},
}

var (
	exportOut string
	htmlOut   string
	runsLimit int
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the inventory to an xlsx workbook",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := exportOut
		if out == "" {
			out = current.cfg.ExportPath()
		}
		if err := pipeline.ExportInventoryToXLSX(current.state.Snapshot(), out); err != nil {
			return fmt.Errorf("export: %w", err)
		}
		report.Notify(os.Stdout, report.KindSuccess, "exported to "+out)
		return nil
	},
}

var htmlCmd = &cobra.Command{
	Use:   "html",
	Short: "Render the static HTML dashboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := htmlOut
		if out == "" {
			out = filepath.Join(current.cfg.OutputDir, "dashboard.html")
		}
		if err := report.DashboardToFile(current.state.Snapshot(), out); err != nil {
			return fmt.Errorf("render dashboard: %w", err)
		}
		report.Notify(os.Stdout, report.KindSuccess, "dashboard written to "+out)
		return nil
	},
}

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recent ingestion runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		runs, err := current.db.ListRuns(runsLimit)
		if err != nil {
			return err
		}
		report.Runs(os.Stdout, runs)
		report.Notify(os.Stdout, report.KindInfo, strconv.Itoa(len(runs))+" runs")
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportOut, "out", "", "output path (default OUTPUT_DIR/EXPORT_FILE_NAME)")
	htmlCmd.Flags().StringVar(&htmlOut, "out", "", "output path (default OUTPUT_DIR/dashboard.html)")
	runsCmd.Flags().IntVar(&runsLimit, "limit", 20, "number of runs to list")
}
