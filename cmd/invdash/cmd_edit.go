package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"invdash/internal"
	"invdash/internal/report"
)

var (
	saveSerial string
	saveModel  string
	saveStatus string
	saveIP     string
)

var saveCmd = &cobra.Command{
	Use:   "save <category>",
	Short: "Add a record, or edit the one with the same serial",
	Example: `  invdash save notebooks --serial 5CG123 --model Latitude --status Backup
  invdash save handhelds --serial HH-9 --status Erro
  invdash save printers --serial XXZ1 --ip 10.1.2.3`,
	Args: cobra.ExactArgs(1),
	RunE: runSave,
}

func runSave(cmd *cobra.Command, args []string) error {
	cat, err := internal.ParseCategory(args[0])
	if err != nil {
		return err
	}

	var created bool
	switch cat {
	case internal.CategoryNotebooks:
		created, err = current.state.SaveNotebook(saveSerial, saveModel, saveStatus)
	case internal.CategoryHandhelds:
		created, err = current.state.SaveHandheld(saveSerial, saveStatus)
	case internal.CategoryPrinters:
		created, err = current.state.SavePrinter(saveSerial, saveIP)
	}
	if err != nil {
		return err
	}
	if err := current.persist(); err != nil {
		return fmt.Errorf("persist inventory: %w", err)
	}

	verb := "updated"
	if created {
		verb = "added"
	}
	report.Notify(os.Stdout, report.KindSuccess, fmt.Sprintf("%s %s %s", verb, cat, saveSerial))
	return nil
}

var deleteCmd = &cobra.Command{
	Use:   "delete <category> <serial>",
	Short: "Remove every record of a category with the given serial",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := internal.ParseCategory(args[0])
		if err != nil {
			return err
		}
		removed, err := current.state.Delete(cat, args[1])
		if err != nil {
			return err
		}
		if removed == 0 {
			report.Notify(os.Stdout, report.KindInfo, "nothing to delete for "+args[1])
			return nil
		}
		if err := current.persist(); err != nil {
			return fmt.Errorf("persist inventory: %w", err)
		}
		report.Notify(os.Stdout, report.KindSuccess, fmt.Sprintf("deleted %d %s", removed, cat))
		return nil
	},
}

func init() {
	saveCmd.Flags().StringVar(&saveSerial, "serial", "", "serial number")
	saveCmd.Flags().StringVar(&saveModel, "model", "", "notebook model (default Dell)")
	saveCmd.Flags().StringVar(&saveStatus, "status", "", "notebook status or handheld status")
	saveCmd.Flags().StringVar(&saveIP, "ip", "", "printer IP address")
}
