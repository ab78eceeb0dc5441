package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"invdash/internal/config"
	"invdash/internal/inventory"
	"invdash/internal/pipeline"
	"invdash/internal/report"
	"invdash/internal/storage"
)

// app is the per-invocation wiring shared by every command.
type app struct {
	cfg    config.Config
	logger *zap.Logger
	db     *storage.DB
	state  *inventory.State
	layout pipeline.Layout
	// gen is the store generation the state was read at.
	gen int64
}

var current *app

var rootCmd = &cobra.Command{
	Use:           "invdash",
	Short:         "Inventory ingestion and dashboard for the stock workbook",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		current = a
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if current == nil {
			return nil
		}
		_ = current.logger.Sync()
		return current.db.Close()
	},
}

func init() {
	rootCmd.AddCommand(loadCmd, showCmd, getCmd, statsCmd, filterCmd, saveCmd, deleteCmd, exportCmd, htmlCmd, runsCmd, watchCmd)
}

func openApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger, err := config.NewLogger(cfg)
	if err != nil {
		return nil, err
	}
	layout, err := pipeline.LoadLayout(cfg.LayoutPath)
	if err != nil {
		return nil, err
	}

	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open session store: %w", err)
	}
	inv, gen, err := db.LoadSession()
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("load session inventory: %w", err)
	}

	return &app{cfg: cfg, logger: logger, db: db, state: inventory.NewFrom(inv), layout: layout, gen: gen}, nil
}

// persist writes the edited inventory back to the session store. It fails with
// storage.ErrConflict when an ingestion replaced the store meanwhile.
func (a *app) persist() error {
	gen, err := a.db.ReplaceInventoryIf(a.state.Snapshot(), a.gen)
	if err != nil {
		return err
	}
	a.gen = gen
	return nil
}

func main() {
	must(rootCmd.Execute())
}

func must(err error) {
	if err == nil {
		return
	}
	report.Notify(os.Stderr, report.KindError, err.Error())
	os.Exit(1)
}
