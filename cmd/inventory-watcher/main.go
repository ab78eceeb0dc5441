package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"invdash/internal/config"
	"invdash/internal/inventory"
	"invdash/internal/listener"
	"invdash/internal/pipeline"
	"invdash/internal/source"
	"invdash/internal/storage"
)

func main() {
	cfg, err := config.Load()
	must(err)

	logger, err := config.NewLogger(cfg)
	must(err)
	defer logger.Sync()

	layout, err := pipeline.LoadLayout(cfg.LayoutPath)
	must(err)

	src, err := source.FromConfig(cfg)
	must(err)

	db, err := storage.Open(cfg.DBPath)
	must(err)
	defer db.Close()

	inv, err := db.LoadInventory()
	must(err)

	svc := listener.NewService(db, cfg, src, inventory.NewFrom(inv), layout, logger)
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	must(svc.Run(ctx))
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
