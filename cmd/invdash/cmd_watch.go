package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"invdash/internal/listener"
	"invdash/internal/source"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Poll the source and re-ingest when the workbook changes",
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := source.FromConfig(current.cfg)
		if err != nil {
			return err
		}
		ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		svc := listener.NewService(current.db, current.cfg, src, current.state, current.layout, current.logger)
		return svc.Run(ctx)
	},
}
