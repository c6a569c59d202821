package main

import (
	"github.com/bagdasarian/staff-portal/internal/config"
	"github.com/bagdasarian/staff-portal/internal/logger"
	"github.com/spf13/cobra"
)

func newSyncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Push unit tables saved locally to OneDrive",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.Load()
			log := logger.New(cfg.Log)

			a, err := newApp(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.requireSyncer(); err != nil {
				return err
			}

			n, err := a.syncer.SyncPending(cmd.Context())
			log.Info().Int("tables", n).Msg("sync finished")
			return err
		},
	}
}
