package main

import (
	"github.com/bagdasarian/staff-portal/internal/config"
	"github.com/bagdasarian/staff-portal/internal/db"
	"github.com/bagdasarian/staff-portal/internal/logger"
	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.Load()
			log := logger.New(cfg.Log)

			if err := db.Migrate(cfg.Database.URL()); err != nil {
				return err
			}
			log.Info().Msg("migrations applied")
			return nil
		},
	}
}
