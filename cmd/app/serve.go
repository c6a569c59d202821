package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bagdasarian/staff-portal/internal/config"
	"github.com/bagdasarian/staff-portal/internal/csvstore"
	"github.com/bagdasarian/staff-portal/internal/db"
	"github.com/bagdasarian/staff-portal/internal/handler"
	"github.com/bagdasarian/staff-portal/internal/handler/server"
	"github.com/bagdasarian/staff-portal/internal/logger"
	"github.com/spf13/cobra"
)

const syncJobTimeout = 5 * time.Minute

func newServeCmd() *cobra.Command {
	var migrateOnStart bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the background sync job",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), migrateOnStart)
		},
	}
	cmd.Flags().BoolVar(&migrateOnStart, "migrate", true, "apply database migrations before start")
	return cmd
}

func runServe(parent context.Context, migrateOnStart bool) error {
	cfg := config.Load()
	log := logger.New(cfg.Log)

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if migrateOnStart {
		if err := db.Migrate(cfg.Database.URL()); err != nil {
			return err
		}
		log.Info().Msg("migrations applied")
	}

	a, err := newApp(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer a.Close()

	if a.syncer != nil {
		scheduler := csvstore.NewCron()
		if _, err := a.syncer.Schedule(scheduler, cfg.Storage.SyncCron, syncJobTimeout); err != nil {
			return err
		}
		scheduler.Start()
		defer func() { <-scheduler.Stop().Done() }()
		log.Info().Str("schedule", cfg.Storage.SyncCron).Msg("sync job scheduled")
	}

	h := handler.NewHandler(a.services, log,
		handler.WithEvents(a.broker),
		handler.WithHealth(a.db),
		handler.WithStorageStatus(a.fallback),
	)
	srv := server.NewServer(h, cfg.HTTP.Addr, log)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	// потоки /events завершаются только после закрытия брокера
	a.broker.Close()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		return err
	}
	return nil
}
