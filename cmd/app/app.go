package main

import (
	"context"
	"database/sql"
	"errors"

	"github.com/bagdasarian/staff-portal/internal/config"
	"github.com/bagdasarian/staff-portal/internal/csvstore"
	"github.com/bagdasarian/staff-portal/internal/db"
	"github.com/bagdasarian/staff-portal/internal/events"
	"github.com/bagdasarian/staff-portal/internal/handler"
	"github.com/bagdasarian/staff-portal/internal/onedrive"
	"github.com/bagdasarian/staff-portal/internal/repository/postgres"
	"github.com/bagdasarian/staff-portal/internal/service"
	"github.com/rs/zerolog"
)

// app собранные зависимости, общие для serve и sync.
type app struct {
	cfg      *config.Config
	log      zerolog.Logger
	db       *sql.DB
	local    *csvstore.LocalStore
	fallback *csvstore.FallbackStore
	syncer   *csvstore.Syncer
	broker   *events.Broker
	services handler.Services
}

func newApp(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*app, error) {
	database, err := db.NewPostgres(cfg)
	if err != nil {
		return nil, err
	}
	log.Info().Str("host", cfg.Database.Host).Str("db", cfg.Database.DBName).Msg("connected to database")

	local, err := csvstore.OpenLocalStore(ctx, cfg.Storage.LocalPath)
	if err != nil {
		database.Close()
		return nil, err
	}

	template, err := service.LoadSetupTemplate(cfg.Storage.TemplateFile)
	if err != nil {
		local.Close()
		database.Close()
		return nil, err
	}

	storageLog := log.With().Str("component", "storage").Logger()
	var cloud csvstore.Store
	if cfg.Graph.GraphEnabled() {
		tokens := onedrive.NewTokenProvider(ctx, cfg.Graph, storageLog)
		client := onedrive.NewClient(cfg.Graph, tokens, storageLog)
		cloud = csvstore.NewCloudStore(client, cfg.Graph.RootFolder, storageLog)
		log.Info().Str("root", cfg.Graph.RootFolder).Msg("onedrive storage enabled")
	} else {
		log.Warn().Msg("graph credentials are not set, unit tables are kept locally")
	}
	fallback := csvstore.NewFallbackStore(cloud, local, cfg.Storage.MaxAttempts, storageLog)

	a := &app{
		cfg:      cfg,
		log:      log,
		db:       database,
		local:    local,
		fallback: fallback,
		broker:   events.NewBroker(events.DefaultBuffer, log.With().Str("component", "events").Logger()),
	}

	ticketRepo := postgres.NewTicketRepository(database)
	staffRepo := postgres.NewStaffRepository(database)
	divisionRepo := postgres.NewDivisionRepository(database)
	projectRepo := postgres.NewProjectRepository(database)
	taskRepo := postgres.NewTaskRepository(database)
	galleryRepo := postgres.NewGalleryRepository(database)
	unitRepo := postgres.NewUnitRepository(database)
	statsRepo := postgres.NewStatsRepository(database)

	var setupService service.SetupService
	var pending service.PendingSyncer
	if cloud != nil {
		a.syncer = csvstore.NewSyncer(cloud, local, storageLog,
			csvstore.WithFallback(fallback),
			csvstore.WithOnSynced(func(ctx context.Context, loc csvstore.Location) error {
				return setupService.HandleSynced(ctx, loc)
			}),
		)
		pending = a.syncer
	}
	setupService = service.NewSetupService(unitRepo, fallback, pending, template, a.broker, log)

	a.services = handler.Services{
		Tickets:   service.NewTicketService(ticketRepo, staffRepo, divisionRepo, a.broker),
		Staff:     service.NewStaffService(staffRepo, a.broker),
		Divisions: service.NewDivisionService(divisionRepo, staffRepo, a.broker),
		Projects:  service.NewProjectService(projectRepo, taskRepo, staffRepo, a.broker),
		Gallery:   service.NewGalleryService(galleryRepo, a.broker),
		Units:     setupService,
		Stats:     service.NewStatsService(statsRepo),
	}
	return a, nil
}

func (a *app) Close() error {
	a.broker.Close()
	return errors.Join(a.local.Close(), a.db.Close())
}

func (a *app) requireSyncer() error {
	if a.syncer == nil {
		return errors.New("onedrive is not configured: set GRAPH_CLIENT_ID and GRAPH_CLIENT_SECRET or GRAPH_REFRESH_TOKEN")
	}
	return nil
}
