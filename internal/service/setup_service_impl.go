package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/bagdasarian/staff-portal/internal/csvstore"
	"github.com/bagdasarian/staff-portal/internal/domain"
	"github.com/bagdasarian/staff-portal/internal/events"
	"github.com/bagdasarian/staff-portal/internal/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

const entityUnit = "unit"

type setupService struct {
	unitRepo  repository.UnitRepository
	storage   UnitStorage
	syncer    PendingSyncer
	template  *SetupTemplate
	publisher events.Publisher
	log       zerolog.Logger

	locksMu sync.Mutex
	locks   map[string]*sync.Mutex
}

func NewSetupService(
	unitRepo repository.UnitRepository,
	storage UnitStorage,
	syncer PendingSyncer,
	template *SetupTemplate,
	publisher events.Publisher,
	log zerolog.Logger,
) SetupService {
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &setupService{
		unitRepo:  unitRepo,
		storage:   storage,
		syncer:    syncer,
		template:  template,
		publisher: publisher,
		log:       log.With().Str("component", "setup").Logger(),
		locks:     make(map[string]*sync.Mutex),
	}
}

// lockUnit сериализует изменения папки юнита; имена сравниваются без учета регистра.
func (s *setupService) lockUnit(name string) func() {
	key := csvstore.NamespaceKey(name)
	s.locksMu.Lock()
	l, ok := s.locks[key]
	if !ok {
		l = &sync.Mutex{}
		s.locks[key] = l
	}
	s.locksMu.Unlock()

	l.Lock()
	return l.Unlock
}

func validUnitName(name string) bool {
	if name == "" || len(name) > 128 || strings.HasSuffix(name, ".") {
		return false
	}
	return !strings.ContainsAny(name, `/\:*?"<>|#%`)
}

func (s *setupService) SetupUnit(ctx context.Context, input SetupUnitInput) (*domain.Unit, error) {
	name := strings.TrimSpace(input.Name)
	if !validUnitName(name) {
		return nil, domain.NewBadRequestError("invalid unit name %q", input.Name)
	}
	defer s.lockUnit(name)()

	existing, err := s.unitRepo.GetByName(ctx, name)
	if err == nil && existing != nil {
		return nil, domain.ErrUnitExists
	}
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	objectives := assignObjectiveIDs(input.Objectives)

	loc, err := s.storage.Ensure(ctx, name)
	if err != nil {
		return nil, errors.Join(domain.ErrStorageUnavailable, err)
	}

	tables := s.template.Build(objectives)
	g, gctx := errgroup.WithContext(ctx)
	for _, table := range tables {
		g.Go(func() error {
			return s.storage.Write(gctx, loc, table)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, errors.Join(domain.ErrStorageUnavailable, err)
	}

	mode := loc.Mode
	if mode == domain.StorageCloud && !s.storage.CloudAvailable() {
		mode = domain.StorageLocal
	}

	unit := &domain.Unit{
		ID:          uuid.NewString(),
		Name:        name,
		FolderID:    loc.FolderID,
		StorageMode: mode,
		Objectives:  objectives,
		Tables:      make([]string, 0, len(tables)),
		CreatedAt:   time.Now(),
	}
	for _, t := range tables {
		unit.Tables = append(unit.Tables, t.Name)
	}

	if err := s.unitRepo.Create(ctx, unit); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, domain.ErrUnitExists
		}
		return nil, err
	}

	s.log.Info().Str("unit", name).Str("mode", string(mode)).Int("objectives", len(objectives)).Msg("unit provisioned")
	s.publish(events.KindCreated, unit.ID)
	return unit, nil
}

func assignObjectiveIDs(objectives []domain.Objective) []domain.Objective {
	out := make([]domain.Objective, 0, len(objectives))
	for _, o := range objectives {
		if o.ID == "" {
			o.ID = uuid.NewString()
		}
		kras := make([]domain.KRA, 0, len(o.KRAs))
		for _, kra := range o.KRAs {
			if kra.ID == "" {
				kra.ID = uuid.NewString()
			}
			kpis := make([]domain.KPI, 0, len(kra.KPIs))
			for _, kpi := range kra.KPIs {
				if kpi.ID == "" {
					kpi.ID = uuid.NewString()
				}
				kpis = append(kpis, kpi)
			}
			kra.KPIs = kpis
			kras = append(kras, kra)
		}
		o.KRAs = kras
		out = append(out, o)
	}
	return out
}

func location(unit *domain.Unit) csvstore.Location {
	return csvstore.Location{Namespace: unit.Name, FolderID: unit.FolderID, Mode: unit.StorageMode}
}

func (s *setupService) getUnit(ctx context.Context, id string) (*domain.Unit, error) {
	unit, err := s.unitRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, "unit with id "+id)
	}
	return unit, nil
}

// GetUnit загружает юнит вместе со списком таблиц и целями из хранилища.
func (s *setupService) GetUnit(ctx context.Context, id string) (*domain.Unit, error) {
	unit, err := s.getUnit(ctx, id)
	if err != nil {
		return nil, err
	}
	loc := location(unit)

	tables, err := s.storage.List(ctx, loc)
	if err != nil {
		return nil, errors.Join(domain.ErrStorageUnavailable, err)
	}
	unit.Tables = tables

	read := func(name string) (*csvstore.Table, error) {
		t, err := s.storage.Read(ctx, loc, name)
		if errors.Is(err, csvstore.ErrTableNotFound) {
			return nil, nil
		}
		return t, err
	}
	objectives, err := read(TableObjectives)
	if err != nil {
		return nil, errors.Join(domain.ErrStorageUnavailable, err)
	}
	kras, err := read(TableKRAs)
	if err != nil {
		return nil, errors.Join(domain.ErrStorageUnavailable, err)
	}
	kpis, err := read(TableKPIs)
	if err != nil {
		return nil, errors.Join(domain.ErrStorageUnavailable, err)
	}
	unit.Objectives = objectivesFromTables(objectives, kras, kpis)
	return unit, nil
}

func (s *setupService) ListUnits(ctx context.Context) ([]*domain.Unit, error) {
	return s.unitRepo.List(ctx)
}

func (s *setupService) ReadUnitTable(ctx context.Context, unitID, table string) (*csvstore.Table, error) {
	if !validTableName(table) {
		return nil, domain.NewBadRequestError("invalid table name %q", table)
	}
	unit, err := s.getUnit(ctx, unitID)
	if err != nil {
		return nil, err
	}

	t, err := s.storage.Read(ctx, location(unit), table)
	if errors.Is(err, csvstore.ErrTableNotFound) {
		return nil, domain.NewNotFoundError("table " + table)
	}
	if err != nil {
		return nil, errors.Join(domain.ErrStorageUnavailable, err)
	}
	return t, nil
}

func (s *setupService) AppendUnitRows(ctx context.Context, unitID, table string, header []string, rows [][]string) (*csvstore.Table, error) {
	if !validTableName(table) {
		return nil, domain.NewBadRequestError("invalid table name %q", table)
	}
	if len(header) == 0 {
		return nil, domain.NewBadRequestError("header is required")
	}
	seen := make(map[string]bool, len(header))
	for _, h := range header {
		if h == "" || seen[h] {
			return nil, domain.NewBadRequestError("header has empty or duplicate column %q", h)
		}
		seen[h] = true
	}
	for i, row := range rows {
		if len(row) != len(header) {
			return nil, domain.NewBadRequestError("row %d has %d fields, header has %d", i, len(row), len(header))
		}
	}

	unit, err := s.getUnit(ctx, unitID)
	if err != nil {
		return nil, err
	}
	loc := location(unit)
	defer s.lockUnit(unit.Name)()

	existing, err := s.storage.Read(ctx, loc, table)
	if err != nil && !errors.Is(err, csvstore.ErrTableNotFound) {
		return nil, errors.Join(domain.ErrStorageUnavailable, err)
	}

	merged := csvstore.Reconcile(existing, &csvstore.Table{Name: table, Header: header, Rows: rows})
	if err := s.storage.Write(ctx, loc, merged); err != nil {
		return nil, errors.Join(domain.ErrStorageUnavailable, err)
	}

	s.publish(events.KindUpdated, unit.ID)
	return merged, nil
}

func (s *setupService) DeleteUnit(ctx context.Context, id string) error {
	unit, err := s.getUnit(ctx, id)
	if err != nil {
		return err
	}
	defer s.lockUnit(unit.Name)()

	if err := s.storage.Delete(ctx, location(unit)); err != nil {
		return errors.Join(domain.ErrStorageUnavailable, err)
	}
	if err := s.unitRepo.Delete(ctx, id); err != nil {
		return mapNotFound(err, "unit with id "+id)
	}

	s.log.Info().Str("unit", unit.Name).Msg("unit deleted")
	s.publish(events.KindDeleted, id)
	return nil
}

func (s *setupService) ResetUnitStorage(ctx context.Context, id string) (*domain.Unit, error) {
	unit, err := s.getUnit(ctx, id)
	if err != nil {
		return nil, err
	}

	s.storage.Reset()
	loc, err := s.storage.Ensure(ctx, unit.Name)
	if err != nil {
		return nil, errors.Join(domain.ErrStorageUnavailable, err)
	}
	if loc.Mode != domain.StorageCloud {
		return nil, domain.ErrStorageUnavailable
	}

	if s.syncer != nil {
		if _, err := s.syncer.SyncPending(ctx); err != nil {
			s.log.Warn().Err(err).Str("unit", unit.Name).Msg("pending tables not synced")
			return nil, errors.Join(domain.ErrStorageUnavailable, err)
		}
		if unit, err = s.getUnit(ctx, id); err != nil {
			return nil, err
		}
	}

	if err := s.markCloud(ctx, unit, loc); err != nil {
		return nil, err
	}
	return s.getUnit(ctx, id)
}

func (s *setupService) HandleSynced(ctx context.Context, loc csvstore.Location) error {
	unit, err := s.unitRepo.GetByName(ctx, loc.Namespace)
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	return s.markCloud(ctx, unit, loc)
}

func (s *setupService) markCloud(ctx context.Context, unit *domain.Unit, loc csvstore.Location) error {
	if unit.StorageMode == domain.StorageCloud && unit.FolderID == loc.FolderID {
		return nil
	}
	if err := s.unitRepo.UpdateStorage(ctx, unit.ID, loc.FolderID, domain.StorageCloud); err != nil {
		return mapNotFound(err, "unit with id "+unit.ID)
	}
	s.log.Info().Str("unit", unit.Name).Str("folder_id", loc.FolderID).Msg("unit storage moved to cloud")
	s.publish(events.KindUpdated, unit.ID)
	return nil
}

func (s *setupService) publish(kind, id string) {
	s.publisher.Publish(events.Event{Kind: kind, Entity: entityUnit, ID: id})
}
