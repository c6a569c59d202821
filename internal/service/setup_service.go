package service

import (
	"context"

	"github.com/bagdasarian/staff-portal/internal/csvstore"
	"github.com/bagdasarian/staff-portal/internal/domain"
)

// UnitStorage хранилище таблиц юнитов с переключением облако/локально.
type UnitStorage interface {
	csvstore.Store
	CloudAvailable() bool
	Reset()
}

var _ UnitStorage = (*csvstore.FallbackStore)(nil)

// PendingSyncer выгружает локально сохраненные таблицы в облако.
type PendingSyncer interface {
	SyncPending(ctx context.Context) (int, error)
}

type SetupUnitInput struct {
	Name       string
	Objectives []domain.Objective
}

type SetupService interface {
	// SetupUnit создает папку юнита и таблицы целей, KRA и KPI
	SetupUnit(ctx context.Context, input SetupUnitInput) (*domain.Unit, error)
	GetUnit(ctx context.Context, id string) (*domain.Unit, error)
	ListUnits(ctx context.Context) ([]*domain.Unit, error)
	ReadUnitTable(ctx context.Context, unitID, table string) (*csvstore.Table, error)

	// AppendUnitRows добавляет строки, объединяя заголовки по именам колонок
	AppendUnitRows(ctx context.Context, unitID, table string, header []string, rows [][]string) (*csvstore.Table, error)
	DeleteUnit(ctx context.Context, id string) error

	// ResetUnitStorage сбрасывает бюджет попыток и снова пробует облако
	ResetUnitStorage(ctx context.Context, id string) (*domain.Unit, error)

	// HandleSynced отмечает юнит облачным после выгрузки его таблиц
	HandleSynced(ctx context.Context, loc csvstore.Location) error
}
