package repository

import (
	"context"

	"github.com/bagdasarian/staff-portal/internal/domain"
)

type UnitRepository interface {
	Create(ctx context.Context, unit *domain.Unit) error
	GetByID(ctx context.Context, id string) (*domain.Unit, error)
	GetByName(ctx context.Context, name string) (*domain.Unit, error)
	List(ctx context.Context) ([]*domain.Unit, error)
	UpdateStorage(ctx context.Context, id, folderID string, mode domain.StorageMode) error
	Delete(ctx context.Context, id string) error
}
