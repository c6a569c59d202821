package repository

import (
	"context"

	"github.com/bagdasarian/staff-portal/internal/domain"
)

type StaffRepository interface {
	Create(ctx context.Context, member *domain.StaffMember) error
	Update(ctx context.Context, member *domain.StaffMember) error
	GetByID(ctx context.Context, id string) (*domain.StaffMember, error)
	GetByEmail(ctx context.Context, email string) (*domain.StaffMember, error)
	List(ctx context.Context, filter domain.StaffFilter) ([]*domain.StaffMember, error)
	SetIsActive(ctx context.Context, id string, isActive bool) error
	GetActiveByDivisionID(ctx context.Context, divisionID string) ([]*domain.StaffMember, error)
}

type DivisionRepository interface {
	Create(ctx context.Context, division *domain.Division) error
	GetByName(ctx context.Context, name string) (*domain.Division, error)
	GetByID(ctx context.Context, id string) (*domain.Division, error)
}
