package service

import (
	"context"

	"github.com/bagdasarian/staff-portal/internal/domain"
)

type StaffService interface {
	CreateStaff(ctx context.Context, member *domain.StaffMember) (*domain.StaffMember, error)
	UpdateStaff(ctx context.Context, member *domain.StaffMember) (*domain.StaffMember, error)
	GetStaff(ctx context.Context, id string) (*domain.StaffMember, error)

	// ListStaff ищет по имени, email и должности
	ListStaff(ctx context.Context, filter domain.StaffFilter) ([]*domain.StaffMember, error)

	// SetIsActive устанавливает флаг активности сотрудника
	SetIsActive(ctx context.Context, id string, isActive bool) (*domain.StaffMember, error)
}

type DivisionService interface {
	// CreateDivision создает подразделение с участниками
	CreateDivision(ctx context.Context, division *domain.Division) (*domain.Division, error)
	GetDivision(ctx context.Context, name string) (*domain.Division, error)
}
