package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bagdasarian/staff-portal/internal/domain"
	"github.com/bagdasarian/staff-portal/internal/events"
	"github.com/bagdasarian/staff-portal/internal/repository"
	"github.com/google/uuid"
)

const (
	entityStaff    = "staff"
	entityDivision = "division"
)

type staffService struct {
	staffRepo repository.StaffRepository
	publisher events.Publisher
}

func NewStaffService(staffRepo repository.StaffRepository, publisher events.Publisher) StaffService {
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &staffService{staffRepo: staffRepo, publisher: publisher}
}

func validateStaff(member *domain.StaffMember) error {
	member.FullName = strings.TrimSpace(member.FullName)
	member.Email = strings.ToLower(strings.TrimSpace(member.Email))
	if member.FullName == "" {
		return domain.NewBadRequestError("full_name is required")
	}
	if !strings.Contains(member.Email, "@") {
		return domain.NewBadRequestError("invalid email %q", member.Email)
	}
	return nil
}

func (s *staffService) CreateStaff(ctx context.Context, member *domain.StaffMember) (*domain.StaffMember, error) {
	if err := validateStaff(member); err != nil {
		return nil, err
	}

	existing, err := s.staffRepo.GetByEmail(ctx, member.Email)
	if err == nil && existing != nil {
		return nil, domain.ErrStaffExists
	}
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	member.ID = uuid.NewString()
	member.CreatedAt = time.Now()
	member.UpdatedAt = nil

	if err := s.staffRepo.Create(ctx, member); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, domain.ErrStaffExists
		}
		return nil, err
	}

	s.publisher.Publish(events.Event{Kind: events.KindCreated, Entity: entityStaff, ID: member.ID})
	return member, nil
}

func (s *staffService) UpdateStaff(ctx context.Context, member *domain.StaffMember) (*domain.StaffMember, error) {
	if err := validateStaff(member); err != nil {
		return nil, err
	}

	current, err := s.staffRepo.GetByID(ctx, member.ID)
	if err != nil {
		return nil, mapNotFound(err, "staff member with id "+member.ID)
	}

	if !strings.EqualFold(current.Email, member.Email) {
		other, err := s.staffRepo.GetByEmail(ctx, member.Email)
		if err == nil && other != nil && other.ID != member.ID {
			return nil, domain.ErrStaffExists
		}
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
	}

	if err := s.staffRepo.Update(ctx, member); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, domain.ErrStaffExists
		}
		return nil, mapNotFound(err, "staff member with id "+member.ID)
	}

	updated, err := s.staffRepo.GetByID(ctx, member.ID)
	if err != nil {
		return nil, mapNotFound(err, "staff member with id "+member.ID)
	}

	s.publisher.Publish(events.Event{Kind: events.KindUpdated, Entity: entityStaff, ID: member.ID})
	return updated, nil
}

func (s *staffService) GetStaff(ctx context.Context, id string) (*domain.StaffMember, error) {
	member, err := s.staffRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, "staff member with id "+id)
	}
	return member, nil
}

func (s *staffService) ListStaff(ctx context.Context, filter domain.StaffFilter) ([]*domain.StaffMember, error) {
	filter.Search = strings.TrimSpace(filter.Search)
	return s.staffRepo.List(ctx, filter)
}

func (s *staffService) SetIsActive(ctx context.Context, id string, isActive bool) (*domain.StaffMember, error) {
	_, err := s.staffRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, "staff member with id "+id)
	}

	err = s.staffRepo.SetIsActive(ctx, id, isActive)
	if err != nil {
		return nil, mapNotFound(err, "staff member with id "+id)
	}

	updated, err := s.staffRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, "staff member with id "+id)
	}

	s.publisher.Publish(events.Event{Kind: events.KindUpdated, Entity: entityStaff, ID: id})
	return updated, nil
}

type divisionService struct {
	divisionRepo repository.DivisionRepository
	staffRepo    repository.StaffRepository
	publisher    events.Publisher
}

// NewDivisionService создает новый экземпляр DivisionService
func NewDivisionService(divisionRepo repository.DivisionRepository, staffRepo repository.StaffRepository, publisher events.Publisher) DivisionService {
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &divisionService{divisionRepo: divisionRepo, staffRepo: staffRepo, publisher: publisher}
}

func (s *divisionService) CreateDivision(ctx context.Context, division *domain.Division) (*domain.Division, error) {
	division.Name = strings.TrimSpace(division.Name)
	if division.Name == "" {
		return nil, domain.NewBadRequestError("division name is required")
	}

	existing, err := s.divisionRepo.GetByName(ctx, division.Name)
	if err == nil && existing != nil {
		return nil, domain.ErrDivisionExists
	}
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	for _, member := range division.Members {
		if _, err := s.staffRepo.GetByID(ctx, member.StaffID); err != nil {
			return nil, mapNotFound(err, "staff member with id "+member.StaffID)
		}
	}

	division.ID = uuid.NewString()
	division.CreatedAt = time.Now()
	division.UpdatedAt = nil

	if err := s.divisionRepo.Create(ctx, division); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, domain.ErrDivisionExists
		}
		return nil, err
	}

	created, err := s.divisionRepo.GetByName(ctx, division.Name)
	if err != nil {
		return nil, mapNotFound(err, "division with name "+division.Name)
	}

	s.publisher.Publish(events.Event{Kind: events.KindCreated, Entity: entityDivision, ID: created.ID})
	return created, nil
}

// GetDivision получает подразделение с участниками по имени
func (s *divisionService) GetDivision(ctx context.Context, name string) (*domain.Division, error) {
	division, err := s.divisionRepo.GetByName(ctx, name)
	if err != nil {
		return nil, mapNotFound(err, "division with name "+name)
	}
	return division, nil
}
