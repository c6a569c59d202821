package service

import (
	"context"
	"time"

	"github.com/bagdasarian/staff-portal/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockTicketRepository struct {
	mock.Mock
}

func (m *MockTicketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	args := m.Called(ctx, ticket)
	return args.Error(0)
}

func (m *MockTicketRepository) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Ticket), args.Error(1)
}

func (m *MockTicketRepository) List(ctx context.Context, filter domain.TicketFilter) ([]*domain.Ticket, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Ticket), args.Error(1)
}

func (m *MockTicketRepository) UpdateStatus(ctx context.Context, id string, status domain.TicketStatus, resolvedAt *time.Time) error {
	args := m.Called(ctx, id, status, resolvedAt)
	return args.Error(0)
}

func (m *MockTicketRepository) Assign(ctx context.Context, id string, assigneeID *string) error {
	args := m.Called(ctx, id, assigneeID)
	return args.Error(0)
}

func (m *MockTicketRepository) CountOpenByAssignee(ctx context.Context, staffIDs []string) (map[string]int, error) {
	args := m.Called(ctx, staffIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int), args.Error(1)
}

type MockStaffRepository struct {
	mock.Mock
}

func (m *MockStaffRepository) Create(ctx context.Context, member *domain.StaffMember) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

func (m *MockStaffRepository) Update(ctx context.Context, member *domain.StaffMember) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

func (m *MockStaffRepository) GetByID(ctx context.Context, id string) (*domain.StaffMember, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StaffMember), args.Error(1)
}

func (m *MockStaffRepository) GetByEmail(ctx context.Context, email string) (*domain.StaffMember, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StaffMember), args.Error(1)
}

func (m *MockStaffRepository) List(ctx context.Context, filter domain.StaffFilter) ([]*domain.StaffMember, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.StaffMember), args.Error(1)
}

func (m *MockStaffRepository) SetIsActive(ctx context.Context, id string, isActive bool) error {
	args := m.Called(ctx, id, isActive)
	return args.Error(0)
}

func (m *MockStaffRepository) GetActiveByDivisionID(ctx context.Context, divisionID string) ([]*domain.StaffMember, error) {
	args := m.Called(ctx, divisionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.StaffMember), args.Error(1)
}

type MockDivisionRepository struct {
	mock.Mock
}

func (m *MockDivisionRepository) Create(ctx context.Context, division *domain.Division) error {
	args := m.Called(ctx, division)
	return args.Error(0)
}

func (m *MockDivisionRepository) GetByName(ctx context.Context, name string) (*domain.Division, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Division), args.Error(1)
}

func (m *MockDivisionRepository) GetByID(ctx context.Context, id string) (*domain.Division, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Division), args.Error(1)
}

type MockProjectRepository struct {
	mock.Mock
}

func (m *MockProjectRepository) Create(ctx context.Context, project *domain.Project) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}

func (m *MockProjectRepository) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Project), args.Error(1)
}

func (m *MockProjectRepository) List(ctx context.Context) ([]*domain.Project, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Project), args.Error(1)
}

type MockTaskRepository struct {
	mock.Mock
}

func (m *MockTaskRepository) Create(ctx context.Context, task *domain.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskRepository) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Task), args.Error(1)
}

func (m *MockTaskRepository) ListByProject(ctx context.Context, projectID string) ([]*domain.Task, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Task), args.Error(1)
}

func (m *MockTaskRepository) CountInLane(ctx context.Context, projectID string, lane domain.Lane) (int, error) {
	args := m.Called(ctx, projectID, lane)
	return args.Int(0), args.Error(1)
}

func (m *MockTaskRepository) Move(ctx context.Context, id string, lane domain.Lane, position int) error {
	args := m.Called(ctx, id, lane, position)
	return args.Error(0)
}

func (m *MockTaskRepository) Update(ctx context.Context, task *domain.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockGalleryRepository struct {
	mock.Mock
}

func (m *MockGalleryRepository) CreateEvent(ctx context.Context, event *domain.GalleryEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockGalleryRepository) GetEvent(ctx context.Context, id string) (*domain.GalleryEvent, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GalleryEvent), args.Error(1)
}

func (m *MockGalleryRepository) ListEvents(ctx context.Context) ([]*domain.GalleryEvent, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.GalleryEvent), args.Error(1)
}

func (m *MockGalleryRepository) AddPhoto(ctx context.Context, photo *domain.Photo) error {
	args := m.Called(ctx, photo)
	return args.Error(0)
}

type MockUnitRepository struct {
	mock.Mock
}

func (m *MockUnitRepository) Create(ctx context.Context, unit *domain.Unit) error {
	args := m.Called(ctx, unit)
	return args.Error(0)
}

func (m *MockUnitRepository) GetByID(ctx context.Context, id string) (*domain.Unit, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Unit), args.Error(1)
}

func (m *MockUnitRepository) GetByName(ctx context.Context, name string) (*domain.Unit, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Unit), args.Error(1)
}

func (m *MockUnitRepository) List(ctx context.Context) ([]*domain.Unit, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Unit), args.Error(1)
}

func (m *MockUnitRepository) UpdateStorage(ctx context.Context, id, folderID string, mode domain.StorageMode) error {
	args := m.Called(ctx, id, folderID, mode)
	return args.Error(0)
}

func (m *MockUnitRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockStatsRepository struct {
	mock.Mock
}

func (m *MockStatsRepository) GetAssigneeLoad(ctx context.Context) ([]*domain.AssigneeLoad, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.AssigneeLoad), args.Error(1)
}

func (m *MockStatsRepository) GetTicketStatsByStatus(ctx context.Context) ([]*domain.TicketStatusStat, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.TicketStatusStat), args.Error(1)
}

type MockPendingSyncer struct {
	mock.Mock
}

func (m *MockPendingSyncer) SyncPending(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}
