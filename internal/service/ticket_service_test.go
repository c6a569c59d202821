package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bagdasarian/staff-portal/internal/domain"
	"github.com/bagdasarian/staff-portal/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type ticketMocks struct {
	tickets   *MockTicketRepository
	staff     *MockStaffRepository
	divisions *MockDivisionRepository
	publisher *recordingPublisher
}

func newTicketService() (TicketService, ticketMocks) {
	m := ticketMocks{
		tickets:   new(MockTicketRepository),
		staff:     new(MockStaffRepository),
		divisions: new(MockDivisionRepository),
		publisher: &recordingPublisher{},
	}
	return NewTicketService(m.tickets, m.staff, m.divisions, m.publisher), m
}

func (m ticketMocks) assert(t *testing.T) {
	m.tickets.AssertExpectations(t)
	m.staff.AssertExpectations(t)
	m.divisions.AssertExpectations(t)
}

func divisionMembers() []*domain.StaffMember {
	return []*domain.StaffMember{
		{ID: "u1", FullName: "Alice", IsActive: true},
		{ID: "u2", FullName: "Bob", IsActive: true},
		{ID: "u3", FullName: "Charlie", IsActive: true},
	}
}

func TestTicketService_CreateTicket(t *testing.T) {
	t.Run("успешное создание с назначением наименее загруженного", func(t *testing.T) {
		service, m := newTicketService()

		m.staff.On("GetByID", mock.Anything, "u1").Return(&domain.StaffMember{ID: "u1", IsActive: true}, nil).Once()
		m.divisions.On("GetByID", mock.Anything, "d1").Return(&domain.Division{ID: "d1", Name: "IT"}, nil).Once()
		m.staff.On("GetActiveByDivisionID", mock.Anything, "d1").Return(divisionMembers(), nil).Once()
		m.tickets.On("CountOpenByAssignee", mock.Anything, []string{"u1", "u2", "u3"}).Return(map[string]int{"u1": 0, "u2": 3, "u3": 1}, nil).Once()
		m.tickets.On("Create", mock.Anything, mock.AnythingOfType("*domain.Ticket")).Return(nil).Once()

		ticket, err := service.CreateTicket(context.Background(), CreateTicketInput{
			Title:      "  Printer is down ",
			ReporterID: "u1",
			DivisionID: "d1",
		})

		require.NoError(t, err)
		assert.NotEmpty(t, ticket.ID)
		assert.Equal(t, "Printer is down", ticket.Title)
		assert.Equal(t, domain.TicketOpen, ticket.Status)
		assert.Equal(t, domain.PriorityMedium, ticket.Priority)
		require.NotNil(t, ticket.AssigneeID)
		assert.Equal(t, "u3", *ticket.AssigneeID)
		assert.Equal(t, "d1", *ticket.DivisionID)
		assert.Equal(t, []string{"ticket:created"}, m.publisher.kinds())
		m.assert(t)
	})

	t.Run("нет кандидатов - заявка без исполнителя", func(t *testing.T) {
		service, m := newTicketService()

		m.staff.On("GetByID", mock.Anything, "u1").Return(&domain.StaffMember{ID: "u1", IsActive: true}, nil).Once()
		m.divisions.On("GetByID", mock.Anything, "d1").Return(&domain.Division{ID: "d1"}, nil).Once()
		m.staff.On("GetActiveByDivisionID", mock.Anything, "d1").Return([]*domain.StaffMember{{ID: "u1", IsActive: true}}, nil).Once()
		m.tickets.On("CountOpenByAssignee", mock.Anything, []string{"u1"}).Return(map[string]int{}, nil).Once()
		m.tickets.On("Create", mock.Anything, mock.AnythingOfType("*domain.Ticket")).Return(nil).Once()

		ticket, err := service.CreateTicket(context.Background(), CreateTicketInput{Title: "VPN", ReporterID: "u1", DivisionID: "d1"})

		require.NoError(t, err)
		assert.Nil(t, ticket.AssigneeID)
		m.assert(t)
	})

	t.Run("без подразделения назначение не выполняется", func(t *testing.T) {
		service, m := newTicketService()

		m.staff.On("GetByID", mock.Anything, "u1").Return(&domain.StaffMember{ID: "u1"}, nil).Once()
		m.tickets.On("Create", mock.Anything, mock.AnythingOfType("*domain.Ticket")).Return(nil).Once()

		ticket, err := service.CreateTicket(context.Background(), CreateTicketInput{Title: "VPN", ReporterID: "u1", Priority: domain.PriorityUrgent})

		require.NoError(t, err)
		assert.Nil(t, ticket.AssigneeID)
		assert.Nil(t, ticket.DivisionID)
		assert.Equal(t, domain.PriorityUrgent, ticket.Priority)
		m.assert(t)
	})

	t.Run("ошибка: неизвестный приоритет", func(t *testing.T) {
		service, m := newTicketService()

		ticket, err := service.CreateTicket(context.Background(), CreateTicketInput{Title: "VPN", ReporterID: "u1", Priority: "asap"})

		require.Error(t, err)
		assert.Nil(t, ticket)
		assert.True(t, errors.Is(err, domain.ErrBadRequest))
		m.assert(t)
	})

	t.Run("ошибка: автор не найден", func(t *testing.T) {
		service, m := newTicketService()

		m.staff.On("GetByID", mock.Anything, "u999").Return(nil, repository.ErrNotFound).Once()

		ticket, err := service.CreateTicket(context.Background(), CreateTicketInput{Title: "VPN", ReporterID: "u999"})

		require.Error(t, err)
		assert.Nil(t, ticket)
		assert.True(t, errors.Is(err, domain.ErrNotFound))
		m.assert(t)
	})

	t.Run("ошибка: подразделение не найдено", func(t *testing.T) {
		service, m := newTicketService()

		m.staff.On("GetByID", mock.Anything, "u1").Return(&domain.StaffMember{ID: "u1"}, nil).Once()
		m.divisions.On("GetByID", mock.Anything, "d9").Return(nil, repository.ErrNotFound).Once()

		_, err := service.CreateTicket(context.Background(), CreateTicketInput{Title: "VPN", ReporterID: "u1", DivisionID: "d9"})

		assert.True(t, errors.Is(err, domain.ErrNotFound))
		m.assert(t)
	})
}

func TestTicketService_ChangeStatus(t *testing.T) {
	t.Run("успешное решение заявки", func(t *testing.T) {
		service, m := newTicketService()

		open := &domain.Ticket{ID: "t1", Status: domain.TicketOpen}
		now := time.Now()
		resolved := &domain.Ticket{ID: "t1", Status: domain.TicketResolved, ResolvedAt: &now}

		m.tickets.On("GetByID", mock.Anything, "t1").Return(open, nil).Once()
		m.tickets.On("UpdateStatus", mock.Anything, "t1", domain.TicketResolved, mock.AnythingOfType("*time.Time")).Return(nil).Once()
		m.tickets.On("GetByID", mock.Anything, "t1").Return(resolved, nil).Once()

		result, err := service.ChangeStatus(context.Background(), "t1", domain.TicketResolved)

		require.NoError(t, err)
		assert.Equal(t, domain.TicketResolved, result.Status)
		assert.Equal(t, "done", result.Lane())
		assert.Equal(t, []string{"ticket:updated"}, m.publisher.kinds())
		m.assert(t)
	})

	t.Run("повторное решение идемпотентно", func(t *testing.T) {
		service, m := newTicketService()

		now := time.Now()
		resolved := &domain.Ticket{ID: "t1", Status: domain.TicketResolved, ResolvedAt: &now}
		m.tickets.On("GetByID", mock.Anything, "t1").Return(resolved, nil).Once()

		result, err := service.ChangeStatus(context.Background(), "t1", domain.TicketResolved)

		require.NoError(t, err)
		assert.Equal(t, resolved, result)
		assert.Empty(t, m.publisher.kinds())
		m.assert(t)
	})

	t.Run("переоткрытие сбрасывает дату решения", func(t *testing.T) {
		service, m := newTicketService()

		now := time.Now()
		m.tickets.On("GetByID", mock.Anything, "t1").Return(&domain.Ticket{ID: "t1", Status: domain.TicketResolved, ResolvedAt: &now}, nil).Once()
		m.tickets.On("UpdateStatus", mock.Anything, "t1", domain.TicketOpen, (*time.Time)(nil)).Return(nil).Once()
		m.tickets.On("GetByID", mock.Anything, "t1").Return(&domain.Ticket{ID: "t1", Status: domain.TicketOpen}, nil).Once()

		result, err := service.ChangeStatus(context.Background(), "t1", domain.TicketOpen)

		require.NoError(t, err)
		assert.Nil(t, result.ResolvedAt)
		m.assert(t)
	})

	t.Run("ошибка: заявка закрыта", func(t *testing.T) {
		service, m := newTicketService()

		m.tickets.On("GetByID", mock.Anything, "t1").Return(&domain.Ticket{ID: "t1", Status: domain.TicketClosed}, nil).Once()

		_, err := service.ChangeStatus(context.Background(), "t1", domain.TicketOpen)

		assert.True(t, errors.Is(err, domain.ErrTicketClosed))
		m.assert(t)
	})

	t.Run("ошибка: недопустимый переход", func(t *testing.T) {
		service, m := newTicketService()

		m.tickets.On("GetByID", mock.Anything, "t1").Return(&domain.Ticket{ID: "t1", Status: domain.TicketResolved}, nil).Once()

		_, err := service.ChangeStatus(context.Background(), "t1", domain.TicketInProgress)

		assert.True(t, errors.Is(err, domain.ErrInvalidTransition))
		m.assert(t)
	})

	t.Run("ошибка: неизвестный статус", func(t *testing.T) {
		service, _ := newTicketService()

		_, err := service.ChangeStatus(context.Background(), "t1", "archived")

		assert.True(t, errors.Is(err, domain.ErrBadRequest))
	})

	t.Run("ошибка: заявка не найдена", func(t *testing.T) {
		service, m := newTicketService()

		m.tickets.On("GetByID", mock.Anything, "t9").Return(nil, repository.ErrNotFound).Once()

		_, err := service.ChangeStatus(context.Background(), "t9", domain.TicketClosed)

		assert.True(t, errors.Is(err, domain.ErrNotFound))
		m.assert(t)
	})
}

func TestTicketService_AssignTicket(t *testing.T) {
	t.Run("успешное назначение", func(t *testing.T) {
		service, m := newTicketService()

		m.tickets.On("GetByID", mock.Anything, "t1").Return(&domain.Ticket{ID: "t1", Status: domain.TicketOpen}, nil).Once()
		m.staff.On("GetByID", mock.Anything, "u2").Return(&domain.StaffMember{ID: "u2", IsActive: true}, nil).Once()
		m.tickets.On("Assign", mock.Anything, "t1", mock.MatchedBy(func(id *string) bool { return id != nil && *id == "u2" })).Return(nil).Once()
		m.tickets.On("GetByID", mock.Anything, "t1").Return(&domain.Ticket{ID: "t1", Status: domain.TicketOpen, AssigneeID: strPtr("u2")}, nil).Once()

		result, err := service.AssignTicket(context.Background(), "t1", "u2")

		require.NoError(t, err)
		assert.Equal(t, "u2", *result.AssigneeID)
		m.assert(t)
	})

	t.Run("ошибка: неактивный сотрудник", func(t *testing.T) {
		service, m := newTicketService()

		m.tickets.On("GetByID", mock.Anything, "t1").Return(&domain.Ticket{ID: "t1", Status: domain.TicketOpen}, nil).Once()
		m.staff.On("GetByID", mock.Anything, "u2").Return(&domain.StaffMember{ID: "u2", IsActive: false}, nil).Once()

		_, err := service.AssignTicket(context.Background(), "t1", "u2")

		assert.True(t, errors.Is(err, domain.ErrBadRequest))
		m.assert(t)
	})
}

func TestTicketService_ReassignTicket(t *testing.T) {
	t.Run("успешная замена исполнителя", func(t *testing.T) {
		service, m := newTicketService()

		ticket := &domain.Ticket{ID: "t1", Status: domain.TicketInProgress, ReporterID: "u1", AssigneeID: strPtr("u2"), DivisionID: strPtr("d1")}
		m.tickets.On("GetByID", mock.Anything, "t1").Return(ticket, nil).Once()
		m.staff.On("GetActiveByDivisionID", mock.Anything, "d1").Return(divisionMembers(), nil).Once()
		m.tickets.On("CountOpenByAssignee", mock.Anything, []string{"u1", "u2", "u3"}).Return(map[string]int{"u2": 1}, nil).Once()
		m.tickets.On("Assign", mock.Anything, "t1", mock.MatchedBy(func(id *string) bool { return id != nil && *id == "u3" })).Return(nil).Once()
		m.tickets.On("GetByID", mock.Anything, "t1").Return(&domain.Ticket{ID: "t1", AssigneeID: strPtr("u3")}, nil).Once()

		result, newID, err := service.ReassignTicket(context.Background(), "t1")

		require.NoError(t, err)
		assert.Equal(t, "u3", newID)
		assert.Equal(t, "u3", *result.AssigneeID)
		m.assert(t)
	})

	t.Run("ошибка: нет кандидатов", func(t *testing.T) {
		service, m := newTicketService()

		ticket := &domain.Ticket{ID: "t1", Status: domain.TicketOpen, ReporterID: "u1", AssigneeID: strPtr("u2"), DivisionID: strPtr("d1")}
		m.tickets.On("GetByID", mock.Anything, "t1").Return(ticket, nil).Once()
		m.staff.On("GetActiveByDivisionID", mock.Anything, "d1").Return(divisionMembers()[:2], nil).Once()
		m.tickets.On("CountOpenByAssignee", mock.Anything, []string{"u1", "u2"}).Return(map[string]int{}, nil).Once()

		_, _, err := service.ReassignTicket(context.Background(), "t1")

		assert.True(t, errors.Is(err, domain.ErrNoCandidate))
		m.assert(t)
	})

	t.Run("ошибка: исполнитель не назначен", func(t *testing.T) {
		service, m := newTicketService()

		m.tickets.On("GetByID", mock.Anything, "t1").Return(&domain.Ticket{ID: "t1", Status: domain.TicketOpen}, nil).Once()

		_, _, err := service.ReassignTicket(context.Background(), "t1")

		assert.True(t, errors.Is(err, domain.ErrNotAssigned))
		m.assert(t)
	})

	t.Run("ошибка: заявка закрыта", func(t *testing.T) {
		service, m := newTicketService()

		m.tickets.On("GetByID", mock.Anything, "t1").Return(&domain.Ticket{ID: "t1", Status: domain.TicketClosed, AssigneeID: strPtr("u2")}, nil).Once()

		_, _, err := service.ReassignTicket(context.Background(), "t1")

		assert.True(t, errors.Is(err, domain.ErrTicketClosed))
		m.assert(t)
	})
}

func TestTicketService_Board(t *testing.T) {
	service, m := newTicketService()

	filter := domain.TicketFilter{DivisionID: "d1"}
	m.tickets.On("List", mock.Anything, filter).Return([]*domain.Ticket{
		{ID: "a", Status: domain.TicketOpen},
		{ID: "b", Status: domain.TicketInProgress},
		{ID: "c", Status: domain.TicketResolved},
		{ID: "d", Status: domain.TicketClosed},
	}, nil).Once()

	board, err := service.Board(context.Background(), filter)

	require.NoError(t, err)
	require.Len(t, board.Lanes, 3)
	assert.Equal(t, "new", board.Lanes[0].Name)
	assert.Len(t, board.Lanes[0].Tickets, 1)
	assert.Len(t, board.Lanes[1].Tickets, 1)
	assert.Len(t, board.Lanes[2].Tickets, 2)
	m.assert(t)
}
