package service

import (
	"context"
	"strings"
	"time"

	"github.com/bagdasarian/staff-portal/internal/domain"
	"github.com/bagdasarian/staff-portal/internal/events"
	"github.com/bagdasarian/staff-portal/internal/repository"
	"github.com/google/uuid"
)

const entityTicket = "ticket"

type ticketService struct {
	ticketRepo   repository.TicketRepository
	staffRepo    repository.StaffRepository
	divisionRepo repository.DivisionRepository
	publisher    events.Publisher
}

// NewTicketService создает новый экземпляр TicketService
func NewTicketService(
	ticketRepo repository.TicketRepository,
	staffRepo repository.StaffRepository,
	divisionRepo repository.DivisionRepository,
	publisher events.Publisher,
) TicketService {
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &ticketService{
		ticketRepo:   ticketRepo,
		staffRepo:    staffRepo,
		divisionRepo: divisionRepo,
		publisher:    publisher,
	}
}

func (s *ticketService) CreateTicket(ctx context.Context, input CreateTicketInput) (*domain.Ticket, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, domain.NewBadRequestError("title is required")
	}
	if input.ReporterID == "" {
		return nil, domain.NewBadRequestError("reporter_id is required")
	}
	if input.Priority == "" {
		input.Priority = domain.PriorityMedium
	}
	if !input.Priority.Valid() {
		return nil, domain.NewBadRequestError("unknown priority %q", input.Priority)
	}

	if _, err := s.staffRepo.GetByID(ctx, input.ReporterID); err != nil {
		return nil, mapNotFound(err, "staff member with id "+input.ReporterID)
	}

	ticket := &domain.Ticket{
		ID:          uuid.NewString(),
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		Category:    input.Category,
		Priority:    input.Priority,
		Status:      domain.TicketOpen,
		ReporterID:  input.ReporterID,
		CreatedAt:   time.Now(),
	}

	if input.DivisionID != "" {
		division, err := s.divisionRepo.GetByID(ctx, input.DivisionID)
		if err != nil {
			return nil, mapNotFound(err, "division with id "+input.DivisionID)
		}
		ticket.DivisionID = &division.ID

		assigneeID, err := s.pickAssignee(ctx, division.ID, input.ReporterID)
		if err != nil {
			return nil, err
		}
		if assigneeID != "" {
			ticket.AssigneeID = &assigneeID
		}
	}

	if err := s.ticketRepo.Create(ctx, ticket); err != nil {
		return nil, err
	}

	s.publish(events.KindCreated, ticket.ID)
	return ticket, nil
}

func (s *ticketService) pickAssignee(ctx context.Context, divisionID string, excludeIDs ...string) (string, error) {
	members, err := s.staffRepo.GetActiveByDivisionID(ctx, divisionID)
	if err != nil {
		return "", err
	}
	if len(members) == 0 {
		return "", nil
	}

	ids := make([]string, 0, len(members))
	for _, m := range members {
		ids = append(ids, m.ID)
	}
	load, err := s.ticketRepo.CountOpenByAssignee(ctx, ids)
	if err != nil {
		return "", err
	}

	return SelectAssignee(members, load, excludeIDs...), nil
}

func (s *ticketService) GetTicket(ctx context.Context, id string) (*domain.Ticket, error) {
	ticket, err := s.ticketRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, "ticket with id "+id)
	}
	return ticket, nil
}

func (s *ticketService) ListTickets(ctx context.Context, filter domain.TicketFilter) ([]*domain.Ticket, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, domain.NewBadRequestError("unknown status %q", filter.Status)
	}
	return s.ticketRepo.List(ctx, filter)
}

func (s *ticketService) Board(ctx context.Context, filter domain.TicketFilter) (*domain.TicketBoard, error) {
	tickets, err := s.ListTickets(ctx, filter)
	if err != nil {
		return nil, err
	}

	board := &domain.TicketBoard{Lanes: make([]domain.TicketBoardLane, 0, len(domain.TicketLanes))}
	index := make(map[string]int, len(domain.TicketLanes))
	for i, lane := range domain.TicketLanes {
		index[lane] = i
		board.Lanes = append(board.Lanes, domain.TicketBoardLane{Name: lane, Tickets: []*domain.Ticket{}})
	}
	for _, t := range tickets {
		i := index[t.Lane()]
		board.Lanes[i].Tickets = append(board.Lanes[i].Tickets, t)
	}
	return board, nil
}

// ChangeStatus переводит заявку в новый статус. Закрытая заявка неизменна.
func (s *ticketService) ChangeStatus(ctx context.Context, id string, status domain.TicketStatus) (*domain.Ticket, error) {
	if !status.Valid() {
		return nil, domain.NewBadRequestError("unknown status %q", status)
	}

	ticket, err := s.ticketRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, "ticket with id "+id)
	}

	if ticket.Status == status {
		return ticket, nil
	}
	if ticket.Status == domain.TicketClosed {
		return nil, domain.ErrTicketClosed
	}
	if !domain.CanTransition(ticket.Status, status) {
		return nil, domain.ErrInvalidTransition
	}

	var resolvedAt *time.Time
	switch status {
	case domain.TicketResolved, domain.TicketClosed:
		resolvedAt = ticket.ResolvedAt
		if resolvedAt == nil {
			now := time.Now()
			resolvedAt = &now
		}
	}

	if err := s.ticketRepo.UpdateStatus(ctx, id, status, resolvedAt); err != nil {
		return nil, mapNotFound(err, "ticket with id "+id)
	}

	updated, err := s.ticketRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, "ticket with id "+id)
	}

	s.publish(events.KindUpdated, id)
	return updated, nil
}

func (s *ticketService) AssignTicket(ctx context.Context, id, assigneeID string) (*domain.Ticket, error) {
	ticket, err := s.ticketRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, "ticket with id "+id)
	}
	if ticket.Status == domain.TicketClosed {
		return nil, domain.ErrTicketClosed
	}

	assignee, err := s.staffRepo.GetByID(ctx, assigneeID)
	if err != nil {
		return nil, mapNotFound(err, "staff member with id "+assigneeID)
	}
	if !assignee.IsActive {
		return nil, domain.NewBadRequestError("staff member %s is inactive", assigneeID)
	}

	if err := s.ticketRepo.Assign(ctx, id, &assignee.ID); err != nil {
		return nil, mapNotFound(err, "ticket with id "+id)
	}

	updated, err := s.ticketRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, "ticket with id "+id)
	}

	s.publish(events.KindUpdated, id)
	return updated, nil
}

// ReassignTicket возвращает обновленную заявку и ID нового исполнителя
func (s *ticketService) ReassignTicket(ctx context.Context, id string) (*domain.Ticket, string, error) {
	ticket, err := s.ticketRepo.GetByID(ctx, id)
	if err != nil {
		return nil, "", mapNotFound(err, "ticket with id "+id)
	}

	if ticket.Status == domain.TicketClosed {
		return nil, "", domain.ErrTicketClosed
	}
	if ticket.AssigneeID == nil {
		return nil, "", domain.ErrNotAssigned
	}
	if ticket.DivisionID == nil {
		return nil, "", domain.ErrNoCandidate
	}

	newAssigneeID, err := s.pickAssignee(ctx, *ticket.DivisionID, *ticket.AssigneeID, ticket.ReporterID)
	if err != nil {
		return nil, "", err
	}
	if newAssigneeID == "" {
		return nil, "", domain.ErrNoCandidate
	}

	if err := s.ticketRepo.Assign(ctx, id, &newAssigneeID); err != nil {
		return nil, "", mapNotFound(err, "ticket with id "+id)
	}

	updated, err := s.ticketRepo.GetByID(ctx, id)
	if err != nil {
		return nil, "", mapNotFound(err, "ticket with id "+id)
	}

	s.publish(events.KindUpdated, id)
	return updated, newAssigneeID, nil
}

func (s *ticketService) publish(kind, id string) {
	s.publisher.Publish(events.Event{Kind: kind, Entity: entityTicket, ID: id})
}
