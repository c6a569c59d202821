package service

import (
	"context"

	"github.com/bagdasarian/staff-portal/internal/domain"
)

type CreateTicketInput struct {
	Title       string
	Description string
	Category    string
	Priority    domain.Priority
	ReporterID  string
	DivisionID  string
}

type TicketService interface {
	// CreateTicket создает заявку и назначает наименее загруженного активного сотрудника подразделения
	CreateTicket(ctx context.Context, input CreateTicketInput) (*domain.Ticket, error)
	GetTicket(ctx context.Context, id string) (*domain.Ticket, error)
	ListTickets(ctx context.Context, filter domain.TicketFilter) ([]*domain.Ticket, error)

	// Board группирует заявки по колонкам new/working/done
	Board(ctx context.Context, filter domain.TicketFilter) (*domain.TicketBoard, error)

	// ChangeStatus меняет статус с проверкой перехода; повторный resolve идемпотентен
	ChangeStatus(ctx context.Context, id string, status domain.TicketStatus) (*domain.Ticket, error)
	AssignTicket(ctx context.Context, id, assigneeID string) (*domain.Ticket, error)

	// ReassignTicket заменяет текущего исполнителя другим активным сотрудником подразделения
	ReassignTicket(ctx context.Context, id string) (*domain.Ticket, string, error)
}
