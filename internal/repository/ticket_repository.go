package repository

import (
	"context"
	"time"

	"github.com/bagdasarian/staff-portal/internal/domain"
)

type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) error
	GetByID(ctx context.Context, id string) (*domain.Ticket, error)
	List(ctx context.Context, filter domain.TicketFilter) ([]*domain.Ticket, error)
	UpdateStatus(ctx context.Context, id string, status domain.TicketStatus, resolvedAt *time.Time) error
	Assign(ctx context.Context, id string, assigneeID *string) error
	CountOpenByAssignee(ctx context.Context, staffIDs []string) (map[string]int, error)
}
