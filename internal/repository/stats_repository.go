package repository

import (
	"context"

	"github.com/bagdasarian/staff-portal/internal/domain"
)

type StatsRepository interface {
	GetAssigneeLoad(ctx context.Context) ([]*domain.AssigneeLoad, error)
	GetTicketStatsByStatus(ctx context.Context) ([]*domain.TicketStatusStat, error)
}
