package service

import (
	"context"

	"github.com/bagdasarian/staff-portal/internal/domain"
	"github.com/bagdasarian/staff-portal/internal/repository"
)

type StatsService interface {
	GetAssigneeLoad(ctx context.Context) ([]*domain.AssigneeLoad, error)
	GetTicketStatsByStatus(ctx context.Context) ([]*domain.TicketStatusStat, error)
}

type statsService struct {
	statsRepo repository.StatsRepository
}

func NewStatsService(statsRepo repository.StatsRepository) StatsService {
	return &statsService{statsRepo: statsRepo}
}

func (s *statsService) GetAssigneeLoad(ctx context.Context) ([]*domain.AssigneeLoad, error) {
	return s.statsRepo.GetAssigneeLoad(ctx)
}

func (s *statsService) GetTicketStatsByStatus(ctx context.Context) ([]*domain.TicketStatusStat, error) {
	return s.statsRepo.GetTicketStatsByStatus(ctx)
}
