package postgres

import (
	"context"
	"database/sql"

	"github.com/bagdasarian/staff-portal/internal/domain"
)

type statsRepository struct {
	executor DBExecutor
}

func NewStatsRepository(db *sql.DB) *statsRepository {
	return &statsRepository{executor: db}
}

func (r *statsRepository) GetAssigneeLoad(ctx context.Context) ([]*domain.AssigneeLoad, error) {
	query := `
		SELECT s.id, s.full_name, COUNT(t.id) as open_tickets
		FROM staff_members s
		LEFT JOIN tickets t ON t.assignee_id = s.id AND t.status IN ('open', 'in_progress')
		WHERE s.is_active = TRUE
		GROUP BY s.id, s.full_name
		ORDER BY open_tickets DESC, s.full_name
	`

	rows, err := r.executor.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []*domain.AssigneeLoad
	for rows.Next() {
		stat := &domain.AssigneeLoad{}
		err := rows.Scan(&stat.StaffID, &stat.FullName, &stat.OpenTickets)
		if err != nil {
			return nil, err
		}
		stats = append(stats, stat)
	}

	return stats, rows.Err()
}

func (r *statsRepository) GetTicketStatsByStatus(ctx context.Context) ([]*domain.TicketStatusStat, error) {
	query := `
		SELECT s.status, COUNT(t.id) as count
		FROM (VALUES ('open'), ('in_progress'), ('resolved'), ('closed')) AS s(status)
		LEFT JOIN tickets t ON t.status = s.status
		GROUP BY s.status
		ORDER BY s.status
	`

	rows, err := r.executor.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []*domain.TicketStatusStat
	for rows.Next() {
		stat := &domain.TicketStatusStat{}
		err := rows.Scan(&stat.Status, &stat.Count)
		if err != nil {
			return nil, err
		}
		stats = append(stats, stat)
	}

	return stats, rows.Err()
}
