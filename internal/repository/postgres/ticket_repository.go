package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/bagdasarian/staff-portal/internal/domain"
)

type ticketRepository struct {
	executor DBExecutor
}

func NewTicketRepository(db *sql.DB) *ticketRepository {
	return &ticketRepository{executor: db}
}

const ticketColumns = `id, title, description, category, priority, status, reporter_id, assignee_id, division_id, created_at, updated_at, resolved_at`

func (r *ticketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	query := `
		INSERT INTO tickets (id, title, description, category, priority, status, reporter_id, assignee_id, division_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at
	`

	err := r.executor.QueryRowContext(
		ctx,
		query,
		ticket.ID,
		ticket.Title,
		ticket.Description,
		ticket.Category,
		string(ticket.Priority),
		string(ticket.Status),
		ticket.ReporterID,
		ticket.AssigneeID,
		ticket.DivisionID,
		ticket.CreatedAt,
	).Scan(&ticket.CreatedAt)

	return mapError(err)
}

func (r *ticketRepository) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE id = $1`

	ticket, err := scanTicket(r.executor.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, mapError(err)
	}
	return ticket, nil
}

func (r *ticketRepository) List(ctx context.Context, filter domain.TicketFilter) ([]*domain.Ticket, error) {
	var (
		conds []string
		args  []any
	)
	add := func(column, value string) {
		if value == "" {
			return
		}
		args = append(args, value)
		conds = append(conds, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	add("status", string(filter.Status))
	add("assignee_id", filter.AssigneeID)
	add("reporter_id", filter.ReporterID)
	add("division_id", filter.DivisionID)

	query := `SELECT ` + ticketColumns + ` FROM tickets`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tickets := make([]*domain.Ticket, 0)
	for rows.Next() {
		ticket, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, ticket)
	}

	return tickets, rows.Err()
}

func (r *ticketRepository) UpdateStatus(ctx context.Context, id string, status domain.TicketStatus, resolvedAt *time.Time) error {
	query := `
		UPDATE tickets
		SET status = $2, resolved_at = $3, updated_at = $4
		WHERE id = $1
	`

	result, err := r.executor.ExecContext(ctx, query, id, string(status), resolvedAt, time.Now())
	if err != nil {
		return err
	}
	return expectOneRow(result)
}

func (r *ticketRepository) Assign(ctx context.Context, id string, assigneeID *string) error {
	query := `
		UPDATE tickets
		SET assignee_id = $2, updated_at = $3
		WHERE id = $1
	`

	result, err := r.executor.ExecContext(ctx, query, id, assigneeID, time.Now())
	if err != nil {
		return mapError(err)
	}
	return expectOneRow(result)
}

// CountOpenByAssignee считает открытые заявки по каждому сотруднику; отсутствующие получают 0.
func (r *ticketRepository) CountOpenByAssignee(ctx context.Context, staffIDs []string) (map[string]int, error) {
	counts := make(map[string]int, len(staffIDs))
	if len(staffIDs) == 0 {
		return counts, nil
	}

	args := make([]any, 0, len(staffIDs))
	for _, id := range staffIDs {
		counts[id] = 0
		args = append(args, id)
	}

	query := `
		SELECT assignee_id, COUNT(*)
		FROM tickets
		WHERE status IN ('open', 'in_progress') AND assignee_id IN (` + placeholders(1, len(args)) + `)
		GROUP BY assignee_id
	`

	rows, err := r.executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		var count int
		if err := rows.Scan(&id, &count); err != nil {
			return nil, err
		}
		counts[id] = count
	}

	return counts, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTicket(row rowScanner) (*domain.Ticket, error) {
	ticket := &domain.Ticket{}
	var priority, status string
	var assigneeID, divisionID sql.NullString
	var updatedAt, resolvedAt sql.NullTime

	err := row.Scan(
		&ticket.ID,
		&ticket.Title,
		&ticket.Description,
		&ticket.Category,
		&priority,
		&status,
		&ticket.ReporterID,
		&assigneeID,
		&divisionID,
		&ticket.CreatedAt,
		&updatedAt,
		&resolvedAt,
	)
	if err != nil {
		return nil, err
	}

	ticket.Priority = domain.Priority(priority)
	ticket.Status = domain.TicketStatus(status)
	ticket.AssigneeID = nullStringPtr(assigneeID)
	ticket.DivisionID = nullStringPtr(divisionID)
	ticket.UpdatedAt = nullTimePtr(updatedAt)
	ticket.ResolvedAt = nullTimePtr(resolvedAt)

	return ticket, nil
}
