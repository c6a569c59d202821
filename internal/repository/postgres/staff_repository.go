package postgres

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/bagdasarian/staff-portal/internal/domain"
)

type staffRepository struct {
	executor DBExecutor
}

func NewStaffRepository(db *sql.DB) *staffRepository {
	return &staffRepository{executor: db}
}

func NewStaffRepositoryWithTx(tx *sql.Tx) *staffRepository {
	return &staffRepository{executor: tx}
}

const staffSelect = `
	SELECT s.id, s.full_name, s.email, s.phone, s.position, s.is_active, s.created_at, s.updated_at,
		COALESCE(string_agg(d.name, '|' ORDER BY d.name), '')
	FROM staff_members s
	LEFT JOIN division_memberships m ON m.staff_id = s.id
	LEFT JOIN divisions d ON d.id = m.division_id
`

const staffGroupBy = ` GROUP BY s.id`

func (r *staffRepository) Create(ctx context.Context, member *domain.StaffMember) error {
	query := `
		INSERT INTO staff_members (id, full_name, email, phone, position, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`

	err := r.executor.QueryRowContext(
		ctx,
		query,
		member.ID,
		member.FullName,
		member.Email,
		member.Phone,
		member.Position,
		member.IsActive,
		member.CreatedAt,
	).Scan(&member.CreatedAt)

	return mapError(err)
}

func (r *staffRepository) Update(ctx context.Context, member *domain.StaffMember) error {
	query := `
		UPDATE staff_members
		SET full_name = $2, email = $3, phone = $4, position = $5, is_active = $6, updated_at = $7
		WHERE id = $1
		RETURNING created_at, updated_at
	`

	var updatedAt sql.NullTime
	err := r.executor.QueryRowContext(
		ctx,
		query,
		member.ID,
		member.FullName,
		member.Email,
		member.Phone,
		member.Position,
		member.IsActive,
		time.Now(),
	).Scan(&member.CreatedAt, &updatedAt)
	if err != nil {
		return mapError(err)
	}

	member.UpdatedAt = nullTimePtr(updatedAt)
	return nil
}

func (r *staffRepository) GetByID(ctx context.Context, id string) (*domain.StaffMember, error) {
	query := staffSelect + ` WHERE s.id = $1` + staffGroupBy

	member, err := scanStaff(r.executor.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, mapError(err)
	}
	return member, nil
}

func (r *staffRepository) GetByEmail(ctx context.Context, email string) (*domain.StaffMember, error) {
	query := staffSelect + ` WHERE lower(s.email) = lower($1)` + staffGroupBy

	member, err := scanStaff(r.executor.QueryRowContext(ctx, query, email))
	if err != nil {
		return nil, mapError(err)
	}
	return member, nil
}

func (r *staffRepository) List(ctx context.Context, filter domain.StaffFilter) ([]*domain.StaffMember, error) {
	var (
		conds []string
		args  []any
	)
	if search := strings.TrimSpace(filter.Search); search != "" {
		args = append(args, "%"+search+"%")
		conds = append(conds, `(s.full_name ILIKE $1 OR s.email ILIKE $1 OR s.position ILIKE $1)`)
	}
	if filter.ActiveOnly {
		conds = append(conds, `s.is_active = TRUE`)
	}

	query := staffSelect
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	query += staffGroupBy + ` ORDER BY s.full_name`

	return r.queryStaff(ctx, query, args...)
}

func (r *staffRepository) SetIsActive(ctx context.Context, id string, isActive bool) error {
	query := `
		UPDATE staff_members
		SET is_active = $2, updated_at = $3
		WHERE id = $1
	`

	result, err := r.executor.ExecContext(ctx, query, id, isActive, time.Now())
	if err != nil {
		return err
	}
	return expectOneRow(result)
}

func (r *staffRepository) GetActiveByDivisionID(ctx context.Context, divisionID string) ([]*domain.StaffMember, error) {
	query := staffSelect + `
		WHERE s.is_active = TRUE
		AND s.id IN (SELECT staff_id FROM division_memberships WHERE division_id = $1)
	` + staffGroupBy + ` ORDER BY s.created_at`

	return r.queryStaff(ctx, query, divisionID)
}

func (r *staffRepository) queryStaff(ctx context.Context, query string, args ...any) ([]*domain.StaffMember, error) {
	rows, err := r.executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	members := make([]*domain.StaffMember, 0)
	for rows.Next() {
		member, err := scanStaff(rows)
		if err != nil {
			return nil, err
		}
		members = append(members, member)
	}

	return members, rows.Err()
}

func scanStaff(row rowScanner) (*domain.StaffMember, error) {
	member := &domain.StaffMember{}
	var updatedAt sql.NullTime
	var divisions string

	err := row.Scan(
		&member.ID,
		&member.FullName,
		&member.Email,
		&member.Phone,
		&member.Position,
		&member.IsActive,
		&member.CreatedAt,
		&updatedAt,
		&divisions,
	)
	if err != nil {
		return nil, err
	}

	member.UpdatedAt = nullTimePtr(updatedAt)
	member.Divisions = splitAgg(divisions)
	return member, nil
}
