package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/bagdasarian/staff-portal/internal/domain"
)

type divisionRepository struct {
	db *sql.DB
}

func NewDivisionRepository(db *sql.DB) *divisionRepository {
	return &divisionRepository{db: db}
}

// Create создает подразделение и членства сотрудников в одной транзакции.
func (r *divisionRepository) Create(ctx context.Context, division *domain.Division) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO divisions (id, name, created_at)
		VALUES ($1, $2, $3)
		RETURNING created_at
	`

	now := time.Now()
	err = tx.QueryRowContext(ctx, query, division.ID, division.Name, now).Scan(&division.CreatedAt)
	if err != nil {
		return mapError(err)
	}

	membershipQuery := `
		INSERT INTO division_memberships (division_id, staff_id, role, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (division_id, staff_id) DO UPDATE
		SET role = EXCLUDED.role
	`
	for _, member := range division.Members {
		role := member.Role
		if role == "" {
			role = "member"
		}
		if _, err := tx.ExecContext(ctx, membershipQuery, division.ID, member.StaffID, role, now); err != nil {
			return mapError(err)
		}
	}

	return tx.Commit()
}

func (r *divisionRepository) GetByName(ctx context.Context, name string) (*domain.Division, error) {
	return r.get(ctx, `WHERE name = $1`, name)
}

func (r *divisionRepository) GetByID(ctx context.Context, id string) (*domain.Division, error) {
	return r.get(ctx, `WHERE id = $1`, id)
}

func (r *divisionRepository) get(ctx context.Context, where string, arg string) (*domain.Division, error) {
	query := `
		SELECT id, name, created_at, updated_at
		FROM divisions
	` + where

	division := &domain.Division{}
	var updatedAt sql.NullTime
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&division.ID,
		&division.Name,
		&division.CreatedAt,
		&updatedAt,
	)
	if err != nil {
		return nil, mapError(err)
	}
	division.UpdatedAt = nullTimePtr(updatedAt)

	members, err := r.members(ctx, division.ID)
	if err != nil {
		return nil, err
	}
	division.Members = members

	return division, nil
}

func (r *divisionRepository) members(ctx context.Context, divisionID string) ([]domain.DivisionMember, error) {
	query := `
		SELECT s.id, s.full_name, s.email, m.role, s.is_active
		FROM division_memberships m
		JOIN staff_members s ON s.id = m.staff_id
		WHERE m.division_id = $1
		ORDER BY s.full_name
	`

	rows, err := r.db.QueryContext(ctx, query, divisionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	members := make([]domain.DivisionMember, 0)
	for rows.Next() {
		var m domain.DivisionMember
		if err := rows.Scan(&m.StaffID, &m.FullName, &m.Email, &m.Role, &m.IsActive); err != nil {
			return nil, err
		}
		members = append(members, m)
	}

	return members, rows.Err()
}
