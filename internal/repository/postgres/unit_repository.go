package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/bagdasarian/staff-portal/internal/domain"
)

type unitRepository struct {
	executor DBExecutor
}

func NewUnitRepository(db *sql.DB) *unitRepository {
	return &unitRepository{executor: db}
}

const unitColumns = `id, name, folder_id, storage_mode, created_at, updated_at`

func (r *unitRepository) Create(ctx context.Context, unit *domain.Unit) error {
	query := `
		INSERT INTO units (id, name, folder_id, storage_mode, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`
	err := r.executor.QueryRowContext(ctx, query,
		unit.ID, unit.Name, unit.FolderID, string(unit.StorageMode), unit.CreatedAt,
	).Scan(&unit.CreatedAt)
	return mapError(err)
}

func (r *unitRepository) GetByID(ctx context.Context, id string) (*domain.Unit, error) {
	unit, err := scanUnit(r.executor.QueryRowContext(ctx, `SELECT `+unitColumns+` FROM units WHERE id = $1`, id))
	if err != nil {
		return nil, mapError(err)
	}
	return unit, nil
}

func (r *unitRepository) GetByName(ctx context.Context, name string) (*domain.Unit, error) {
	unit, err := scanUnit(r.executor.QueryRowContext(ctx, `SELECT `+unitColumns+` FROM units WHERE lower(name) = lower($1)`, name))
	if err != nil {
		return nil, mapError(err)
	}
	return unit, nil
}

func (r *unitRepository) List(ctx context.Context) ([]*domain.Unit, error) {
	rows, err := r.executor.QueryContext(ctx, `SELECT `+unitColumns+` FROM units ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	units := make([]*domain.Unit, 0)
	for rows.Next() {
		unit, err := scanUnit(rows)
		if err != nil {
			return nil, err
		}
		units = append(units, unit)
	}
	return units, rows.Err()
}

func (r *unitRepository) UpdateStorage(ctx context.Context, id, folderID string, mode domain.StorageMode) error {
	query := `
		UPDATE units
		SET folder_id = $2, storage_mode = $3, updated_at = $4
		WHERE id = $1
	`
	result, err := r.executor.ExecContext(ctx, query, id, folderID, string(mode), time.Now())
	if err != nil {
		return err
	}
	return expectOneRow(result)
}

func (r *unitRepository) Delete(ctx context.Context, id string) error {
	result, err := r.executor.ExecContext(ctx, `DELETE FROM units WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return expectOneRow(result)
}

func scanUnit(row rowScanner) (*domain.Unit, error) {
	unit := &domain.Unit{}
	var mode string
	var updatedAt sql.NullTime
	err := row.Scan(&unit.ID, &unit.Name, &unit.FolderID, &mode, &unit.CreatedAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	unit.StorageMode = domain.StorageMode(mode)
	unit.UpdatedAt = nullTimePtr(updatedAt)
	return unit, nil
}
