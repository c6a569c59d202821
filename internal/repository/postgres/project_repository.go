package postgres

import (
	"context"
	"database/sql"

	"github.com/bagdasarian/staff-portal/internal/domain"
)

type projectRepository struct {
	executor DBExecutor
}

func NewProjectRepository(db *sql.DB) *projectRepository {
	return &projectRepository{executor: db}
}

func (r *projectRepository) Create(ctx context.Context, project *domain.Project) error {
	query := `
		INSERT INTO projects (id, name, description, owner_id, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`

	err := r.executor.QueryRowContext(
		ctx,
		query,
		project.ID,
		project.Name,
		project.Description,
		project.OwnerID,
		project.Status,
		project.CreatedAt,
	).Scan(&project.CreatedAt)

	return mapError(err)
}

func (r *projectRepository) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	query := `
		SELECT id, name, description, owner_id, status, created_at, updated_at
		FROM projects
		WHERE id = $1
	`

	project, err := scanProject(r.executor.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, mapError(err)
	}
	return project, nil
}

func (r *projectRepository) List(ctx context.Context) ([]*domain.Project, error) {
	query := `
		SELECT id, name, description, owner_id, status, created_at, updated_at
		FROM projects
		ORDER BY created_at DESC
	`

	rows, err := r.executor.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	projects := make([]*domain.Project, 0)
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, project)
	}

	return projects, rows.Err()
}

func scanProject(row rowScanner) (*domain.Project, error) {
	project := &domain.Project{}
	var updatedAt sql.NullTime
	err := row.Scan(
		&project.ID,
		&project.Name,
		&project.Description,
		&project.OwnerID,
		&project.Status,
		&project.CreatedAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}
	project.UpdatedAt = nullTimePtr(updatedAt)
	return project, nil
}
