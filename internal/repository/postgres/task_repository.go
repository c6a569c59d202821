package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/bagdasarian/staff-portal/internal/domain"
)

type taskRepository struct {
	db *sql.DB
}

func NewTaskRepository(db *sql.DB) *taskRepository {
	return &taskRepository{db: db}
}

const taskSelect = `
	SELECT t.id, t.project_id, t.title, t.description, t.lane, t.position, t.due_at, t.created_at, t.updated_at,
		COALESCE(string_agg(a.staff_id, '|' ORDER BY a.staff_id), '')
	FROM tasks t
	LEFT JOIN task_assignees a ON a.task_id = t.id
`

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO tasks (id, project_id, title, description, lane, position, due_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at
	`
	err = tx.QueryRowContext(
		ctx,
		query,
		task.ID,
		task.ProjectID,
		task.Title,
		task.Description,
		string(task.Lane),
		task.Position,
		task.DueAt,
		task.CreatedAt,
	).Scan(&task.CreatedAt)
	if err != nil {
		return mapError(err)
	}

	if err := insertAssignees(ctx, tx, task.ID, task.AssigneeIDs); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *taskRepository) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	query := taskSelect + ` WHERE t.id = $1 GROUP BY t.id`

	task, err := scanTask(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, mapError(err)
	}
	return task, nil
}

func (r *taskRepository) ListByProject(ctx context.Context, projectID string) ([]*domain.Task, error) {
	query := taskSelect + ` WHERE t.project_id = $1 GROUP BY t.id ORDER BY t.lane, t.position`

	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := make([]*domain.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}

	return tasks, rows.Err()
}

func (r *taskRepository) CountInLane(ctx context.Context, projectID string, lane domain.Lane) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM tasks WHERE project_id = $1 AND lane = $2`,
		projectID, string(lane),
	).Scan(&count)
	return count, err
}

// Move переносит задачу в колонку lane на позицию position, сдвигая соседей в обеих колонках.
func (r *taskRepository) Move(ctx context.Context, id string, lane domain.Lane, position int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var projectID, oldLane string
	var oldPosition int
	err = tx.QueryRowContext(ctx,
		`SELECT project_id, lane, position FROM tasks WHERE id = $1 FOR UPDATE`,
		id,
	).Scan(&projectID, &oldLane, &oldPosition)
	if err != nil {
		return mapError(err)
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE tasks SET position = position - 1
		WHERE project_id = $1 AND lane = $2 AND position > $3 AND id <> $4
	`, projectID, oldLane, oldPosition, id)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE tasks SET position = position + 1
		WHERE project_id = $1 AND lane = $2 AND position >= $3 AND id <> $4
	`, projectID, string(lane), position, id)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE tasks SET lane = $2, position = $3, updated_at = $4
		WHERE id = $1
	`, id, string(lane), position, time.Now())
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *taskRepository) Update(ctx context.Context, task *domain.Task) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var updatedAt sql.NullTime
	err = tx.QueryRowContext(ctx, `
		UPDATE tasks SET title = $2, description = $3, due_at = $4, updated_at = $5
		WHERE id = $1
		RETURNING updated_at
	`, task.ID, task.Title, task.Description, task.DueAt, time.Now()).Scan(&updatedAt)
	if err != nil {
		return mapError(err)
	}
	task.UpdatedAt = nullTimePtr(updatedAt)

	if _, err := tx.ExecContext(ctx, `DELETE FROM task_assignees WHERE task_id = $1`, task.ID); err != nil {
		return err
	}
	if err := insertAssignees(ctx, tx, task.ID, task.AssigneeIDs); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *taskRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var projectID, lane string
	var position int
	err = tx.QueryRowContext(ctx,
		`DELETE FROM tasks WHERE id = $1 RETURNING project_id, lane, position`,
		id,
	).Scan(&projectID, &lane, &position)
	if err != nil {
		return mapError(err)
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE tasks SET position = position - 1
		WHERE project_id = $1 AND lane = $2 AND position > $3
	`, projectID, lane, position)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func insertAssignees(ctx context.Context, tx *sql.Tx, taskID string, staffIDs []string) error {
	for _, staffID := range staffIDs {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO task_assignees (task_id, staff_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			taskID, staffID,
		)
		if err != nil {
			return mapError(err)
		}
	}
	return nil
}

func scanTask(row rowScanner) (*domain.Task, error) {
	task := &domain.Task{}
	var lane, assignees string
	var dueAt, updatedAt sql.NullTime

	err := row.Scan(
		&task.ID,
		&task.ProjectID,
		&task.Title,
		&task.Description,
		&lane,
		&task.Position,
		&dueAt,
		&task.CreatedAt,
		&updatedAt,
		&assignees,
	)
	if err != nil {
		return nil, err
	}

	task.Lane = domain.Lane(lane)
	task.DueAt = nullTimePtr(dueAt)
	task.UpdatedAt = nullTimePtr(updatedAt)
	task.AssigneeIDs = splitAgg(assignees)
	return task, nil
}
