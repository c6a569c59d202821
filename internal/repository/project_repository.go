package repository

import (
	"context"

	"github.com/bagdasarian/staff-portal/internal/domain"
)

type ProjectRepository interface {
	Create(ctx context.Context, project *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
}

type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) error
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.Task, error)
	CountInLane(ctx context.Context, projectID string, lane domain.Lane) (int, error)
	Move(ctx context.Context, id string, lane domain.Lane, position int) error
	Update(ctx context.Context, task *domain.Task) error
	Delete(ctx context.Context, id string) error
}
