package service

import (
	"context"
	"time"

	"github.com/bagdasarian/staff-portal/internal/domain"
)

type CreateTaskInput struct {
	ProjectID   string
	Title       string
	Description string
	Lane        domain.Lane
	AssigneeIDs []string
	DueAt       *time.Time
}

type UpdateTaskInput struct {
	ID          string
	Title       string
	Description string
	AssigneeIDs []string
	DueAt       *time.Time
}

type ProjectService interface {
	CreateProject(ctx context.Context, project *domain.Project) (*domain.Project, error)
	GetProject(ctx context.Context, id string) (*domain.Project, error)
	ListProjects(ctx context.Context) ([]*domain.Project, error)

	// CreateTask добавляет задачу в конец колонки
	CreateTask(ctx context.Context, input CreateTaskInput) (*domain.Task, error)

	// MoveTask переносит задачу; позиция ограничивается границами колонки
	MoveTask(ctx context.Context, id string, lane domain.Lane, position int) (*domain.Task, error)
	UpdateTask(ctx context.Context, input UpdateTaskInput) (*domain.Task, error)
	DeleteTask(ctx context.Context, id string) error

	// ProjectBoard возвращает задачи проекта по колонкам в порядке позиций
	ProjectBoard(ctx context.Context, projectID string) (*domain.Board, error)
}
