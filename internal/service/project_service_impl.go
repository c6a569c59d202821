package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/bagdasarian/staff-portal/internal/domain"
	"github.com/bagdasarian/staff-portal/internal/events"
	"github.com/bagdasarian/staff-portal/internal/repository"
	"github.com/google/uuid"
)

const (
	entityProject = "project"
	entityTask    = "task"

	projectStatusActive = "active"
)

type projectService struct {
	projectRepo repository.ProjectRepository
	taskRepo    repository.TaskRepository
	staffRepo   repository.StaffRepository
	publisher   events.Publisher
}

func NewProjectService(
	projectRepo repository.ProjectRepository,
	taskRepo repository.TaskRepository,
	staffRepo repository.StaffRepository,
	publisher events.Publisher,
) ProjectService {
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &projectService{
		projectRepo: projectRepo,
		taskRepo:    taskRepo,
		staffRepo:   staffRepo,
		publisher:   publisher,
	}
}

func (s *projectService) CreateProject(ctx context.Context, project *domain.Project) (*domain.Project, error) {
	project.Name = strings.TrimSpace(project.Name)
	if project.Name == "" {
		return nil, domain.NewBadRequestError("project name is required")
	}
	if project.OwnerID != "" {
		if _, err := s.staffRepo.GetByID(ctx, project.OwnerID); err != nil {
			return nil, mapNotFound(err, "staff member with id "+project.OwnerID)
		}
	}
	if project.Status == "" {
		project.Status = projectStatusActive
	}

	project.ID = uuid.NewString()
	project.CreatedAt = time.Now()

	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, err
	}

	s.publisher.Publish(events.Event{Kind: events.KindCreated, Entity: entityProject, ID: project.ID})
	return project, nil
}

func (s *projectService) GetProject(ctx context.Context, id string) (*domain.Project, error) {
	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, "project with id "+id)
	}
	return project, nil
}

func (s *projectService) ListProjects(ctx context.Context) ([]*domain.Project, error) {
	return s.projectRepo.List(ctx)
}

func (s *projectService) checkAssignees(ctx context.Context, ids []string) error {
	for _, id := range ids {
		if _, err := s.staffRepo.GetByID(ctx, id); err != nil {
			return mapNotFound(err, "staff member with id "+id)
		}
	}
	return nil
}

func (s *projectService) CreateTask(ctx context.Context, input CreateTaskInput) (*domain.Task, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, domain.NewBadRequestError("task title is required")
	}
	if input.Lane == "" {
		input.Lane = domain.LaneTodo
	}
	if !input.Lane.Valid() {
		return nil, domain.ErrInvalidLane
	}

	if _, err := s.projectRepo.GetByID(ctx, input.ProjectID); err != nil {
		return nil, mapNotFound(err, "project with id "+input.ProjectID)
	}
	if err := s.checkAssignees(ctx, input.AssigneeIDs); err != nil {
		return nil, err
	}

	position, err := s.taskRepo.CountInLane(ctx, input.ProjectID, input.Lane)
	if err != nil {
		return nil, err
	}

	task := &domain.Task{
		ID:          uuid.NewString(),
		ProjectID:   input.ProjectID,
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		Lane:        input.Lane,
		Position:    position,
		AssigneeIDs: input.AssigneeIDs,
		DueAt:       input.DueAt,
		CreatedAt:   time.Now(),
	}
	if task.AssigneeIDs == nil {
		task.AssigneeIDs = []string{}
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, err
	}

	s.publisher.Publish(events.Event{Kind: events.KindCreated, Entity: entityTask, ID: task.ID})
	return task, nil
}

func (s *projectService) MoveTask(ctx context.Context, id string, lane domain.Lane, position int) (*domain.Task, error) {
	if !lane.Valid() {
		return nil, domain.ErrInvalidLane
	}

	task, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, "task with id "+id)
	}

	count, err := s.taskRepo.CountInLane(ctx, task.ProjectID, lane)
	if err != nil {
		return nil, err
	}
	maxPosition := count
	if task.Lane == lane {
		maxPosition = count - 1
	}
	position = max(0, min(position, maxPosition))

	if task.Lane == lane && task.Position == position {
		return task, nil
	}

	if err := s.taskRepo.Move(ctx, id, lane, position); err != nil {
		return nil, mapNotFound(err, "task with id "+id)
	}

	moved, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err, "task with id "+id)
	}

	s.publisher.Publish(events.Event{Kind: events.KindUpdated, Entity: entityTask, ID: id})
	return moved, nil
}

func (s *projectService) UpdateTask(ctx context.Context, input UpdateTaskInput) (*domain.Task, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, domain.NewBadRequestError("task title is required")
	}

	task, err := s.taskRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, mapNotFound(err, "task with id "+input.ID)
	}
	if err := s.checkAssignees(ctx, input.AssigneeIDs); err != nil {
		return nil, err
	}

	task.Title = strings.TrimSpace(input.Title)
	task.Description = input.Description
	task.AssigneeIDs = input.AssigneeIDs
	task.DueAt = input.DueAt

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, mapNotFound(err, "task with id "+input.ID)
	}

	updated, err := s.taskRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, mapNotFound(err, "task with id "+input.ID)
	}

	s.publisher.Publish(events.Event{Kind: events.KindUpdated, Entity: entityTask, ID: input.ID})
	return updated, nil
}

func (s *projectService) DeleteTask(ctx context.Context, id string) error {
	if err := s.taskRepo.Delete(ctx, id); err != nil {
		return mapNotFound(err, "task with id "+id)
	}
	s.publisher.Publish(events.Event{Kind: events.KindDeleted, Entity: entityTask, ID: id})
	return nil
}

func (s *projectService) ProjectBoard(ctx context.Context, projectID string) (*domain.Board, error) {
	if _, err := s.projectRepo.GetByID(ctx, projectID); err != nil {
		return nil, mapNotFound(err, "project with id "+projectID)
	}

	tasks, err := s.taskRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	board := &domain.Board{Lanes: make([]domain.BoardLane, 0, len(domain.TaskLanes))}
	index := make(map[domain.Lane]int, len(domain.TaskLanes))
	for i, lane := range domain.TaskLanes {
		index[lane] = i
		board.Lanes = append(board.Lanes, domain.BoardLane{Name: string(lane), Tasks: []*domain.Task{}})
	}
	for _, task := range tasks {
		i, ok := index[task.Lane]
		if !ok {
			continue
		}
		board.Lanes[i].Tasks = append(board.Lanes[i].Tasks, task)
	}
	for i := range board.Lanes {
		lane := board.Lanes[i].Tasks
		sort.SliceStable(lane, func(a, b int) bool { return lane[a].Position < lane[b].Position })
	}
	return board, nil
}
