package service

import (
	"context"
	"errors"
	"testing"

	"github.com/bagdasarian/staff-portal/internal/domain"
	"github.com/bagdasarian/staff-portal/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type projectMocks struct {
	projects *MockProjectRepository
	tasks    *MockTaskRepository
	staff    *MockStaffRepository
}

func newProjectService() (ProjectService, projectMocks) {
	m := projectMocks{
		projects: new(MockProjectRepository),
		tasks:    new(MockTaskRepository),
		staff:    new(MockStaffRepository),
	}
	return NewProjectService(m.projects, m.tasks, m.staff, nil), m
}

func (m projectMocks) assert(t *testing.T) {
	m.projects.AssertExpectations(t)
	m.tasks.AssertExpectations(t)
	m.staff.AssertExpectations(t)
}

func TestProjectService_CreateProject(t *testing.T) {
	t.Run("успешное создание", func(t *testing.T) {
		service, m := newProjectService()

		m.staff.On("GetByID", mock.Anything, "u1").Return(&domain.StaffMember{ID: "u1"}, nil).Once()
		m.projects.On("Create", mock.Anything, mock.AnythingOfType("*domain.Project")).Return(nil).Once()

		project, err := service.CreateProject(context.Background(), &domain.Project{Name: "Portal", OwnerID: "u1"})

		require.NoError(t, err)
		assert.NotEmpty(t, project.ID)
		assert.Equal(t, "active", project.Status)
		m.assert(t)
	})

	t.Run("ошибка: пустое имя", func(t *testing.T) {
		service, _ := newProjectService()

		_, err := service.CreateProject(context.Background(), &domain.Project{Name: "  "})

		assert.True(t, errors.Is(err, domain.ErrBadRequest))
	})
}

func TestProjectService_CreateTask(t *testing.T) {
	t.Run("задача добавляется в конец колонки", func(t *testing.T) {
		service, m := newProjectService()

		m.projects.On("GetByID", mock.Anything, "p1").Return(&domain.Project{ID: "p1"}, nil).Once()
		m.staff.On("GetByID", mock.Anything, "u1").Return(&domain.StaffMember{ID: "u1"}, nil).Once()
		m.tasks.On("CountInLane", mock.Anything, "p1", domain.LaneTodo).Return(3, nil).Once()
		m.tasks.On("Create", mock.Anything, mock.AnythingOfType("*domain.Task")).Return(nil).Once()

		task, err := service.CreateTask(context.Background(), CreateTaskInput{
			ProjectID:   "p1",
			Title:       "Write docs",
			AssigneeIDs: []string{"u1"},
		})

		require.NoError(t, err)
		assert.Equal(t, domain.LaneTodo, task.Lane)
		assert.Equal(t, 3, task.Position)
		m.assert(t)
	})

	t.Run("ошибка: неизвестная колонка", func(t *testing.T) {
		service, _ := newProjectService()

		_, err := service.CreateTask(context.Background(), CreateTaskInput{ProjectID: "p1", Title: "x", Lane: "backlog"})

		assert.True(t, errors.Is(err, domain.ErrInvalidLane))
	})

	t.Run("ошибка: проект не найден", func(t *testing.T) {
		service, m := newProjectService()

		m.projects.On("GetByID", mock.Anything, "p9").Return(nil, repository.ErrNotFound).Once()

		_, err := service.CreateTask(context.Background(), CreateTaskInput{ProjectID: "p9", Title: "x"})

		assert.True(t, errors.Is(err, domain.ErrNotFound))
		m.assert(t)
	})
}

func TestProjectService_MoveTask(t *testing.T) {
	t.Run("позиция ограничивается концом другой колонки", func(t *testing.T) {
		service, m := newProjectService()

		task := &domain.Task{ID: "t1", ProjectID: "p1", Lane: domain.LaneTodo, Position: 0}
		m.tasks.On("GetByID", mock.Anything, "t1").Return(task, nil).Once()
		m.tasks.On("CountInLane", mock.Anything, "p1", domain.LaneDone).Return(2, nil).Once()
		m.tasks.On("Move", mock.Anything, "t1", domain.LaneDone, 2).Return(nil).Once()
		m.tasks.On("GetByID", mock.Anything, "t1").Return(&domain.Task{ID: "t1", Lane: domain.LaneDone, Position: 2}, nil).Once()

		moved, err := service.MoveTask(context.Background(), "t1", domain.LaneDone, 99)

		require.NoError(t, err)
		assert.Equal(t, domain.LaneDone, moved.Lane)
		assert.Equal(t, 2, moved.Position)
		m.assert(t)
	})

	t.Run("внутри колонки максимум count-1", func(t *testing.T) {
		service, m := newProjectService()

		task := &domain.Task{ID: "t1", ProjectID: "p1", Lane: domain.LaneTodo, Position: 0}
		m.tasks.On("GetByID", mock.Anything, "t1").Return(task, nil).Once()
		m.tasks.On("CountInLane", mock.Anything, "p1", domain.LaneTodo).Return(3, nil).Once()
		m.tasks.On("Move", mock.Anything, "t1", domain.LaneTodo, 2).Return(nil).Once()
		m.tasks.On("GetByID", mock.Anything, "t1").Return(&domain.Task{ID: "t1", Lane: domain.LaneTodo, Position: 2}, nil).Once()

		_, err := service.MoveTask(context.Background(), "t1", domain.LaneTodo, 10)

		require.NoError(t, err)
		m.assert(t)
	})

	t.Run("отрицательная позиция и та же клетка", func(t *testing.T) {
		service, m := newProjectService()

		task := &domain.Task{ID: "t1", ProjectID: "p1", Lane: domain.LaneReview, Position: 0}
		m.tasks.On("GetByID", mock.Anything, "t1").Return(task, nil).Once()
		m.tasks.On("CountInLane", mock.Anything, "p1", domain.LaneReview).Return(1, nil).Once()

		result, err := service.MoveTask(context.Background(), "t1", domain.LaneReview, -5)

		require.NoError(t, err)
		assert.Equal(t, task, result)
		m.assert(t)
	})

	t.Run("ошибка: неизвестная колонка", func(t *testing.T) {
		service, _ := newProjectService()

		_, err := service.MoveTask(context.Background(), "t1", "archive", 0)

		assert.True(t, errors.Is(err, domain.ErrInvalidLane))
	})
}

func TestProjectService_DeleteTask(t *testing.T) {
	service, m := newProjectService()

	m.tasks.On("Delete", mock.Anything, "t9").Return(repository.ErrNotFound).Once()

	err := service.DeleteTask(context.Background(), "t9")

	assert.True(t, errors.Is(err, domain.ErrNotFound))
	m.assert(t)
}

func TestProjectService_ProjectBoard(t *testing.T) {
	service, m := newProjectService()

	m.projects.On("GetByID", mock.Anything, "p1").Return(&domain.Project{ID: "p1"}, nil).Once()
	m.tasks.On("ListByProject", mock.Anything, "p1").Return([]*domain.Task{
		{ID: "b", Lane: domain.LaneTodo, Position: 1},
		{ID: "a", Lane: domain.LaneTodo, Position: 0},
		{ID: "c", Lane: domain.LaneDone, Position: 0},
	}, nil).Once()

	board, err := service.ProjectBoard(context.Background(), "p1")

	require.NoError(t, err)
	require.Len(t, board.Lanes, 4)
	assert.Equal(t, "todo", board.Lanes[0].Name)
	require.Len(t, board.Lanes[0].Tasks, 2)
	assert.Equal(t, "a", board.Lanes[0].Tasks[0].ID)
	assert.Empty(t, board.Lanes[1].Tasks)
	assert.Len(t, board.Lanes[3].Tasks, 1)
	m.assert(t)
}
