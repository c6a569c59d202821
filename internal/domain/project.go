package domain

import "time"

type Project struct {
	ID          string
	Name        string
	Description string
	OwnerID     string
	Status      string
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

type Task struct {
	ID          string
	ProjectID   string
	Title       string
	Description string
	Lane        Lane
	Position    int
	AssigneeIDs []string
	DueAt       *time.Time
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

type Lane string

const (
	LaneTodo       Lane = "todo"
	LaneInProgress Lane = "in_progress"
	LaneReview     Lane = "review"
	LaneDone       Lane = "done"
)

var TaskLanes = []Lane{LaneTodo, LaneInProgress, LaneReview, LaneDone}

func (l Lane) Valid() bool {
	for _, lane := range TaskLanes {
		if l == lane {
			return true
		}
	}
	return false
}

type Board struct {
	Lanes []BoardLane
}

type BoardLane struct {
	Name  string
	Tasks []*Task
}
