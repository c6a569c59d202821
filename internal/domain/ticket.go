package domain

import "time"

type Ticket struct {
	ID          string
	Title       string
	Description string
	Category    string
	Priority    Priority
	Status      TicketStatus
	ReporterID  string
	AssigneeID  *string
	DivisionID  *string
	CreatedAt   time.Time
	UpdatedAt   *time.Time
	ResolvedAt  *time.Time
}

// Lane колонка доски, в которой отображается заявка.
func (t *Ticket) Lane() string {
	return t.Status.Lane()
}

type TicketFilter struct {
	Status     TicketStatus
	AssigneeID string
	ReporterID string
	DivisionID string
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

type TicketStatus string

const (
	TicketOpen       TicketStatus = "open"
	TicketInProgress TicketStatus = "in_progress"
	TicketResolved   TicketStatus = "resolved"
	TicketClosed     TicketStatus = "closed"
)

// TicketLanes порядок колонок доски заявок.
var TicketLanes = []string{"new", "working", "done"}

func (s TicketStatus) Lane() string {
	switch s {
	case TicketInProgress:
		return "working"
	case TicketResolved, TicketClosed:
		return "done"
	default:
		return "new"
	}
}

func (s TicketStatus) Valid() bool {
	switch s {
	case TicketOpen, TicketInProgress, TicketResolved, TicketClosed:
		return true
	}
	return false
}

// Active заявка учитывается в нагрузке исполнителя.
func (s TicketStatus) Active() bool {
	return s == TicketOpen || s == TicketInProgress
}

var ticketTransitions = map[TicketStatus][]TicketStatus{
	TicketOpen:       {TicketInProgress, TicketResolved, TicketClosed},
	TicketInProgress: {TicketOpen, TicketResolved, TicketClosed},
	TicketResolved:   {TicketClosed, TicketOpen},
}

// CanTransition проверяет, допустим ли переход from -> to. Переход в тот же статус допустим.
func CanTransition(from, to TicketStatus) bool {
	if from == to {
		return true
	}
	for _, next := range ticketTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type TicketBoard struct {
	Lanes []TicketBoardLane
}

type TicketBoardLane struct {
	Name    string
	Tickets []*Ticket
}
