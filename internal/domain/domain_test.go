package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to TicketStatus
		want     bool
	}{
		{TicketOpen, TicketInProgress, true},
		{TicketOpen, TicketResolved, true},
		{TicketInProgress, TicketOpen, true},
		{TicketResolved, TicketOpen, true},
		{TicketResolved, TicketInProgress, false},
		{TicketClosed, TicketOpen, false},
		{TicketClosed, TicketClosed, true},
		{TicketResolved, TicketResolved, true},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s->%s", tt.from, tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransition(tt.from, tt.to))
		})
	}
}

func TestTicketStatusLane(t *testing.T) {
	assert.Equal(t, "new", TicketOpen.Lane())
	assert.Equal(t, "working", TicketInProgress.Lane())
	assert.Equal(t, "done", TicketResolved.Lane())
	assert.Equal(t, "done", TicketClosed.Lane())
}

func TestLaneValid(t *testing.T) {
	assert.True(t, LaneReview.Valid())
	assert.False(t, Lane("backlog").Valid())
}

func TestDomainErrorIs(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", NewNotFoundError("ticket t1"))

	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrNoCandidate))
	assert.Equal(t, "ticket t1 not found", errors.Unwrap(err).Error())
}
