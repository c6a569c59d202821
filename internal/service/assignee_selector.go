package service

import (
	"math/rand"
	"time"

	"github.com/bagdasarian/staff-portal/internal/domain"
)

// SelectAssignee выбирает активного сотрудника с минимальным числом открытых
// заявок, исключая excludeIDs. При равной нагрузке выбор случайный.
// Пустая строка означает, что кандидатов нет.
func SelectAssignee(members []*domain.StaffMember, load map[string]int, excludeIDs ...string) string {
	excluded := make(map[string]bool, len(excludeIDs))
	for _, id := range excludeIDs {
		excluded[id] = true
	}

	candidates := make([]*domain.StaffMember, 0, len(members))
	for _, member := range members {
		if member.IsActive && !excluded[member.ID] {
			candidates = append(candidates, member)
		}
	}

	if len(candidates) == 0 {
		return ""
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	for i := len(candidates) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		candidates[i], candidates[j] = candidates[j], candidates[i]
	}

	best := candidates[0]
	for _, c := range candidates[1:] {
		if load[c.ID] < load[best.ID] {
			best = c
		}
	}
	return best.ID
}
