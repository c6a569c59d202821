package handler

import (
	"net/http"
)

func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	assigneeLoad, err := h.statsService.GetAssigneeLoad(r.Context())
	if err != nil {
		h.handleError(w, err)
		return
	}

	ticketStats, err := h.statsService.GetTicketStatsByStatus(r.Context())
	if err != nil {
		h.handleError(w, err)
		return
	}

	response := StatsResponse{
		AssigneeLoad: make([]AssigneeLoadResponse, len(assigneeLoad)),
		TicketStats:  make([]TicketStatusStatResponse, len(ticketStats)),
	}

	for i, stat := range assigneeLoad {
		response.AssigneeLoad[i] = AssigneeLoadResponse{
			StaffID:     stat.StaffID,
			FullName:    stat.FullName,
			OpenTickets: stat.OpenTickets,
		}
	}

	for i, stat := range ticketStats {
		response.TicketStats[i] = TicketStatusStatResponse{
			Status: stat.Status,
			Count:  stat.Count,
		}
	}

	h.writeJSON(w, http.StatusOK, response)
}
