package handler

import (
	"net/http"

	"github.com/bagdasarian/staff-portal/internal/domain"
	"github.com/bagdasarian/staff-portal/internal/service"
)

func (h *Handler) CreateTicket(w http.ResponseWriter, r *http.Request) {
	var req CreateTicketRequest
	if err := decodeJSON(r, &req); err != nil {
		h.handleError(w, err)
		return
	}

	ticket, err := h.ticketService.CreateTicket(r.Context(), service.CreateTicketInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Priority:    domain.Priority(req.Priority),
		ReporterID:  req.ReporterID,
		DivisionID:  req.DivisionID,
	})
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, TicketEnvelope{Ticket: domainTicketToHTTP(ticket)})
}

func ticketFilterFromQuery(r *http.Request) domain.TicketFilter {
	q := r.URL.Query()
	return domain.TicketFilter{
		Status:     domain.TicketStatus(q.Get("status")),
		AssigneeID: q.Get("assignee_id"),
		ReporterID: q.Get("reporter_id"),
		DivisionID: q.Get("division_id"),
	}
}

func (h *Handler) ListTickets(w http.ResponseWriter, r *http.Request) {
	tickets, err := h.ticketService.ListTickets(r.Context(), ticketFilterFromQuery(r))
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, TicketListResponse{Tickets: domainTicketsToHTTP(tickets)})
}

func (h *Handler) GetTicketBoard(w http.ResponseWriter, r *http.Request) {
	board, err := h.ticketService.Board(r.Context(), ticketFilterFromQuery(r))
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, domainTicketBoardToHTTP(board))
}

func (h *Handler) GetTicket(w http.ResponseWriter, r *http.Request) {
	ticket, err := h.ticketService.GetTicket(r.Context(), r.PathValue("id"))
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, TicketEnvelope{Ticket: domainTicketToHTTP(ticket)})
}

func (h *Handler) ChangeTicketStatus(w http.ResponseWriter, r *http.Request) {
	var req ChangeStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		h.handleError(w, err)
		return
	}

	ticket, err := h.ticketService.ChangeStatus(r.Context(), r.PathValue("id"), domain.TicketStatus(req.Status))
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, TicketEnvelope{Ticket: domainTicketToHTTP(ticket)})
}

func (h *Handler) AssignTicket(w http.ResponseWriter, r *http.Request) {
	var req AssignTicketRequest
	if err := decodeJSON(r, &req); err != nil {
		h.handleError(w, err)
		return
	}
	if req.AssigneeID == "" {
		h.handleError(w, domain.NewBadRequestError("assignee_id is required"))
		return
	}

	ticket, err := h.ticketService.AssignTicket(r.Context(), r.PathValue("id"), req.AssigneeID)
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, TicketEnvelope{Ticket: domainTicketToHTTP(ticket)})
}

func (h *Handler) ReassignTicket(w http.ResponseWriter, r *http.Request) {
	ticket, newAssigneeID, err := h.ticketService.ReassignTicket(r.Context(), r.PathValue("id"))
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, ReassignTicketResponse{
		Ticket:     domainTicketToHTTP(ticket),
		ReplacedBy: newAssigneeID,
	})
}
