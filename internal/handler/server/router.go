package server

import (
	"net/http"

	"github.com/bagdasarian/staff-portal/internal/handler"
)

func SetupRoutes(mux *http.ServeMux, h *handler.Handler) {
	mux.HandleFunc("POST /tickets", h.CreateTicket)
	mux.HandleFunc("GET /tickets", h.ListTickets)
	mux.HandleFunc("GET /tickets/board", h.GetTicketBoard)
	mux.HandleFunc("GET /tickets/{id}", h.GetTicket)
	mux.HandleFunc("POST /tickets/{id}/status", h.ChangeTicketStatus)
	mux.HandleFunc("POST /tickets/{id}/assign", h.AssignTicket)
	mux.HandleFunc("POST /tickets/{id}/reassign", h.ReassignTicket)

	mux.HandleFunc("POST /staff", h.CreateStaff)
	mux.HandleFunc("GET /staff", h.ListStaff)
	mux.HandleFunc("GET /staff/{id}", h.GetStaff)
	mux.HandleFunc("PUT /staff/{id}", h.UpdateStaff)
	mux.HandleFunc("POST /staff/{id}/active", h.SetStaffActive)

	mux.HandleFunc("POST /divisions", h.CreateDivision)
	mux.HandleFunc("GET /divisions/{name}", h.GetDivision)

	mux.HandleFunc("POST /projects", h.CreateProject)
	mux.HandleFunc("GET /projects", h.ListProjects)
	mux.HandleFunc("GET /projects/{id}", h.GetProject)
	mux.HandleFunc("GET /projects/{id}/board", h.GetProjectBoard)
	mux.HandleFunc("POST /projects/{id}/tasks", h.CreateTask)

	mux.HandleFunc("POST /tasks/{id}/move", h.MoveTask)
	mux.HandleFunc("PUT /tasks/{id}", h.UpdateTask)
	mux.HandleFunc("DELETE /tasks/{id}", h.DeleteTask)

	mux.HandleFunc("POST /gallery/events", h.CreateGalleryEvent)
	mux.HandleFunc("GET /gallery/events", h.ListGalleryEvents)
	mux.HandleFunc("POST /gallery/events/{id}/photos", h.AddPhoto)

	mux.HandleFunc("POST /units", h.SetupUnit)
	mux.HandleFunc("GET /units", h.ListUnits)
	mux.HandleFunc("GET /units/{id}", h.GetUnit)
	mux.HandleFunc("DELETE /units/{id}", h.DeleteUnit)
	mux.HandleFunc("GET /units/{id}/tables/{table}", h.GetUnitTable)
	mux.HandleFunc("POST /units/{id}/tables/{table}/rows", h.AppendUnitRows)
	mux.HandleFunc("POST /units/{id}/storage/retry", h.RetryUnitStorage)

	mux.HandleFunc("GET /stats", h.GetStats)
	mux.HandleFunc("GET /events", h.StreamEvents)
	mux.HandleFunc("GET /healthz", h.Health)
}
