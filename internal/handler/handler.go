package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/bagdasarian/staff-portal/internal/domain"
	"github.com/bagdasarian/staff-portal/internal/events"
	"github.com/bagdasarian/staff-portal/internal/service"
	"github.com/rs/zerolog"
)

// EventSource источник событий для потока /events.
type EventSource interface {
	Subscribe() (<-chan events.Event, func())
}

// HealthChecker проверяет доступность базы; *sql.DB подходит как есть.
type HealthChecker interface {
	PingContext(ctx context.Context) error
}

// StorageStatus сообщает, доступно ли облачное хранилище юнитов.
type StorageStatus interface {
	CloudAvailable() bool
}

type Services struct {
	Tickets   service.TicketService
	Staff     service.StaffService
	Divisions service.DivisionService
	Projects  service.ProjectService
	Gallery   service.GalleryService
	Units     service.SetupService
	Stats     service.StatsService
}

type Handler struct {
	ticketService   service.TicketService
	staffService    service.StaffService
	divisionService service.DivisionService
	projectService  service.ProjectService
	galleryService  service.GalleryService
	setupService    service.SetupService
	statsService    service.StatsService

	events  EventSource
	health  HealthChecker
	storage StorageStatus
	log     zerolog.Logger
}

type Option func(*Handler)

func WithEvents(source EventSource) Option {
	return func(h *Handler) { h.events = source }
}

func WithHealth(checker HealthChecker) Option {
	return func(h *Handler) { h.health = checker }
}

func WithStorageStatus(status StorageStatus) Option {
	return func(h *Handler) { h.storage = status }
}

func NewHandler(services Services, log zerolog.Logger, opts ...Option) *Handler {
	h := &Handler{
		ticketService:   services.Tickets,
		staffService:    services.Staff,
		divisionService: services.Divisions,
		projectService:  services.Projects,
		galleryService:  services.Gallery,
		setupService:    services.Units,
		statsService:    services.Stats,
		log:             log,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Warn().Err(err).Msg("write response")
	}
}

// decodeJSON читает тело запроса; ошибка разбора превращается в BAD_REQUEST.
func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return domain.NewBadRequestError("invalid request body: %v", err)
	}
	return nil
}
