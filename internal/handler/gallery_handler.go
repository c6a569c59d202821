package handler

import (
	"net/http"

	"github.com/bagdasarian/staff-portal/internal/domain"
)

func (h *Handler) CreateGalleryEvent(w http.ResponseWriter, r *http.Request) {
	var req GalleryEventRequest
	if err := decodeJSON(r, &req); err != nil {
		h.handleError(w, err)
		return
	}
	if req.EventDate == "" {
		h.handleError(w, domain.NewBadRequestError("event_date is required"))
		return
	}
	eventDate, err := parseDate(req.EventDate)
	if err != nil {
		h.handleError(w, err)
		return
	}

	event, err := h.galleryService.CreateEvent(r.Context(), &domain.GalleryEvent{
		Title:       req.Title,
		Description: req.Description,
		EventDate:   eventDate,
	})
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, GalleryEventEnvelope{Event: domainGalleryEventToHTTP(event)})
}

func (h *Handler) ListGalleryEvents(w http.ResponseWriter, r *http.Request) {
	list, err := h.galleryService.ListEvents(r.Context())
	if err != nil {
		h.handleError(w, err)
		return
	}

	result := make([]GalleryEventResponse, 0, len(list))
	for _, e := range list {
		result = append(result, domainGalleryEventToHTTP(e))
	}
	h.writeJSON(w, http.StatusOK, GalleryEventListResponse{Events: result})
}

func (h *Handler) AddPhoto(w http.ResponseWriter, r *http.Request) {
	var req PhotoRequest
	if err := decodeJSON(r, &req); err != nil {
		h.handleError(w, err)
		return
	}

	photo, err := h.galleryService.AddPhoto(r.Context(), &domain.Photo{
		EventID: r.PathValue("id"),
		URL:     req.URL,
		Caption: req.Caption,
	})
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, PhotoEnvelope{Photo: domainPhotoToHTTP(photo)})
}
