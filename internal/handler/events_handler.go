package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// keepAliveInterval период комментариев-пингов в потоке событий.
var keepAliveInterval = 25 * time.Second

// StreamEvents отдает изменения записей как server-sent events.
func (h *Handler) StreamEvents(w http.ResponseWriter, r *http.Request) {
	if h.events == nil {
		h.handleError(w, errors.New("event stream is not configured"))
		return
	}

	rc := http.NewResponseController(w)
	ch, unsubscribe := h.events.Subscribe()
	defer unsubscribe()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	if err := rc.Flush(); err != nil {
		h.log.Warn().Err(err).Msg("event stream flush unsupported")
		return
	}

	ticker := time.NewTicker(keepAliveInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-ticker.C:
			if _, err := fmt.Fprint(w, ": ping\n\n"); err != nil {
				return
			}
		case e, ok := <-ch:
			if !ok {
				return
			}
			data, err := json.Marshal(e)
			if err != nil {
				h.log.Warn().Err(err).Msg("encode event")
				continue
			}
			if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", e.Entity, data); err != nil {
				return
			}
		}
		if err := rc.Flush(); err != nil {
			return
		}
	}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{Status: "ok", Database: "ok"}
	status := http.StatusOK

	if h.health != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.health.PingContext(ctx); err != nil {
			h.log.Warn().Err(err).Msg("database ping failed")
			resp.Status = "degraded"
			resp.Database = "unavailable"
			status = http.StatusServiceUnavailable
		}
	}
	if h.storage != nil {
		resp.Storage = "cloud"
		if !h.storage.CloudAvailable() {
			resp.Storage = "local"
		}
	}

	h.writeJSON(w, status, resp)
}
