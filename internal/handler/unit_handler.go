package handler

import (
	"net/http"

	"github.com/bagdasarian/staff-portal/internal/service"
)

// SetupUnit запускает мастер настройки: папка юнита и таблицы целей.
func (h *Handler) SetupUnit(w http.ResponseWriter, r *http.Request) {
	var req UnitRequest
	if err := decodeJSON(r, &req); err != nil {
		h.handleError(w, err)
		return
	}

	unit, err := h.setupService.SetupUnit(r.Context(), service.SetupUnitInput{
		Name:       req.UnitName,
		Objectives: httpObjectivesToDomain(req.Objectives),
	})
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, UnitEnvelope{Unit: domainUnitToHTTP(unit)})
}

func (h *Handler) ListUnits(w http.ResponseWriter, r *http.Request) {
	units, err := h.setupService.ListUnits(r.Context())
	if err != nil {
		h.handleError(w, err)
		return
	}

	result := make([]UnitResponse, 0, len(units))
	for _, u := range units {
		result = append(result, domainUnitToHTTP(u))
	}
	h.writeJSON(w, http.StatusOK, UnitListResponse{Units: result})
}

func (h *Handler) GetUnit(w http.ResponseWriter, r *http.Request) {
	unit, err := h.setupService.GetUnit(r.Context(), r.PathValue("id"))
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, UnitEnvelope{Unit: domainUnitToHTTP(unit)})
}

func (h *Handler) GetUnitTable(w http.ResponseWriter, r *http.Request) {
	table, err := h.setupService.ReadUnitTable(r.Context(), r.PathValue("id"), r.PathValue("table"))
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, tableToHTTP(table))
}

func (h *Handler) AppendUnitRows(w http.ResponseWriter, r *http.Request) {
	var req AppendRowsRequest
	if err := decodeJSON(r, &req); err != nil {
		h.handleError(w, err)
		return
	}

	table, err := h.setupService.AppendUnitRows(r.Context(), r.PathValue("id"), r.PathValue("table"), req.Header, req.Rows)
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, tableToHTTP(table))
}

func (h *Handler) DeleteUnit(w http.ResponseWriter, r *http.Request) {
	if err := h.setupService.DeleteUnit(r.Context(), r.PathValue("id")); err != nil {
		h.handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// RetryUnitStorage сбрасывает счетчик неудач и переносит юнит обратно в облако.
func (h *Handler) RetryUnitStorage(w http.ResponseWriter, r *http.Request) {
	unit, err := h.setupService.ResetUnitStorage(r.Context(), r.PathValue("id"))
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, UnitEnvelope{Unit: domainUnitToHTTP(unit)})
}
