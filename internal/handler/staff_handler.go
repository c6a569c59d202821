package handler

import (
	"net/http"
	"strconv"

	"github.com/bagdasarian/staff-portal/internal/domain"
)

func (h *Handler) CreateStaff(w http.ResponseWriter, r *http.Request) {
	var req StaffRequest
	if err := decodeJSON(r, &req); err != nil {
		h.handleError(w, err)
		return
	}

	member, err := h.staffService.CreateStaff(r.Context(), httpStaffToDomain(req))
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, StaffEnvelope{Staff: domainStaffToHTTP(member)})
}

func (h *Handler) ListStaff(w http.ResponseWriter, r *http.Request) {
	filter := domain.StaffFilter{Search: r.URL.Query().Get("q")}
	if active := r.URL.Query().Get("active"); active != "" {
		v, err := strconv.ParseBool(active)
		if err != nil {
			h.handleError(w, domain.NewBadRequestError("active must be a boolean"))
			return
		}
		filter.ActiveOnly = v
	}

	members, err := h.staffService.ListStaff(r.Context(), filter)
	if err != nil {
		h.handleError(w, err)
		return
	}

	result := make([]StaffResponse, 0, len(members))
	for _, m := range members {
		result = append(result, domainStaffToHTTP(m))
	}
	h.writeJSON(w, http.StatusOK, StaffListResponse{Staff: result})
}

func (h *Handler) GetStaff(w http.ResponseWriter, r *http.Request) {
	member, err := h.staffService.GetStaff(r.Context(), r.PathValue("id"))
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, StaffEnvelope{Staff: domainStaffToHTTP(member)})
}

func (h *Handler) UpdateStaff(w http.ResponseWriter, r *http.Request) {
	var req StaffRequest
	if err := decodeJSON(r, &req); err != nil {
		h.handleError(w, err)
		return
	}

	member := httpStaffToDomain(req)
	member.ID = r.PathValue("id")
	updated, err := h.staffService.UpdateStaff(r.Context(), member)
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, StaffEnvelope{Staff: domainStaffToHTTP(updated)})
}

func (h *Handler) SetStaffActive(w http.ResponseWriter, r *http.Request) {
	var req SetIsActiveRequest
	if err := decodeJSON(r, &req); err != nil {
		h.handleError(w, err)
		return
	}

	member, err := h.staffService.SetIsActive(r.Context(), r.PathValue("id"), req.IsActive)
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, StaffEnvelope{Staff: domainStaffToHTTP(member)})
}

func (h *Handler) CreateDivision(w http.ResponseWriter, r *http.Request) {
	var req DivisionRequest
	if err := decodeJSON(r, &req); err != nil {
		h.handleError(w, err)
		return
	}

	division, err := h.divisionService.CreateDivision(r.Context(), httpDivisionToDomain(req))
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, CreateDivisionResponse{
		Division: domainDivisionToHTTP(division),
	})
}

func (h *Handler) GetDivision(w http.ResponseWriter, r *http.Request) {
	division, err := h.divisionService.GetDivision(r.Context(), r.PathValue("name"))
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, domainDivisionToHTTP(division))
}
