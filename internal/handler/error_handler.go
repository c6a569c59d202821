package handler

import (
	"errors"
	"net/http"

	"github.com/bagdasarian/staff-portal/internal/domain"
)

func (h *Handler) handleError(w http.ResponseWriter, err error) {
	var domainErr *domain.DomainError
	if errors.As(err, &domainErr) {
		statusCode := getStatusCode(domainErr.Code)
		if statusCode >= http.StatusInternalServerError {
			h.log.Error().Err(err).Str("code", domainErr.Code).Msg("request failed")
		}
		h.writeJSON(w, statusCode, ErrorResponse{
			Error: ErrorDetail{
				Code:    domainErr.Code,
				Message: domainErr.Message,
			},
		})
		return
	}

	h.log.Error().Err(err).Msg("unexpected error")
	h.writeJSON(w, http.StatusInternalServerError, ErrorResponse{
		Error: ErrorDetail{
			Code:    "INTERNAL_ERROR",
			Message: "internal server error",
		},
	})
}

func getStatusCode(errorCode string) int {
	switch errorCode {
	case domain.CodeBadRequest, domain.CodeInvalidLane, domain.CodeInvalidTransition:
		return http.StatusBadRequest
	case domain.CodeDivisionExists, domain.CodeStaffExists, domain.CodeUnitExists,
		domain.CodeTicketClosed, domain.CodeNotAssigned, domain.CodeNoCandidate:
		return http.StatusConflict
	case domain.CodeNotFound:
		return http.StatusNotFound
	case domain.CodeStorageUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
