package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bagdasarian/staff-portal/internal/domain"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetStatusCode(t *testing.T) {
	tests := map[string]int{
		domain.CodeNotFound:           http.StatusNotFound,
		domain.CodeBadRequest:         http.StatusBadRequest,
		domain.CodeInvalidLane:        http.StatusBadRequest,
		domain.CodeInvalidTransition:  http.StatusBadRequest,
		domain.CodeStaffExists:        http.StatusConflict,
		domain.CodeDivisionExists:     http.StatusConflict,
		domain.CodeUnitExists:         http.StatusConflict,
		domain.CodeTicketClosed:       http.StatusConflict,
		domain.CodeNotAssigned:        http.StatusConflict,
		domain.CodeNoCandidate:        http.StatusConflict,
		domain.CodeStorageUnavailable: http.StatusServiceUnavailable,
		"SOMETHING_ELSE":              http.StatusInternalServerError,
	}
	for code, want := range tests {
		t.Run(code, func(t *testing.T) {
			assert.Equal(t, want, getStatusCode(code))
		})
	}
}

func TestHandleError(t *testing.T) {
	h := NewHandler(Services{}, zerolog.Nop())

	t.Run("обернутая доменная ошибка", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.handleError(rec, fmt.Errorf("load: %w", domain.NewNotFoundError("ticket t1")))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		var resp ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, ErrorDetail{Code: domain.CodeNotFound, Message: "ticket t1 not found"}, resp.Error)
	})

	t.Run("ошибка хранилища внутри errors.Join", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.handleError(rec, errors.Join(domain.ErrStorageUnavailable, errors.New("graph: 503")))

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})

	t.Run("неизвестная ошибка скрывается", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.handleError(rec, errors.New("pq: connection reset"))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "connection reset")
		assert.Contains(t, rec.Body.String(), "INTERNAL_ERROR")
	})
}
