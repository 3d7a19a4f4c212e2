package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mw "github.com/lorrc/distribution-backend/internal/adapters/primary/http/middleware"
	apperrors "github.com/lorrc/distribution-backend/internal/core/errors"
	"github.com/lorrc/distribution-backend/internal/infrastructure/logging"
)

func TestErrorHandler_Mapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"wrapped not found", fmt.Errorf("load: %w", apperrors.ErrShopNotFound), stdhttp.StatusNotFound, "SHOP_NOT_FOUND"},
		{"forbidden", apperrors.ErrForbidden, stdhttp.StatusForbidden, "FORBIDDEN"},
		{"conflict", apperrors.ErrConflict, stdhttp.StatusConflict, "CONFLICT"},
		{"insufficient stock", apperrors.ErrInsufficientStock, stdhttp.StatusConflict, "INSUFFICIENT_STOCK"},
		{"bad request", apperrors.NewBadRequestError(errors.New("eof"), "Invalid request body"), stdhttp.StatusBadRequest, "BAD_REQUEST"},
		{"unknown", errors.New("boom"), stdhttp.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	handler := NewErrorHandler(discardLogger())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handler.Handle(rec, httptest.NewRequest(stdhttp.MethodGet, "/", nil), tt.err)

			require.Equal(t, tt.status, rec.Code)
			var body ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.code, body.Code)
		})
	}
}

func TestErrorHandler_ValidationFields(t *testing.T) {
	errs := apperrors.NewValidationErrors()
	errs.Add("items", "Must contain at least 1 item(s)")

	rec := httptest.NewRecorder()
	NewErrorHandler(discardLogger()).Handle(rec, httptest.NewRequest(stdhttp.MethodPost, "/orders", nil), errs)

	require.Equal(t, stdhttp.StatusUnprocessableEntity, rec.Code)
	assert.JSONEq(t, `{"error":"Validation failed","code":"VALIDATION_ERROR","fields":{"items":["Must contain at least 1 item(s)"]}}`,
		rec.Body.String())
}

func TestErrorHandler_LogsWithRequestContext(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewLogger(logging.Config{Output: &buf})

	var handled bool
	router := mw.RequestID(stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		NewErrorHandler(logger).Handle(w, r, errors.New("db down"))
		handled = true
	}))

	req := httptest.NewRequest(stdhttp.MethodGet, "/api/v1/orders", nil)
	req.Header.Set(mw.RequestIDHeader, "req-err")
	router.ServeHTTP(httptest.NewRecorder(), req)
	require.True(t, handled)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "ERROR", entry["level"])
	assert.Equal(t, "req-err", entry["request_id"])
	assert.Equal(t, "db down", entry["error"])
}
