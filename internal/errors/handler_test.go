package errors

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kpicast/internal/infrastructure"
	"kpicast/internal/shared/testutil"
)

func decodeProblem(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestErrorHandler_HandleError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantType   string
		wantCode   string
		wantLevel  slog.Level
	}{
		{
			name:       "context deadline exceeded",
			err:        context.DeadlineExceeded,
			wantStatus: http.StatusGatewayTimeout,
			wantType:   TypeTimeout,
			wantLevel:  slog.LevelError,
		},
		{
			name:       "wrapped context canceled",
			err:        fmt.Errorf("forecast: %w", context.Canceled),
			wantStatus: http.StatusGatewayTimeout,
			wantType:   TypeTimeout,
			wantLevel:  slog.LevelError,
		},
		{
			name:       "invalid request",
			err:        ErrInvalidRequest,
			wantStatus: http.StatusBadRequest,
			wantType:   TypeInvalidRequest,
			wantCode:   CodeInvalidRequest,
			wantLevel:  slog.LevelWarn,
		},
		{
			name:       "validation failure",
			err:        ErrValidation("body[0].day", "day is required"),
			wantStatus: http.StatusUnprocessableEntity,
			wantType:   TypeValidation,
			wantCode:   CodeValidationFailed,
			wantLevel:  slog.LevelWarn,
		},
		{
			name:       "wrapped api error",
			err:        fmt.Errorf("decode: %w", ErrPayloadTooLarge),
			wantStatus: http.StatusRequestEntityTooLarge,
			wantType:   TypePayloadTooLarge,
			wantCode:   CodePayloadTooLarge,
			wantLevel:  slog.LevelWarn,
		},
		{
			name:       "max bytes error",
			err:        &http.MaxBytesError{Limit: 16},
			wantStatus: http.StatusRequestEntityTooLarge,
			wantType:   TypePayloadTooLarge,
			wantCode:   CodePayloadTooLarge,
			wantLevel:  slog.LevelWarn,
		},
		{
			name:       "unsupported export format",
			err:        UnsupportedFormatError("pdf"),
			wantStatus: http.StatusUnprocessableEntity,
			wantType:   TypeUnsupportedFormat,
			wantCode:   CodeUnsupportedFormat,
			wantLevel:  slog.LevelWarn,
		},
		{
			name:       "generic error",
			err:        assert.AnError,
			wantStatus: http.StatusInternalServerError,
			wantType:   TypeInternal,
			wantCode:   CodeInternal,
			wantLevel:  slog.LevelError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, logs := testutil.NewTestLogger(t)
			handler := NewErrorHandler(logger, false)

			req := httptest.NewRequest(http.MethodPost, "/forecast_and_explain", nil)
			req = req.WithContext(infrastructure.WithTraceID(req.Context(), "trace-abc"))
			rec := httptest.NewRecorder()

			handler.HandleError(rec, req, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			body := decodeProblem(t, rec)
			assert.Equal(t, tt.wantType, body["type"])
			assert.Equal(t, float64(tt.wantStatus), body["status"])
			assert.Equal(t, "/forecast_and_explain", body["instance"])
			assert.Equal(t, "trace-abc", body["trace_id"])
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, body["error_code"])
			}
			assert.NotContains(t, body, "stack")

			assert.Len(t, logs.GetRecordsByLevel(tt.wantLevel), 1)
			assert.True(t, logs.ContainsAttr("component", "error_handler"))
		})
	}
}

func TestErrorHandler_HandleError_Nil(t *testing.T) {
	logger, logs := testutil.NewTestLogger(t)
	handler := NewErrorHandler(logger, false)

	rec := httptest.NewRecorder()
	handler.HandleError(rec, httptest.NewRequest(http.MethodGet, "/", nil), nil)

	assert.Zero(t, rec.Body.Len())
	assert.Zero(t, logs.Count())
}

func TestErrorHandler_ValidationErrorsExtension(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	handler := NewErrorHandler(logger, false)

	err := NewValidationErrors([]ValidationError{
		{Field: "body[0].day", Message: "day is required"},
		{Field: "body[1].value", Message: "value is required"},
	})

	rec := httptest.NewRecorder()
	handler.HandleError(rec, httptest.NewRequest(http.MethodPost, "/forecast_and_explain", nil), err)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := decodeProblem(t, rec)
	assert.Equal(t, "Unprocessable Entity", body["title"])
	assert.Equal(t, []interface{}{
		map[string]interface{}{"field": "body[0].day", "message": "day is required"},
		map[string]interface{}{"field": "body[1].value", "message": "value is required"},
	}, body["errors"])
	assert.NotContains(t, body, "details")
}

func TestErrorHandler_IncludeStack(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	handler := NewErrorHandler(logger, true)

	rec := httptest.NewRecorder()
	handler.HandleError(rec, httptest.NewRequest(http.MethodGet, "/", nil), assert.AnError)

	body := decodeProblem(t, rec)
	assert.Contains(t, body, "stack")
}

func TestErrorHandler_HandlePanic(t *testing.T) {
	tests := []struct {
		name         string
		includeStack bool
	}{
		{name: "production", includeStack: false},
		{name: "development", includeStack: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, logs := testutil.NewTestLogger(t)
			handler := NewErrorHandler(logger, tt.includeStack)

			rec := httptest.NewRecorder()
			handler.HandlePanic(rec, httptest.NewRequest(http.MethodGet, "/boom", nil), "kaboom")

			assert.Equal(t, http.StatusInternalServerError, rec.Code)
			body := decodeProblem(t, rec)
			assert.Equal(t, TypeInternal, body["type"])
			assert.Equal(t, tt.includeStack, body["panic"] == "kaboom")
			assert.True(t, logs.ContainsMessage("panic recovered"))
		})
	}
}

func TestErrorHandler_NotFoundAndMethodNotAllowed(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	handler := NewErrorHandler(logger, false)

	rec := httptest.NewRecorder()
	handler.NotFound(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	body := decodeProblem(t, rec)
	assert.Equal(t, TypeNotFound, body["type"])
	assert.Equal(t, ErrNotFound.Message, body["detail"])
	assert.Equal(t, CodeNotFound, body["error_code"])
	assert.Equal(t, "Not Found", body["title"])

	rec = httptest.NewRecorder()
	handler.MethodNotAllowed(rec, httptest.NewRequest(http.MethodDelete, "/health", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	body = decodeProblem(t, rec)
	assert.Equal(t, TypeMethodNotAllowed, body["type"])
	assert.Equal(t, "Method DELETE is not allowed for this endpoint", body["detail"])
	assert.Equal(t, CodeMethodNotAllowed, body["error_code"])
}

func TestErrorHandler_PredefinedErrors(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	handler := NewErrorHandler(logger, false)
	req := httptest.NewRequest(http.MethodPost, "/forecast_and_explain", nil)

	t.Run("generic error uses internal server error", func(t *testing.T) {
		problem := handler.ErrorToProblem(assert.AnError, req)
		assert.Equal(t, ErrInternalServer.StatusCode, problem.Status)
		assert.Equal(t, ErrInternalServer.Message, problem.Detail)
		assert.Equal(t, "Internal Server Error", problem.Title)
		assert.Equal(t, CodeInternal, problem.Extensions["error_code"])
	})

	t.Run("panic uses internal server error", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.HandlePanic(rec, req, "kaboom")
		body := decodeProblem(t, rec)
		assert.Equal(t, ErrInternalServer.Message, body["detail"])
		assert.Equal(t, CodeInternal, body["error_code"])
	})

	t.Run("validation errors share the predefined code and message", func(t *testing.T) {
		err := NewValidationErrors([]ValidationError{{Field: "body", Message: "body is required"}})
		assert.Equal(t, ErrValidationFailed.StatusCode, err.StatusCode)
		assert.Equal(t, ErrValidationFailed.ErrorCode, err.ErrorCode)
		assert.Equal(t, ErrValidationFailed.Message, err.Message)
	})

	t.Run("invalid request with cause", func(t *testing.T) {
		err := InvalidRequestWithError(assert.AnError)
		assert.Equal(t, ErrInvalidRequest.StatusCode, err.StatusCode)
		assert.Equal(t, ErrInvalidRequest.Message, err.Message)
		assert.Equal(t, assert.AnError.Error(), err.Details)
	})
}
