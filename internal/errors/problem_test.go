package errors

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProblemDetails_MarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		problem *ProblemDetails
		want    map[string]interface{}
	}{
		{
			name:    "omits empty optional members",
			problem: NewProblemDetails(http.StatusNotFound, TypeNotFound, "Not Found", "", ""),
			want: map[string]interface{}{
				"type":   TypeNotFound,
				"title":  "Not Found",
				"status": float64(404),
			},
		},
		{
			name: "flattens extensions",
			problem: NewProblemDetails(http.StatusUnprocessableEntity, TypeValidation, "Unprocessable Entity", "bad", "/x").
				WithExtension("trace_id", "t-1"),
			want: map[string]interface{}{
				"type":     TypeValidation,
				"title":    "Unprocessable Entity",
				"status":   float64(422),
				"detail":   "bad",
				"instance": "/x",
				"trace_id": "t-1",
			},
		},
		{
			name: "standard members win over extensions",
			problem: NewProblemDetails(http.StatusBadRequest, TypeInvalidRequest, "Bad Request", "", "").
				WithExtension("status", 999),
			want: map[string]interface{}{
				"type":   TypeInvalidRequest,
				"title":  "Bad Request",
				"status": float64(400),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.problem)
			require.NoError(t, err)

			var got map[string]interface{}
			require.NoError(t, json.Unmarshal(data, &got))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWithExtension_NilMap(t *testing.T) {
	pd := &ProblemDetails{Status: http.StatusTeapot}
	pd.WithExtension("k", "v")
	assert.Equal(t, "v", pd.Extensions["k"])
}

func TestAPIErrorConstructors(t *testing.T) {
	err := ErrValidation("body", "body must be a JSON array")
	assert.Equal(t, http.StatusUnprocessableEntity, err.StatusCode)
	assert.Equal(t, []ValidationError{{Field: "body", Message: "body must be a JSON array"}}, err.Details)
	assert.Equal(t, "Request validation failed", err.Error())

	wrapped := InvalidRequestWithError(assert.AnError)
	assert.Equal(t, http.StatusBadRequest, wrapped.StatusCode)
	assert.Equal(t, assert.AnError.Error(), wrapped.Details)

	export := ExportError("xlsx", assert.AnError)
	assert.Equal(t, CodeExportFailed, export.ErrorCode)
	assert.Contains(t, export.Message, "xlsx")
}
