package middleware

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apierrors "kpicast/internal/errors"
	api "kpicast/pkg/contracts/api/v1"
)

func ptr[T any](v T) *T {
	return &v
}

func TestValidator_FieldErrors(t *testing.T) {
	tests := []struct {
		name  string
		point api.TimeSeriesPointRequest
		want  []apierrors.ValidationError
	}{
		{
			name:  "valid point",
			point: api.TimeSeriesPointRequest{Day: ptr("2024-01-01"), Value: ptr(100.0)},
		},
		{
			name:  "negative and zero values are accepted",
			point: api.TimeSeriesPointRequest{Day: ptr(""), Value: ptr(-5.0)},
		},
		{
			name:  "missing day",
			point: api.TimeSeriesPointRequest{Value: ptr(1.0)},
			want:  []apierrors.ValidationError{{Field: "body[3].day", Message: "day is required"}},
		},
		{
			name:  "missing both",
			point: api.TimeSeriesPointRequest{},
			want: []apierrors.ValidationError{
				{Field: "body[3].day", Message: "day is required"},
				{Field: "body[3].value", Message: "value is required"},
			},
		},
		{
			name:  "infinite value",
			point: api.TimeSeriesPointRequest{Day: ptr("d"), Value: ptr(math.Inf(-1))},
			want:  []apierrors.ValidationError{{Field: "body[3].value", Message: "value must be a finite number within forecast range"}},
		},
		{
			name:  "value overflowing the forecast",
			point: api.TimeSeriesPointRequest{Day: ptr("d"), Value: ptr(math.MaxFloat64)},
			want:  []apierrors.ValidationError{{Field: "body[3].value", Message: "value must be a finite number within forecast range"}},
		},
	}

	v := NewValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, v.FieldErrors(tt.point, "body[3]."))
		})
	}
}

func TestValidator_ValidateStruct(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.ValidateStruct(api.ExportRequest{Format: "xlsx"}))
	assert.NoError(t, v.ValidateStruct(api.ExportRequest{}))

	err := v.ValidateStruct(api.ExportRequest{Format: "pdf"})
	require.Error(t, err)

	var apiErr *apierrors.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 422, apiErr.StatusCode)
	assert.Equal(t, []apierrors.ValidationError{{Field: "format", Message: "format must be one of: csv xlsx"}}, apiErr.Details)
}

func TestIsForecastable_Boundary(t *testing.T) {
	v := NewValidator()
	limit := math.MaxFloat64 / 1.07

	assert.Empty(t, v.FieldErrors(api.TimeSeriesPointRequest{Day: ptr("d"), Value: ptr(limit * 0.99)}, ""))
	assert.NotEmpty(t, v.FieldErrors(api.TimeSeriesPointRequest{Day: ptr("d"), Value: ptr(-math.MaxFloat64)}, ""))
}
