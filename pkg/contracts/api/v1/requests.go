// Package api contains API contract definitions for the KPI forecast service.
// Version v1 represents the current stable API version.
package api

import (
	"kpicast/pkg/contracts/domain"
)

// TimeSeriesPointRequest is the wire form of one observation in the
// forecast request body. Pointer fields distinguish a missing or null
// field from a zero value.
type TimeSeriesPointRequest struct {
	Day   *string  `json:"day" validate:"required"`
	Value *float64 `json:"value" validate:"required,forecastable"`
}

// ToDomain converts a validated request point into the domain type.
// Call only after validation has succeeded.
func (p TimeSeriesPointRequest) ToDomain() domain.TimeSeriesPoint {
	return domain.TimeSeriesPoint{
		Day:   *p.Day,
		Value: *p.Value,
	}
}

// ExportRequest represents the query parameters of the export endpoint
type ExportRequest struct {
	Format string `json:"format" query:"format" validate:"omitempty,oneof=csv xlsx"`
}
