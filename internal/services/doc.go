// Package services implements the business logic layer of kpicast.
// It sits between the HTTP handlers and the pure forecasting stages in
// internal/kpi, adding the cross-cutting concerns the stages leave out:
// tracing, metrics and structured logging.
//
// # Services
//
//	- ForecastService runs Forecaster, TrendAnalyzer and Narrator over one
//	  history and assembles the response.
//	- ExportService renders a forecast as a CSV or XLSX document.
//	- HealthService answers health, liveness and version probes.
//
// # Common Service Pattern
//
//	func NewForecastService(logger *slog.Logger, tracer trace.Tracer, metrics *infrastructure.BusinessMetrics) *ForecastService
//
//	func (s *ForecastService) ForecastAndExplain(ctx context.Context, history []domain.TimeSeriesPoint) domain.ForecastResponse
//
// Collaborators are injected through constructors. A nil tracer falls back
// to a no-op tracer and nil metrics disable recording, which keeps unit
// tests free of telemetry setup.
//
// # Error Handling
//
// Forecasting itself cannot fail once input has passed boundary validation.
// Export failures wrap the sentinels in errors.go so handlers can map them
// with errors.Is.
package services
