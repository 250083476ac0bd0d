package services

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"kpicast/internal/infrastructure"
	"kpicast/internal/kpi"
	"kpicast/pkg/contracts/domain"
)

// ForecastService produces forecasts and their narrative for a KPI history
type ForecastService struct {
	tracer  trace.Tracer
	metrics *infrastructure.BusinessMetrics
	logger  *slog.Logger
}

// NewForecastService creates a new forecast service
func NewForecastService(logger *slog.Logger, tracer trace.Tracer, metrics *infrastructure.BusinessMetrics) *ForecastService {
	if logger == nil {
		logger = slog.Default()
	}
	if tracer == nil {
		tracer = tracenoop.NewTracerProvider().Tracer(infrastructure.InstrumentationName)
	}

	return &ForecastService{
		tracer:  tracer,
		metrics: metrics,
		logger:  logger.With(slog.String("service", "forecast")),
	}
}

// ForecastAndExplain runs the forecast, trend analysis and narration over
// history. history must already be validated; it is not modified.
func (s *ForecastService) ForecastAndExplain(ctx context.Context, history []domain.TimeSeriesPoint) domain.ForecastResponse {
	ctx, span := s.tracer.Start(ctx, "kpi.forecast_and_explain",
		trace.WithAttributes(attribute.Int("kpi.history_points", len(history))),
	)
	defer span.End()

	start := time.Now()

	forecast := kpi.GenerateForecast(history)
	analysis := kpi.Analyze(history)
	insights := kpi.Narrate(analysis)

	response := domain.ForecastResponse{
		Forecast:   forecast,
		Insights:   insights,
		TrendLabel: analysis.Trend.String(),
	}

	span.SetAttributes(
		attribute.String("kpi.trend", response.TrendLabel),
		attribute.Float64("kpi.change_percent", analysis.ChangePercent),
		attribute.Int("kpi.forecast_points", len(forecast)),
	)

	if s.metrics != nil {
		s.metrics.ForecastsTotal.Add(ctx, 1,
			metric.WithAttributes(attribute.String("trend", response.TrendLabel)))
		s.metrics.HistoryPoints.Record(ctx, int64(len(history)))
	}

	s.logger.InfoContext(ctx, "forecast produced",
		slog.Int("history_points", len(history)),
		slog.String("trend", response.TrendLabel),
		slog.Float64("change_percent", analysis.ChangePercent),
		slog.Duration("duration", time.Since(start)),
	)

	return response
}
