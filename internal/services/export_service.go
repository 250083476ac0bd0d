package services

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"kpicast/internal/exporter"
	"kpicast/internal/infrastructure"
	"kpicast/pkg/contracts/domain"
)

// Forecaster is the part of ForecastService the export service depends on
type Forecaster interface {
	ForecastAndExplain(ctx context.Context, history []domain.TimeSeriesPoint) domain.ForecastResponse
}

// ExportDocument is a rendered export ready to be sent to a client
type ExportDocument struct {
	Format      exporter.Format
	ContentType string
	Filename    string
	Body        []byte
}

// ExportService renders forecasts as downloadable documents
type ExportService struct {
	forecaster Forecaster
	metrics    *infrastructure.BusinessMetrics
	logger     *slog.Logger
}

// NewExportService creates a new export service
func NewExportService(forecaster Forecaster, metrics *infrastructure.BusinessMetrics, logger *slog.Logger) *ExportService {
	if logger == nil {
		logger = slog.Default()
	}

	return &ExportService{
		forecaster: forecaster,
		metrics:    metrics,
		logger:     logger.With(slog.String("service", "export")),
	}
}

// Export forecasts history and renders the result together with history
// in format. The whole document is buffered so a rendering failure never
// leaves a partial response.
func (s *ExportService) Export(ctx context.Context, format exporter.Format, history []domain.TimeSeriesPoint) (*ExportDocument, error) {
	response := s.forecaster.ForecastAndExplain(ctx, history)

	var buf bytes.Buffer
	if err := exporter.Write(&buf, format, history, response); err != nil {
		s.logger.ErrorContext(ctx, "export failed",
			slog.String("format", string(format)),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("%w: %w", ErrExportFailed, err)
	}

	if s.metrics != nil {
		s.metrics.ExportsTotal.Add(ctx, 1,
			metric.WithAttributes(attribute.String("format", string(format))))
	}

	s.logger.InfoContext(ctx, "forecast exported",
		slog.String("format", string(format)),
		slog.Int("bytes", buf.Len()),
	)

	return &ExportDocument{
		Format:      format,
		ContentType: format.ContentType(),
		Filename:    format.Filename(),
		Body:        buf.Bytes(),
	}, nil
}
