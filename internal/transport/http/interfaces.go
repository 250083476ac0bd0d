package http

import (
	"context"

	"kpicast/internal/exporter"
	"kpicast/internal/services"
	"kpicast/pkg/contracts/domain"
)

// ForecastServiceInterface defines the forecast operation used by handlers
type ForecastServiceInterface interface {
	ForecastAndExplain(ctx context.Context, history []domain.TimeSeriesPoint) domain.ForecastResponse
}

// ExportServiceInterface defines the export operation used by handlers
type ExportServiceInterface interface {
	Export(ctx context.Context, format exporter.Format, history []domain.TimeSeriesPoint) (*services.ExportDocument, error)
}
