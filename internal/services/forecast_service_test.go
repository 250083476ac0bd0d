package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kpicast/internal/config"
	"kpicast/internal/infrastructure"
	"kpicast/internal/kpi"
	"kpicast/internal/shared/testutil"
	"kpicast/pkg/contracts/domain"
)

func points(values ...float64) []domain.TimeSeriesPoint {
	history := make([]domain.TimeSeriesPoint, 0, len(values))
	for i, v := range values {
		history = append(history, domain.TimeSeriesPoint{Day: "D" + string(rune('1'+i)), Value: v})
	}
	return history
}

func TestForecastService_ForecastAndExplain(t *testing.T) {
	tests := []struct {
		name          string
		history       []domain.TimeSeriesPoint
		wantTrend     string
		wantFirst     float64
		wantForecasts int
		wantInsight   string
	}{
		{
			name:          "upward trend",
			history:       points(100, 110),
			wantTrend:     "upward",
			wantFirst:     111.1,
			wantForecasts: kpi.Horizon,
			wantInsight:   "KPI is trending upward with a 10.0% increase from the previous period.",
		},
		{
			name:          "empty history",
			history:       []domain.TimeSeriesPoint{},
			wantTrend:     "stable",
			wantForecasts: 0,
			wantInsight:   kpi.StableInsight,
		},
		{
			name:          "flat history",
			history:       points(50, 50),
			wantTrend:     "stable",
			wantFirst:     50.5,
			wantForecasts: kpi.Horizon,
			wantInsight:   kpi.StableInsight,
		},
		{
			name:          "zero previous value",
			history:       points(0, 5),
			wantTrend:     "upward",
			wantFirst:     5.05,
			wantForecasts: kpi.Horizon,
			wantInsight:   "KPI is trending upward with a 0% increase from the previous period.",
		},
		{
			name:          "downward trend",
			history:       points(110, 100),
			wantTrend:     "downward",
			wantFirst:     101,
			wantForecasts: kpi.Horizon,
			wantInsight:   "KPI has decreased by -9.09% compared to the previous period.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, logs := testutil.NewTestLogger(t)
			svc := NewForecastService(logger, nil, nil)

			resp := svc.ForecastAndExplain(context.Background(), tt.history)

			assert.Equal(t, tt.wantTrend, resp.TrendLabel)
			require.NotNil(t, resp.Forecast)
			require.Len(t, resp.Forecast, tt.wantForecasts)
			if tt.wantForecasts > 0 {
				assert.Equal(t, "Day+1", resp.Forecast[0].Day)
				assert.InDelta(t, tt.wantFirst, resp.Forecast[0].PredictedValue, 1e-9)
			}
			assert.Equal(t, []string{tt.wantInsight, kpi.OutlookInsight}, resp.Insights)

			assert.True(t, logs.ContainsMessage("forecast produced"))
			assert.True(t, logs.ContainsAttr("trend", tt.wantTrend))
			assert.True(t, logs.ContainsAttr("service", "forecast"))
		})
	}
}

func TestForecastService_DoesNotMutateHistory(t *testing.T) {
	history := points(1, 2, 3)
	snapshot := append([]domain.TimeSeriesPoint(nil), history...)

	NewForecastService(nil, nil, nil).ForecastAndExplain(context.Background(), history)

	assert.Equal(t, snapshot, history)
}

func TestForecastService_RecordsMetrics(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	providers, err := infrastructure.InitializeOTel(config.TelemetryConfig{
		ServiceName:    "test",
		TraceExporter:  config.ExporterNone,
		MetricExporter: config.ExporterPrometheus,
	}, logger)
	require.NoError(t, err)
	defer providers.Shutdown(context.Background())

	metrics, err := infrastructure.CreateBusinessMetrics(providers.Meter)
	require.NoError(t, err)

	svc := NewForecastService(logger, providers.Tracer, metrics)
	svc.ForecastAndExplain(context.Background(), points(100, 110))
	svc.ForecastAndExplain(context.Background(), points(100, 90))

	rec := httptest.NewRecorder()
	providers.PrometheusHTTP.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	body := rec.Body.String()
	assert.Contains(t, body, `kpi_forecasts_total{`)
	assert.Contains(t, body, `trend="upward"`)
	assert.Contains(t, body, `trend="downward"`)
	assert.Contains(t, body, "kpi_history_points_count")
}
