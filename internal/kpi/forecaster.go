package kpi

import (
	"fmt"

	"kpicast/pkg/contracts/domain"
)

const (
	// Horizon is the number of steps produced by GenerateForecast
	Horizon = 7
	// StepGrowth is the increment applied per horizon step
	StepGrowth = 0.01
)

// GenerateForecast predicts Horizon points from the last observation.
// Point i (1-based) is last*(1+i*StepGrowth); the increment grows linearly
// with i and does not compound. An empty history yields an empty forecast.
func GenerateForecast(history []domain.TimeSeriesPoint) []domain.ForecastPoint {
	if len(history) == 0 {
		return []domain.ForecastPoint{}
	}

	last := history[len(history)-1].Value

	forecast := make([]domain.ForecastPoint, 0, Horizon)
	for i := 1; i <= Horizon; i++ {
		forecast = append(forecast, domain.ForecastPoint{
			Day:            StepLabel(i),
			PredictedValue: last * (1 + float64(i)*StepGrowth),
		})
	}
	return forecast
}

// StepLabel returns the label of horizon step i, e.g. "Day+3"
func StepLabel(i int) string {
	return fmt.Sprintf("Day+%d", i)
}

// MaxForecastGrowth is the largest multiplier GenerateForecast applies
func MaxForecastGrowth() float64 {
	return 1 + Horizon*StepGrowth
}
