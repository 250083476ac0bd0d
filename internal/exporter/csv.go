package exporter

import (
	"encoding/csv"
	"fmt"
	"io"

	"kpicast/pkg/contracts/domain"
)

// CSV row kinds
const (
	KindObserved = "observed"
	KindForecast = "forecast"
)

// csvHeaders is the header row of a CSV export
var csvHeaders = []string{"kind", "day", "value"}

// WriteCSV writes the observed points followed by the forecast points
func WriteCSV(w io.Writer, history []domain.TimeSeriesPoint, response domain.ForecastResponse) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(csvHeaders); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}

	for i, point := range history {
		if err := writer.Write([]string{KindObserved, point.Day, formatFloat(point.Value)}); err != nil {
			return fmt.Errorf("failed to write observed record %d: %w", i, err)
		}
	}

	for i, point := range response.Forecast {
		if err := writer.Write([]string{KindForecast, point.Day, formatFloat(point.PredictedValue)}); err != nil {
			return fmt.Errorf("failed to write forecast record %d: %w", i, err)
		}
	}

	writer.Flush()
	return writer.Error()
}
