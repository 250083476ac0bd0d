package exporter

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"kpicast/pkg/contracts/domain"
)

// Workbook sheet names
const (
	SheetForecast = "Forecast"
	SheetHistory  = "History"
	SheetInsights = "Insights"
)

// WriteXLSX writes an Excel workbook with Forecast, History and Insights sheets
func WriteXLSX(w io.Writer, history []domain.TimeSeriesPoint, response domain.ForecastResponse) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetForecast); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	for _, name := range []string{SheetHistory, SheetInsights} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("failed to create sheet %s: %w", name, err)
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	forecastRows := make([][]interface{}, 0, len(response.Forecast))
	for _, point := range response.Forecast {
		forecastRows = append(forecastRows, []interface{}{point.Day, point.PredictedValue})
	}
	if err := writeSheet(f, SheetForecast, headerStyle, []interface{}{"Day", "Predicted Value"}, forecastRows); err != nil {
		return err
	}

	historyRows := make([][]interface{}, 0, len(history))
	for _, point := range history {
		historyRows = append(historyRows, []interface{}{point.Day, point.Value})
	}
	if err := writeSheet(f, SheetHistory, headerStyle, []interface{}{"Day", "Value"}, historyRows); err != nil {
		return err
	}

	insightRows := [][]interface{}{{"Trend", response.TrendLabel}}
	for _, insight := range response.Insights {
		insightRows = append(insightRows, []interface{}{"Insight", insight})
	}
	if err := writeSheet(f, SheetInsights, headerStyle, []interface{}{"Item", "Text"}, insightRows); err != nil {
		return err
	}

	f.SetActiveSheet(0)

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// writeSheet writes a bold header row followed by rows, starting at A1
func writeSheet(f *excelize.File, sheet string, headerStyle int, header []interface{}, rows [][]interface{}) error {
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write %s header: %w", sheet, err)
	}

	lastHeader, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", lastHeader, headerStyle); err != nil {
		return fmt.Errorf("failed to style %s header: %w", sheet, err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+1, err)
		}
	}

	return nil
}
