// Package exporter renders a forecast and the history it was computed from
// as downloadable documents.
//
// Two formats are supported:
//
// CSV: one row per point with the columns kind, day and value, where kind
// is "observed" for history points and "forecast" for predicted points.
//
// XLSX: an Excel workbook with a Forecast sheet, a History sheet and an
// Insights sheet holding the trend label and the narrative insights.
//
// Example usage:
//
//	format, err := exporter.ParseFormat(r.URL.Query().Get("format"))
//	if err != nil {
//	    return err
//	}
//	var buf bytes.Buffer
//	err = exporter.Write(&buf, format, history, response)
package exporter
