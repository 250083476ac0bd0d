package exporter

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"kpicast/pkg/contracts/domain"
)

// Format identifies an export document type
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ErrUnsupportedFormat is returned for formats other than csv and xlsx
var ErrUnsupportedFormat = errors.New("unsupported export format")

// ParseFormat parses a format name case-insensitively. An empty name
// selects CSV.
func ParseFormat(name string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(name))) {
	case "", FormatCSV:
		return FormatCSV, nil
	case FormatXLSX:
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
	}
}

// ContentType returns the media type of the format
func (f Format) ContentType() string {
	switch f {
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "text/csv; charset=utf-8"
	}
}

// Filename returns the attachment file name for the format
func (f Format) Filename() string {
	return "forecast." + string(f)
}

// Write renders history and response in format f to w
func Write(w io.Writer, f Format, history []domain.TimeSeriesPoint, response domain.ForecastResponse) error {
	switch f {
	case FormatCSV:
		return WriteCSV(w, history, response)
	case FormatXLSX:
		return WriteXLSX(w, history, response)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, string(f))
	}
}

// formatFloat formats v like encoding/json does, so exported numbers match
// the JSON response
func formatFloat(v float64) string {
	abs := math.Abs(v)
	if abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		return strconv.FormatFloat(v, 'e', -1, 64)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
