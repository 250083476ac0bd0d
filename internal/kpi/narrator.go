package kpi

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"kpicast/pkg/contracts/domain"
)

// Insight templates
const (
	upwardTemplate   = "KPI is trending upward with a %s%% increase from the previous period."
	downwardTemplate = "KPI has decreased by %s%% compared to the previous period."
	StableInsight    = "KPI is stable with minimal changes compared to earlier periods."
	OutlookInsight   = "Forecast for the next period shows continued behavior based on recent trends."
)

// Narrate renders an analysis as exactly two insights: a trend sentence
// followed by the fixed outlook sentence. Unknown trends read as stable.
func Narrate(analysis domain.AnalysisResult) []string {
	insights := make([]string, 0, 2)

	switch analysis.Trend {
	case domain.TrendUpward:
		insights = append(insights, fmt.Sprintf(upwardTemplate, formatChange(analysis)))
	case domain.TrendDownward:
		insights = append(insights, fmt.Sprintf(downwardTemplate, formatChange(analysis)))
	default:
		insights = append(insights, StableInsight)
	}

	return append(insights, OutlookInsight)
}

// formatChange prints a guarded change as a bare "0"
func formatChange(analysis domain.AnalysisResult) string {
	if analysis.ChangeGuarded {
		return strconv.FormatInt(int64(analysis.ChangePercent), 10)
	}
	return FormatPercent(analysis.ChangePercent)
}

// FormatPercent prints v with the shortest digits that round-trip and keeps
// a trailing ".0" on integral values: 10 -> "10.0", -9.09 -> "-9.09".
// Negative zero keeps its sign: "-0.0".
// Magnitudes of 1e16 and above switch to exponent form ("1e+20").
func FormatPercent(v float64) string {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	if math.Abs(v) >= 1e16 {
		return strconv.FormatFloat(v, 'e', -1, 64)
	}

	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
