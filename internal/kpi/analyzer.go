package kpi

import (
	"strconv"

	"kpicast/pkg/contracts/domain"
)

// Analyze compares the last two observations of history.
//
// Fewer than two points always yield a stable trend with zero change.
// When the previous value is zero the change is reported as 0 regardless
// of the last value and marked ChangeGuarded; it is a division guard, not
// a computed percentage, so the trend may still be upward or downward.
func Analyze(history []domain.TimeSeriesPoint) domain.AnalysisResult {
	if len(history) < 2 {
		return domain.AnalysisResult{Trend: domain.TrendStable, ChangePercent: 0, ChangeGuarded: true}
	}

	prev := history[len(history)-2].Value
	last := history[len(history)-1].Value

	trend := domain.TrendStable
	switch {
	case last > prev:
		trend = domain.TrendUpward
	case last < prev:
		trend = domain.TrendDownward
	}

	if prev == 0 {
		return domain.AnalysisResult{Trend: trend, ChangePercent: 0, ChangeGuarded: true}
	}

	return domain.AnalysisResult{
		Trend:         trend,
		ChangePercent: Round2((last - prev) / prev * 100),
	}
}

// Round2 rounds v to two decimal places using the exact decimal value of v,
// so 2.675 (stored as 2.67499...) rounds to 2.67. Small negative values
// round to negative zero.
func Round2(v float64) float64 {
	rounded, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 2, 64), 64)
	if err != nil {
		return v
	}
	return rounded
}
