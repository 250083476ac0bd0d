package domain

// TimeSeriesPoint represents one observed KPI measurement
type TimeSeriesPoint struct {
	Day   string  `json:"day"`
	Value float64 `json:"value"`
}

// ForecastPoint represents one predicted step of the forecast horizon
type ForecastPoint struct {
	Day            string  `json:"day"`
	PredictedValue float64 `json:"predicted_value"`
}

// Trend classifies the direction of the two most recent observations
type Trend string

const (
	TrendUpward   Trend = "upward"
	TrendDownward Trend = "downward"
	TrendStable   Trend = "stable"
)

// String returns the wire label of the trend
func (t Trend) String() string {
	return string(t)
}

// AnalysisResult holds the trend classification and the percent change
// between the last two observations, rounded to two decimal places.
// ChangeGuarded marks a change that was not computed: fewer than two
// observations or a zero previous value.
type AnalysisResult struct {
	Trend         Trend   `json:"trend"`
	ChangePercent float64 `json:"change_percent"`
	ChangeGuarded bool    `json:"-"`
}

// ForecastResponse is the payload returned by the forecast endpoint
type ForecastResponse struct {
	Forecast   []ForecastPoint `json:"forecast"`
	Insights   []string        `json:"insights"`
	TrendLabel string          `json:"trend_label"`
}
