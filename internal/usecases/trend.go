package usecases

import "github.com/Deepthi2006/aquasentry/internal/entities"

// Trend labels
const (
	TrendStable           = "stable"
	TrendIncreasing       = "increasing"
	TrendDecreasing       = "decreasing"
	TrendInsufficientData = "insufficient_data"
)

// TrendAnalysis labels how a tank's readings moved between the first and
// last samples of its history.
type TrendAnalysis struct {
	TankID           string `json:"tank_id,omitempty"`
	Trend            string `json:"trend,omitempty"` // insufficient_data when history is too short
	PHTrend          string `json:"ph_trend,omitempty"`
	TurbidityTrend   string `json:"turbidity_trend,omitempty"`
	TemperatureTrend string `json:"temperature_trend,omitempty"`
	DataPoints       int    `json:"data_points,omitempty"`
}

// trendLabel compares the last sample against the first. Movement must
// strictly exceed the threshold to flag a trend; exact equality is stable.
func trendLabel(first, last, threshold float64) string {
	if last-first > threshold {
		return TrendIncreasing
	}
	if first-last > threshold {
		return TrendDecreasing
	}
	return TrendStable
}

// AnalyzeTrend derives trend labels from a tank's chronological history.
// Fewer than two samples cannot support a verdict.
func AnalyzeTrend(tank entities.Tank) TrendAnalysis {
	history := tank.History
	if len(history) < 2 {
		return TrendAnalysis{Trend: TrendInsufficientData}
	}

	first := history[0]
	last := history[len(history)-1]

	return TrendAnalysis{
		TankID:           tank.ID,
		PHTrend:          trendLabel(first.PH, last.PH, 0.3),
		TurbidityTrend:   trendLabel(first.Turbidity, last.Turbidity, 1),
		TemperatureTrend: trendLabel(first.Temperature, last.Temperature, 1),
		DataPoints:       len(history),
	}
}
