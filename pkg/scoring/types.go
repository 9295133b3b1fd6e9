// Package scoring implements the crop suitability scoring engine.
// It adjusts a crop's base suitability for how far the supplied growing
// conditions deviate from the crop's ideal, with an explainable breakdown.
package scoring

import "math"

// Result is the complete output of scoring one profile against one
// environment. Immutable once computed.
type Result struct {
	ProfileID string         `json:"profile_id"`
	Base      float64        `json:"base"`
	Breakdown []MetricResult `json:"breakdown"`
	Raw       float64        `json:"raw"`      // base + contributions, before clamping
	Adjusted  float64        `json:"adjusted"` // Raw clamped to [MinScore, MaxScore]
	Clamped   bool           `json:"clamped"`
}

// MetricResult is the output of a single scoring metric.
type MetricResult struct {
	Key          string  `json:"key"`          // machine key: "rainfall_penalty"
	Name         string  `json:"name"`         // human name: "Rainfall mismatch"
	Contribution float64 `json:"contribution"` // signed: negative = penalty, positive = bonus
	Summary      string  `json:"summary"`
}

// Score bounds.
const (
	MinScore = 0.0
	MaxScore = 100.0
)

// Clamp limits v to [MinScore, MaxScore]. NaN maps to MinScore.
func Clamp(v float64) float64 {
	switch {
	case math.IsNaN(v), v < MinScore:
		return MinScore
	case v > MaxScore:
		return MaxScore
	default:
		return v
	}
}
