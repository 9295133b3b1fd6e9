package scoring

import (
	"fmt"
	"math"

	"github.com/cropwise/cropwise/pkg/crop"
)

// SunlightMetric penalizes daily sunlight that deviates from the crop's
// requirement, proportionally to the requirement.
type SunlightMetric struct {
	Weight float64 // penalty for a 100% deviation
}

func (m *SunlightMetric) Key() string  { return "sunlight_penalty" }
func (m *SunlightMetric) Name() string { return "Sunlight mismatch" }

func (m *SunlightMetric) Evaluate(p crop.CropProfile, env crop.EnvironmentalData) MetricResult {
	deviation := math.Abs(p.SunlightRequirement-env.Sunlight) / p.SunlightRequirement
	penalty := deviation * m.Weight

	return MetricResult{
		Key:          m.Key(),
		Name:         m.Name(),
		Contribution: -penalty,
		Summary: fmt.Sprintf("needs %gh/day, gets %gh/day (%.0f%% off)",
			p.SunlightRequirement, env.Sunlight, deviation*100),
	}
}
