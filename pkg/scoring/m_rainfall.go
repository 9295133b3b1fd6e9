package scoring

import (
	"fmt"
	"math"

	"github.com/cropwise/cropwise/pkg/crop"
)

// RainfallMetric penalizes seasonal rainfall that deviates from the crop's
// requirement, proportionally to the requirement.
type RainfallMetric struct {
	Weight float64 // penalty for a 100% deviation
}

func (m *RainfallMetric) Key() string  { return "rainfall_penalty" }
func (m *RainfallMetric) Name() string { return "Rainfall mismatch" }

func (m *RainfallMetric) Evaluate(p crop.CropProfile, env crop.EnvironmentalData) MetricResult {
	req := float64(p.RainfallRequirement)
	deviation := math.Abs(req-float64(env.Rainfall)) / req
	penalty := deviation * m.Weight

	return MetricResult{
		Key:          m.Key(),
		Name:         m.Name(),
		Contribution: -penalty,
		Summary: fmt.Sprintf("needs %dmm, gets %dmm (%.0f%% off)",
			p.RainfallRequirement, env.Rainfall, deviation*100),
	}
}
