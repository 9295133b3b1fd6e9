package scoring

import (
	"fmt"

	"github.com/cropwise/cropwise/pkg/crop"
)

// IrrigationMetric credits irrigation for water-intensive crops only.
type IrrigationMetric struct {
	Bonus                  float64
	MinRainfallRequirement int // bonus applies when requirement > this
}

func (m *IrrigationMetric) Key() string  { return "irrigation_bonus" }
func (m *IrrigationMetric) Name() string { return "Irrigation" }

func (m *IrrigationMetric) Evaluate(p crop.CropProfile, env crop.EnvironmentalData) MetricResult {
	result := MetricResult{
		Key:  m.Key(),
		Name: m.Name(),
	}

	switch {
	case !env.IrrigationAvailable:
		result.Summary = "no irrigation available"
	case p.RainfallRequirement <= m.MinRainfallRequirement:
		result.Summary = fmt.Sprintf("not water-intensive (needs %dmm)", p.RainfallRequirement)
	default:
		result.Contribution = m.Bonus
		result.Summary = fmt.Sprintf("irrigation offsets a %dmm requirement", p.RainfallRequirement)
	}

	return result
}
