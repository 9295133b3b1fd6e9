package scoring

import (
	"fmt"
	"math"
	"sort"
)

// Weights holds the tunable constants of the suitability formula.
type Weights struct {
	// Penalty points for a 100% deviation from the rainfall requirement.
	RainfallPenalty float64
	// Penalty points for a 100% deviation from the sunlight requirement.
	SunlightPenalty float64

	// Bonus when irrigation is available for a water-intensive crop.
	IrrigationBonus float64
	// Crops need strictly more than this rainfall (mm) to earn the bonus.
	IrrigationMinRainfall int
}

// Defaults returns the standard weights.
func Defaults() Weights {
	return Weights{
		RainfallPenalty:       20,
		SunlightPenalty:       15,
		IrrigationBonus:       10,
		IrrigationMinRainfall: 1000,
	}
}

// Weight override keys accepted by WithOverrides.
const (
	WeightRainfall            = "rainfall"
	WeightSunlight            = "sunlight"
	WeightIrrigationBonus     = "irrigation_bonus"
	WeightIrrigationThreshold = "irrigation_threshold"
)

// WithOverrides returns a copy of w with the named weights replaced.
// Unknown keys and negative or non-finite values are errors.
func (w Weights) WithOverrides(overrides map[string]float64) (Weights, error) {
	keys := make([]string, 0, len(overrides))
	for k := range overrides {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		v := overrides[k]
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return w, fmt.Errorf("weight %s: value %g is not finite", k, v)
		}
		if v < 0 {
			return w, fmt.Errorf("weight %s: negative value %g", k, v)
		}
		switch k {
		case WeightRainfall:
			w.RainfallPenalty = v
		case WeightSunlight:
			w.SunlightPenalty = v
		case WeightIrrigationBonus:
			w.IrrigationBonus = v
		case WeightIrrigationThreshold:
			if v > math.MaxInt32 {
				return w, fmt.Errorf("weight %s: value %g out of range", k, v)
			}
			w.IrrigationMinRainfall = int(v)
		default:
			return w, fmt.Errorf("unknown weight %q", k)
		}
	}
	return w, nil
}
