package scoring

// DefaultMetrics returns the standard set of scoring metrics with default weights.
func DefaultMetrics() []Metric {
	return MetricsFor(Defaults())
}

// MetricsFor builds the standard metrics from w.
func MetricsFor(w Weights) []Metric {
	return []Metric{
		&RainfallMetric{Weight: w.RainfallPenalty},
		&SunlightMetric{Weight: w.SunlightPenalty},
		&IrrigationMetric{
			Bonus:                  w.IrrigationBonus,
			MinRainfallRequirement: w.IrrigationMinRainfall,
		},
	}
}

var defaultEngine = NewEngine(DefaultMetrics()...)

// DefaultEngine returns the shared engine with default weights.
func DefaultEngine() *Engine { return defaultEngine }
