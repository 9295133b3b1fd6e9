package scoring

import (
	"fmt"
	"math"

	"github.com/cropwise/cropwise/pkg/crop"
)

// Metric is the interface that all scoring metrics implement.
type Metric interface {
	// Key returns the machine-readable metric identifier.
	Key() string
	// Name returns the human-readable metric name.
	Name() string
	// Evaluate computes the metric's signed contribution. The engine only
	// calls it with a profile that passed CheckProfile.
	Evaluate(p crop.CropProfile, env crop.EnvironmentalData) MetricResult
}

// Engine applies a fixed set of metrics to a profile's base suitability.
// It holds no mutable state and is safe for concurrent use.
type Engine struct {
	metrics []Metric
}

// NewEngine creates a scoring engine with the given metrics.
func NewEngine(metrics ...Metric) *Engine {
	return &Engine{metrics: metrics}
}

// NewEngineWithWeights creates an engine running the standard metrics with w.
func NewEngineWithWeights(w Weights) *Engine {
	return NewEngine(MetricsFor(w)...)
}

// Evaluate scores p against env and returns the full breakdown.
func (e *Engine) Evaluate(p crop.CropProfile, env crop.EnvironmentalData) (*Result, error) {
	if err := env.Validate(); err != nil {
		return nil, err
	}
	if err := CheckProfile(p); err != nil {
		return nil, err
	}

	result := &Result{
		ProfileID: p.ID,
		Base:      float64(p.BaseSuitability),
		Raw:       float64(p.BaseSuitability),
		Breakdown: make([]MetricResult, 0, len(e.metrics)),
	}

	for _, m := range e.metrics {
		mr := m.Evaluate(p, env)
		result.Breakdown = append(result.Breakdown, mr)
		result.Raw += mr.Contribution
	}
	if math.IsNaN(result.Raw) || math.IsInf(result.Raw, 0) {
		return nil, &DomainError{ProfileID: p.ID, Field: "score", Value: result.Raw, Reason: "must be a finite number"}
	}

	result.Adjusted = Clamp(result.Raw)
	result.Clamped = result.Adjusted != result.Raw

	return result, nil
}

// Score returns the adjusted suitability of p under env, in [0, 100].
func (e *Engine) Score(p crop.CropProfile, env crop.EnvironmentalData) (float64, error) {
	r, err := e.Evaluate(p, env)
	if err != nil {
		return 0, err
	}
	return r.Adjusted, nil
}

// ScoreCrop is Score wrapped into a ScoredCrop.
func (e *Engine) ScoreCrop(p crop.CropProfile, env crop.EnvironmentalData) (crop.ScoredCrop, error) {
	s, err := e.Score(p, env)
	if err != nil {
		return crop.ScoredCrop{}, err
	}
	return crop.ScoredCrop{Profile: p, AdjustedSuitability: s}, nil
}

// Score scores p with the default engine.
func Score(p crop.CropProfile, env crop.EnvironmentalData) (float64, error) {
	return defaultEngine.Score(p, env)
}

// Explain renders a one-line description of a result, e.g. for logs.
func Explain(r *Result) string {
	s := fmt.Sprintf("%s: base %.0f", r.ProfileID, r.Base)
	for _, mr := range r.Breakdown {
		if mr.Contribution == 0 {
			continue
		}
		s += fmt.Sprintf(" %+.2f %s", mr.Contribution, mr.Key)
	}
	s += fmt.Sprintf(" = %.2f", r.Adjusted)
	if r.Clamped {
		s += fmt.Sprintf(" (clamped from %.2f)", r.Raw)
	}
	return s
}
