package scoring_test

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/cropwise/cropwise/pkg/catalog"
	"github.com/cropwise/cropwise/pkg/crop"
	"github.com/cropwise/cropwise/pkg/scoring"
)

const epsilon = 0.005

func approxEqual(a, b float64) bool { return math.Abs(a-b) < epsilon }

func riceProfile() crop.CropProfile {
	return crop.CropProfile{
		ID:                  "1",
		Name:                "Rice",
		FertilizerNeed:      crop.FertilizerMedium,
		RainfallRequirement: 1200,
		SunlightRequirement: 6,
		BaseSuitability:     85,
	}
}

func env(rainfall int, sunlight float64, irrigation bool) crop.EnvironmentalData {
	return crop.EnvironmentalData{
		SoilType:            crop.SoilAlluvial,
		SoilMoisture:        30,
		Rainfall:            rainfall,
		Sunlight:            sunlight,
		IrrigationAvailable: irrigation,
	}
}

func TestScoreRiceWithoutIrrigation(t *testing.T) {
	got, err := scoring.Score(riceProfile(), env(800, 7, false))
	if err != nil {
		t.Fatalf("Score() error: %v", err)
	}
	// 85 - 400/1200*20 - 1/6*15 = 75.833
	if !approxEqual(got, 75.83) {
		t.Errorf("expected ~75.83, got %f", got)
	}
}

func TestScoreRiceWithIrrigation(t *testing.T) {
	got, err := scoring.Score(riceProfile(), env(800, 7, true))
	if err != nil {
		t.Fatalf("Score() error: %v", err)
	}
	if !approxEqual(got, 85.83) {
		t.Errorf("expected ~85.83, got %f", got)
	}
}

func TestEvaluateBreakdown(t *testing.T) {
	r, err := scoring.DefaultEngine().Evaluate(riceProfile(), env(800, 7, true))
	if err != nil {
		t.Fatalf("Evaluate() error: %v", err)
	}

	want := map[string]float64{
		"rainfall_penalty": -400.0 / 1200.0 * 20,
		"sunlight_penalty": -1.0 / 6.0 * 15,
		"irrigation_bonus": 10,
	}
	if len(r.Breakdown) != len(want) {
		t.Fatalf("expected %d breakdown entries, got %d", len(want), len(r.Breakdown))
	}
	for _, mr := range r.Breakdown {
		w, ok := want[mr.Key]
		if !ok {
			t.Errorf("unexpected metric %q", mr.Key)
			continue
		}
		if !approxEqual(mr.Contribution, w) {
			t.Errorf("%s contribution = %f, want %f", mr.Key, mr.Contribution, w)
		}
		if mr.Summary == "" {
			t.Errorf("%s: expected a summary", mr.Key)
		}
	}
	if r.Base != 85 || r.Clamped {
		t.Errorf("unexpected base/clamped: %+v", r)
	}

	explained := scoring.Explain(r)
	if !strings.Contains(explained, "irrigation_bonus") || !strings.Contains(explained, "85.83") {
		t.Errorf("Explain() = %q", explained)
	}
}

func TestIrrigationBonusThreshold(t *testing.T) {
	p := riceProfile()
	p.RainfallRequirement = 1000 // not strictly above the threshold

	without, _ := scoring.Score(p, env(1000, 6, false))
	with, _ := scoring.Score(p, env(1000, 6, true))
	if without != with {
		t.Errorf("requirement of exactly 1000mm should not earn the bonus: %f vs %f", without, with)
	}
}

func TestScoreClampsToRange(t *testing.T) {
	high := crop.CropProfile{ID: "h", Name: "High", RainfallRequirement: 1500, SunlightRequirement: 8, BaseSuitability: 100}
	r, err := scoring.DefaultEngine().Evaluate(high, env(1500, 8, true))
	if err != nil {
		t.Fatalf("Evaluate() error: %v", err)
	}
	if r.Adjusted != 100 || !r.Clamped || r.Raw != 110 {
		t.Errorf("expected clamp 110 -> 100, got %+v", r)
	}

	low := crop.CropProfile{ID: "l", Name: "Low", RainfallRequirement: 100, SunlightRequirement: 3, BaseSuitability: 5}
	got, err := scoring.Score(low, env(2000, 12, false))
	if err != nil {
		t.Fatalf("Score() error: %v", err)
	}
	if got != 0 {
		t.Errorf("expected clamp to 0, got %f", got)
	}
}

func TestScoreWithinBoundsForAllDomainInputs(t *testing.T) {
	profiles := append(catalog.DefaultProfiles(),
		crop.CropProfile{ID: "x", Name: "Extreme", RainfallRequirement: 1, SunlightRequirement: 0.5, BaseSuitability: 100},
		crop.CropProfile{ID: "y", Name: "Floor", RainfallRequirement: 5000, SunlightRequirement: 20, BaseSuitability: 0},
	)

	for _, p := range profiles {
		for rain := crop.MinRainfall; rain <= crop.MaxRainfall; rain += 190 {
			for sun := crop.MinSunlight; sun <= crop.MaxSunlight; sun += 0.5 {
				for _, irr := range []bool{false, true} {
					e := env(rain, sun, irr)
					s1, err := scoring.Score(p, e)
					if err != nil {
						t.Fatalf("Score(%s, %+v): %v", p.ID, e, err)
					}
					if s1 < 0 || s1 > 100 {
						t.Fatalf("Score(%s, %+v) = %f outside [0, 100]", p.ID, e, s1)
					}
					s2, _ := scoring.Score(p, e)
					if s1 != s2 {
						t.Fatalf("Score is not deterministic: %f vs %f", s1, s2)
					}
				}
			}
		}
	}
}

func TestScoreDomainError(t *testing.T) {
	tests := []struct {
		name      string
		profile   crop.CropProfile
		wantField string
	}{
		{name: "zero rainfall", profile: crop.CropProfile{ID: "r0", SunlightRequirement: 6}, wantField: "rainfall_requirement"},
		{name: "negative rainfall", profile: crop.CropProfile{ID: "r-", RainfallRequirement: -5, SunlightRequirement: 6}, wantField: "rainfall_requirement"},
		{name: "zero sunlight", profile: crop.CropProfile{ID: "s0", RainfallRequirement: 600}, wantField: "sunlight_requirement"},
		{name: "NaN sunlight", profile: crop.CropProfile{ID: "sn", RainfallRequirement: 600, SunlightRequirement: math.NaN()}, wantField: "sunlight_requirement"},
		{name: "infinite sunlight", profile: crop.CropProfile{ID: "si", RainfallRequirement: 600, SunlightRequirement: math.Inf(1)}, wantField: "sunlight_requirement"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := scoring.Score(tc.profile, env(800, 7, false))
			var de *scoring.DomainError
			if !errors.As(err, &de) {
				t.Fatalf("expected DomainError, got %v", err)
			}
			if de.Field != tc.wantField || de.ProfileID != tc.profile.ID {
				t.Errorf("unexpected DomainError: %+v", de)
			}
			if !scoring.IsDomainError(err) {
				t.Error("IsDomainError should be true")
			}
		})
	}
}

func TestScoreRejectsOutOfRangeEnvironment(t *testing.T) {
	_, err := scoring.Score(riceProfile(), env(50, 7, false))
	var rangeErr *scoring.InputOutOfRangeError
	if !errors.As(err, &rangeErr) {
		t.Fatalf("expected InputOutOfRangeError, got %v", err)
	}
	if rangeErr.Field != "rainfall" {
		t.Errorf("Field = %q, want rainfall", rangeErr.Field)
	}
}

func TestEngineWithoutMetricsReturnsBase(t *testing.T) {
	e := scoring.NewEngine()
	got, err := e.Score(riceProfile(), env(100, 12, true))
	if err != nil {
		t.Fatalf("Score() error: %v", err)
	}
	if got != 85 {
		t.Errorf("expected base 85, got %f", got)
	}
}

func TestScoreCrop(t *testing.T) {
	sc, err := scoring.DefaultEngine().ScoreCrop(riceProfile(), env(800, 7, false))
	if err != nil {
		t.Fatalf("ScoreCrop() error: %v", err)
	}
	if sc.Profile.ID != "1" || !approxEqual(sc.AdjustedSuitability, 75.83) {
		t.Errorf("unexpected scored crop: %+v", sc)
	}
}

type constMetric float64

func (constMetric) Key() string  { return "const" }
func (constMetric) Name() string { return "Constant" }
func (m constMetric) Evaluate(crop.CropProfile, crop.EnvironmentalData) scoring.MetricResult {
	return scoring.MetricResult{Key: "const", Name: "Constant", Contribution: float64(m)}
}

func TestEvaluateRejectsNonFiniteScore(t *testing.T) {
	for _, c := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		e := scoring.NewEngine(constMetric(c))
		r, err := e.Evaluate(riceProfile(), env(800, 7, false))
		var de *scoring.DomainError
		if !errors.As(err, &de) {
			t.Fatalf("contribution %v: expected DomainError, got result %+v err %v", c, r, err)
		}
		if de.Field != "score" || de.ProfileID != "1" {
			t.Errorf("unexpected DomainError: %+v", de)
		}
	}
}
