// Package ranking scores a whole catalog against one environment and orders
// the result into a recommendation list.
package ranking

import (
	"errors"
	"sort"

	"github.com/cropwise/cropwise/pkg/crop"
	"github.com/cropwise/cropwise/pkg/scoring"
)

// Scorer abstracts the scoring engine so callers can rank with custom weights.
type Scorer interface {
	Score(p crop.CropProfile, env crop.EnvironmentalData) (float64, error)
}

// Skipped records a profile that could not be scored.
type Skipped struct {
	ProfileID string `json:"profile_id"`
	Name      string `json:"name"`
	Err       error  `json:"-"`
	Reason    string `json:"reason"`
}

// Result is an ordered recommendation list plus the profiles left out of it.
type Result struct {
	Crops   []crop.ScoredCrop `json:"crops"`
	Skipped []Skipped         `json:"skipped,omitempty"`
}

// Partial reports whether any profile was skipped.
func (r *Result) Partial() bool { return len(r.Skipped) > 0 }

// Top returns the rank-0 crop, if any.
func (r *Result) Top() (crop.ScoredCrop, bool) {
	if len(r.Crops) == 0 {
		return crop.ScoredCrop{}, false
	}
	return r.Crops[0], true
}

// TopN returns at most n leading crops.
func (r *Result) TopN(n int) []crop.ScoredCrop {
	if n > len(r.Crops) {
		n = len(r.Crops)
	}
	if n < 0 {
		n = 0
	}
	return r.Crops[:n]
}

// Ranker applies a Scorer to a catalog.
type Ranker struct {
	scorer Scorer
}

// NewRanker creates a Ranker. A nil scorer uses the default engine.
func NewRanker(s Scorer) *Ranker {
	if s == nil {
		s = scoring.DefaultEngine()
	}
	return &Ranker{scorer: s}
}

// Rank scores every profile and sorts descending by adjusted suitability.
//
// An out-of-range environment is rejected before any profile is scored.
// Profiles failing with a DomainError are skipped and listed in
// Result.Skipped; any other scoring error aborts the ranking.
func (rk *Ranker) Rank(profiles []crop.CropProfile, env crop.EnvironmentalData) (*Result, error) {
	if err := env.Validate(); err != nil {
		return nil, err
	}

	result := &Result{Crops: make([]crop.ScoredCrop, 0, len(profiles))}
	for _, p := range profiles {
		s, err := rk.scorer.Score(p, env)
		if err != nil {
			var de *scoring.DomainError
			if errors.As(err, &de) {
				result.Skipped = append(result.Skipped, Skipped{
					ProfileID: p.ID,
					Name:      p.Name,
					Err:       err,
					Reason:    err.Error(),
				})
				continue
			}
			return nil, err
		}
		result.Crops = append(result.Crops, crop.ScoredCrop{Profile: p, AdjustedSuitability: s})
	}

	Sort(result.Crops)
	return result, nil
}

// Rank ranks profiles with the default engine.
func Rank(profiles []crop.CropProfile, env crop.EnvironmentalData) (*Result, error) {
	return NewRanker(nil).Rank(profiles, env)
}

// Sort orders crops in place: adjusted suitability descending, then base
// suitability descending, then name ascending, then id ascending.
func Sort(crops []crop.ScoredCrop) {
	sort.Slice(crops, func(i, j int) bool {
		return Less(crops[i], crops[j])
	})
}

// Less is the total recommendation order.
func Less(a, b crop.ScoredCrop) bool {
	if a.AdjustedSuitability != b.AdjustedSuitability {
		return a.AdjustedSuitability > b.AdjustedSuitability
	}
	if a.Profile.BaseSuitability != b.Profile.BaseSuitability {
		return a.Profile.BaseSuitability > b.Profile.BaseSuitability
	}
	if a.Profile.Name != b.Profile.Name {
		return a.Profile.Name < b.Profile.Name
	}
	return a.Profile.ID < b.Profile.ID
}
