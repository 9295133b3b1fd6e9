// Package catalog holds the fixed, ordered collection of crop profiles the
// engine ranks. A Catalog is immutable after construction and safe to share
// across goroutines without locking.
package catalog

import (
	"errors"
	"fmt"
	"math"

	"github.com/cropwise/cropwise/pkg/crop"
)

// NotFoundError is returned by ByID for an unknown crop id.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("crop %q not found", e.ID)
}

// IsNotFound reports whether err wraps a *NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// Catalog is an ordered set of crop profiles keyed by id.
type Catalog struct {
	profiles []crop.CropProfile
	index    map[string]int
}

// New builds a catalog, preserving input order. Ids must be non-empty and
// unique.
func New(profiles []crop.CropProfile) (*Catalog, error) {
	c := &Catalog{
		profiles: make([]crop.CropProfile, len(profiles)),
		index:    make(map[string]int, len(profiles)),
	}
	copy(c.profiles, profiles)

	for i, p := range c.profiles {
		if p.ID == "" {
			return nil, fmt.Errorf("catalog entry %d: empty id", i)
		}
		if _, dup := c.index[p.ID]; dup {
			return nil, fmt.Errorf("catalog entry %d: duplicate id %q", i, p.ID)
		}
		c.index[p.ID] = i
	}
	return c, nil
}

// MustNew is New for static tables; it panics on error.
func MustNew(profiles []crop.CropProfile) *Catalog {
	c, err := New(profiles)
	if err != nil {
		panic(err)
	}
	return c
}

// All returns the profiles in catalog order. The slice is a copy.
func (c *Catalog) All() []crop.CropProfile {
	out := make([]crop.CropProfile, len(c.profiles))
	copy(out, c.profiles)
	return out
}

// ByID looks up a profile.
func (c *Catalog) ByID(id string) (crop.CropProfile, error) {
	i, ok := c.index[id]
	if !ok {
		return crop.CropProfile{}, &NotFoundError{ID: id}
	}
	return c.profiles[i], nil
}

// Len returns the number of profiles.
func (c *Catalog) Len() int { return len(c.profiles) }

// Validate reports every structural problem in profiles. Non-positive
// rainfall or sunlight requirements are left to the scorer, which fails that
// one profile with a DomainError instead of rejecting the whole catalog.
func Validate(profiles []crop.CropProfile) error {
	var errs []error
	seen := make(map[string]bool, len(profiles))
	for i, p := range profiles {
		where := fmt.Sprintf("catalog entry %d (%s)", i, p.ID)
		switch {
		case p.ID == "":
			errs = append(errs, fmt.Errorf("catalog entry %d: empty id", i))
		case seen[p.ID]:
			errs = append(errs, fmt.Errorf("%s: duplicate id", where))
		}
		seen[p.ID] = true

		if p.Name == "" {
			errs = append(errs, fmt.Errorf("%s: empty name", where))
		}
		if !p.FertilizerNeed.Valid() {
			errs = append(errs, fmt.Errorf("%s: fertilizer need %q", where, p.FertilizerNeed))
		}
		if p.SoilHumidityRequirement < 0 || p.SoilHumidityRequirement > 100 {
			errs = append(errs, fmt.Errorf("%s: soil humidity %d outside [0, 100]", where, p.SoilHumidityRequirement))
		}
		if p.BaseSuitability < 0 || p.BaseSuitability > 100 {
			errs = append(errs, fmt.Errorf("%s: base suitability %d outside [0, 100]", where, p.BaseSuitability))
		}
		if p.ProfitForecastPerArea < 0 || p.YieldPerArea < 0 || p.MinimumSupportPrice < 0 {
			errs = append(errs, fmt.Errorf("%s: negative profit, yield or support price", where))
		}
		if !finite(p.ProfitForecastPerArea) || !finite(p.YieldPerArea) || !finite(p.MinimumSupportPrice) {
			errs = append(errs, fmt.Errorf("%s: profit, yield and support price must be finite", where))
		}
	}
	return errors.Join(errs...)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
