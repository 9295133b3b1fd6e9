package scoring

import (
	"errors"
	"fmt"
	"math"

	"github.com/cropwise/cropwise/pkg/crop"
)

// InputOutOfRangeError is returned when the environment is outside its
// documented domain. The engine rejects such input rather than clamping it.
type InputOutOfRangeError = crop.InputOutOfRangeError

// DomainError reports a catalog profile the scoring formula cannot be applied
// to: a requirement used as a divisor is not a finite positive number, or the
// metrics produced a score that is not a number.
type DomainError struct {
	ProfileID string
	Field     string
	Value     float64
	Reason    string // "must be positive" when empty
}

func (e *DomainError) Error() string {
	reason := e.Reason
	if reason == "" {
		reason = "must be positive"
	}
	return fmt.Sprintf("profile %q: %s %s, got %g", e.ProfileID, e.Field, reason, e.Value)
}

// IsDomainError reports whether err wraps a *DomainError.
func IsDomainError(err error) bool {
	var de *DomainError
	return errors.As(err, &de)
}

// CheckProfile returns a *DomainError if p cannot be scored.
func CheckProfile(p crop.CropProfile) error {
	if p.RainfallRequirement <= 0 {
		return &DomainError{ProfileID: p.ID, Field: "rainfall_requirement", Value: float64(p.RainfallRequirement)}
	}
	// !(x > 0) also catches NaN.
	if !(p.SunlightRequirement > 0) {
		return &DomainError{ProfileID: p.ID, Field: "sunlight_requirement", Value: p.SunlightRequirement}
	}
	if math.IsInf(p.SunlightRequirement, 0) {
		return &DomainError{ProfileID: p.ID, Field: "sunlight_requirement", Value: p.SunlightRequirement, Reason: "must be finite"}
	}
	return nil
}
