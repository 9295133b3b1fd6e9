// Package location provides the static state gazetteer the location picker
// searches. There is no geocoding: names map to fixed centroids.
package location

import (
	"fmt"
	"strings"

	"github.com/cropwise/cropwise/pkg/crop"
)

// DefaultDistrict is used when only a state is selected.
const DefaultDistrict = "District Center"

// State is one gazetteer entry.
type State struct {
	Name        string           `json:"name"`
	Coordinates crop.Coordinates `json:"coordinates"`
}

// Gazetteer is an ordered, read-only name to coordinate table.
type Gazetteer struct {
	states []State
}

// NewGazetteer builds a gazetteer, rejecting invalid coordinates and
// duplicate names.
func NewGazetteer(states []State) (*Gazetteer, error) {
	seen := make(map[string]bool, len(states))
	for _, s := range states {
		key := strings.ToLower(s.Name)
		if seen[key] {
			return nil, fmt.Errorf("duplicate state %q", s.Name)
		}
		seen[key] = true
		if err := s.Coordinates.Validate(); err != nil {
			return nil, fmt.Errorf("state %q: %w", s.Name, err)
		}
	}
	g := &Gazetteer{states: make([]State, len(states))}
	copy(g.states, states)
	return g, nil
}

// States returns every entry in table order.
func (g *Gazetteer) States() []State {
	out := make([]State, len(g.states))
	copy(out, g.states)
	return out
}

// Search returns entries whose name contains term, case-insensitively, in
// table order. An empty term matches nothing.
func (g *Gazetteer) Search(term string) []State {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return nil
	}
	var out []State
	for _, s := range g.states {
		if strings.Contains(strings.ToLower(s.Name), term) {
			out = append(out, s)
		}
	}
	return out
}

// Lookup resolves an exact state name (case-insensitive) to a location.
func (g *Gazetteer) Lookup(name string) (crop.LocationData, error) {
	for _, s := range g.states {
		if strings.EqualFold(strings.TrimSpace(name), s.Name) {
			return crop.LocationData{
				State:       s.Name,
				District:    DefaultDistrict,
				Coordinates: s.Coordinates,
			}, nil
		}
	}
	return crop.LocationData{}, fmt.Errorf("unknown state %q", name)
}
