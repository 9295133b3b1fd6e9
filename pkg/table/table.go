// Package table implements the comparison table's interactive state: a
// sort-field/direction state machine and an independent row-expansion set.
//
// A Controller belongs to one view. It is not safe for concurrent mutation;
// callers sharing one across goroutines must serialize access.
package table

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cropwise/cropwise/pkg/crop"
)

// Field is a sortable column.
type Field string

const (
	FieldName                  Field = "name"
	FieldFertilizerType        Field = "fertilizerType"
	FieldFertilizerNeed        Field = "fertilizerNeed"
	FieldRainfallRequirement   Field = "rainfallRequirement"
	FieldSunlightRequirement   Field = "sunlightRequirement"
	FieldYieldPerArea          Field = "yieldPerArea"
	FieldProfitForecastPerArea Field = "profitForecastPerArea"
	FieldSuitability           Field = "suitability"
)

// Fields lists every sortable column in display order.
var Fields = []Field{
	FieldName,
	FieldFertilizerType,
	FieldFertilizerNeed,
	FieldRainfallRequirement,
	FieldSunlightRequirement,
	FieldYieldPerArea,
	FieldProfitForecastPerArea,
	FieldSuitability,
}

var fieldAliases = map[string]Field{
	"fertilizer_type":          FieldFertilizerType,
	"fertilizer_need":          FieldFertilizerNeed,
	"rainfall_requirement":     FieldRainfallRequirement,
	"sunlight_requirement":     FieldSunlightRequirement,
	"yield_per_area":           FieldYieldPerArea,
	"profit_forecast_per_area": FieldProfitForecastPerArea,
	"adjusted_suitability":     FieldSuitability,
}

// Valid reports whether f is a sortable column.
func (f Field) Valid() bool {
	for _, v := range Fields {
		if f == v {
			return true
		}
	}
	return false
}

// ParseField accepts column names case-insensitively, plus snake_case aliases.
func ParseField(s string) (Field, error) {
	s = strings.TrimSpace(s)
	for _, v := range Fields {
		if strings.EqualFold(s, string(v)) {
			return v, nil
		}
	}
	if f, ok := fieldAliases[strings.ToLower(s)]; ok {
		return f, nil
	}
	return "", fmt.Errorf("unknown sort field %q", s)
}

// Direction is a sort direction.
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// Flip returns the opposite direction.
func (d Direction) Flip() Direction {
	if d == Ascending {
		return Descending
	}
	return Ascending
}

// SortState is the current sort column and direction.
type SortState struct {
	Field     Field     `json:"field"`
	Direction Direction `json:"direction"`
}

// InitialSort is the state every new table starts in.
var InitialSort = SortState{Field: FieldSuitability, Direction: Descending}

// ExpansionState is the set of crop ids whose detail rows are open.
type ExpansionState map[string]struct{}

// Row is one table line: a profile and the suitability shown for it.
type Row struct {
	Profile     crop.CropProfile `json:"profile"`
	Suitability float64          `json:"suitability"`
}

// RowsFromProfiles shows each profile's base suitability.
func RowsFromProfiles(profiles []crop.CropProfile) []Row {
	rows := make([]Row, len(profiles))
	for i, p := range profiles {
		rows[i] = Row{Profile: p, Suitability: float64(p.BaseSuitability)}
	}
	return rows
}

// RowsFromScored shows each crop's adjusted suitability.
func RowsFromScored(crops []crop.ScoredCrop) []Row {
	rows := make([]Row, len(crops))
	for i, sc := range crops {
		rows[i] = Row{Profile: sc.Profile, Suitability: sc.AdjustedSuitability}
	}
	return rows
}

// Controller owns one table's sort and expansion state. The two state
// machines are independent: neither transition touches the other.
type Controller struct {
	sort     SortState
	expanded ExpansionState
}

// NewController returns a controller in the initial state.
func NewController() *Controller {
	return &Controller{
		sort:     InitialSort,
		expanded: make(ExpansionState),
	}
}

// Sort returns the current sort state.
func (c *Controller) Sort() SortState { return c.sort }

// ToggleSort flips the direction when field is already the sort column,
// otherwise selects field in descending order. An unknown field leaves the
// state unchanged.
func (c *Controller) ToggleSort(field Field) error {
	if !field.Valid() {
		return fmt.Errorf("unknown sort field %q", field)
	}
	if field == c.sort.Field {
		c.sort.Direction = c.sort.Direction.Flip()
		return nil
	}
	c.sort = SortState{Field: field, Direction: Descending}
	return nil
}

// ToggleExpansion opens a closed row or closes an open one.
func (c *Controller) ToggleExpansion(id string) {
	if _, ok := c.expanded[id]; ok {
		delete(c.expanded, id)
		return
	}
	c.expanded[id] = struct{}{}
}

// IsExpanded reports whether the row for id is open.
func (c *Controller) IsExpanded(id string) bool {
	_, ok := c.expanded[id]
	return ok
}

// Expanded returns the open row ids, sorted.
func (c *Controller) Expanded() []string {
	ids := make([]string, 0, len(c.expanded))
	for id := range c.expanded {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// View returns a sorted copy of rows under the current sort state.
func (c *Controller) View(rows []Row) []Row {
	return SortRows(rows, c.sort)
}

// SortRows returns a copy of rows ordered by s. The direction applies to the
// primary key only; ties fall back to ascending name, then ascending id.
func SortRows(rows []Row, s SortState) []Row {
	out := make([]Row, len(rows))
	copy(out, rows)

	sort.Slice(out, func(i, j int) bool {
		if cmp := compareField(out[i], out[j], s.Field); cmp != 0 {
			if s.Direction == Ascending {
				return cmp < 0
			}
			return cmp > 0
		}
		a, b := out[i].Profile, out[j].Profile
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.ID < b.ID
	})
	return out
}

func compareField(a, b Row, f Field) int {
	switch f {
	case FieldName:
		return strings.Compare(a.Profile.Name, b.Profile.Name)
	case FieldFertilizerType:
		return strings.Compare(a.Profile.FertilizerType, b.Profile.FertilizerType)
	case FieldFertilizerNeed:
		return compareNumber(float64(a.Profile.FertilizerNeed.Rank()), float64(b.Profile.FertilizerNeed.Rank()))
	case FieldRainfallRequirement:
		return compareNumber(float64(a.Profile.RainfallRequirement), float64(b.Profile.RainfallRequirement))
	case FieldSunlightRequirement:
		return compareNumber(a.Profile.SunlightRequirement, b.Profile.SunlightRequirement)
	case FieldYieldPerArea:
		return compareNumber(a.Profile.YieldPerArea, b.Profile.YieldPerArea)
	case FieldProfitForecastPerArea:
		return compareNumber(a.Profile.ProfitForecastPerArea, b.Profile.ProfitForecastPerArea)
	case FieldSuitability:
		return compareNumber(a.Suitability, b.Suitability)
	default:
		return 0
	}
}

func compareNumber(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
