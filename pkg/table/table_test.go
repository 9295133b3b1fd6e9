package table

import (
	"reflect"
	"testing"

	"github.com/cropwise/cropwise/pkg/catalog"
	"github.com/cropwise/cropwise/pkg/crop"
)

func names(rows []Row) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Profile.Name
	}
	return out
}

func TestInitialState(t *testing.T) {
	c := NewController()
	if c.Sort() != (SortState{Field: FieldSuitability, Direction: Descending}) {
		t.Errorf("initial sort = %+v", c.Sort())
	}
	if len(c.Expanded()) != 0 {
		t.Errorf("expected no expanded rows, got %v", c.Expanded())
	}
}

func TestToggleSortSameFieldTwiceRestoresDirection(t *testing.T) {
	for _, f := range Fields {
		t.Run(string(f), func(t *testing.T) {
			c := NewController()
			if err := c.ToggleSort(f); err != nil {
				t.Fatal(err)
			}
			before := c.Sort()
			_ = c.ToggleSort(f)
			if c.Sort().Direction == before.Direction {
				t.Errorf("first repeat toggle should flip direction")
			}
			_ = c.ToggleSort(f)
			if c.Sort() != before {
				t.Errorf("two toggles should restore %+v, got %+v", before, c.Sort())
			}
		})
	}
}

func TestToggleSortNewFieldIsDescending(t *testing.T) {
	c := NewController()
	_ = c.ToggleSort(FieldSuitability) // now ascending
	if c.Sort().Direction != Ascending {
		t.Fatalf("expected ascending after toggling the initial field")
	}

	_ = c.ToggleSort(FieldName)
	if c.Sort() != (SortState{Field: FieldName, Direction: Descending}) {
		t.Errorf("new field should start descending, got %+v", c.Sort())
	}

	_ = c.ToggleSort(FieldName)
	_ = c.ToggleSort(FieldYieldPerArea)
	if c.Sort() != (SortState{Field: FieldYieldPerArea, Direction: Descending}) {
		t.Errorf("new field should start descending, got %+v", c.Sort())
	}
}

func TestToggleSortUnknownField(t *testing.T) {
	c := NewController()
	if err := c.ToggleSort("image"); err == nil {
		t.Error("expected error for unknown field")
	}
	if c.Sort() != InitialSort {
		t.Errorf("state changed on error: %+v", c.Sort())
	}
}

func TestToggleExpansionIdempotentPair(t *testing.T) {
	c := NewController()
	c.ToggleExpansion("3")
	before := c.Expanded()

	c.ToggleExpansion("1")
	if !c.IsExpanded("1") {
		t.Error("expected row 1 open")
	}
	c.ToggleExpansion("1")
	if c.IsExpanded("1") {
		t.Error("expected row 1 closed")
	}
	if !reflect.DeepEqual(c.Expanded(), before) {
		t.Errorf("expected %v after toggle pair, got %v", before, c.Expanded())
	}
}

func TestSortAndExpansionIndependent(t *testing.T) {
	c := NewController()
	c.ToggleExpansion("2")
	c.ToggleExpansion("5")

	_ = c.ToggleSort(FieldName)
	_ = c.ToggleSort(FieldRainfallRequirement)
	if !reflect.DeepEqual(c.Expanded(), []string{"2", "5"}) {
		t.Errorf("sort changes reset expansion: %v", c.Expanded())
	}

	sortBefore := c.Sort()
	c.ToggleExpansion("2")
	if c.Sort() != sortBefore {
		t.Errorf("expansion changed sort: %+v", c.Sort())
	}
}

func TestViewOrdersDefaultCatalog(t *testing.T) {
	rows := RowsFromProfiles(catalog.Default().All())

	tests := []struct {
		name    string
		toggles []Field
		want    []string
	}{
		{
			name: "initial base suitability desc",
			want: []string{"Rice (Paddy)", "Wheat", "Maize", "Sugarcane", "Cotton"},
		},
		{
			name:    "suitability asc",
			toggles: []Field{FieldSuitability},
			want:    []string{"Cotton", "Sugarcane", "Maize", "Wheat", "Rice (Paddy)"},
		},
		{
			name:    "profit desc",
			toggles: []Field{FieldProfitForecastPerArea},
			want:    []string{"Sugarcane", "Cotton", "Rice (Paddy)", "Maize", "Wheat"},
		},
		{
			name:    "name desc then asc",
			toggles: []Field{FieldName, FieldName},
			want:    []string{"Cotton", "Maize", "Rice (Paddy)", "Sugarcane", "Wheat"},
		},
		{
			// Cotton and Sugarcane both need 8h; equal keys fall back to name.
			name:    "sunlight desc with name tiebreak",
			toggles: []Field{FieldSunlightRequirement},
			want:    []string{"Cotton", "Sugarcane", "Maize", "Wheat", "Rice (Paddy)"},
		},
		{
			name:    "sunlight asc keeps ascending name tiebreak",
			toggles: []Field{FieldSunlightRequirement, FieldSunlightRequirement},
			want:    []string{"Rice (Paddy)", "Maize", "Wheat", "Cotton", "Sugarcane"},
		},
		{
			name:    "fertilizer need desc by ordinal",
			toggles: []Field{FieldFertilizerNeed},
			want:    []string{"Sugarcane", "Cotton", "Maize", "Rice (Paddy)", "Wheat"},
		},
		{
			name:    "fertilizer type asc lexicographic",
			toggles: []Field{FieldFertilizerType, FieldFertilizerType},
			want:    []string{"Maize", "Sugarcane", "Cotton", "Rice (Paddy)", "Wheat"},
		},
		{
			name:    "rainfall desc",
			toggles: []Field{FieldRainfallRequirement},
			want:    []string{"Sugarcane", "Rice (Paddy)", "Cotton", "Maize", "Wheat"},
		},
		{
			name:    "yield asc",
			toggles: []Field{FieldYieldPerArea, FieldYieldPerArea},
			want:    []string{"Cotton", "Maize", "Wheat", "Rice (Paddy)", "Sugarcane"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := NewController()
			for _, f := range tc.toggles {
				if err := c.ToggleSort(f); err != nil {
					t.Fatal(err)
				}
			}
			got := names(c.View(rows))
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("View() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestViewDoesNotMutateInput(t *testing.T) {
	rows := RowsFromProfiles(catalog.Default().All())
	first := rows[0].Profile.ID

	c := NewController()
	_ = c.ToggleSort(FieldName)
	_ = c.View(rows)

	if rows[0].Profile.ID != first {
		t.Error("View() reordered its input")
	}
}

func TestRowsFromScoredUsesAdjustedSuitability(t *testing.T) {
	scored := []crop.ScoredCrop{
		{Profile: crop.CropProfile{ID: "a", Name: "A", BaseSuitability: 90}, AdjustedSuitability: 10},
		{Profile: crop.CropProfile{ID: "b", Name: "B", BaseSuitability: 10}, AdjustedSuitability: 90},
	}
	got := names(NewController().View(RowsFromScored(scored)))
	if !reflect.DeepEqual(got, []string{"B", "A"}) {
		t.Errorf("expected adjusted order [B A], got %v", got)
	}
}

func TestParseField(t *testing.T) {
	tests := []struct {
		in      string
		want    Field
		wantErr bool
	}{
		{in: "name", want: FieldName},
		{in: "ProfitForecastPerArea", want: FieldProfitForecastPerArea},
		{in: "rainfall_requirement", want: FieldRainfallRequirement},
		{in: " suitability ", want: FieldSuitability},
		{in: "msp", wantErr: true},
	}
	for _, tc := range tests {
		got, err := ParseField(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseField(%q) expected error", tc.in)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Errorf("ParseField(%q) = %q, %v; want %q", tc.in, got, err, tc.want)
		}
	}
}
