package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cropwise/cropwise/pkg/catalog"
	"github.com/cropwise/cropwise/pkg/crop"
	"github.com/cropwise/cropwise/pkg/table"
)

// missingConfig points at a config file that does not exist, so commands run
// with defaults regardless of the working directory.
func missingConfig(t *testing.T) string {
	return filepath.Join(t.TempDir(), "config.yaml")
}

func TestRecommendCmdFlags(t *testing.T) {
	path := ""
	cmd := newRecommendCmd(&path)
	f := cmd.Flags()

	outputFmt, _ := f.GetString("output")
	if outputFmt != "text" {
		t.Errorf("default output = %q, want text", outputFmt)
	}
	rainfall, _ := f.GetInt("rainfall")
	if rainfall != 800 {
		t.Errorf("default rainfall = %d, want 800", rainfall)
	}
	soil, _ := f.GetString("soil")
	if soil != "Alluvial" {
		t.Errorf("default soil = %q, want Alluvial", soil)
	}

	for _, flag := range []string{"state", "soil", "moisture", "rainfall", "sunlight", "irrigation", "output", "out"} {
		if f.Lookup(flag) == nil {
			t.Errorf("missing flag: %s", flag)
		}
	}
}

func TestCompareCmdFlags(t *testing.T) {
	path := ""
	cmd := newCompareCmd(&path)
	f := cmd.Flags()

	for _, flag := range []string{"sort", "expand", "output", "rainfall", "irrigation"} {
		if f.Lookup(flag) == nil {
			t.Errorf("missing flag: %s", flag)
		}
	}
	if err := f.Parse([]string{"--sort", "name", "--sort", "name", "--expand", "1"}); err != nil {
		t.Fatal(err)
	}
	sorts, _ := f.GetStringArray("sort")
	if len(sorts) != 2 {
		t.Errorf("expected repeated --sort, got %v", sorts)
	}
}

func TestEnvFlagsResolve(t *testing.T) {
	tests := []struct {
		name    string
		flags   envFlags
		wantErr bool
	}{
		{name: "defaults", flags: envFlags{soil: "Alluvial", moisture: 30, rainfall: 800, sunlight: 7}},
		{name: "state and lowercase soil", flags: envFlags{state: "kerala", soil: "loamy", moisture: 60, rainfall: 1800, sunlight: 6}},
		{name: "unknown state", flags: envFlags{state: "Atlantis", soil: "Alluvial", moisture: 30, rainfall: 800, sunlight: 7}, wantErr: true},
		{name: "unknown soil", flags: envFlags{soil: "Peat", moisture: 30, rainfall: 800, sunlight: 7}, wantErr: true},
		{name: "rainfall too high", flags: envFlags{soil: "Alluvial", moisture: 30, rainfall: 2500, sunlight: 7}, wantErr: true},
		{name: "sunlight too low", flags: envFlags{soil: "Alluvial", moisture: 30, rainfall: 800, sunlight: 2}, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			loc, env, err := tc.flags.resolve()
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tc.flags.state != "" && loc.District != "District Center" {
				t.Errorf("unexpected location: %+v", loc)
			}
			if env.Rainfall != tc.flags.rainfall {
				t.Errorf("rainfall = %d", env.Rainfall)
			}
		})
	}
}

func TestApplyToggles(t *testing.T) {
	ctrl, err := applyToggles([]string{"profit_forecast_per_area", "name", "name"}, []string{"2", "3", "2"})
	if err != nil {
		t.Fatal(err)
	}
	if got := ctrl.Sort(); got.Field != table.FieldName || got.Direction != table.Ascending {
		t.Errorf("sort = %+v", got)
	}
	if got := ctrl.Expanded(); len(got) != 1 || got[0] != "3" {
		t.Errorf("expanded = %v", got)
	}

	if _, err := applyToggles([]string{"colour"}, nil); err == nil {
		t.Error("expected unknown field error")
	}
}

func TestRunCompareJSON(t *testing.T) {
	var buf bytes.Buffer
	ef := envFlags{soil: "Alluvial", moisture: 30, rainfall: 800, sunlight: 7}
	err := runCompare(context.Background(), compareOpts{
		configPath: missingConfig(t),
		env:        &ef,
		sorts:      []string{"fertilizerType", "fertilizerType"},
		outputFmt:  "json",
		out:        &buf,
	})
	if err != nil {
		t.Fatalf("runCompare: %v", err)
	}

	var got struct {
		Rows []table.Row `json:"rows"`
	}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, r := range got.Rows {
		names = append(names, r.Profile.Name)
	}
	want := "Maize,Sugarcane,Cotton,Rice (Paddy),Wheat"
	if strings.Join(names, ",") != want {
		t.Errorf("rows = %v, want %s", names, want)
	}
}

func TestRunCompareText(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	var buf bytes.Buffer
	ef := envFlags{soil: "Alluvial", moisture: 30, rainfall: 800, sunlight: 7}
	err := runCompare(context.Background(), compareOpts{
		configPath: missingConfig(t),
		env:        &ef,
		expand:     []string{"1"},
		outputFmt:  "text",
		out:        &buf,
	})
	if err != nil {
		t.Fatalf("runCompare: %v", err)
	}
	if !strings.Contains(buf.String(), "Match↓") || !strings.Contains(buf.String(), "MSP ₹2,040/quintal") {
		t.Errorf("unexpected table:\n%s", buf.String())
	}
}

func TestRunRecommendToFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "report.md")
	ef := envFlags{state: "Punjab", soil: "Alluvial", moisture: 30, rainfall: 800, sunlight: 7}
	err := runRecommend(context.Background(), recommendOpts{
		configPath: missingConfig(t),
		env:        &ef,
		outputFmt:  "markdown",
		outFile:    out,
	})
	if err != nil {
		t.Fatalf("runRecommend: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "# Crop Recommendations for Punjab") {
		t.Errorf("unexpected report:\n%s", data)
	}
}

func TestRunRecommendXLSXNeedsOut(t *testing.T) {
	for _, format := range []string{"xlsx", "XLSX", "Excel"} {
		t.Run(format, func(t *testing.T) {
			ef := envFlags{soil: "Alluvial", moisture: 30, rainfall: 800, sunlight: 7}
			err := runRecommend(context.Background(), recommendOpts{configPath: missingConfig(t), env: &ef, outputFmt: format})
			if err == nil || !strings.Contains(err.Error(), "requires --out") {
				t.Errorf("expected --out error, got %v", err)
			}
		})
	}
}

func TestRecommendUsesConfiguredCatalog(t *testing.T) {
	dir := t.TempDir()
	catPath := filepath.Join(dir, "crops.yaml")
	if err := crop.SaveCatalogFile(catPath, catalog.DefaultProfiles()[3:4]); err != nil {
		t.Fatal(err)
	}
	cfgPath := filepath.Join(dir, "config.yaml")
	cfg := "catalog:\n  source: file\n  path: " + catPath + "\n"
	if err := os.WriteFile(cfgPath, []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}

	ef := envFlags{soil: "Alluvial", moisture: 30, rainfall: 800, sunlight: 7}
	_, _, result, err := rankFromFlags(context.Background(), cfgPath, &ef)
	if err != nil {
		t.Fatalf("rankFromFlags: %v", err)
	}
	if len(result.Crops) != 1 || result.Crops[0].Profile.Name != "Cotton" {
		t.Errorf("unexpected ranking: %+v", result.Crops)
	}
}

func TestCatalogValidateCmd(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.json")
	if err := crop.SaveCatalogFile(good, catalog.DefaultProfiles()); err != nil {
		t.Fatal(err)
	}
	bad := filepath.Join(dir, "bad.json")
	profiles := catalog.DefaultProfiles()
	profiles[0].Name = ""
	if err := crop.SaveCatalogFile(bad, profiles); err != nil {
		t.Fatal(err)
	}

	cmd := newCatalogValidateCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{good})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("validate good: %v", err)
	}
	if !strings.Contains(buf.String(), "5 crops OK") {
		t.Errorf("output = %q", buf.String())
	}

	cmd = newCatalogValidateCmd()
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs([]string{bad})
	if err := cmd.Execute(); err == nil {
		t.Error("expected validation error")
	}
}

func TestCatalogPublishToFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.yaml")
	if err := crop.SaveCatalogFile(src, catalog.DefaultProfiles()); err != nil {
		t.Fatal(err)
	}
	dest := filepath.Join(dir, "published", "catalog.json")
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		t.Fatal(err)
	}

	cmd := newCatalogPublishCmd()
	cmd.SetArgs([]string{src, "--source", "file", "--path", dest})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("publish: %v", err)
	}

	profiles, err := crop.LoadCatalogFile(dest)
	if err != nil {
		t.Fatal(err)
	}
	if len(profiles) != 5 {
		t.Errorf("published %d profiles, want 5", len(profiles))
	}
}

func TestLocationsCmd(t *testing.T) {
	cmd := newLocationsCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"bengal"})
	if err := cmd.Execute(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "West Bengal") {
		t.Errorf("output = %q", buf.String())
	}

	cmd = newLocationsCmd()
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs([]string{"atlantis"})
	if err := cmd.Execute(); err == nil {
		t.Error("expected no-match error")
	}
}

func TestFirstNonEmpty(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"a", "b", "c"}, "a"},
		{[]string{"", "b", "c"}, "b"},
		{[]string{"", "", "c"}, "c"},
		{[]string{"", "", ""}, ""},
	}

	for _, tt := range tests {
		got := firstNonEmpty(tt.args...)
		if got != tt.want {
			t.Errorf("firstNonEmpty(%v) = %q, want %q", tt.args, got, tt.want)
		}
	}
}
