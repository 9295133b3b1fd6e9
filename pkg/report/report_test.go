package report_test

import (
	"strings"
	"testing"
	"time"

	"github.com/cropwise/cropwise/pkg/catalog"
	"github.com/cropwise/cropwise/pkg/crop"
	"github.com/cropwise/cropwise/pkg/location"
	"github.com/cropwise/cropwise/pkg/ranking"
	"github.com/cropwise/cropwise/pkg/report"
	"github.com/cropwise/cropwise/pkg/table"
)

func buildDefault(t *testing.T, env crop.EnvironmentalData, ctrl *table.Controller) *report.Report {
	t.Helper()
	loc, err := location.India().Lookup("Punjab")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	r, err := ranking.Rank(catalog.Default().All(), env)
	if err != nil {
		t.Fatalf("Rank: %v", err)
	}
	return report.Build(loc, env, r, ctrl, time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC))
}

func TestBuildHighlightsAndInsights(t *testing.T) {
	rep := buildDefault(t, crop.DefaultEnvironment(), nil)

	if len(rep.Highlights) != report.HighlightCount {
		t.Fatalf("expected %d highlights, got %d", report.HighlightCount, len(rep.Highlights))
	}
	if rep.Highlights[0].Badge != report.TopPickBadge || rep.Highlights[1].Badge != "" {
		t.Errorf("only rank 1 should carry the badge: %+v", rep.Highlights)
	}
	if rep.Highlights[0].Crop.Profile.Name != "Rice (Paddy)" || rep.Highlights[0].Rank != 1 {
		t.Errorf("unexpected top highlight: %+v", rep.Highlights[0])
	}

	wantTip := "Rice (Paddy) is highly suitable for Punjab due to your irrigation setup and favorable soil conditions."
	if rep.Insights.FarmerTip != wantTip {
		t.Errorf("FarmerTip = %q", rep.Insights.FarmerTip)
	}
	if !strings.Contains(rep.Insights.MarketInsight, "₹2,040 per quintal") {
		t.Errorf("MarketInsight = %q", rep.Insights.MarketInsight)
	}

	if len(rep.Schemes) != 4 || rep.Schemes[0].Name != "PM-KISAN" {
		t.Errorf("unexpected schemes: %+v", rep.Schemes)
	}
	if len(rep.Table) != 5 || rep.Sort != table.InitialSort {
		t.Errorf("unexpected table: %d rows, sort %+v", len(rep.Table), rep.Sort)
	}
	if rep.GeneratedAt.IsZero() {
		t.Error("expected GeneratedAt")
	}
}

func TestBuildHighRainfallTip(t *testing.T) {
	env := crop.DefaultEnvironment()
	env.Rainfall = 1400
	rep := buildDefault(t, env, nil)
	if !strings.Contains(rep.Insights.FarmerTip, "adequate rainfall") {
		t.Errorf("FarmerTip = %q", rep.Insights.FarmerTip)
	}
}

func TestBuildUsesControllerState(t *testing.T) {
	ctrl := table.NewController()
	_ = ctrl.ToggleSort(table.FieldProfitForecastPerArea)
	ctrl.ToggleExpansion("3")

	rep := buildDefault(t, crop.DefaultEnvironment(), ctrl)
	if rep.Table[0].Profile.Name != "Sugarcane" {
		t.Errorf("expected profit order, first row %q", rep.Table[0].Profile.Name)
	}
	if len(rep.Expanded) != 1 || rep.Expanded[0] != "3" {
		t.Errorf("Expanded = %v", rep.Expanded)
	}
}

func TestBuildEmptyRanking(t *testing.T) {
	rep := report.Build(crop.LocationData{}, crop.DefaultEnvironment(), &ranking.Result{Crops: []crop.ScoredCrop{}}, nil, time.Now())
	if len(rep.Highlights) != 0 || rep.Insights.FarmerTip != "" {
		t.Errorf("expected no highlights or insights: %+v", rep)
	}
}

func TestFormatINR(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{315, "315"},
		{2040, "2,040"},
		{45000, "45,000"},
		{123456, "1,23,456"},
		{1234567, "12,34,567"},
		{-65000, "-65,000"},
		{1999.6, "2,000"},
	}
	for _, tc := range tests {
		if got := report.FormatINR(tc.in); got != tc.want {
			t.Errorf("FormatINR(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
	if report.MatchPercent(75.83) != 76 {
		t.Error("MatchPercent(75.83) should be 76")
	}
}
