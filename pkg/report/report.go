// Package report assembles a ranking into the recommendation report the
// renderers in pkg/surface format: highlights, farmer and market insights and
// the support scheme list.
package report

import (
	"fmt"
	"time"

	"github.com/cropwise/cropwise/pkg/crop"
	"github.com/cropwise/cropwise/pkg/ranking"
	"github.com/cropwise/cropwise/pkg/table"
)

// HighlightCount is how many leading crops get a summary card.
const HighlightCount = 3

// TopPickBadge labels the rank-0 crop.
const TopPickBadge = "Most Profitable"

// Scheme is a government support programme shown alongside results.
type Scheme struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// GovernmentSchemes is the static list of support programmes.
var GovernmentSchemes = []Scheme{
	{Name: "PM-KISAN", Description: "Direct income support"},
	{Name: "Crop Insurance", Description: "Risk protection scheme"},
	{Name: "MSP Support", Description: "Minimum support price"},
	{Name: "Fertilizer Subsidy", Description: "Input cost reduction"},
}

// Highlight is one of the leading crops with its display rank.
type Highlight struct {
	Rank  int             `json:"rank"` // 1-based
	Badge string          `json:"badge,omitempty"`
	Crop  crop.ScoredCrop `json:"crop"`
}

// Insights are the text tips shown under the highlights. Empty when nothing
// was ranked.
type Insights struct {
	FarmerTip     string `json:"farmer_tip,omitempty"`
	MarketInsight string `json:"market_insight,omitempty"`
}

// Report is the full recommendation output for one location and environment.
type Report struct {
	Location    crop.LocationData      `json:"location"`
	Environment crop.EnvironmentalData `json:"environment"`
	Ranked      []crop.ScoredCrop      `json:"ranked"`
	Skipped     []ranking.Skipped      `json:"skipped,omitempty"`
	Highlights  []Highlight            `json:"highlights"`
	Insights    Insights               `json:"insights"`
	Schemes     []Scheme               `json:"schemes"`
	Table       []table.Row            `json:"table"`
	Sort        table.SortState        `json:"sort"`
	Expanded    []string               `json:"expanded,omitempty"`
	GeneratedAt time.Time              `json:"generated_at"`
}

// Build assembles a report. A nil controller renders the table in its
// initial state.
func Build(loc crop.LocationData, env crop.EnvironmentalData, r *ranking.Result, ctrl *table.Controller, now time.Time) *Report {
	if ctrl == nil {
		ctrl = table.NewController()
	}

	rep := &Report{
		Location:    loc,
		Environment: env,
		Ranked:      r.Crops,
		Skipped:     r.Skipped,
		Schemes:     GovernmentSchemes,
		Sort:        ctrl.Sort(),
		Expanded:    ctrl.Expanded(),
		GeneratedAt: now.UTC(),
	}

	for i, sc := range r.TopN(HighlightCount) {
		h := Highlight{Rank: i + 1, Crop: sc}
		if i == 0 {
			h.Badge = TopPickBadge
		}
		rep.Highlights = append(rep.Highlights, h)
	}

	if top, ok := r.Top(); ok {
		rep.Insights = InsightsFor(loc, env, top)
	}

	rep.Table = ctrl.View(table.RowsFromScored(r.Crops))
	return rep
}

// InsightsFor writes the farmer tip and market insight for the top crop.
func InsightsFor(loc crop.LocationData, env crop.EnvironmentalData, top crop.ScoredCrop) Insights {
	reason := "your irrigation setup"
	if env.Rainfall > 1000 {
		reason = "adequate rainfall"
	}
	state := loc.State
	if state == "" {
		state = "your region"
	}

	return Insights{
		FarmerTip: fmt.Sprintf("%s is highly suitable for %s due to %s and favorable soil conditions.",
			top.Profile.Name, state, reason),
		MarketInsight: fmt.Sprintf("Current MSP for %s is ₹%s per quintal. Government schemes provide additional support for quality produce.",
			top.Profile.Name, FormatINR(top.Profile.MinimumSupportPrice)),
	}
}
