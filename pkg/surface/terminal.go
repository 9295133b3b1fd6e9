package surface

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cropwise/cropwise/pkg/report"
	"github.com/cropwise/cropwise/pkg/table"
)

// TerminalRenderer renders a Report as colored terminal output.
type TerminalRenderer struct{}

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBold   = "\033[1m"
	colorDim    = "\033[2m"
)

func suitabilityColor(s float64) string {
	if noColor() {
		return ""
	}
	switch {
	case s >= 70:
		return colorGreen
	case s >= 50:
		return colorYellow
	default:
		return colorRed
	}
}

func noColor() bool {
	_, ok := os.LookupEnv("NO_COLOR")
	return ok
}

func bold(s string) string {
	if noColor() {
		return s
	}
	return colorBold + s + colorReset
}

func dim(s string) string {
	if noColor() {
		return s
	}
	return colorDim + s + colorReset
}

func colored(s, color string) string {
	if noColor() || color == "" {
		return s
	}
	return color + s + colorReset
}

func (r *TerminalRenderer) Render(w io.Writer, rep *report.Report) error {
	// Header
	fmt.Fprintf(w, "%s\n", bold(fmt.Sprintf("Crop Recommendations for %s", placeName(rep))))
	env := rep.Environment
	fmt.Fprintf(w, "%s\n\n", dim(fmt.Sprintf("Soil %s, moisture %d%%, rainfall %dmm, sunlight %gh/day, irrigation %s",
		env.SoilType, env.SoilMoisture, env.Rainfall, env.Sunlight, yesNo(env.IrrigationAvailable))))

	if len(rep.Highlights) == 0 {
		fmt.Fprintln(w, "No crops could be ranked.")
		fmt.Fprintln(w)
	}

	// Highlights
	for _, h := range rep.Highlights {
		p := h.Crop.Profile
		pct := fmt.Sprintf("%d%% match", report.MatchPercent(h.Crop.AdjustedSuitability))
		line := fmt.Sprintf("  %d. %s %s (%s)", h.Rank, p.Icon, bold(p.Name), colored(pct, suitabilityColor(h.Crop.AdjustedSuitability)))
		if h.Badge != "" {
			line += " " + colored("★ "+h.Badge, colorYellow)
		}
		fmt.Fprintln(w, line)
		fmt.Fprintf(w, "     Fertilizer %s · Sunlight %gh · Rainfall %dmm · Soil humidity %d%% · Profit ₹%s/acre\n",
			p.FertilizerNeed, p.SunlightRequirement, p.RainfallRequirement, p.SoilHumidityRequirement,
			report.FormatINR(p.ProfitForecastPerArea))
	}
	if len(rep.Highlights) > 0 {
		fmt.Fprintln(w)
	}

	// Insights
	if rep.Insights.FarmerTip != "" {
		fmt.Fprintln(w, "Farmer tip:")
		for _, line := range wrapText(rep.Insights.FarmerTip, 70) {
			fmt.Fprintf(w, "    %s\n", line)
		}
		fmt.Fprintln(w, "Market insight:")
		for _, line := range wrapText(rep.Insights.MarketInsight, 70) {
			fmt.Fprintf(w, "    %s\n", line)
		}
		fmt.Fprintln(w)
	}

	// Comparison table
	if len(rep.Table) > 0 {
		fmt.Fprintln(w, "Detailed comparison:")
		if err := RenderTable(w, rep.Table, rep.Sort, rep.Expanded); err != nil {
			return err
		}
		fmt.Fprintln(w)
	}

	if len(rep.Skipped) > 0 {
		fmt.Fprintln(w, colored("Skipped:", colorRed))
		for _, s := range rep.Skipped {
			fmt.Fprintf(w, "  • %s %s\n", s.Name, dim(s.Reason))
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, "Government schemes:")
	for _, s := range rep.Schemes {
		fmt.Fprintf(w, "  • %s %s\n", s.Name, dim("("+s.Description+")"))
	}

	return nil
}

// RenderTable prints comparison rows with the sort marker on the active
// column and detail lines under expanded rows.
func RenderTable(w io.Writer, rows []table.Row, state table.SortState, expanded []string) error {
	open := make(map[string]bool, len(expanded))
	for _, id := range expanded {
		open[id] = true
	}

	marker := func(f table.Field, label string) string {
		if state.Field != f {
			return label
		}
		if state.Direction == table.Ascending {
			return label + "↑"
		}
		return label + "↓"
	}

	fmt.Fprintf(w, "  %-3s %-16s %-14s %-8s %-10s %-9s %-8s %-9s %s\n",
		"", marker(table.FieldName, "Crop"), marker(table.FieldFertilizerType, "Fertilizer"),
		marker(table.FieldFertilizerNeed, "Need"), marker(table.FieldRainfallRequirement, "Rainfall"),
		marker(table.FieldSunlightRequirement, "Sun"), marker(table.FieldYieldPerArea, "Yield"),
		marker(table.FieldSuitability, "Match"), marker(table.FieldProfitForecastPerArea, "Profit"))

	for _, row := range rows {
		p := row.Profile
		toggle := "▸"
		if open[p.ID] {
			toggle = "▾"
		}
		fmt.Fprintf(w, "  %-3s %-16s %-14s %-8s %-10s %-9s %-8s %-9s ₹%s\n",
			toggle, truncate(p.Name, 16), truncate(p.FertilizerType, 14), p.FertilizerNeed,
			fmt.Sprintf("%dmm", p.RainfallRequirement), fmt.Sprintf("%gh", p.SunlightRequirement),
			fmt.Sprintf("%gq", p.YieldPerArea), fmt.Sprintf("%d%%", report.MatchPercent(row.Suitability)),
			report.FormatINR(p.ProfitForecastPerArea))
		if open[p.ID] {
			fmt.Fprintf(w, "      %s\n", dim(fmt.Sprintf("MSP ₹%s/quintal · Soil humidity need %d%% · Suitability %d/100",
				report.FormatINR(p.MinimumSupportPrice), p.SoilHumidityRequirement, report.MatchPercent(row.Suitability))))
		}
	}
	return nil
}

func placeName(rep *report.Report) string {
	if rep.Location.State == "" {
		return "your location"
	}
	if rep.Location.District != "" {
		return rep.Location.State + " (" + rep.Location.District + ")"
	}
	return rep.Location.State
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// wrapText wraps a string at the given width, returning lines.
func wrapText(s string, width int) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	current := words[0]

	for _, word := range words[1:] {
		if len(current)+1+len(word) > width {
			lines = append(lines, current)
			current = word
		} else {
			current += " " + word
		}
	}
	lines = append(lines, current)
	return lines
}
