package surface

import (
	"fmt"
	"io"
	"strings"

	"github.com/cropwise/cropwise/pkg/report"
	"github.com/cropwise/cropwise/pkg/table"
)

// MarkdownRenderer writes a Report as GitHub-flavored Markdown.
type MarkdownRenderer struct{}

func (r *MarkdownRenderer) Render(w io.Writer, rep *report.Report) error {
	_, err := io.WriteString(w, BuildMarkdown(rep))
	return err
}

// BuildMarkdown renders the report body shared by the Markdown and HTML
// outputs.
func BuildMarkdown(rep *report.Report) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# Crop Recommendations for %s\n\n", placeName(rep)))
	env := rep.Environment
	sb.WriteString(fmt.Sprintf("_Soil %s · moisture %d%% · rainfall %dmm · sunlight %gh/day · irrigation %s · generated %s_\n\n",
		env.SoilType, env.SoilMoisture, env.Rainfall, env.Sunlight, yesNo(env.IrrigationAvailable),
		rep.GeneratedAt.Format("2006-01-02 15:04 MST")))

	// Highlights
	sb.WriteString("## Top crops\n\n")
	if len(rep.Highlights) == 0 {
		sb.WriteString("No crops could be ranked.\n\n")
	}
	for _, h := range rep.Highlights {
		p := h.Crop.Profile
		badge := ""
		if h.Badge != "" {
			badge = fmt.Sprintf(" ⭐ **%s**", h.Badge)
		}
		sb.WriteString(fmt.Sprintf("%d. %s **%s** (%d%% match)%s\n", h.Rank, p.Icon, p.Name,
			report.MatchPercent(h.Crop.AdjustedSuitability), badge))
		sb.WriteString(fmt.Sprintf("   - Fertilizer need %s, sunlight %gh, rainfall %dmm, soil humidity %d%%\n",
			p.FertilizerNeed, p.SunlightRequirement, p.RainfallRequirement, p.SoilHumidityRequirement))
		sb.WriteString(fmt.Sprintf("   - Profit forecast ₹%s per acre\n", report.FormatINR(p.ProfitForecastPerArea)))
	}
	sb.WriteString("\n")

	// Insights
	if rep.Insights.FarmerTip != "" {
		sb.WriteString("## Insights\n\n")
		sb.WriteString(fmt.Sprintf("- **Farmer tip:** %s\n", rep.Insights.FarmerTip))
		sb.WriteString(fmt.Sprintf("- **Market insight:** %s\n\n", rep.Insights.MarketInsight))
	}

	// Comparison
	if len(rep.Table) > 0 {
		sb.WriteString("## Detailed comparison\n\n")
		sb.WriteString(fmt.Sprintf("Sorted by %s (%s).\n\n", rep.Sort.Field, directionLabel(rep.Sort.Direction)))
		sb.WriteString("| Crop | Fertilizer | Need | Rainfall | Sunlight | Yield | Match | Profit/acre | MSP/quintal |\n")
		sb.WriteString("|------|------------|------|----------|----------|-------|-------|-------------|-------------|\n")
		for _, row := range rep.Table {
			p := row.Profile
			sb.WriteString(fmt.Sprintf("| %s | %s | %s | %dmm | %gh | %g | %d%% | ₹%s | ₹%s |\n",
				escapeCell(p.Name), escapeCell(p.FertilizerType), p.FertilizerNeed, p.RainfallRequirement,
				p.SunlightRequirement, p.YieldPerArea, report.MatchPercent(row.Suitability),
				report.FormatINR(p.ProfitForecastPerArea), report.FormatINR(p.MinimumSupportPrice)))
		}
		sb.WriteString("\n")
	}

	if len(rep.Skipped) > 0 {
		sb.WriteString("## Skipped profiles\n\n")
		for _, s := range rep.Skipped {
			sb.WriteString(fmt.Sprintf("- %s: %s\n", s.Name, s.Reason))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("## Government schemes\n\n")
	for _, s := range rep.Schemes {
		sb.WriteString(fmt.Sprintf("- **%s**: %s\n", s.Name, s.Description))
	}

	return sb.String()
}

func directionLabel(d table.Direction) string {
	if d == table.Ascending {
		return "ascending"
	}
	return "descending"
}

// escapeCell keeps catalog text inside one GFM table cell.
func escapeCell(s string) string {
	return cellEscaper.Replace(s)
}

var cellEscaper = strings.NewReplacer("|", `\|`, "\r\n", " ", "\n", " ", "\r", " ")
