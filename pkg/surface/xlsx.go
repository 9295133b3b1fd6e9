package surface

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/cropwise/cropwise/pkg/report"
)

// Workbook sheet names.
const (
	SheetRecommendations = "Recommendations"
	SheetComparison      = "Comparison"
	SheetSchemes         = "Schemes"
)

// XLSXRenderer writes the report as an Excel workbook.
type XLSXRenderer struct{}

func (r *XLSXRenderer) Render(w io.Writer, rep *report.Report) error {
	f, err := BuildWorkbook(rep)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// BuildWorkbook lays the report out over three sheets.
func BuildWorkbook(rep *report.Report) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", SheetRecommendations); err != nil {
		f.Close()
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	for _, name := range []string{SheetComparison, SheetSchemes} {
		if _, err := f.NewSheet(name); err != nil {
			f.Close()
			return nil, fmt.Errorf("create sheet %s: %w", name, err)
		}
	}

	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E2F0D9"}, Pattern: 1},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("create header style: %w", err)
	}

	if err := fillRecommendations(f, rep, header); err != nil {
		f.Close()
		return nil, err
	}
	if err := fillComparison(f, rep, header); err != nil {
		f.Close()
		return nil, err
	}
	if err := fillSchemes(f, rep, header); err != nil {
		f.Close()
		return nil, err
	}

	f.SetActiveSheet(0)
	return f, nil
}

func fillRecommendations(f *excelize.File, rep *report.Report, header int) error {
	sheet := SheetRecommendations
	rows := [][]interface{}{
		{"Location", placeName(rep)},
		{"Soil type", string(rep.Environment.SoilType)},
		{"Soil moisture (%)", rep.Environment.SoilMoisture},
		{"Rainfall (mm)", rep.Environment.Rainfall},
		{"Sunlight (h/day)", rep.Environment.Sunlight},
		{"Irrigation", yesNo(rep.Environment.IrrigationAvailable)},
		{"Generated", rep.GeneratedAt.Format("2006-01-02 15:04 MST")},
		{},
		{"Rank", "Crop", "Suitability", "Badge", "Profit/acre (INR)", "MSP/quintal (INR)"},
	}
	headerRow := len(rows)

	for i, sc := range rep.Ranked {
		badge := ""
		if i == 0 {
			badge = report.TopPickBadge
		}
		rows = append(rows, []interface{}{
			i + 1, sc.Profile.Name, round2(sc.AdjustedSuitability), badge,
			sc.Profile.ProfitForecastPerArea, sc.Profile.MinimumSupportPrice,
		})
	}

	if rep.Insights.FarmerTip != "" {
		rows = append(rows, []interface{}{},
			[]interface{}{"Farmer tip", rep.Insights.FarmerTip},
			[]interface{}{"Market insight", rep.Insights.MarketInsight})
	}

	if err := writeRows(f, sheet, rows); err != nil {
		return err
	}
	if err := styleRow(f, sheet, headerRow, 6, header); err != nil {
		return err
	}
	return f.SetColWidth(sheet, "A", "B", 22)
}

func fillComparison(f *excelize.File, rep *report.Report, header int) error {
	sheet := SheetComparison
	rows := [][]interface{}{
		{"Crop", "Fertilizer type", "Fertilizer need", "Rainfall (mm)", "Sunlight (h)",
			"Yield (q/acre)", "Suitability", "Profit/acre (INR)", "MSP/quintal (INR)", "Soil humidity (%)"},
	}
	for _, row := range rep.Table {
		p := row.Profile
		rows = append(rows, []interface{}{
			p.Name, p.FertilizerType, string(p.FertilizerNeed), p.RainfallRequirement, p.SunlightRequirement,
			p.YieldPerArea, round2(row.Suitability), p.ProfitForecastPerArea, p.MinimumSupportPrice,
			p.SoilHumidityRequirement,
		})
	}
	if err := writeRows(f, sheet, rows); err != nil {
		return err
	}
	if err := styleRow(f, sheet, 1, 10, header); err != nil {
		return err
	}
	return f.SetColWidth(sheet, "A", "J", 16)
}

func fillSchemes(f *excelize.File, rep *report.Report, header int) error {
	sheet := SheetSchemes
	rows := [][]interface{}{{"Scheme", "Description"}}
	for _, s := range rep.Schemes {
		rows = append(rows, []interface{}{s.Name, s.Description})
	}
	if err := writeRows(f, sheet, rows); err != nil {
		return err
	}
	return styleRow(f, sheet, 1, 2, header)
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		r := row
		if err := f.SetSheetRow(sheet, cell, &r); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

func styleRow(f *excelize.File, sheet string, row, cols, style int) error {
	first, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(cols, row)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, first, last, style)
}

func round2(v float64) float64 {
	return float64(int64(v*100+0.5)) / 100
}
