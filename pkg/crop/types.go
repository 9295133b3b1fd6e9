// Package crop defines the value types shared by the catalog, the scoring
// engine, the ranker and the comparison table.
package crop

import (
	"fmt"
	"math"
	"strings"
)

// Domain bounds for EnvironmentalData. Input collaborators clamp to these
// before handing data to the engine; the engine rejects anything outside.
const (
	MinSoilMoisture = 0
	MaxSoilMoisture = 100
	MinRainfall     = 100  // mm per season
	MaxRainfall     = 2000 // mm per season
	MinSunlight     = 3.0  // hours per day
	MaxSunlight     = 12.0 // hours per day
)

// SoilType classifies the soil at the selected location.
type SoilType string

const (
	SoilAlluvial SoilType = "Alluvial"
	SoilBlack    SoilType = "Black"
	SoilRed      SoilType = "Red"
	SoilSandy    SoilType = "Sandy"
	SoilLoamy    SoilType = "Loamy"
)

// SoilTypes lists every soil type in display order.
var SoilTypes = []SoilType{SoilAlluvial, SoilBlack, SoilRed, SoilSandy, SoilLoamy}

// Valid reports whether s is one of the known soil types.
func (s SoilType) Valid() bool {
	for _, v := range SoilTypes {
		if s == v {
			return true
		}
	}
	return false
}

// ParseSoilType matches s case-insensitively against the known soil types.
func ParseSoilType(s string) (SoilType, error) {
	for _, v := range SoilTypes {
		if strings.EqualFold(strings.TrimSpace(s), string(v)) {
			return v, nil
		}
	}
	return "", fmt.Errorf("unknown soil type %q", s)
}

// FertilizerNeed is the relative fertilizer demand of a crop.
type FertilizerNeed string

const (
	FertilizerLow    FertilizerNeed = "Low"
	FertilizerMedium FertilizerNeed = "Medium"
	FertilizerHigh   FertilizerNeed = "High"
)

// Rank orders fertilizer needs: Low < Medium < High. Unknown values rank 0.
func (f FertilizerNeed) Rank() int {
	switch f {
	case FertilizerLow:
		return 1
	case FertilizerMedium:
		return 2
	case FertilizerHigh:
		return 3
	default:
		return 0
	}
}

// Valid reports whether f is Low, Medium or High.
func (f FertilizerNeed) Valid() bool { return f.Rank() > 0 }

// ParseFertilizerNeed matches s case-insensitively.
func ParseFertilizerNeed(s string) (FertilizerNeed, error) {
	for _, v := range []FertilizerNeed{FertilizerLow, FertilizerMedium, FertilizerHigh} {
		if strings.EqualFold(strings.TrimSpace(s), string(v)) {
			return v, nil
		}
	}
	return "", fmt.Errorf("unknown fertilizer need %q", s)
}

// Coordinates is a WGS84 point.
type Coordinates struct {
	Latitude  float64 `json:"latitude" yaml:"latitude"`
	Longitude float64 `json:"longitude" yaml:"longitude"`
}

// Validate checks lat in [-90,90] and lon in [-180,180].
func (c Coordinates) Validate() error {
	if math.IsNaN(c.Latitude) || c.Latitude < -90 || c.Latitude > 90 {
		return &InputOutOfRangeError{Field: "latitude", Value: c.Latitude, Min: -90, Max: 90}
	}
	if math.IsNaN(c.Longitude) || c.Longitude < -180 || c.Longitude > 180 {
		return &InputOutOfRangeError{Field: "longitude", Value: c.Longitude, Min: -180, Max: 180}
	}
	return nil
}

// LocationData is the place a recommendation is made for. It is context for
// display only and never enters the scoring math.
type LocationData struct {
	State       string      `json:"state" yaml:"state"`
	District    string      `json:"district" yaml:"district"`
	Coordinates Coordinates `json:"coordinates" yaml:"coordinates"`
}

// EnvironmentalData is the user-supplied growing conditions.
type EnvironmentalData struct {
	SoilType            SoilType `json:"soil_type" yaml:"soil_type"`
	SoilMoisture        int      `json:"soil_moisture" yaml:"soil_moisture"`               // percent
	Rainfall            int      `json:"rainfall" yaml:"rainfall"`                         // mm per season
	Sunlight            float64  `json:"sunlight" yaml:"sunlight"`                         // hours per day
	IrrigationAvailable bool     `json:"irrigation_available" yaml:"irrigation_available"` // any irrigation source
}

// DefaultEnvironment returns the conditions the input form starts with.
func DefaultEnvironment() EnvironmentalData {
	return EnvironmentalData{
		SoilType:     SoilAlluvial,
		SoilMoisture: 30,
		Rainfall:     800,
		Sunlight:     7,
	}
}

// Validate returns an *InputOutOfRangeError for the first field outside its
// documented domain.
func (e EnvironmentalData) Validate() error {
	if !e.SoilType.Valid() {
		return &InputOutOfRangeError{Field: "soil_type", Text: string(e.SoilType)}
	}
	if e.SoilMoisture < MinSoilMoisture || e.SoilMoisture > MaxSoilMoisture {
		return &InputOutOfRangeError{Field: "soil_moisture", Value: float64(e.SoilMoisture), Min: MinSoilMoisture, Max: MaxSoilMoisture}
	}
	if e.Rainfall < MinRainfall || e.Rainfall > MaxRainfall {
		return &InputOutOfRangeError{Field: "rainfall", Value: float64(e.Rainfall), Min: MinRainfall, Max: MaxRainfall}
	}
	if math.IsNaN(e.Sunlight) || e.Sunlight < MinSunlight || e.Sunlight > MaxSunlight {
		return &InputOutOfRangeError{Field: "sunlight", Value: e.Sunlight, Min: MinSunlight, Max: MaxSunlight}
	}
	return nil
}

// CropProfile is one static catalog entry.
type CropProfile struct {
	ID                      string         `json:"id" yaml:"id"`
	Name                    string         `json:"name" yaml:"name"`
	Icon                    string         `json:"icon,omitempty" yaml:"icon,omitempty"`
	FertilizerNeed          FertilizerNeed `json:"fertilizer_need" yaml:"fertilizer_need"`
	SunlightRequirement     float64        `json:"sunlight_requirement" yaml:"sunlight_requirement"`           // hours per day
	RainfallRequirement     int            `json:"rainfall_requirement" yaml:"rainfall_requirement"`           // mm
	SoilHumidityRequirement int            `json:"soil_humidity_requirement" yaml:"soil_humidity_requirement"` // percent
	ProfitForecastPerArea   float64        `json:"profit_forecast_per_area" yaml:"profit_forecast_per_area"`   // INR per acre
	YieldPerArea            float64        `json:"yield_per_area" yaml:"yield_per_area"`                       // quintal per acre
	MinimumSupportPrice     float64        `json:"minimum_support_price" yaml:"minimum_support_price"`         // INR per quintal
	FertilizerType          string         `json:"fertilizer_type" yaml:"fertilizer_type"`
	BaseSuitability         int            `json:"base_suitability" yaml:"base_suitability"`
}

// ScoredCrop pairs a profile with its environment-adjusted suitability.
type ScoredCrop struct {
	Profile             CropProfile `json:"profile"`
	AdjustedSuitability float64     `json:"adjusted_suitability"`
}
