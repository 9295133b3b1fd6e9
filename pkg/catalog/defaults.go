package catalog

import "github.com/cropwise/cropwise/pkg/crop"

// DefaultProfiles is the canonical crop table. Money values are INR per acre
// (profit) and INR per quintal (MSP); yield is quintal per acre.
func DefaultProfiles() []crop.CropProfile {
	return []crop.CropProfile{
		{
			ID:                      "1",
			Name:                    "Rice (Paddy)",
			Icon:                    "🌾",
			FertilizerNeed:          crop.FertilizerMedium,
			SunlightRequirement:     6,
			RainfallRequirement:     1200,
			SoilHumidityRequirement: 80,
			ProfitForecastPerArea:   45000,
			YieldPerArea:            35,
			MinimumSupportPrice:     2040,
			FertilizerType:          "NPK 20:20:0",
			BaseSuitability:         85,
		},
		{
			ID:                      "2",
			Name:                    "Wheat",
			Icon:                    "🌾",
			FertilizerNeed:          crop.FertilizerMedium,
			SunlightRequirement:     7,
			RainfallRequirement:     600,
			SoilHumidityRequirement: 50,
			ProfitForecastPerArea:   38000,
			YieldPerArea:            28,
			MinimumSupportPrice:     2125,
			FertilizerType:          "Urea + DAP",
			BaseSuitability:         78,
		},
		{
			ID:                      "3",
			Name:                    "Sugarcane",
			Icon:                    "🎋",
			FertilizerNeed:          crop.FertilizerHigh,
			SunlightRequirement:     8,
			RainfallRequirement:     1500,
			SoilHumidityRequirement: 70,
			ProfitForecastPerArea:   65000,
			YieldPerArea:            700,
			MinimumSupportPrice:     315,
			FertilizerType:          "NPK 15:15:15",
			BaseSuitability:         72,
		},
		{
			ID:                      "4",
			Name:                    "Cotton",
			Icon:                    "🌸",
			FertilizerNeed:          crop.FertilizerMedium,
			SunlightRequirement:     8,
			RainfallRequirement:     800,
			SoilHumidityRequirement: 40,
			ProfitForecastPerArea:   55000,
			YieldPerArea:            18,
			MinimumSupportPrice:     6080,
			FertilizerType:          "NPK 17:17:17",
			BaseSuitability:         68,
		},
		{
			ID:                      "5",
			Name:                    "Maize",
			Icon:                    "🌽",
			FertilizerNeed:          crop.FertilizerMedium,
			SunlightRequirement:     7,
			RainfallRequirement:     700,
			SoilHumidityRequirement: 60,
			ProfitForecastPerArea:   42000,
			YieldPerArea:            25,
			MinimumSupportPrice:     1870,
			FertilizerType:          "NPK 12:32:16",
			BaseSuitability:         75,
		},
	}
}

var defaultCatalog = MustNew(DefaultProfiles())

// Default returns the shared built-in catalog.
func Default() *Catalog { return defaultCatalog }
