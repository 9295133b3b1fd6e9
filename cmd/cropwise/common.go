package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cropwise/cropwise/internal/catalogstore"
	"github.com/cropwise/cropwise/internal/platform"
	"github.com/cropwise/cropwise/pkg/catalog"
	"github.com/cropwise/cropwise/pkg/config"
	"github.com/cropwise/cropwise/pkg/crop"
	"github.com/cropwise/cropwise/pkg/location"
	"github.com/cropwise/cropwise/pkg/ranking"
	"github.com/cropwise/cropwise/pkg/scoring"
)

// envFlags are the farm inputs shared by recommend and compare.
type envFlags struct {
	state      string
	soil       string
	moisture   int
	rainfall   int
	sunlight   float64
	irrigation bool
}

func (f *envFlags) register(cmd *cobra.Command) {
	d := crop.DefaultEnvironment()
	cmd.Flags().StringVar(&f.state, "state", "", "Indian state name (see `cropwise locations`)")
	cmd.Flags().StringVar(&f.soil, "soil", string(d.SoilType), "Soil type: Alluvial, Black, Red, Sandy or Loamy")
	cmd.Flags().IntVar(&f.moisture, "moisture", d.SoilMoisture, "Soil moisture percent (0-100)")
	cmd.Flags().IntVar(&f.rainfall, "rainfall", d.Rainfall, "Seasonal rainfall in mm (100-2000)")
	cmd.Flags().Float64Var(&f.sunlight, "sunlight", d.Sunlight, "Sunlight hours per day (3-12)")
	cmd.Flags().BoolVar(&f.irrigation, "irrigation", d.IrrigationAvailable, "Irrigation is available")
}

// resolve validates the flags into a location and environment.
func (f *envFlags) resolve() (crop.LocationData, crop.EnvironmentalData, error) {
	var loc crop.LocationData
	if f.state != "" {
		l, err := location.India().Lookup(f.state)
		if err != nil {
			return loc, crop.EnvironmentalData{}, err
		}
		loc = l
	}

	soil, err := crop.ParseSoilType(f.soil)
	if err != nil {
		return loc, crop.EnvironmentalData{}, err
	}
	env := crop.EnvironmentalData{
		SoilType:            soil,
		SoilMoisture:        f.moisture,
		Rainfall:            f.rainfall,
		Sunlight:            f.sunlight,
		IrrigationAvailable: f.irrigation,
	}
	if err := env.Validate(); err != nil {
		return loc, env, err
	}
	return loc, env, nil
}

// loadConfig reads the explicit config path, or the nearest
// .cropwise/config.* above the working directory.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		wd, err := os.Getwd()
		if err == nil {
			path = config.FindConfigFile(wd)
		}
	}
	if path == "" {
		return config.DefaultConfig(), nil
	}
	return config.Load(path)
}

// openCatalog loads the catalog named by the config. Postgres needs
// DATABASE_URL.
func openCatalog(ctx context.Context, cfg *config.Config) (*catalog.Catalog, error) {
	var db *sql.DB
	if cfg.Catalog.Source == config.SourcePostgres {
		dbURL := os.Getenv("DATABASE_URL")
		if dbURL == "" {
			return nil, fmt.Errorf("catalog source postgres requires DATABASE_URL")
		}
		var err error
		db, err = platform.OpenPostgres(dbURL)
		if err != nil {
			return nil, err
		}
		defer db.Close()
	}

	src, err := catalogstore.Open(ctx, cfg.Catalog, db)
	if err != nil {
		return nil, err
	}
	defer catalogstore.Close(src)
	return catalogstore.LoadCatalog(ctx, src)
}

func newRanker(cfg *config.Config) (*ranking.Ranker, error) {
	w, err := cfg.Scoring.Resolve()
	if err != nil {
		return nil, err
	}
	return ranking.NewRanker(scoring.NewEngineWithWeights(w)), nil
}

// rankFromFlags runs the shared config, catalog and ranking steps.
func rankFromFlags(ctx context.Context, configPath string, ef *envFlags) (crop.LocationData, crop.EnvironmentalData, *ranking.Result, error) {
	loc, env, err := ef.resolve()
	if err != nil {
		return loc, env, nil, err
	}
	cfg, err := loadConfig(configPath)
	if err != nil {
		return loc, env, nil, err
	}
	cat, err := openCatalog(ctx, cfg)
	if err != nil {
		return loc, env, nil, err
	}
	ranker, err := newRanker(cfg)
	if err != nil {
		return loc, env, nil, err
	}

	result, err := ranker.Rank(cat.All(), env)
	if err != nil {
		return loc, env, nil, err
	}
	for _, s := range result.Skipped {
		fmt.Fprintf(os.Stderr, "Warning: skipped %s: %s\n", s.Name, s.Reason)
	}
	return loc, env, result, nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
