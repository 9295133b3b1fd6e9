package catalogstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/cropwise/cropwise/pkg/catalog"
	"github.com/cropwise/cropwise/pkg/crop"
)

// PostgresStore keeps crop profiles in the crop_profiles table.
type PostgresStore struct {
	db *sql.DB
}

// StoredProfile is a profile row with its catalog position.
type StoredProfile struct {
	Profile   crop.CropProfile
	Position  int
	UpdatedAt time.Time
}

// NewPostgresStore creates a new PostgresStore.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const profileColumns = `id, name, icon, fertilizer_need, sunlight_requirement, rainfall_requirement,
		        soil_humidity_requirement, profit_forecast_per_area, yield_per_area,
		        minimum_support_price, fertilizer_type, base_suitability, position, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProfile(row rowScanner) (StoredProfile, error) {
	var sp StoredProfile
	p := &sp.Profile
	err := row.Scan(&p.ID, &p.Name, &p.Icon, &p.FertilizerNeed, &p.SunlightRequirement, &p.RainfallRequirement,
		&p.SoilHumidityRequirement, &p.ProfitForecastPerArea, &p.YieldPerArea,
		&p.MinimumSupportPrice, &p.FertilizerType, &p.BaseSuitability, &sp.Position, &sp.UpdatedAt)
	return sp, err
}

// ListProfiles returns every stored profile in catalog order.
func (s *PostgresStore) ListProfiles(ctx context.Context) ([]StoredProfile, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+profileColumns+`
		 FROM crop_profiles ORDER BY position, id`,
	)
	if err != nil {
		return nil, fmt.Errorf("list crop profiles: %w", err)
	}
	defer rows.Close()

	var out []StoredProfile
	for rows.Next() {
		sp, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("scan crop profile: %w", err)
		}
		out = append(out, sp)
	}
	return out, rows.Err()
}

// GetProfile returns one profile, or a *catalog.NotFoundError.
func (s *PostgresStore) GetProfile(ctx context.Context, id string) (*StoredProfile, error) {
	sp, err := scanProfile(s.db.QueryRowContext(ctx,
		`SELECT `+profileColumns+`
		 FROM crop_profiles WHERE id = $1`,
		id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &catalog.NotFoundError{ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("get crop profile %s: %w", id, err)
	}
	return &sp, nil
}

// UpsertProfile creates or replaces a profile at the given position.
func (s *PostgresStore) UpsertProfile(ctx context.Context, p crop.CropProfile, position int) error {
	return upsertProfile(ctx, s.db, p, position)
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func upsertProfile(ctx context.Context, db execer, p crop.CropProfile, position int) error {
	if err := catalog.Validate([]crop.CropProfile{p}); err != nil {
		return err
	}
	_, err := db.ExecContext(ctx,
		`INSERT INTO crop_profiles (id, name, icon, fertilizer_need, sunlight_requirement, rainfall_requirement,
		        soil_humidity_requirement, profit_forecast_per_area, yield_per_area,
		        minimum_support_price, fertilizer_type, base_suitability, position)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		 ON CONFLICT (id) DO UPDATE
		   SET name = EXCLUDED.name,
		       icon = EXCLUDED.icon,
		       fertilizer_need = EXCLUDED.fertilizer_need,
		       sunlight_requirement = EXCLUDED.sunlight_requirement,
		       rainfall_requirement = EXCLUDED.rainfall_requirement,
		       soil_humidity_requirement = EXCLUDED.soil_humidity_requirement,
		       profit_forecast_per_area = EXCLUDED.profit_forecast_per_area,
		       yield_per_area = EXCLUDED.yield_per_area,
		       minimum_support_price = EXCLUDED.minimum_support_price,
		       fertilizer_type = EXCLUDED.fertilizer_type,
		       base_suitability = EXCLUDED.base_suitability,
		       position = EXCLUDED.position,
		       updated_at = now()`,
		p.ID, p.Name, p.Icon, string(p.FertilizerNeed), p.SunlightRequirement, p.RainfallRequirement,
		p.SoilHumidityRequirement, p.ProfitForecastPerArea, p.YieldPerArea,
		p.MinimumSupportPrice, p.FertilizerType, p.BaseSuitability, position,
	)
	if err != nil {
		return fmt.Errorf("upsert crop profile %s: %w", p.ID, err)
	}
	return nil
}

// ImportProfiles upserts a whole catalog in one transaction, keeping the
// slice order as catalog order.
func (s *PostgresStore) ImportProfiles(ctx context.Context, profiles []crop.CropProfile) error {
	if err := catalog.Validate(profiles); err != nil {
		return fmt.Errorf("invalid catalog: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin import: %w", err)
	}
	defer tx.Rollback()

	for i, p := range profiles {
		if err := upsertProfile(ctx, tx, p, i); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// DeleteProfile removes a profile. Deleting an unknown id is a
// *catalog.NotFoundError.
func (s *PostgresStore) DeleteProfile(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM crop_profiles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete crop profile %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete crop profile %s: %w", id, err)
	}
	if n == 0 {
		return &catalog.NotFoundError{ID: id}
	}
	return nil
}

// Load implements Source.
func (s *PostgresStore) Load(ctx context.Context) ([]crop.CropProfile, error) {
	stored, err := s.ListProfiles(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]crop.CropProfile, len(stored))
	for i, sp := range stored {
		out[i] = sp.Profile
	}
	return out, nil
}
