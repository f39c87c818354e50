package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// Setting keys for the two scalar knobs the ledger carries.
const (
	SettingFuelSubsidyLimit  = "fuel_subsidy_limit"  // litres per month
	SettingMileageCorrection = "mileage_correction" // km added to cumulative distance
)

// SettingsRepo persists scalar configuration values.
// Unknown keys read as zero — a fresh install has no rows.
type SettingsRepo interface {
	Get(ctx context.Context, key string) (float64, error)
	Set(ctx context.Context, key string, value float64) error
}

// pgSettingsRepo is the Postgres implementation of SettingsRepo.
type pgSettingsRepo struct {
	db db
}

// NewSettingsRepo constructs a SettingsRepo backed by the provided db connection.
func NewSettingsRepo(db db) SettingsRepo {
	return &pgSettingsRepo{db: db}
}

func (r *pgSettingsRepo) Get(ctx context.Context, key string) (float64, error) {
	var value float64
	err := r.db.QueryRow(ctx, `SELECT value FROM settings WHERE key = @key`,
		pgx.NamedArgs{"key": key}).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("repo.SettingsRepo.Get: %w", err)
	}
	return value, nil
}

func (r *pgSettingsRepo) Set(ctx context.Context, key string, value float64) error {
	const q = `
		INSERT INTO settings (key, value) VALUES (@key, @value)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value`
	if _, err := r.db.Exec(ctx, q, pgx.NamedArgs{"key": key, "value": value}); err != nil {
		return fmt.Errorf("repo.SettingsRepo.Set: %w", err)
	}
	return nil
}
