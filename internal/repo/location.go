package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/ywjeong/haulbook/internal/domain"
)

// LocationRepo persists the location vocabulary. Names are unique; the
// alphabetical ordering lives in SQL so every List call is already sorted.
type LocationRepo interface {
	// GetByName returns one location. Returns domain.ErrNotFound when the
	// name is unknown.
	GetByName(ctx context.Context, name string) (domain.Location, error)

	// List returns all locations ordered alphabetically by name.
	List(ctx context.Context) ([]domain.Location, error)

	// Upsert inserts the location or merges into the existing row. When
	// force is false, address and memo only land in fields that are still
	// empty; when force is true, non-empty inputs overwrite.
	// The name must already be trimmed by the caller.
	Upsert(ctx context.Context, loc domain.Location, force bool) error

	// ReplaceNames swaps the name set wholesale: rows not in names are
	// dropped, missing ones are created with empty details. Used by import
	// of the logistics_centers key.
	ReplaceNames(ctx context.Context, names []string) error

	// ReplaceDetails clears address/memo everywhere and applies the given
	// map, creating rows for unknown names. Used by import of the
	// saved_locations key.
	ReplaceDetails(ctx context.Context, details map[string]domain.LocationInfo) error
}

// pgLocationRepo is the Postgres implementation of LocationRepo.
type pgLocationRepo struct {
	db db
}

// NewLocationRepo constructs a LocationRepo backed by the provided db connection.
func NewLocationRepo(db db) LocationRepo {
	return &pgLocationRepo{db: db}
}

func (r *pgLocationRepo) GetByName(ctx context.Context, name string) (domain.Location, error) {
	const q = `SELECT name, address, memo, created_at FROM locations WHERE name = @name`

	var loc domain.Location
	err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"name": name}).
		Scan(&loc.Name, &loc.Address, &loc.Memo, &loc.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Location{}, fmt.Errorf("repo.LocationRepo.GetByName: %w", domain.ErrNotFound)
		}
		return domain.Location{}, fmt.Errorf("repo.LocationRepo.GetByName: %w", err)
	}
	return loc, nil
}

func (r *pgLocationRepo) List(ctx context.Context) ([]domain.Location, error) {
	const q = `SELECT name, address, memo, created_at FROM locations ORDER BY name`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.LocationRepo.List: %w", err)
	}
	defer rows.Close()

	var locs []domain.Location
	for rows.Next() {
		var loc domain.Location
		if err := rows.Scan(&loc.Name, &loc.Address, &loc.Memo, &loc.CreatedAt); err != nil {
			return nil, fmt.Errorf("repo.LocationRepo.List: scan: %w", err)
		}
		locs = append(locs, loc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.LocationRepo.List: rows: %w", err)
	}
	return locs, nil
}

func (r *pgLocationRepo) Upsert(ctx context.Context, loc domain.Location, force bool) error {
	// Merge-unset: keep whatever is already there, fill gaps.
	q := `
		INSERT INTO locations (name, address, memo)
		VALUES (@name, @address, @memo)
		ON CONFLICT (name) DO UPDATE SET
			address = CASE WHEN locations.address = '' THEN excluded.address ELSE locations.address END,
			memo    = CASE WHEN locations.memo    = '' THEN excluded.memo    ELSE locations.memo    END`
	if force {
		// Forced update: non-empty inputs overwrite.
		q = `
		INSERT INTO locations (name, address, memo)
		VALUES (@name, @address, @memo)
		ON CONFLICT (name) DO UPDATE SET
			address = CASE WHEN excluded.address <> '' THEN excluded.address ELSE locations.address END,
			memo    = CASE WHEN excluded.memo    <> '' THEN excluded.memo    ELSE locations.memo    END`
	}

	args := pgx.NamedArgs{"name": loc.Name, "address": loc.Address, "memo": loc.Memo}
	if _, err := r.db.Exec(ctx, q, args); err != nil {
		return fmt.Errorf("repo.LocationRepo.Upsert: %w", err)
	}
	return nil
}

func (r *pgLocationRepo) ReplaceNames(ctx context.Context, names []string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM locations WHERE NOT (name = ANY(@names))`,
		pgx.NamedArgs{"names": names}); err != nil {
		return fmt.Errorf("repo.LocationRepo.ReplaceNames: prune: %w", err)
	}
	for _, name := range names {
		if _, err := r.db.Exec(ctx,
			`INSERT INTO locations (name) VALUES (@name) ON CONFLICT (name) DO NOTHING`,
			pgx.NamedArgs{"name": name}); err != nil {
			return fmt.Errorf("repo.LocationRepo.ReplaceNames: insert: %w", err)
		}
	}
	return nil
}

func (r *pgLocationRepo) ReplaceDetails(ctx context.Context, details map[string]domain.LocationInfo) error {
	if _, err := r.db.Exec(ctx, `UPDATE locations SET address = '', memo = ''`); err != nil {
		return fmt.Errorf("repo.LocationRepo.ReplaceDetails: clear: %w", err)
	}

	const q = `
		INSERT INTO locations (name, address, memo)
		VALUES (@name, @address, @memo)
		ON CONFLICT (name) DO UPDATE SET
			address = excluded.address,
			memo    = excluded.memo`

	for name, info := range details {
		args := pgx.NamedArgs{"name": name, "address": info.Address, "memo": info.Memo}
		if _, err := r.db.Exec(ctx, q, args); err != nil {
			return fmt.Errorf("repo.LocationRepo.ReplaceDetails: set: %w", err)
		}
	}
	return nil
}
