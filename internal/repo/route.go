package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/ywjeong/haulbook/internal/domain"
)

// RouteRepo persists the per-route recall cache: last-known fare, distance and
// cost keyed by the directional (from, to) pair.
type RouteRepo interface {
	// Get returns the recall entry for the exact directional pair.
	// Returns domain.ErrNotFound when the route was never written.
	Get(ctx context.Context, key domain.RouteKey) (domain.RouteRecall, error)

	// Write upserts the recall entry with last-write-wins semantics: each of
	// fare/distance/cost overwrites unconditionally when its new value is > 0
	// and is left untouched when it is zero. Used on explicit record
	// creation and edit.
	Write(ctx context.Context, key domain.RouteKey, fare int64, distance float64, cost int64) error

	// Fill upserts with first-write-wins semantics: each value only lands in
	// a field that is still missing. Used by the reconciliation pass that
	// rebuilds a stale cache from record history — it must never overwrite
	// an explicitly written entry.
	Fill(ctx context.Context, key domain.RouteKey, fare int64, distance float64, cost int64) error

	// List returns every recall entry, ordered by (from, to).
	List(ctx context.Context) ([]domain.RouteRecall, error)

	// Replace swaps one of the three value columns wholesale: the column is
	// cleared everywhere, then set from the given entries. Used by import.
	Replace(ctx context.Context, field RouteField, entries []domain.RouteAmount) error
}

// RouteField selects one recall column for Replace.
type RouteField string

const (
	RouteFare     RouteField = "fare"
	RouteDistance RouteField = "distance"
	RouteCost     RouteField = "cost"
)

// pgRouteRepo is the Postgres implementation of RouteRepo.
type pgRouteRepo struct {
	db db
}

// NewRouteRepo constructs a RouteRepo backed by the provided db connection.
func NewRouteRepo(db db) RouteRepo {
	return &pgRouteRepo{db: db}
}

func (r *pgRouteRepo) Get(ctx context.Context, key domain.RouteKey) (domain.RouteRecall, error) {
	const q = `
		SELECT from_name, to_name, fare, distance, cost, updated_at
		FROM route_recall
		WHERE from_name = @from AND to_name = @to`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"from": key.From, "to": key.To})
	rec, err := scanRecall(row)
	if err != nil {
		return domain.RouteRecall{}, fmt.Errorf("repo.RouteRepo.Get: %w", err)
	}
	return rec, nil
}

// Write: NULLIF turns a zero input into NULL, and COALESCE prefers the new
// value — so a positive input always wins and a zero input never clobbers.
func (r *pgRouteRepo) Write(ctx context.Context, key domain.RouteKey, fare int64, distance float64, cost int64) error {
	const q = `
		INSERT INTO route_recall (from_name, to_name, fare, distance, cost)
		VALUES (@from, @to, NULLIF(@fare, 0::bigint),
			NULLIF(@distance, 0::float8), NULLIF(@cost, 0::bigint))
		ON CONFLICT (from_name, to_name) DO UPDATE SET
			fare       = COALESCE(NULLIF(@fare, 0::bigint), route_recall.fare),
			distance   = COALESCE(NULLIF(@distance, 0::float8), route_recall.distance),
			cost       = COALESCE(NULLIF(@cost, 0::bigint), route_recall.cost),
			updated_at = now()`

	args := pgx.NamedArgs{"from": key.From, "to": key.To,
		"fare": fare, "distance": distance, "cost": cost}
	if _, err := r.db.Exec(ctx, q, args); err != nil {
		return fmt.Errorf("repo.RouteRepo.Write: %w", err)
	}
	return nil
}

// Fill: the COALESCE order is flipped relative to Write — the existing value
// is preferred, so only missing fields are populated.
func (r *pgRouteRepo) Fill(ctx context.Context, key domain.RouteKey, fare int64, distance float64, cost int64) error {
	const q = `
		INSERT INTO route_recall (from_name, to_name, fare, distance, cost)
		VALUES (@from, @to, NULLIF(@fare, 0::bigint),
			NULLIF(@distance, 0::float8), NULLIF(@cost, 0::bigint))
		ON CONFLICT (from_name, to_name) DO UPDATE SET
			fare     = COALESCE(route_recall.fare, NULLIF(@fare, 0::bigint)),
			distance = COALESCE(route_recall.distance, NULLIF(@distance, 0::float8)),
			cost     = COALESCE(route_recall.cost, NULLIF(@cost, 0::bigint))`

	args := pgx.NamedArgs{"from": key.From, "to": key.To,
		"fare": fare, "distance": distance, "cost": cost}
	if _, err := r.db.Exec(ctx, q, args); err != nil {
		return fmt.Errorf("repo.RouteRepo.Fill: %w", err)
	}
	return nil
}

func (r *pgRouteRepo) List(ctx context.Context) ([]domain.RouteRecall, error) {
	const q = `
		SELECT from_name, to_name, fare, distance, cost, updated_at
		FROM route_recall
		ORDER BY from_name, to_name`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.RouteRepo.List: %w", err)
	}
	defer rows.Close()

	var recalls []domain.RouteRecall
	for rows.Next() {
		rec, err := scanRecall(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.RouteRepo.List: scan: %w", err)
		}
		recalls = append(recalls, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.RouteRepo.List: rows: %w", err)
	}
	return recalls, nil
}

func (r *pgRouteRepo) Replace(ctx context.Context, field RouteField, entries []domain.RouteAmount) error {
	var clear, set string
	switch field {
	case RouteFare:
		clear = `UPDATE route_recall SET fare = NULL`
		set = `
			INSERT INTO route_recall (from_name, to_name, fare)
			VALUES (@from, @to, NULLIF(@amount, 0::bigint))
			ON CONFLICT (from_name, to_name) DO UPDATE SET
				fare = NULLIF(@amount, 0::bigint), updated_at = now()`
	case RouteDistance:
		clear = `UPDATE route_recall SET distance = NULL`
		set = `
			INSERT INTO route_recall (from_name, to_name, distance)
			VALUES (@from, @to, NULLIF(@amount, 0::float8))
			ON CONFLICT (from_name, to_name) DO UPDATE SET
				distance = NULLIF(@amount, 0::float8), updated_at = now()`
	case RouteCost:
		clear = `UPDATE route_recall SET cost = NULL`
		set = `
			INSERT INTO route_recall (from_name, to_name, cost)
			VALUES (@from, @to, NULLIF(@amount, 0::bigint))
			ON CONFLICT (from_name, to_name) DO UPDATE SET
				cost = NULLIF(@amount, 0::bigint), updated_at = now()`
	default:
		return fmt.Errorf("repo.RouteRepo.Replace: unknown field %q", field)
	}

	if _, err := r.db.Exec(ctx, clear); err != nil {
		return fmt.Errorf("repo.RouteRepo.Replace: clear %s: %w", field, err)
	}
	for _, e := range entries {
		args := pgx.NamedArgs{"from": e.From, "to": e.To, "amount": amountArg(field, e.Amount)}
		if _, err := r.db.Exec(ctx, set, args); err != nil {
			return fmt.Errorf("repo.RouteRepo.Replace: set %s: %w", field, err)
		}
	}
	return nil
}

// amountArg converts the generic export amount to the column's native type.
func amountArg(field RouteField, amount float64) any {
	if field == RouteDistance {
		return amount
	}
	return int64(amount)
}

// scanRecall maps one route_recall row, translating NULL value columns to
// zero (= "never recorded").
func scanRecall(s scanner) (domain.RouteRecall, error) {
	var (
		rec      domain.RouteRecall
		fare     pgtype.Int8
		distance pgtype.Float8
		cost     pgtype.Int8
	)

	err := s.Scan(&rec.Key.From, &rec.Key.To, &fare, &distance, &cost, &rec.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.RouteRecall{}, domain.ErrNotFound
		}
		return domain.RouteRecall{}, err
	}

	if fare.Valid {
		rec.Fare = fare.Int64
	}
	if distance.Valid {
		rec.Distance = distance.Float64
	}
	if cost.Valid {
		rec.Cost = cost.Int64
	}
	return rec, nil
}
