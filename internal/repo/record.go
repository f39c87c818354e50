// Package repo contains all database access logic for the Haulbook API.
// Each store has its own file with an interface and a Postgres implementation.
// No business logic lives here — only SQL and type mapping.
package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/ywjeong/haulbook/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, and lets the
// import path run every store replacement inside one transaction.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// RecordRepo defines the persistence operations for ledger records.
// The service layer depends on this interface, not the concrete Postgres
// implementation, which allows the service to be unit-tested with a mock.
type RecordRepo interface {
	// Create inserts a new record and returns the persisted row (with
	// DB-generated id, created_at, and updated_at populated).
	Create(ctx context.Context, rec domain.Record) (domain.Record, error)

	// GetByID retrieves a single record by its UUID primary key.
	// Returns domain.ErrNotFound if no record with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Record, error)

	// List returns all records ordered chronologically by (date, time).
	List(ctx context.Context) ([]domain.Record, error)

	// ListByTypePaged returns records of one type, newest first, plus the
	// total count of that type for pagination.
	ListByTypePaged(ctx context.Context, t domain.RecordType, p domain.PaginationParams) ([]domain.Record, int64, error)

	// Update overwrites every mutable field of an existing record and returns
	// the updated row. Returns domain.ErrNotFound if the ID does not exist.
	Update(ctx context.Context, rec domain.Record) (domain.Record, error)

	// Delete removes a record by ID. Returns domain.ErrNotFound if it does
	// not exist; the ledger service decides whether that is an error.
	Delete(ctx context.Context, id uuid.UUID) error

	// ReplaceAll swaps the entire store for the given records. Records with a
	// zero ID get a fresh one. Used by import.
	ReplaceAll(ctx context.Context, recs []domain.Record) error
}

// pgRecordRepo is the Postgres implementation of RecordRepo.
type pgRecordRepo struct {
	db db
}

// NewRecordRepo constructs a RecordRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback
// isolation.
func NewRecordRepo(db db) RecordRepo {
	return &pgRecordRepo{db: db}
}

const recordColumns = `id, date, time, type, from_name, to_name, distance,
	income, cost, liters, unit_price, brand, subsidy, expense_item,
	supply_item, mileage, created_at, updated_at`

func (r *pgRecordRepo) Create(ctx context.Context, rec domain.Record) (domain.Record, error) {
	q := `
		INSERT INTO records (date, time, type, from_name, to_name, distance,
			income, cost, liters, unit_price, brand, subsidy, expense_item,
			supply_item, mileage)
		VALUES (@date, @time, @type, @from_name, @to_name, @distance,
			@income, @cost, @liters, @unit_price, @brand, @subsidy,
			@expense_item, @supply_item, @mileage)
		RETURNING ` + recordColumns

	row := r.db.QueryRow(ctx, q, recordArgs(rec))
	result, err := scanRecord(row)
	if err != nil {
		return domain.Record{}, fmt.Errorf("repo.RecordRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgRecordRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Record, error) {
	q := `SELECT ` + recordColumns + ` FROM records WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanRecord(row)
	if err != nil {
		return domain.Record{}, fmt.Errorf("repo.RecordRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgRecordRepo) List(ctx context.Context) ([]domain.Record, error) {
	q := `SELECT ` + recordColumns + ` FROM records ORDER BY date, time, created_at`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.RecordRepo.List: %w", err)
	}
	defer rows.Close()

	recs, err := collectRecords(rows)
	if err != nil {
		return nil, fmt.Errorf("repo.RecordRepo.List: %w", err)
	}
	return recs, nil
}

func (r *pgRecordRepo) ListByTypePaged(ctx context.Context, t domain.RecordType, p domain.PaginationParams) ([]domain.Record, int64, error) {
	q := `SELECT ` + recordColumns + `
		FROM records
		WHERE type = @type
		ORDER BY date DESC, time DESC, created_at DESC
		LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{
		"type":   string(t),
		"limit":  p.Limit,
		"offset": p.Offset(),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.RecordRepo.ListByTypePaged: %w", err)
	}
	defer rows.Close()

	recs, err := collectRecords(rows)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.RecordRepo.ListByTypePaged: %w", err)
	}

	var total int64
	countRow := r.db.QueryRow(ctx, `SELECT count(*) FROM records WHERE type = @type`,
		pgx.NamedArgs{"type": string(t)})
	if err := countRow.Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.RecordRepo.ListByTypePaged: count: %w", err)
	}

	return recs, total, nil
}

func (r *pgRecordRepo) Update(ctx context.Context, rec domain.Record) (domain.Record, error) {
	q := `
		UPDATE records
		SET date         = @date,
		    time         = @time,
		    type         = @type,
		    from_name    = @from_name,
		    to_name      = @to_name,
		    distance     = @distance,
		    income       = @income,
		    cost         = @cost,
		    liters       = @liters,
		    unit_price   = @unit_price,
		    brand        = @brand,
		    subsidy      = @subsidy,
		    expense_item = @expense_item,
		    supply_item  = @supply_item,
		    mileage      = @mileage,
		    updated_at   = now()
		WHERE id = @id
		RETURNING ` + recordColumns

	args := recordArgs(rec)
	args["id"] = rec.ID

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanRecord(row)
	if err != nil {
		return domain.Record{}, fmt.Errorf("repo.RecordRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgRecordRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM records WHERE id = @id`, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.RecordRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.RecordRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *pgRecordRepo) ReplaceAll(ctx context.Context, recs []domain.Record) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM records`); err != nil {
		return fmt.Errorf("repo.RecordRepo.ReplaceAll: clear: %w", err)
	}

	q := `
		INSERT INTO records (id, date, time, type, from_name, to_name,
			distance, income, cost, liters, unit_price, brand, subsidy,
			expense_item, supply_item, mileage)
		VALUES (@id, @date, @time, @type, @from_name, @to_name, @distance,
			@income, @cost, @liters, @unit_price, @brand, @subsidy,
			@expense_item, @supply_item, @mileage)`

	for _, rec := range recs {
		if rec.ID == uuid.Nil {
			rec.ID = uuid.New()
		}
		args := recordArgs(rec)
		args["id"] = rec.ID
		if _, err := r.db.Exec(ctx, q, args); err != nil {
			return fmt.Errorf("repo.RecordRepo.ReplaceAll: insert: %w", err)
		}
	}
	return nil
}

// recordArgs maps the mutable fields of a record to named SQL arguments.
func recordArgs(rec domain.Record) pgx.NamedArgs {
	return pgx.NamedArgs{
		"date":         rec.Date.Time,
		"time":         rec.Time,
		"type":         string(rec.Type),
		"from_name":    rec.From,
		"to_name":      rec.To,
		"distance":     rec.Distance,
		"income":       rec.Income,
		"cost":         rec.Cost,
		"liters":       rec.Liters,
		"unit_price":   rec.UnitPrice,
		"brand":        rec.Brand,
		"subsidy":      rec.Subsidy,
		"expense_item": rec.ExpenseItem,
		"supply_item":  rec.SupplyItem,
		"mileage":      rec.Mileage,
	}
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing scanRecord to be
// reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// scanRecord maps a single database row into a domain.Record.
func scanRecord(s scanner) (domain.Record, error) {
	var (
		rec  domain.Record
		id   pgtype.UUID
		date pgtype.Date
		typ  string
	)

	err := s.Scan(&id, &date, &rec.Time, &typ, &rec.From, &rec.To,
		&rec.Distance, &rec.Income, &rec.Cost, &rec.Liters, &rec.UnitPrice,
		&rec.Brand, &rec.Subsidy, &rec.ExpenseItem, &rec.SupplyItem,
		&rec.Mileage, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Record{}, domain.ErrNotFound
		}
		return domain.Record{}, err
	}

	rec.ID = uuid.UUID(id.Bytes)
	rec.Date = openapi_types.Date{Time: date.Time}
	rec.Type = domain.RecordType(typ)
	return rec, nil
}

// collectRecords drains rows into a slice, checking the iteration error.
func collectRecords(rows pgx.Rows) ([]domain.Record, error) {
	var recs []domain.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return recs, nil
}
