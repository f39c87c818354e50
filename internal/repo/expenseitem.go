package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// ExpenseItemRepo persists the append-only expense/supply label vocabulary
// used for autocomplete. Labels are never pruned outside of import.
type ExpenseItemRepo interface {
	// Add registers a label; already-known labels are a no-op.
	// The label must already be trimmed and non-empty.
	Add(ctx context.Context, label string) error

	// List returns all labels sorted.
	List(ctx context.Context) ([]string, error)

	// ReplaceAll swaps the vocabulary wholesale. Used by import.
	ReplaceAll(ctx context.Context, labels []string) error
}

// pgExpenseItemRepo is the Postgres implementation of ExpenseItemRepo.
type pgExpenseItemRepo struct {
	db db
}

// NewExpenseItemRepo constructs an ExpenseItemRepo backed by the provided db connection.
func NewExpenseItemRepo(db db) ExpenseItemRepo {
	return &pgExpenseItemRepo{db: db}
}

func (r *pgExpenseItemRepo) Add(ctx context.Context, label string) error {
	const q = `INSERT INTO expense_items (label) VALUES (@label) ON CONFLICT (label) DO NOTHING`
	if _, err := r.db.Exec(ctx, q, pgx.NamedArgs{"label": label}); err != nil {
		return fmt.Errorf("repo.ExpenseItemRepo.Add: %w", err)
	}
	return nil
}

func (r *pgExpenseItemRepo) List(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT label FROM expense_items ORDER BY label`)
	if err != nil {
		return nil, fmt.Errorf("repo.ExpenseItemRepo.List: %w", err)
	}
	defer rows.Close()

	var labels []string
	for rows.Next() {
		var label string
		if err := rows.Scan(&label); err != nil {
			return nil, fmt.Errorf("repo.ExpenseItemRepo.List: scan: %w", err)
		}
		labels = append(labels, label)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.ExpenseItemRepo.List: rows: %w", err)
	}
	return labels, nil
}

func (r *pgExpenseItemRepo) ReplaceAll(ctx context.Context, labels []string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM expense_items`); err != nil {
		return fmt.Errorf("repo.ExpenseItemRepo.ReplaceAll: clear: %w", err)
	}
	for _, label := range labels {
		if err := r.Add(ctx, label); err != nil {
			return fmt.Errorf("repo.ExpenseItemRepo.ReplaceAll: %w", err)
		}
	}
	return nil
}
