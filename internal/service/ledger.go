// Package service contains the business logic for the Haulbook API.
// Services validate inputs, enforce business rules, and orchestrate repo
// calls. No SQL lives here — services depend on repo interfaces, not
// implementations.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/ywjeong/haulbook/internal/domain"
	"github.com/ywjeong/haulbook/internal/repo"
)

// LedgerService implements record add/remove/update and the route recall
// cache that rides along with trip records. Every mutation is write-through:
// the repo call persists before the method returns, and a failed write is
// reported, never swallowed — otherwise durable state would silently diverge
// from what the caller believes was saved.
type LedgerService struct {
	records repo.RecordRepo
	routes  repo.RouteRepo
	items   repo.ExpenseItemRepo
}

// NewLedgerService constructs a LedgerService backed by the provided repos.
func NewLedgerService(records repo.RecordRepo, routes repo.RouteRepo, items repo.ExpenseItemRepo) *LedgerService {
	return &LedgerService{records: records, routes: routes, items: items}
}

// Add validates and persists a new record. A trip record with both endpoints
// set also overwrites the route recall entry for any field that is > 0 in the
// record (unconditional last-write-wins); an expense or supply label is
// registered into the autocomplete vocabulary.
func (s *LedgerService) Add(ctx context.Context, rec domain.Record) (domain.Record, error) {
	rec = normalizeRecord(rec)
	if err := validateRecord(rec); err != nil {
		return domain.Record{}, err
	}

	created, err := s.records.Create(ctx, rec)
	if err != nil {
		return domain.Record{}, fmt.Errorf("service.LedgerService.Add: %w", err)
	}

	if err := s.afterWrite(ctx, created); err != nil {
		return domain.Record{}, fmt.Errorf("service.LedgerService.Add: %w", err)
	}
	return created, nil
}

// GetByID returns a single record.
// Returns domain.ErrNotFound if no record with that ID exists.
func (s *LedgerService) GetByID(ctx context.Context, id uuid.UUID) (domain.Record, error) {
	rec, err := s.records.GetByID(ctx, id)
	if err != nil {
		return domain.Record{}, fmt.Errorf("service.LedgerService.GetByID: %w", err)
	}
	return rec, nil
}

// List returns records chronologically, narrowed by the filter (operating-day
// range and/or type). Always returns a non-nil slice.
func (s *LedgerService) List(ctx context.Context, filter domain.RecordFilter) ([]domain.Record, error) {
	all, err := s.records.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.LedgerService.List: %w", err)
	}

	out := make([]domain.Record, 0, len(all))
	for _, rec := range all {
		if filter.Matches(rec) {
			out = append(out, rec)
		}
	}
	return out, nil
}

// Update replaces every field of the record except its identity. Date and
// time are preserved from the stored record unless the caller supplies them.
// Returns domain.ErrNotFound for an unknown id: unlike Remove, dropping the
// caller's field values on the floor would not be tolerable.
func (s *LedgerService) Update(ctx context.Context, id uuid.UUID, rec domain.Record) (domain.Record, error) {
	existing, err := s.records.GetByID(ctx, id)
	if err != nil {
		return domain.Record{}, fmt.Errorf("service.LedgerService.Update: %w", err)
	}

	rec.ID = id
	if rec.Date.Time.IsZero() {
		rec.Date = existing.Date
	}
	if rec.Time == "" {
		rec.Time = existing.Time
	}

	rec = normalizeRecord(rec)
	if err := validateRecord(rec); err != nil {
		return domain.Record{}, err
	}

	updated, err := s.records.Update(ctx, rec)
	if err != nil {
		return domain.Record{}, fmt.Errorf("service.LedgerService.Update: %w", err)
	}

	if err := s.afterWrite(ctx, updated); err != nil {
		return domain.Record{}, fmt.Errorf("service.LedgerService.Update: %w", err)
	}
	return updated, nil
}

// Remove deletes a record by id. An unknown id is a no-op, not an error:
// removal is idempotent, and a second click on a delete button should not
// surface a failure. (Documented tolerant behavior.)
func (s *LedgerService) Remove(ctx context.Context, id uuid.UUID) error {
	if err := s.records.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("service.LedgerService.Remove: %w", err)
	}
	return nil
}

// Recall returns the remembered fare/distance/cost for the exact directional
// pair. A route that was never written recalls as all zeros.
func (s *LedgerService) Recall(ctx context.Context, key domain.RouteKey) (domain.RouteRecall, error) {
	rec, err := s.routes.Get(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.RouteRecall{Key: key}, nil
		}
		return domain.RouteRecall{}, fmt.Errorf("service.LedgerService.Recall: %w", err)
	}
	return rec, nil
}

// Routes returns every recall entry, ordered by (from, to).
func (s *LedgerService) Routes(ctx context.Context) ([]domain.RouteRecall, error) {
	recalls, err := s.routes.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.LedgerService.Routes: %w", err)
	}
	if recalls == nil {
		recalls = []domain.RouteRecall{}
	}
	return recalls, nil
}

// ExpenseItems returns the autocomplete label vocabulary, sorted.
// Always returns a non-nil slice.
func (s *LedgerService) ExpenseItems(ctx context.Context) ([]string, error) {
	labels, err := s.items.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.LedgerService.ExpenseItems: %w", err)
	}
	if labels == nil {
		labels = []string{}
	}
	return labels, nil
}

// Reconcile rebuilds missing route recall entries from full record history.
// It walks trip records chronologically and fills only fields that are still
// absent (first-write-wins) — an explicitly written cache entry is never
// overwritten. Run it when a persisted cache is stale or absent, e.g. after
// an import that replaced records without route data.
func (s *LedgerService) Reconcile(ctx context.Context) error {
	all, err := s.records.List(ctx)
	if err != nil {
		return fmt.Errorf("service.LedgerService.Reconcile: %w", err)
	}

	for _, rec := range all {
		if rec.Type != domain.TypeTrip || rec.From == "" || rec.To == "" {
			continue
		}
		key := domain.RouteKey{From: rec.From, To: rec.To}
		if err := s.routes.Fill(ctx, key, rec.Income, rec.Distance, rec.Cost); err != nil {
			return fmt.Errorf("service.LedgerService.Reconcile: %w", err)
		}
	}
	return nil
}

// afterWrite runs the side effects shared by Add and Update: the route recall
// write-through and the expense-label vocabulary append.
func (s *LedgerService) afterWrite(ctx context.Context, rec domain.Record) error {
	if rec.Type == domain.TypeTrip && rec.From != "" && rec.To != "" {
		key := domain.RouteKey{From: rec.From, To: rec.To}
		if err := s.routes.Write(ctx, key, rec.Income, rec.Distance, rec.Cost); err != nil {
			return err
		}
	}

	switch {
	case rec.Type == domain.TypeExpense && rec.ExpenseItem != "":
		return s.items.Add(ctx, rec.ExpenseItem)
	case rec.Type == domain.TypeSupply && rec.SupplyItem != "":
		return s.items.Add(ctx, rec.SupplyItem)
	}
	return nil
}

// normalizeRecord trims the free-text fields that act as keys elsewhere.
func normalizeRecord(rec domain.Record) domain.Record {
	rec.From = strings.TrimSpace(rec.From)
	rec.To = strings.TrimSpace(rec.To)
	rec.ExpenseItem = strings.TrimSpace(rec.ExpenseItem)
	rec.SupplyItem = strings.TrimSpace(rec.SupplyItem)
	rec.Brand = strings.TrimSpace(rec.Brand)
	return rec
}

// validateRecord enforces the business rules shared by Add and Update.
// All violations wrap domain.ErrValidation, and none leave a partial write.
func validateRecord(rec domain.Record) error {
	if !rec.Type.Valid() {
		return fmt.Errorf("%w: unknown record type %q", domain.ErrValidation, rec.Type)
	}
	if rec.Date.Time.IsZero() {
		return fmt.Errorf("%w: date is required", domain.ErrValidation)
	}
	if rec.Time != "" && !domain.ValidClock(rec.Time) {
		return fmt.Errorf("%w: time must be HH:MM", domain.ErrValidation)
	}
	if rec.Type == domain.TypeTrip && (rec.From == "" || rec.To == "") {
		return fmt.Errorf("%w: trip requires both origin and destination", domain.ErrValidation)
	}
	if rec.Distance < 0 {
		return fmt.Errorf("%w: distance must not be negative", domain.ErrValidation)
	}
	if rec.Income < 0 || rec.Cost < 0 || rec.UnitPrice < 0 || rec.Subsidy < 0 {
		return fmt.Errorf("%w: money amounts must not be negative", domain.ErrValidation)
	}
	if rec.Liters < 0 {
		return fmt.Errorf("%w: liters must not be negative", domain.ErrValidation)
	}
	return nil
}
