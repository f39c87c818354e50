package service

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ywjeong/haulbook/internal/domain"
	"github.com/ywjeong/haulbook/internal/repo"
)

// ExportService assembles the full backup document and applies imports.
//
// It holds the pool rather than repo interfaces because import must replace
// several stores atomically: the repos are constructed over one pgx.Tx, so a
// payload that fails halfway leaves every store exactly as it was.
type ExportService struct {
	pool   *pgxpool.Pool
	ledger *LedgerService
}

// NewExportService constructs an ExportService.
func NewExportService(pool *pgxpool.Pool, ledger *LedgerService) *ExportService {
	return &ExportService{pool: pool, ledger: ledger}
}

// Export returns a document bundling every persisted store. All keys are
// always present in an exported document.
func (s *ExportService) Export(ctx context.Context) (domain.ExportDocument, error) {
	records := repo.NewRecordRepo(s.pool)
	locations := repo.NewLocationRepo(s.pool)
	routes := repo.NewRouteRepo(s.pool)
	items := repo.NewExpenseItemRepo(s.pool)
	settings := repo.NewSettingsRepo(s.pool)

	recs, err := records.List(ctx)
	if err != nil {
		return domain.ExportDocument{}, fmt.Errorf("service.ExportService.Export: %w", err)
	}
	if recs == nil {
		recs = []domain.Record{}
	}

	locs, err := locations.List(ctx)
	if err != nil {
		return domain.ExportDocument{}, fmt.Errorf("service.ExportService.Export: %w", err)
	}
	centers := make([]string, 0, len(locs))
	details := make(map[string]domain.LocationInfo)
	for _, l := range locs {
		centers = append(centers, l.Name)
		if l.Address != "" || l.Memo != "" {
			details[l.Name] = domain.LocationInfo{Address: l.Address, Memo: l.Memo}
		}
	}

	recalls, err := routes.List(ctx)
	if err != nil {
		return domain.ExportDocument{}, fmt.Errorf("service.ExportService.Export: %w", err)
	}
	fares := make([]domain.RouteAmount, 0, len(recalls))
	distances := make([]domain.RouteAmount, 0, len(recalls))
	costs := make([]domain.RouteAmount, 0, len(recalls))
	for _, r := range recalls {
		if r.Fare > 0 {
			fares = append(fares, domain.RouteAmount{From: r.Key.From, To: r.Key.To, Amount: float64(r.Fare)})
		}
		if r.Distance > 0 {
			distances = append(distances, domain.RouteAmount{From: r.Key.From, To: r.Key.To, Amount: r.Distance})
		}
		if r.Cost > 0 {
			costs = append(costs, domain.RouteAmount{From: r.Key.From, To: r.Key.To, Amount: float64(r.Cost)})
		}
	}

	labels, err := items.List(ctx)
	if err != nil {
		return domain.ExportDocument{}, fmt.Errorf("service.ExportService.Export: %w", err)
	}
	if labels == nil {
		labels = []string{}
	}

	subsidyLimit, err := settings.Get(ctx, repo.SettingFuelSubsidyLimit)
	if err != nil {
		return domain.ExportDocument{}, fmt.Errorf("service.ExportService.Export: %w", err)
	}
	correction, err := settings.Get(ctx, repo.SettingMileageCorrection)
	if err != nil {
		return domain.ExportDocument{}, fmt.Errorf("service.ExportService.Export: %w", err)
	}

	return domain.ExportDocument{
		Records:           &recs,
		Locations:         &details,
		Fares:             &fares,
		Distances:         &distances,
		Costs:             &costs,
		Centers:           &centers,
		ExpenseItems:      &labels,
		FuelSubsidyLimit:  &subsidyLimit,
		MileageCorrection: &correction,
	}, nil
}

// Import applies a (possibly partial) document: only keys present in the
// document are applied, each replacing its store wholesale; absent keys leave
// their store untouched. Everything runs in one transaction — a structurally
// bad payload modifies nothing. When records were replaced, the route recall
// cache is reconciled afterwards so recall entries exist for imported trips
// even if the document carried no route keys.
//
// Center names and location details share one table, so the two keys are not
// fully independent: a document carrying logistics_centers without
// saved_locations prunes every location absent from the center list, details
// included. Exported documents always carry both keys together, so the
// coupling only shows on hand-built partial payloads.
func (s *ExportService) Import(ctx context.Context, doc domain.ExportDocument) error {
	if err := checkImport(doc); err != nil {
		return err
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("service.ExportService.Import: begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := applyImport(ctx, tx, doc); err != nil {
		return fmt.Errorf("service.ExportService.Import: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("service.ExportService.Import: commit: %w", err)
	}

	if doc.Records != nil {
		if err := s.ledger.Reconcile(ctx); err != nil {
			return fmt.Errorf("service.ExportService.Import: %w", err)
		}
	}
	return nil
}

// applyImport replaces each present store inside the transaction.
func applyImport(ctx context.Context, tx pgx.Tx, doc domain.ExportDocument) error {
	records := repo.NewRecordRepo(tx)
	locations := repo.NewLocationRepo(tx)
	routes := repo.NewRouteRepo(tx)
	items := repo.NewExpenseItemRepo(tx)
	settings := repo.NewSettingsRepo(tx)

	if doc.Records != nil {
		if err := records.ReplaceAll(ctx, *doc.Records); err != nil {
			return err
		}
	}
	if doc.Centers != nil {
		if err := locations.ReplaceNames(ctx, *doc.Centers); err != nil {
			return err
		}
	}
	if doc.Locations != nil {
		if err := locations.ReplaceDetails(ctx, *doc.Locations); err != nil {
			return err
		}
	}
	if doc.Fares != nil {
		if err := routes.Replace(ctx, repo.RouteFare, *doc.Fares); err != nil {
			return err
		}
	}
	if doc.Distances != nil {
		if err := routes.Replace(ctx, repo.RouteDistance, *doc.Distances); err != nil {
			return err
		}
	}
	if doc.Costs != nil {
		if err := routes.Replace(ctx, repo.RouteCost, *doc.Costs); err != nil {
			return err
		}
	}
	if doc.ExpenseItems != nil {
		if err := items.ReplaceAll(ctx, *doc.ExpenseItems); err != nil {
			return err
		}
	}
	if doc.FuelSubsidyLimit != nil {
		if err := settings.Set(ctx, repo.SettingFuelSubsidyLimit, *doc.FuelSubsidyLimit); err != nil {
			return err
		}
	}
	if doc.MileageCorrection != nil {
		if err := settings.Set(ctx, repo.SettingMileageCorrection, *doc.MileageCorrection); err != nil {
			return err
		}
	}
	return nil
}

// checkImport validates the document before any store is touched.
// Violations wrap domain.ErrMalformedImport.
func checkImport(doc domain.ExportDocument) error {
	if doc.Records != nil {
		for i, rec := range *doc.Records {
			if !rec.Type.Valid() {
				return fmt.Errorf("%w: records[%d] has unknown type %q", domain.ErrMalformedImport, i, rec.Type)
			}
			if rec.Date.Time.IsZero() {
				return fmt.Errorf("%w: records[%d] has no date", domain.ErrMalformedImport, i)
			}
		}
	}
	for _, set := range []*[]domain.RouteAmount{doc.Fares, doc.Distances, doc.Costs} {
		if set == nil {
			continue
		}
		for i, e := range *set {
			if e.From == "" || e.To == "" {
				return fmt.Errorf("%w: route entry %d is missing an endpoint", domain.ErrMalformedImport, i)
			}
		}
	}
	return nil
}
