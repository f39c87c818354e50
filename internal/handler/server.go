// Package handler implements the HTTP handlers for the Haulbook API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (record.go, stats.go, sms.go, ...) but all share the same Server
// struct so they can access its dependencies.
package handler

import (
	"context"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ywjeong/haulbook/internal/domain"
)

// LedgerServicer defines the business operations the record and route
// handlers depend on. Defining the interface here (in the consumer package)
// follows the Go convention: "accept interfaces, return concrete types". It
// lets handler tests inject a mock without touching the database or service
// layer.
type LedgerServicer interface {
	Add(ctx context.Context, rec domain.Record) (domain.Record, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Record, error)
	List(ctx context.Context, filter domain.RecordFilter) ([]domain.Record, error)
	Update(ctx context.Context, id uuid.UUID, rec domain.Record) (domain.Record, error)
	Remove(ctx context.Context, id uuid.UUID) error
	Recall(ctx context.Context, key domain.RouteKey) (domain.RouteRecall, error)
	Routes(ctx context.Context) ([]domain.RouteRecall, error)
	Reconcile(ctx context.Context) error
	ExpenseItems(ctx context.Context) ([]string, error)
}

// StatsServicer defines the aggregation operations the stats handler uses.
type StatsServicer interface {
	Summary(ctx context.Context, filter domain.RecordFilter) (domain.Summary, error)
	Bucket(ctx context.Context, kind domain.BucketKind, period string) ([]domain.BucketRow, error)
	Current(ctx context.Context) (domain.MonthSnapshot, error)
	Cumulative(ctx context.Context) (domain.CumulativeSnapshot, error)
	TripSeries(ctx context.Context, months int) ([]domain.TripSeriesPoint, error)
	FuelHistory(ctx context.Context, p domain.PaginationParams) (domain.FuelPage, error)
}

// LocationServicer defines the vocabulary operations the location handler uses.
type LocationServicer interface {
	Register(ctx context.Context, name, address, memo string, force bool) error
	List(ctx context.Context) ([]domain.Location, error)
}

// SMSServicer defines the extraction operations the SMS handler uses.
type SMSServicer interface {
	Parse(ctx context.Context, text string) ([]domain.Candidate, error)
	Commit(ctx context.Context, cand domain.Candidate) (domain.Record, error)
}

// ExportServicer defines the backup operations the export handler uses.
type ExportServicer interface {
	Export(ctx context.Context) (domain.ExportDocument, error)
	Import(ctx context.Context, doc domain.ExportDocument) error
}

// SettingsServicer defines the scalar-knob operations the settings handler uses.
type SettingsServicer interface {
	Get(ctx context.Context) (domain.Settings, error)
	Patch(ctx context.Context, patch domain.SettingsPatch) (domain.Settings, error)
}

// Server holds every handler dependency. Wire it in main.go and mount
// Routes() on the router.
type Server struct {
	ledger    LedgerServicer
	stats     StatsServicer
	locations LocationServicer
	sms       SMSServicer
	export    ExportServicer
	settings  SettingsServicer
}

// NewServer constructs the Server with all its dependencies.
func NewServer(ledger LedgerServicer, stats StatsServicer, locations LocationServicer,
	sms SMSServicer, export ExportServicer, settings SettingsServicer) *Server {
	return &Server{
		ledger:    ledger,
		stats:     stats,
		locations: locations,
		sms:       sms,
		export:    export,
		settings:  settings,
	}
}

// Routes mounts every endpoint on a fresh chi router.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)

	r.Route("/records", func(r chi.Router) {
		r.Post("/", s.CreateRecord)
		r.Get("/", s.ListRecords)
		r.Get("/{id}", s.GetRecord)
		r.Put("/{id}", s.UpdateRecord)
		r.Delete("/{id}", s.DeleteRecord)
	})

	r.Get("/expense-items", s.ListExpenseItems)

	r.Route("/routes", func(r chi.Router) {
		r.Get("/", s.ListRoutes)
		r.Get("/recall", s.RecallRoute)
		r.Post("/reconcile", s.ReconcileRoutes)
	})

	r.Route("/locations", func(r chi.Router) {
		r.Get("/", s.ListLocations)
		r.Post("/", s.RegisterLocation)
	})

	r.Route("/stats", func(r chi.Router) {
		r.Get("/summary", s.GetSummary)
		r.Get("/buckets", s.GetBuckets)
		r.Get("/current", s.GetCurrentMonth)
		r.Get("/cumulative", s.GetCumulative)
		r.Get("/trip-series", s.GetTripSeries)
		r.Get("/fuel", s.GetFuelHistory)
	})

	r.Route("/sms", func(r chi.Router) {
		r.Post("/parse", s.ParseSMS)
		r.Post("/commit", s.CommitSMS)
	})

	r.Get("/export", s.GetExport)
	r.Post("/import", s.PostImport)

	r.Get("/settings", s.GetSettings)
	r.Patch("/settings", s.PatchSettings)

	return r
}
