package handler

import (
	"net/http"
	"strconv"

	"github.com/ywjeong/haulbook/internal/domain"
)

// GetSummary handles GET /stats/summary.
// Accepts the same ?from/?to/?type filters as the record listing.
func (s *Server) GetSummary(w http.ResponseWriter, r *http.Request) {
	filter, err := parseRecordFilter(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	sum, err := s.stats.Summary(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sum)
}

// GetBuckets handles GET /stats/buckets?kind=day|week|month|year&period=...
// The period format depends on the kind: YYYY-MM for day and week, YYYY for
// month, none for year.
func (s *Server) GetBuckets(w http.ResponseWriter, r *http.Request) {
	kind := domain.BucketKind(r.URL.Query().Get("kind"))
	period := r.URL.Query().Get("period")

	rows, err := s.stats.Bucket(r.Context(), kind, period)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

// GetCurrentMonth handles GET /stats/current: the live operating-month
// snapshot including the subsidy gauge.
func (s *Server) GetCurrentMonth(w http.ResponseWriter, r *http.Request) {
	snap, err := s.stats.Current(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// GetCumulative handles GET /stats/cumulative: the all-time snapshot with the
// mileage correction applied.
func (s *Server) GetCumulative(w http.ResponseWriter, r *http.Request) {
	snap, err := s.stats.Cumulative(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// GetTripSeries handles GET /stats/trip-series?months=N (default 12).
func (s *Server) GetTripSeries(w http.ResponseWriter, r *http.Request) {
	months := 12
	if v := r.URL.Query().Get("months"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			badRequest(w, "months must be a positive integer")
			return
		}
		months = n
	}

	series, err := s.stats.TripSeries(r.Context(), months)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, series)
}

// GetFuelHistory handles GET /stats/fuel?page=&limit=, newest first.
func (s *Server) GetFuelHistory(w http.ResponseWriter, r *http.Request) {
	page, err := s.stats.FuelHistory(r.Context(), paginationParams(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// paginationParams reads optional ?page= and ?limit= query parameters.
func paginationParams(r *http.Request) domain.PaginationParams {
	var page, limit *int
	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil {
		page = &v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil {
		limit = &v
	}
	return domain.NewPaginationParams(page, limit)
}
