package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ywjeong/haulbook/internal/domain"
)

// CreateRecord handles POST /records.
func (s *Server) CreateRecord(w http.ResponseWriter, r *http.Request) {
	var rec domain.Record
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		badRequest(w, "invalid record body")
		return
	}

	created, err := s.ledger.Add(r.Context(), rec)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// ListRecords handles GET /records.
// Supports ?from=YYYY-MM-DD and ?to=YYYY-MM-DD (operating-day bounds,
// inclusive) and ?type= filters.
func (s *Server) ListRecords(w http.ResponseWriter, r *http.Request) {
	filter, err := parseRecordFilter(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	recs, err := s.ledger.List(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, recs)
}

// GetRecord handles GET /records/{id}.
func (s *Server) GetRecord(w http.ResponseWriter, r *http.Request) {
	id, ok := recordID(w, r)
	if !ok {
		return
	}

	rec, err := s.ledger.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// UpdateRecord handles PUT /records/{id}. Every field except identity is
// replaced; date and time keep their stored values unless the body carries
// them.
func (s *Server) UpdateRecord(w http.ResponseWriter, r *http.Request) {
	id, ok := recordID(w, r)
	if !ok {
		return
	}

	var rec domain.Record
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		badRequest(w, "invalid record body")
		return
	}

	updated, err := s.ledger.Update(r.Context(), id, rec)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// DeleteRecord handles DELETE /records/{id}. Removal is idempotent: deleting
// an unknown id still returns 204.
func (s *Server) DeleteRecord(w http.ResponseWriter, r *http.Request) {
	id, ok := recordID(w, r)
	if !ok {
		return
	}

	if err := s.ledger.Remove(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListExpenseItems handles GET /expense-items.
func (s *Server) ListExpenseItems(w http.ResponseWriter, r *http.Request) {
	labels, err := s.ledger.ExpenseItems(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, labels)
}

// recordID extracts and validates the {id} path parameter, writing the error
// response itself when the id is not a UUID.
func recordID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		badRequest(w, "id must be a UUID")
		return uuid.Nil, false
	}
	return id, true
}

// parseRecordFilter builds a RecordFilter from query parameters.
func parseRecordFilter(r *http.Request) (domain.RecordFilter, error) {
	var filter domain.RecordFilter

	if v := r.URL.Query().Get("from"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return domain.RecordFilter{}, errBadDate("from")
		}
		filter.From = &t
	}
	if v := r.URL.Query().Get("to"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return domain.RecordFilter{}, errBadDate("to")
		}
		filter.To = &t
	}
	if v := r.URL.Query().Get("type"); v != "" {
		t := domain.RecordType(v)
		if !t.Valid() {
			return domain.RecordFilter{}, errBadType(v)
		}
		filter.Type = t
	}
	return filter, nil
}

type filterError string

func (e filterError) Error() string { return string(e) }

func errBadDate(param string) error { return filterError(param + " must be YYYY-MM-DD") }
func errBadType(v string) error     { return filterError("unknown record type " + v) }
