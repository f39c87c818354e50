package handler

import (
	"encoding/json"
	"net/http"

	"github.com/ywjeong/haulbook/internal/domain"
)

// registerLocationRequest is the body of POST /locations.
type registerLocationRequest struct {
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
	Memo    string `json:"memo,omitempty"`
	// Force makes non-empty address/memo overwrite stored values instead of
	// only filling unset fields.
	Force bool `json:"force,omitempty"`
}

// RegisterLocation handles POST /locations.
func (s *Server) RegisterLocation(w http.ResponseWriter, r *http.Request) {
	var req registerLocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid location body")
		return
	}

	if err := s.locations.Register(r.Context(), req.Name, req.Address, req.Memo, req.Force); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListLocations handles GET /locations, alphabetically sorted.
func (s *Server) ListLocations(w http.ResponseWriter, r *http.Request) {
	locs, err := s.locations.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, locs)
}

// ListRoutes handles GET /routes: every recall entry, ordered by (from, to).
func (s *Server) ListRoutes(w http.ResponseWriter, r *http.Request) {
	recalls, err := s.ledger.Routes(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, recalls)
}

// RecallRoute handles GET /routes/recall?from=&to=: the remembered
// fare/distance/cost for one directional pair, zeros when never written.
func (s *Server) RecallRoute(w http.ResponseWriter, r *http.Request) {
	key := domain.RouteKey{
		From: r.URL.Query().Get("from"),
		To:   r.URL.Query().Get("to"),
	}
	if key.Zero() {
		badRequest(w, "from and to are required")
		return
	}

	recall, err := s.ledger.Recall(r.Context(), key)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, recall)
}

// ReconcileRoutes handles POST /routes/reconcile: rebuilds missing recall
// entries from record history (first-write-wins, never overwriting).
func (s *Server) ReconcileRoutes(w http.ResponseWriter, r *http.Request) {
	if err := s.ledger.Reconcile(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
