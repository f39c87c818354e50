package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/ywjeong/haulbook/internal/domain"
)

// parseSMSRequest is the body of POST /sms/parse.
type parseSMSRequest struct {
	Text string `json:"text"`
}

// ParseSMS handles POST /sms/parse: raw dispatch text in, per-line
// origin/destination candidates out. Parsing mutates nothing.
func (s *Server) ParseSMS(w http.ResponseWriter, r *http.Request) {
	var req parseSMSRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid parse body")
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		badRequest(w, "text is required")
		return
	}

	candidates, err := s.sms.Parse(r.Context(), req.Text)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, candidates)
}

// CommitSMS handles POST /sms/commit: confirms one candidate into the ledger.
// Fails with 422 when either endpoint lacks an address; the ledger stays
// untouched in that case.
func (s *Server) CommitSMS(w http.ResponseWriter, r *http.Request) {
	var cand domain.Candidate
	if err := json.NewDecoder(r.Body).Decode(&cand); err != nil {
		badRequest(w, "invalid candidate body")
		return
	}

	rec, err := s.sms.Commit(r.Context(), cand)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}
