package handler

import (
	"encoding/json"
	"net/http"

	"github.com/ywjeong/haulbook/internal/domain"
)

// GetSettings handles GET /settings.
func (s *Server) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := s.settings.Get(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

// PatchSettings handles PATCH /settings. Absent fields are left untouched.
func (s *Server) PatchSettings(w http.ResponseWriter, r *http.Request) {
	var patch domain.SettingsPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	settings, err := s.settings.Patch(r.Context(), patch)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}
