package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/ywjeong/haulbook/internal/domain"
)

// GetExport handles GET /export: the full backup document with every store
// key present.
func (s *Server) GetExport(w http.ResponseWriter, r *http.Request) {
	doc, err := s.export.Export(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Disposition", `attachment; filename="haulbook-export.json"`)
	writeJSON(w, http.StatusOK, doc)
}

// PostImport handles POST /import. Only keys present in the document are
// applied, each replacing its store wholesale; a malformed payload modifies
// nothing and returns 400.
func (s *Server) PostImport(w http.ResponseWriter, r *http.Request) {
	doc, err := decodeImport(r.Body)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := s.export.Import(r.Context(), doc); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// decodeImport parses the import body strictly: unknown top-level keys and
// trailing garbage are rejected, so a typoed key fails loudly instead of
// being silently ignored.
func decodeImport(body io.Reader) (domain.ExportDocument, error) {
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()

	var doc domain.ExportDocument
	if err := dec.Decode(&doc); err != nil {
		return domain.ExportDocument{}, fmt.Errorf("%w: %s", domain.ErrMalformedImport, err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return domain.ExportDocument{}, fmt.Errorf("%w: trailing data after document", domain.ErrMalformedImport)
	}
	return doc, nil
}
