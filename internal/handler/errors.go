package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/ywjeong/haulbook/internal/domain"
)

// ErrorResponse is the JSON error envelope every endpoint uses.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries a stable machine code plus a human-readable message.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeJSON encodes v with the given status. Encoding failures are logged,
// not surfaced — the status line is already committed.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "error", err)
	}
}

// writeError maps a service error onto the wire. Sentinel domain errors get
// their proper status; anything else is a 500 with a generic body (the
// request logger already has the details).
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
			Error: ErrorDetail{Code: "validation_error", Message: unwrapMessage(err)},
		})
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, ErrorResponse{
			Error: ErrorDetail{Code: "not_found", Message: unwrapMessage(err)},
		})
	case errors.Is(err, domain.ErrMalformedImport):
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error: ErrorDetail{Code: "malformed_import", Message: unwrapMessage(err)},
		})
	default:
		slog.Error("internal error", "error", err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{
			Error: ErrorDetail{Code: "internal", Message: "internal server error"},
		})
	}
}

// badRequest rejects a request before it reaches the service layer
// (e.g. missing or malformed body).
func badRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, ErrorResponse{
		Error: ErrorDetail{Code: "bad_request", Message: message},
	})
}

// unwrapMessage strips the "layer.Type.Method: " wrapping prefixes so the
// client sees only the human-readable tail.
// e.g. "service.LedgerService.Add: validation error: date is required"
// → "validation error: date is required".
func unwrapMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	for {
		i := strings.Index(msg, ": ")
		if i < 0 {
			break
		}
		prefix := msg[:i]
		if !strings.Contains(prefix, ".") || strings.Contains(prefix, " ") {
			break
		}
		msg = msg[i+2:]
	}
	for _, sentinel := range []error{domain.ErrValidation, domain.ErrNotFound, domain.ErrMalformedImport} {
		msg = strings.TrimPrefix(msg, sentinel.Error()+": ")
	}
	return msg
}
