package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
// Ledger removal deliberately swallows it — see LedgerService.Remove.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing trip endpoints, missing address at SMS commit
// time, negative amounts).
// Handlers should map this to HTTP 422 Unprocessable Entity.
// The failing operation leaves no partial mutation behind.
var ErrValidation = errors.New("validation error")

// ErrMalformedImport is returned when an import payload is not structurally
// valid. No store is modified when it is returned.
// Handlers should map this to HTTP 400.
var ErrMalformedImport = errors.New("malformed import payload")
