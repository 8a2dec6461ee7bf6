package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidSelection indicates a recommendation selection policy
	// that violates its contract (non-positive N, threshold outside [0,1)).
	ErrInvalidSelection = errors.New("invalid selection")

	// ErrCatalogUnavailable indicates the catalog store is not configured.
	ErrCatalogUnavailable = errors.New("catalog store unavailable")

	// ErrImportFailed indicates a catalog import could not be completed.
	ErrImportFailed = errors.New("catalog import failed")
)
