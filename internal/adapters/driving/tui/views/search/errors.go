package search

import "errors"

// Error definitions for the lookup view.
var (
	// ErrNoService indicates that the service backing the mode was not provided.
	ErrNoService = errors.New("lookup service is required")

	// ErrInvalidProductID indicates the input is not a product id.
	ErrInvalidProductID = errors.New("enter a numeric product id")
)
