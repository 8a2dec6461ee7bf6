package tui

import "errors"

// ErrMissingRecommendService is returned when the recommend service is not provided.
var ErrMissingRecommendService = errors.New("tui: recommend service is required")

// ErrMissingCatalogService is returned when the catalog service is not provided.
var ErrMissingCatalogService = errors.New("tui: catalog service is required")
