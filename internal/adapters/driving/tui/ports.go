// Package tui provides an interactive terminal user interface for sourcy.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/sourcy-labs/sourcy/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Recommend ranks similar products.
	Recommend driving.RecommendService

	// Catalog looks products up.
	Catalog driving.CatalogService
}

// Validate ensures all required ports are set.
// Returns an error if any port is nil.
func (p *Ports) Validate() error {
	if p == nil || p.Recommend == nil {
		return ErrMissingRecommendService
	}
	if p.Catalog == nil {
		return ErrMissingCatalogService
	}
	return nil
}
