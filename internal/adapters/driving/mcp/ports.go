package mcp

import (
	"github.com/sourcy-labs/sourcy/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Recommend ranks similar products.
	Recommend driving.RecommendService

	// Catalog looks products up.
	Catalog driving.CatalogService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p == nil || p.Recommend == nil {
		return ErrMissingRecommendService
	}
	if p.Catalog == nil {
		return ErrMissingCatalogService
	}
	return nil
}
