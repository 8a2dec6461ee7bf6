package httpapi

import (
	"errors"

	"github.com/sourcy-labs/sourcy/internal/core/ports/driving"
)

var (
	// ErrMissingRecommendService is returned when the recommend service is not provided.
	ErrMissingRecommendService = errors.New("httpapi: recommend service is required")

	// ErrMissingCatalogService is returned when the catalog service is not provided.
	ErrMissingCatalogService = errors.New("httpapi: catalog service is required")
)

// Ports aggregates the driving ports served over HTTP.
type Ports struct {
	Recommend driving.RecommendService
	Catalog   driving.CatalogService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Recommend == nil {
		return ErrMissingRecommendService
	}
	if p.Catalog == nil {
		return ErrMissingCatalogService
	}
	return nil
}
