package driving

import (
	"context"

	"github.com/sourcy-labs/sourcy/internal/core/domain"
	"github.com/sourcy-labs/sourcy/internal/core/ports/driven"
)

// CatalogService manages the product catalog.
type CatalogService interface {
	// Get returns a product with its attributes and variants.
	// Returns domain.ErrNotFound for an unknown id.
	Get(ctx context.Context, productID int64) (*domain.ProductDetail, error)

	// Search returns products whose text fields contain query.
	// A non-positive limit uses domain.DefaultSearchLimit.
	Search(ctx context.Context, query string, limit int) ([]domain.ProductSummary, error)

	// Import replaces the stored catalog with the one read from source.
	Import(ctx context.Context, source driven.CatalogSource) (*domain.ImportResult, error)
}
