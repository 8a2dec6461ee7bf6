package driven

import (
	"context"

	"github.com/sourcy-labs/sourcy/internal/core/domain"
)

// CatalogStore persists the product catalog.
type CatalogStore interface {
	// ListProducts returns every product ordered by product id.
	ListProducts(ctx context.Context) ([]domain.Product, error)

	// ListAttributes returns every attribute ordered by attribute id.
	ListAttributes(ctx context.Context) ([]domain.ProductAttribute, error)

	// ListVariants returns every variant ordered by variant id.
	ListVariants(ctx context.Context) ([]domain.ProductVariant, error)

	// GetProduct returns a single product.
	// Returns domain.ErrNotFound if the product does not exist.
	GetProduct(ctx context.Context, productID int64) (*domain.Product, error)

	// ProductAttributes returns the attributes of one product.
	ProductAttributes(ctx context.Context, productID int64) ([]domain.ProductAttribute, error)

	// ProductVariants returns the variants of one product.
	ProductVariants(ctx context.Context, productID int64) ([]domain.ProductVariant, error)

	// SearchProducts returns up to limit products whose search fields
	// contain query, case-insensitively, ordered by product id.
	SearchProducts(ctx context.Context, query string, limit int) ([]domain.Product, error)

	// ReplaceCatalog atomically replaces the whole catalog.
	ReplaceCatalog(ctx context.Context, catalog *domain.Catalog) error
}

// CatalogSource reads a complete catalog from an external export.
type CatalogSource interface {
	// Name identifies the source in logs and import results.
	Name() string

	// Read loads the catalog.
	Read(ctx context.Context) (*domain.Catalog, error)
}
