package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/sourcy-labs/sourcy/internal/core/domain"
	"github.com/sourcy-labs/sourcy/internal/core/ports/driven"
)

// Ensure CatalogStore implements the interface.
var _ driven.CatalogStore = (*CatalogStore)(nil)

// CatalogStore is an in-memory implementation of driven.CatalogStore.
type CatalogStore struct {
	mu         sync.RWMutex
	products   map[int64]domain.Product
	attributes []domain.ProductAttribute
	variants   []domain.ProductVariant
}

// NewCatalogStore creates a new in-memory catalog store.
func NewCatalogStore() *CatalogStore {
	return &CatalogStore{
		products: make(map[int64]domain.Product),
	}
}

// NewCatalogStoreWith creates an in-memory catalog store holding catalog.
func NewCatalogStoreWith(catalog *domain.Catalog) *CatalogStore {
	s := NewCatalogStore()
	s.replace(catalog)
	return s
}

// ListProducts returns every product ordered by product id.
func (s *CatalogStore) ListProducts(_ context.Context) ([]domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sortedProducts(), nil
}

// ListAttributes returns every attribute ordered by attribute id.
func (s *CatalogStore) ListAttributes(_ context.Context) ([]domain.ProductAttribute, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.ProductAttribute{}, s.attributes...), nil
}

// ListVariants returns every variant ordered by variant id.
func (s *CatalogStore) ListVariants(_ context.Context) ([]domain.ProductVariant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.ProductVariant{}, s.variants...), nil
}

// GetProduct retrieves a product by id.
func (s *CatalogStore) GetProduct(_ context.Context, productID int64) (*domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.products[productID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

// ProductAttributes returns the attributes of one product.
func (s *CatalogStore) ProductAttributes(_ context.Context, productID int64) ([]domain.ProductAttribute, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := []domain.ProductAttribute{}
	for _, a := range s.attributes {
		if a.ProductID == productID {
			result = append(result, a)
		}
	}
	return result, nil
}

// ProductVariants returns the variants of one product.
func (s *CatalogStore) ProductVariants(_ context.Context, productID int64) ([]domain.ProductVariant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := []domain.ProductVariant{}
	for _, v := range s.variants {
		if v.ProductID == productID {
			result = append(result, v)
		}
	}
	return result, nil
}

// SearchProducts returns up to limit products matching query.
func (s *CatalogStore) SearchProducts(_ context.Context, query string, limit int) ([]domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := []domain.Product{}
	for _, p := range s.sortedProducts() {
		if limit > 0 && len(result) >= limit {
			break
		}
		if p.MatchesQuery(query) {
			result = append(result, p)
		}
	}
	return result, nil
}

// ReplaceCatalog replaces the whole catalog.
func (s *CatalogStore) ReplaceCatalog(_ context.Context, catalog *domain.Catalog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replace(catalog)
	return nil
}

func (s *CatalogStore) replace(catalog *domain.Catalog) {
	s.products = make(map[int64]domain.Product)
	s.attributes = nil
	s.variants = nil
	if catalog == nil {
		return
	}

	for _, p := range catalog.Products {
		if _, dup := s.products[p.ProductID]; !dup {
			s.products[p.ProductID] = p
		}
	}
	s.attributes = append([]domain.ProductAttribute{}, catalog.Attributes...)
	sort.SliceStable(s.attributes, func(i, j int) bool {
		return s.attributes[i].ProductAttributeID < s.attributes[j].ProductAttributeID
	})
	s.variants = append([]domain.ProductVariant{}, catalog.Variants...)
	sort.SliceStable(s.variants, func(i, j int) bool {
		return s.variants[i].ProductVariantID < s.variants[j].ProductVariantID
	})
}

func (s *CatalogStore) sortedProducts() []domain.Product {
	result := make([]domain.Product, 0, len(s.products))
	for _, p := range s.products {
		result = append(result, p)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ProductID < result[j].ProductID
	})
	return result
}
