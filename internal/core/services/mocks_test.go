package services

import (
	"context"
	"sync/atomic"

	"github.com/sourcy-labs/sourcy/internal/adapters/driven/storage/memory"
	"github.com/sourcy-labs/sourcy/internal/core/domain"
	"github.com/sourcy-labs/sourcy/internal/core/ports/driven"
)

// countingStore wraps a memory catalog store, counting full loads and
// optionally failing them.
type countingStore struct {
	*memory.CatalogStore

	loads       atomic.Int32
	listErr     error
	variantsErr error
}

var _ driven.CatalogStore = (*countingStore)(nil)

func newCountingStore(catalog *domain.Catalog) *countingStore {
	return &countingStore{CatalogStore: memory.NewCatalogStoreWith(catalog)}
}

func (s *countingStore) ListProducts(ctx context.Context) ([]domain.Product, error) {
	s.loads.Add(1)
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.CatalogStore.ListProducts(ctx)
}

func (s *countingStore) ListVariants(ctx context.Context) ([]domain.ProductVariant, error) {
	if s.variantsErr != nil {
		return nil, s.variantsErr
	}
	return s.CatalogStore.ListVariants(ctx)
}

// mockSource implements driven.CatalogSource for testing.
type mockSource struct {
	catalog *domain.Catalog
	err     error
}

func (m *mockSource) Name() string { return "mock" }

func (m *mockSource) Read(_ context.Context) (*domain.Catalog, error) {
	return m.catalog, m.err
}

// shirtCatalog has products 1 and 2 sharing vocabulary and an unrelated
// product 3, padded so shared terms keep a positive IDF.
func shirtCatalog() *domain.Catalog {
	return &domain.Catalog{
		Products: []domain.Product{
			{ProductID: 1, Title: "red cotton shirt", GPTDescription: "soft cotton"},
			{ProductID: 2, Title: "blue cotton shirt", GPTDescription: "soft cotton"},
			{ProductID: 3, Title: "steel garden shovel", GPTDescription: "sturdy tool"},
			{ProductID: 4, Title: "ceramic coffee mug", GPTDescription: "glazed cup"},
			{ProductID: 5, Title: "leather wallet", GPTDescription: "slim card holder"},
			{ProductID: 6, Title: "wooden chess set", GPTDescription: "board game"},
		},
		Attributes: []domain.ProductAttribute{
			{ProductAttributeID: 1, ProductID: 1, Key: "material", Value: "cotton"},
			{ProductAttributeID: 2, ProductID: 2, Key: "material", Value: "cotton"},
		},
	}
}
