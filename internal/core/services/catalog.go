package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/sourcy-labs/sourcy/internal/core/domain"
	"github.com/sourcy-labs/sourcy/internal/core/ports/driven"
	"github.com/sourcy-labs/sourcy/internal/core/ports/driving"
	"github.com/sourcy-labs/sourcy/internal/logger"
)

// Ensure CatalogService implements the interface.
var _ driving.CatalogService = (*CatalogService)(nil)

// CatalogService reads and replaces the product catalog.
type CatalogService struct {
	store driven.CatalogStore

	mu        sync.RWMutex
	listeners []func()
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(store driven.CatalogStore) *CatalogService {
	return &CatalogService{store: store}
}

// OnChange registers fn to run after every successful import.
func (s *CatalogService) OnChange(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Get returns a product with its attributes and variants.
func (s *CatalogService) Get(ctx context.Context, productID int64) (*domain.ProductDetail, error) {
	if s.store == nil {
		return nil, fmt.Errorf("catalog store not configured: %w", domain.ErrCatalogUnavailable)
	}

	product, err := s.store.GetProduct(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("get product %d: %w", productID, err)
	}

	attributes, err := s.store.ProductAttributes(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("get attributes of product %d: %w", productID, err)
	}

	variants, err := s.store.ProductVariants(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("get variants of product %d: %w", productID, err)
	}

	return &domain.ProductDetail{
		Product:    *product,
		Attributes: nonNil(attributes),
		Variants:   nonNil(variants),
	}, nil
}

// Search returns products whose text fields contain query.
func (s *CatalogService) Search(ctx context.Context, query string, limit int) ([]domain.ProductSummary, error) {
	logger.Section("Product Search")
	logger.Debug("Query: %q", query)

	if s.store == nil {
		return nil, fmt.Errorf("catalog store not configured: %w", domain.ErrCatalogUnavailable)
	}

	query = strings.TrimSpace(query)
	if query == "" {
		logger.Debug("Empty query, returning no results")
		return []domain.ProductSummary{}, nil
	}
	if limit <= 0 {
		limit = domain.DefaultSearchLimit
	}

	products, err := s.store.SearchProducts(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}

	results := make([]domain.ProductSummary, len(products))
	for i := range products {
		results[i] = products[i].Summary()
	}
	logger.Debug("Found %d products", len(results))
	return results, nil
}

// Import replaces the stored catalog with the one read from source.
func (s *CatalogService) Import(ctx context.Context, source driven.CatalogSource) (*domain.ImportResult, error) {
	logger.Section("Catalog Import")

	if s.store == nil {
		return nil, fmt.Errorf("catalog store not configured: %w", domain.ErrCatalogUnavailable)
	}
	if source == nil {
		return nil, errors.New("catalog source is required")
	}

	catalog, err := source.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w: %w", source.Name(), domain.ErrImportFailed, err)
	}
	if catalog == nil {
		catalog = &domain.Catalog{}
	}
	if catalog.IsEmpty() {
		logger.Warn("Source %s contains no products", source.Name())
	}

	if err := s.store.ReplaceCatalog(ctx, catalog); err != nil {
		return nil, fmt.Errorf("store catalog: %w: %w", domain.ErrImportFailed, err)
	}

	result := domain.ResultFor(source.Name(), catalog)
	logger.Info("Imported %d products, %d attributes, %d variants from %s",
		result.Products, result.Attributes, result.Variants, result.Source)

	s.notify()
	return &result, nil
}

func (s *CatalogService) notify() {
	s.mu.RLock()
	listeners := append([]func(){}, s.listeners...)
	s.mu.RUnlock()

	for _, fn := range listeners {
		fn()
	}
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
