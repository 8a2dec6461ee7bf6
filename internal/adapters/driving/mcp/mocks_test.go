package mcp

import (
	"context"

	"github.com/sourcy-labs/sourcy/internal/core/domain"
	"github.com/sourcy-labs/sourcy/internal/core/ports/driven"
)

// mockRecommendService is a mock implementation of driving.RecommendService.
type mockRecommendService struct {
	recs  []domain.Recommendation
	stats *domain.CorpusStats
	err   error

	lastID  int64
	lastSel domain.Selection
	calls   int
}

func (m *mockRecommendService) Recommend(
	_ context.Context,
	productID int64,
	sel domain.Selection,
) ([]domain.Recommendation, error) {
	m.calls++
	m.lastID = productID
	m.lastSel = sel
	return m.recs, m.err
}

func (m *mockRecommendService) Stats(_ context.Context) (*domain.CorpusStats, error) {
	return m.stats, m.err
}

func (m *mockRecommendService) CachedStats() *domain.CorpusStats { return nil }

func (m *mockRecommendService) Invalidate() {}

func (m *mockRecommendService) Rebuild(ctx context.Context) (*domain.CorpusStats, error) {
	return m.Stats(ctx)
}

// mockCatalogService is a mock implementation of driving.CatalogService.
type mockCatalogService struct {
	detail  *domain.ProductDetail
	results []domain.ProductSummary
	err     error

	lastLimit int
}

func (m *mockCatalogService) Get(_ context.Context, _ int64) (*domain.ProductDetail, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.detail == nil {
		return nil, domain.ErrNotFound
	}
	return m.detail, nil
}

func (m *mockCatalogService) Search(_ context.Context, _ string, limit int) ([]domain.ProductSummary, error) {
	m.lastLimit = limit
	return m.results, m.err
}

func (m *mockCatalogService) Import(_ context.Context, _ driven.CatalogSource) (*domain.ImportResult, error) {
	return &domain.ImportResult{}, m.err
}

func newTestServer(rec *mockRecommendService, cat *mockCatalogService) (*Server, error) {
	return NewServer(&Ports{Recommend: rec, Catalog: cat})
}
