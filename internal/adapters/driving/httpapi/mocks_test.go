package httpapi

import (
	"context"

	"github.com/sourcy-labs/sourcy/internal/core/domain"
	"github.com/sourcy-labs/sourcy/internal/core/ports/driven"
)

// mockRecommendService implements driving.RecommendService for testing.
type mockRecommendService struct {
	recs     []domain.Recommendation
	stats    *domain.CorpusStats
	cached   *domain.CorpusStats
	err      error
	statsErr error

	lastID  int64
	lastSel domain.Selection
	calls   int
}

func (m *mockRecommendService) Recommend(_ context.Context, productID int64, sel domain.Selection) ([]domain.Recommendation, error) {
	m.calls++
	m.lastID = productID
	m.lastSel = sel
	if m.err != nil {
		return nil, m.err
	}
	if m.recs == nil {
		return []domain.Recommendation{}, nil
	}
	return m.recs, nil
}

func (m *mockRecommendService) Stats(_ context.Context) (*domain.CorpusStats, error) {
	if m.statsErr != nil {
		return nil, m.statsErr
	}
	if m.stats == nil {
		return &domain.CorpusStats{}, nil
	}
	return m.stats, nil
}

func (m *mockRecommendService) CachedStats() *domain.CorpusStats { return m.cached }

func (m *mockRecommendService) Invalidate() {}

func (m *mockRecommendService) Rebuild(ctx context.Context) (*domain.CorpusStats, error) {
	return m.Stats(ctx)
}

// mockCatalogService implements driving.CatalogService for testing.
type mockCatalogService struct {
	detail  *domain.ProductDetail
	results []domain.ProductSummary
	err     error

	lastQuery string
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

func (m *mockCatalogService) Search(_ context.Context, query string, limit int) ([]domain.ProductSummary, error) {
	m.lastQuery = query
	m.lastLimit = limit
	if m.err != nil {
		return nil, m.err
	}
	if m.results == nil {
		return []domain.ProductSummary{}, nil
	}
	return m.results, nil
}

func (m *mockCatalogService) Import(_ context.Context, _ driven.CatalogSource) (*domain.ImportResult, error) {
	return &domain.ImportResult{}, nil
}
