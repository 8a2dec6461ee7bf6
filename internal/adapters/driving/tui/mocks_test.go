package tui

import (
	"context"

	"github.com/sourcy-labs/sourcy/internal/core/domain"
	"github.com/sourcy-labs/sourcy/internal/core/ports/driven"
)

type mockRecommendService struct {
	recs     []domain.Recommendation
	stats    *domain.CorpusStats
	err      error
	statsErr error
	lastID   int64
}

func (m *mockRecommendService) Recommend(_ context.Context, id int64, _ domain.Selection) ([]domain.Recommendation, error) {
	m.lastID = id
	return m.recs, m.err
}

func (m *mockRecommendService) Stats(_ context.Context) (*domain.CorpusStats, error) {
	return m.stats, m.statsErr
}

func (m *mockRecommendService) CachedStats() *domain.CorpusStats { return nil }

func (m *mockRecommendService) Invalidate() {}

func (m *mockRecommendService) Rebuild(ctx context.Context) (*domain.CorpusStats, error) {
	return m.Stats(ctx)
}

type mockCatalogService struct {
	detail  *domain.ProductDetail
	results []domain.ProductSummary
	err     error
}

func (m *mockCatalogService) Get(_ context.Context, id int64) (*domain.ProductDetail, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.detail == nil || m.detail.Product.ProductID != id {
		return nil, domain.ErrNotFound
	}
	return m.detail, nil
}

func (m *mockCatalogService) Search(_ context.Context, _ string, _ int) ([]domain.ProductSummary, error) {
	return m.results, m.err
}

func (m *mockCatalogService) Import(_ context.Context, _ driven.CatalogSource) (*domain.ImportResult, error) {
	return nil, m.err
}

func newTestPorts() (*Ports, *mockRecommendService, *mockCatalogService) {
	recommend := &mockRecommendService{
		stats: &domain.CorpusStats{Documents: 3, Vocabulary: 12},
		recs: []domain.Recommendation{
			{ProductSummary: domain.ProductSummary{ProductID: 2, Title: "Cotton Shirt Blue"}, Score: 0.81},
			{ProductSummary: domain.ProductSummary{ProductID: 3, Title: "Linen Shirt"}, Score: 0.22},
		},
	}
	catalog := &mockCatalogService{
		detail: &domain.ProductDetail{
			Product: domain.Product{ProductID: 2, Title: "Cotton Shirt Blue"},
		},
		results: []domain.ProductSummary{{ProductID: 1, Title: "Cotton Shirt"}},
	}
	return &Ports{Recommend: recommend, Catalog: catalog}, recommend, catalog
}
