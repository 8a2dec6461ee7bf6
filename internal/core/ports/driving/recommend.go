package driving

import (
	"context"

	"github.com/sourcy-labs/sourcy/internal/core/domain"
)

// RecommendService answers "which products are most similar to this one".
type RecommendService interface {
	// Recommend returns products similar to productID under the given
	// selection policy, most similar first. A zero Selection uses the
	// configured default policy. An unknown product or an empty catalog
	// yields an empty slice and a nil error.
	Recommend(ctx context.Context, productID int64, sel domain.Selection) ([]domain.Recommendation, error)

	// Stats describes the corpus the next recommendation would rank against.
	Stats(ctx context.Context) (*domain.CorpusStats, error)

	// CachedStats describes the cached corpus without building one.
	// It returns nil when caching is off or nothing is cached yet.
	CachedStats() *domain.CorpusStats

	// Invalidate drops any cached corpus so the next request rebuilds it.
	Invalidate()

	// Rebuild builds a replacement corpus now and, when caching is on,
	// swaps it in.
	Rebuild(ctx context.Context) (*domain.CorpusStats, error)
}
