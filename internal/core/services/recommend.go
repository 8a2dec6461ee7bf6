package services

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/sourcy-labs/sourcy/internal/core/domain"
	"github.com/sourcy-labs/sourcy/internal/core/ports/driven"
	"github.com/sourcy-labs/sourcy/internal/core/ports/driving"
	"github.com/sourcy-labs/sourcy/internal/core/recommender"
	"github.com/sourcy-labs/sourcy/internal/logger"
)

// Ensure RecommendService implements the interface.
var _ driving.RecommendService = (*RecommendService)(nil)

// snapshot is one immutable corpus build.
type snapshot struct {
	id      string
	corpus  *recommender.Corpus
	builtAt time.Time
}

func (s *snapshot) stats(cached bool) *domain.CorpusStats {
	return &domain.CorpusStats{
		SnapshotID: s.id,
		Documents:  s.corpus.Len(),
		Vocabulary: s.corpus.Vocabulary(),
		BuiltAt:    s.builtAt,
		Cached:     cached,
	}
}

// RecommendService ranks catalog products by content similarity.
//
// By default every request loads the catalog and builds a fresh corpus.
// With caching enabled one corpus is shared until Invalidate is called.
type RecommendService struct {
	store    driven.CatalogStore
	settings domain.RecommenderSettings
	now      func() time.Time

	cached atomic.Pointer[snapshot]

	// buildMu serialises cache fills so concurrent misses build once.
	buildMu sync.Mutex

	// stateMu guards generation and the cached store after a build.
	stateMu    sync.Mutex
	generation uint64
}

// NewRecommendService creates a new recommend service.
func NewRecommendService(store driven.CatalogStore, settings domain.RecommenderSettings) *RecommendService {
	return &RecommendService{
		store:    store,
		settings: settings,
		now:      time.Now,
	}
}

// Recommend returns products similar to productID.
func (s *RecommendService) Recommend(
	ctx context.Context, productID int64, sel domain.Selection,
) ([]domain.Recommendation, error) {
	logger.Section("Recommend")

	if sel.Mode == "" {
		sel = s.settings.Selection()
	}
	if err := sel.Validate(); err != nil {
		return nil, err
	}
	logger.Debug("Product %d, selection %s", productID, sel)

	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	recs, err := recommender.Recommend(snap.corpus, productID, sel)
	if err != nil {
		return nil, err
	}
	logger.Debug("Snapshot %s returned %d recommendations", snap.id, len(recs))
	return recs, nil
}

// Stats describes the current corpus, building one if none is cached.
func (s *RecommendService) Stats(ctx context.Context) (*domain.CorpusStats, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return snap.stats(s.settings.CacheCorpus), nil
}

// CachedStats describes the cached corpus, or nil when none is held.
func (s *RecommendService) CachedStats() *domain.CorpusStats {
	snap := s.cached.Load()
	if snap == nil {
		return nil
	}
	return snap.stats(true)
}

// Invalidate drops the cached corpus.
func (s *RecommendService) Invalidate() {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()

	s.generation++
	if old := s.cached.Swap(nil); old != nil {
		logger.Info("Corpus snapshot %s invalidated", old.id)
	}
}

// Rebuild builds a replacement corpus and swaps it in when caching is on.
func (s *RecommendService) Rebuild(ctx context.Context) (*domain.CorpusStats, error) {
	s.buildMu.Lock()
	defer s.buildMu.Unlock()

	snap, err := s.fill(ctx)
	if err != nil {
		return nil, err
	}
	return snap.stats(s.settings.CacheCorpus), nil
}

func (s *RecommendService) snapshot(ctx context.Context) (*snapshot, error) {
	if !s.settings.CacheCorpus {
		return s.build(ctx)
	}
	if snap := s.cached.Load(); snap != nil {
		return snap, nil
	}

	s.buildMu.Lock()
	defer s.buildMu.Unlock()

	if snap := s.cached.Load(); snap != nil {
		return snap, nil
	}
	return s.fill(ctx)
}

// fill builds a snapshot and caches it unless Invalidate ran meanwhile.
// Callers hold buildMu.
func (s *RecommendService) fill(ctx context.Context) (*snapshot, error) {
	s.stateMu.Lock()
	gen := s.generation
	s.stateMu.Unlock()

	snap, err := s.build(ctx)
	if err != nil {
		return nil, err
	}
	if !s.settings.CacheCorpus {
		return snap, nil
	}

	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	if s.generation == gen {
		s.cached.Store(snap)
	} else {
		logger.Debug("Catalog changed during build, snapshot %s not cached", snap.id)
	}
	return snap, nil
}

func (s *RecommendService) build(ctx context.Context) (*snapshot, error) {
	start := s.now()

	catalog, err := loadCatalog(ctx, s.store)
	if err != nil {
		return nil, err
	}

	snap := &snapshot{
		id:      uuid.NewString(),
		corpus:  recommender.BuildCorpus(catalog.Products, catalog.Attributes, catalog.Variants),
		builtAt: s.now(),
	}
	logger.Info("Built corpus snapshot %s: %d documents, %d terms in %s",
		snap.id, snap.corpus.Len(), snap.corpus.Vocabulary(), snap.builtAt.Sub(start))
	return snap, nil
}

// loadCatalog reads products, attributes and variants concurrently.
func loadCatalog(ctx context.Context, store driven.CatalogStore) (*domain.Catalog, error) {
	if store == nil {
		return nil, fmt.Errorf("catalog store not configured: %w", domain.ErrCatalogUnavailable)
	}

	var catalog domain.Catalog
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		products, err := store.ListProducts(gctx)
		if err != nil {
			return fmt.Errorf("list products: %w", err)
		}
		catalog.Products = products
		return nil
	})
	g.Go(func() error {
		attributes, err := store.ListAttributes(gctx)
		if err != nil {
			return fmt.Errorf("list attributes: %w", err)
		}
		catalog.Attributes = attributes
		return nil
	})
	g.Go(func() error {
		variants, err := store.ListVariants(gctx)
		if err != nil {
			return fmt.Errorf("list variants: %w", err)
		}
		catalog.Variants = variants
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load catalog: %w: %w", domain.ErrCatalogUnavailable, err)
	}
	return &catalog, nil
}
