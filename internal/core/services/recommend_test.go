package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sourcy-labs/sourcy/internal/core/domain"
)

func defaultRecommender() domain.RecommenderSettings {
	return domain.DefaultAppSettings().Recommender
}

func cachingRecommender() domain.RecommenderSettings {
	s := defaultRecommender()
	s.CacheCorpus = true
	return s
}

func TestRecommendService_Recommend(t *testing.T) {
	service := NewRecommendService(newCountingStore(shirtCatalog()), defaultRecommender())

	recs, err := service.Recommend(context.Background(), 1, domain.TopN(1))

	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, int64(2), recs[0].ProductID)
	assert.Equal(t, "blue cotton shirt", recs[0].Title)
	assert.Greater(t, recs[0].Score, 0.0)
}

func TestRecommendService_ZeroSelectionUsesDefault(t *testing.T) {
	service := NewRecommendService(newCountingStore(shirtCatalog()), defaultRecommender())

	recs, err := service.Recommend(context.Background(), 1, domain.Selection{})

	require.NoError(t, err)
	assert.Len(t, recs, domain.DefaultTopN)
	for _, r := range recs {
		assert.NotEqual(t, int64(1), r.ProductID)
	}
}

func TestRecommendService_ConfiguredThresholdDefault(t *testing.T) {
	settings := defaultRecommender()
	settings.Mode = domain.SelectionThreshold
	settings.Threshold = 0.1
	service := NewRecommendService(newCountingStore(shirtCatalog()), settings)

	recs, err := service.Recommend(context.Background(), 1, domain.Selection{})

	require.NoError(t, err)
	require.NotEmpty(t, recs)
	for _, r := range recs {
		assert.Greater(t, r.Score, 0.1)
	}
}

func TestRecommendService_InvalidSelection(t *testing.T) {
	store := newCountingStore(shirtCatalog())
	service := NewRecommendService(store, defaultRecommender())

	_, err := service.Recommend(context.Background(), 1, domain.TopN(0))

	assert.ErrorIs(t, err, domain.ErrInvalidSelection)
	assert.Zero(t, store.loads.Load(), "invalid selections never touch the store")
}

func TestRecommendService_UnknownProductIsEmpty(t *testing.T) {
	service := NewRecommendService(newCountingStore(shirtCatalog()), defaultRecommender())

	recs, err := service.Recommend(context.Background(), 999, domain.TopN(5))

	require.NoError(t, err)
	assert.NotNil(t, recs)
	assert.Empty(t, recs)
}

func TestRecommendService_EmptyCatalog(t *testing.T) {
	service := NewRecommendService(newCountingStore(nil), defaultRecommender())

	recs, err := service.Recommend(context.Background(), 1, domain.TopN(5))

	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestRecommendService_StoreFailure(t *testing.T) {
	store := newCountingStore(shirtCatalog())
	store.variantsErr = errors.New("disk gone")
	service := NewRecommendService(store, defaultRecommender())

	_, err := service.Recommend(context.Background(), 1, domain.TopN(5))

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrCatalogUnavailable)
	assert.Contains(t, err.Error(), "disk gone")
}

func TestRecommendService_NilStore(t *testing.T) {
	service := NewRecommendService(nil, defaultRecommender())

	_, err := service.Recommend(context.Background(), 1, domain.TopN(5))

	assert.ErrorIs(t, err, domain.ErrCatalogUnavailable)
}

func TestRecommendService_RebuildsPerRequestWithoutCache(t *testing.T) {
	store := newCountingStore(shirtCatalog())
	service := NewRecommendService(store, defaultRecommender())
	ctx := context.Background()

	_, err := service.Recommend(ctx, 1, domain.TopN(1))
	require.NoError(t, err)
	_, err = service.Recommend(ctx, 2, domain.TopN(1))
	require.NoError(t, err)

	assert.Equal(t, int32(2), store.loads.Load())
}

func TestRecommendService_SeesCatalogChangesWithoutCache(t *testing.T) {
	store := newCountingStore(shirtCatalog())
	service := NewRecommendService(store, defaultRecommender())
	ctx := context.Background()

	recs, err := service.Recommend(ctx, 7, domain.TopN(1))
	require.NoError(t, err)
	assert.Empty(t, recs)

	catalog := shirtCatalog()
	catalog.Products = append(catalog.Products, domain.Product{ProductID: 7, Title: "green cotton shirt"})
	require.NoError(t, store.ReplaceCatalog(ctx, catalog))

	recs, err = service.Recommend(ctx, 7, domain.TopN(1))
	require.NoError(t, err)
	require.Len(t, recs, 1)
}

func TestRecommendService_CacheReusesCorpus(t *testing.T) {
	store := newCountingStore(shirtCatalog())
	service := NewRecommendService(store, cachingRecommender())
	ctx := context.Background()

	first, err := service.Stats(ctx)
	require.NoError(t, err)
	_, err = service.Recommend(ctx, 1, domain.TopN(1))
	require.NoError(t, err)
	second, err := service.Stats(ctx)
	require.NoError(t, err)

	assert.Equal(t, int32(1), store.loads.Load())
	assert.Equal(t, first.SnapshotID, second.SnapshotID)
	assert.True(t, second.Cached)
}

func TestRecommendService_InvalidateForcesRebuild(t *testing.T) {
	store := newCountingStore(shirtCatalog())
	service := NewRecommendService(store, cachingRecommender())
	ctx := context.Background()

	before, err := service.Stats(ctx)
	require.NoError(t, err)

	service.Invalidate()

	after, err := service.Stats(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, before.SnapshotID, after.SnapshotID)
	assert.Equal(t, int32(2), store.loads.Load())
}

func TestRecommendService_StaleCacheUntilInvalidated(t *testing.T) {
	store := newCountingStore(shirtCatalog())
	service := NewRecommendService(store, cachingRecommender())
	ctx := context.Background()

	_, err := service.Recommend(ctx, 1, domain.TopN(1))
	require.NoError(t, err)

	catalog := shirtCatalog()
	catalog.Products = append(catalog.Products, domain.Product{ProductID: 7, Title: "green cotton shirt"})
	require.NoError(t, store.ReplaceCatalog(ctx, catalog))

	recs, err := service.Recommend(ctx, 7, domain.TopN(1))
	require.NoError(t, err)
	assert.Empty(t, recs, "cached corpus predates product 7")

	service.Invalidate()

	recs, err = service.Recommend(ctx, 7, domain.TopN(1))
	require.NoError(t, err)
	assert.Len(t, recs, 1)
}

func TestRecommendService_Rebuild(t *testing.T) {
	store := newCountingStore(shirtCatalog())
	service := NewRecommendService(store, cachingRecommender())
	ctx := context.Background()

	before, err := service.Stats(ctx)
	require.NoError(t, err)

	rebuilt, err := service.Rebuild(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, before.SnapshotID, rebuilt.SnapshotID)

	after, err := service.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, rebuilt.SnapshotID, after.SnapshotID)
}

func TestRecommendService_FailedBuildIsNotCached(t *testing.T) {
	store := newCountingStore(shirtCatalog())
	store.listErr = errors.New("locked")
	service := NewRecommendService(store, cachingRecommender())
	ctx := context.Background()

	_, err := service.Stats(ctx)
	require.Error(t, err)

	store.listErr = nil
	stats, err := service.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 6, stats.Documents)
}

func TestRecommendService_ConcurrentMissesBuildOnce(t *testing.T) {
	store := newCountingStore(shirtCatalog())
	service := NewRecommendService(store, cachingRecommender())
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := service.Recommend(ctx, 1, domain.TopN(2))
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), store.loads.Load())
}

func TestRecommendService_Stats(t *testing.T) {
	service := NewRecommendService(newCountingStore(shirtCatalog()), defaultRecommender())

	stats, err := service.Stats(context.Background())

	require.NoError(t, err)
	assert.NotEmpty(t, stats.SnapshotID)
	assert.Equal(t, 6, stats.Documents)
	assert.Positive(t, stats.Vocabulary)
	assert.False(t, stats.BuiltAt.IsZero())
	assert.False(t, stats.Cached)
}

func TestRecommendService_CachedStats(t *testing.T) {
	ctx := context.Background()

	uncached := NewRecommendService(newCountingStore(shirtCatalog()), defaultRecommender())
	_, err := uncached.Recommend(ctx, 1, domain.TopN(1))
	require.NoError(t, err)
	assert.Nil(t, uncached.CachedStats())

	store := newCountingStore(shirtCatalog())
	cached := NewRecommendService(store, cachingRecommender())
	assert.Nil(t, cached.CachedStats())
	assert.Equal(t, int32(0), store.loads.Load())

	built, err := cached.Stats(ctx)
	require.NoError(t, err)
	stats := cached.CachedStats()
	require.NotNil(t, stats)
	assert.Equal(t, built.SnapshotID, stats.SnapshotID)
	assert.True(t, stats.Cached)

	cached.Invalidate()
	assert.Nil(t, cached.CachedStats())
	assert.Equal(t, int32(1), store.loads.Load())
}
