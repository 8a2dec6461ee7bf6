package sqlite

import (
	"context"
	"math"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sourcy-labs/sourcy/internal/core/domain"
	"github.com/sourcy-labs/sourcy/internal/core/ports/driven"
)

// setupTestStore creates a SQLite store in a temporary directory.
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	require.NotNil(t, store)
	t.Cleanup(func() {
		assert.NoError(t, store.Close())
	})

	return store
}

func testCatalog() *domain.Catalog {
	created := time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)
	return &domain.Catalog{
		Products: []domain.Product{
			{
				ProductID:             2,
				ScrapeProductID:       902,
				Title:                 "Green cotton shirt",
				TitleTranslated:       "绿色棉衬衫",
				Keyword:               "shirt",
				GPTCategorySuggestion: "Apparel",
				TrendingLabel:         "HOT",
				StockCount:            40,
				RepurchaseRate:        math.NaN(),
				IsValidated:           true,
				CreatedAt:             created,
			},
			{
				ProductID:      1,
				Title:          "Red cotton shirt",
				Keyword:        "shirt",
				RepurchaseRate: 0.25,
				IsCatalogued:   true,
				StockUnits:     "pcs",
				ImageURLs:      `["a.jpg"]`,
			},
			{ProductID: 3, Title: "Denim jacket", Keyword: "jacket"},
		},
		Attributes: []domain.ProductAttribute{
			{ProductAttributeID: 11, ProductID: 1, Key: "material", Value: "cotton"},
			{ProductAttributeID: 10, ProductID: 2, Key: "material", Value: "cotton", CreatedAt: created},
		},
		Variants: []domain.ProductVariant{
			{
				ProductVariantID: 20,
				ProductID:        1,
				VariantKey:       "size-m",
				Price:            12.5,
				WeightPerUnitKg:  math.NaN(),
				LengthCm:         30,
				PriceCurrency:    "CNY",
				IsValidated:      true,
			},
		},
	}
}

func seededStore(t *testing.T) driven.CatalogStore {
	t.Helper()
	catalog := setupTestStore(t).CatalogStore()
	require.NoError(t, catalog.ReplaceCatalog(context.Background(), testCatalog()))
	return catalog
}

func TestNewStore_CreatesDatabase(t *testing.T) {
	dir := t.TempDir()

	store, err := NewStore(dir)
	require.NoError(t, err)
	defer store.Close()

	assert.Equal(t, filepath.Join(dir, DatabaseFile), store.Path())
	assert.FileExists(t, store.Path())
}

func TestNewStore_MigrationsAreIdempotent(t *testing.T) {
	dir := t.TempDir()

	first, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, first.CatalogStore().ReplaceCatalog(context.Background(), testCatalog()))
	require.NoError(t, first.Close())

	second, err := NewStore(dir)
	require.NoError(t, err)
	defer second.Close()

	var versions int
	require.NoError(t, second.db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&versions))
	assert.Equal(t, 1, versions)

	products, err := second.CatalogStore().ListProducts(context.Background())
	require.NoError(t, err)
	assert.Len(t, products, 3)
}

func TestCatalogStore_EmptyDatabase(t *testing.T) {
	catalog := setupTestStore(t).CatalogStore()
	ctx := context.Background()

	products, err := catalog.ListProducts(ctx)
	require.NoError(t, err)
	assert.NotNil(t, products)
	assert.Empty(t, products)

	_, err = catalog.GetProduct(ctx, 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCatalogStore_ListProductsOrderedAndRoundTripped(t *testing.T) {
	products, err := seededStore(t).ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 3)

	assert.Equal(t, int64(1), products[0].ProductID)
	assert.Equal(t, int64(2), products[1].ProductID)
	assert.Equal(t, int64(3), products[2].ProductID)

	red := products[0]
	assert.Equal(t, "Red cotton shirt", red.Title)
	assert.InDelta(t, 0.25, red.RepurchaseRate, 1e-12)
	assert.True(t, red.IsCatalogued)
	assert.False(t, red.IsValidated)
	assert.Equal(t, "pcs", red.StockUnits)
	assert.Equal(t, `["a.jpg"]`, red.ImageURLs)
	assert.True(t, red.CreatedAt.IsZero())

	green := products[1]
	assert.True(t, math.IsNaN(green.RepurchaseRate), "NaN must survive storage")
	assert.Equal(t, "绿色棉衬衫", green.TitleTranslated)
	assert.Equal(t, int64(902), green.ScrapeProductID)
	assert.Equal(t, int64(40), green.StockCount)
	assert.True(t, green.IsValidated)
	assert.True(t, green.CreatedAt.Equal(time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)))
}

func TestCatalogStore_AttributesAndVariants(t *testing.T) {
	ctx := context.Background()
	catalog := seededStore(t)

	attributes, err := catalog.ListAttributes(ctx)
	require.NoError(t, err)
	require.Len(t, attributes, 2)
	assert.Equal(t, int64(10), attributes[0].ProductAttributeID)
	assert.Equal(t, "material", attributes[0].Key)
	assert.Equal(t, "cotton", attributes[0].Value)

	own, err := catalog.ProductAttributes(ctx, 1)
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, int64(11), own[0].ProductAttributeID)

	variants, err := catalog.ListVariants(ctx)
	require.NoError(t, err)
	require.Len(t, variants, 1)
	v := variants[0]
	assert.Equal(t, "size-m", v.VariantKey)
	assert.InDelta(t, 12.5, v.Price, 1e-12)
	assert.True(t, math.IsNaN(v.WeightPerUnitKg))
	assert.InDelta(t, 30.0, v.LengthCm, 1e-12)
	assert.Equal(t, "CNY", v.PriceCurrency)
	assert.True(t, v.IsValidated)

	none, err := catalog.ProductVariants(ctx, 3)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestCatalogStore_GetProduct(t *testing.T) {
	catalog := seededStore(t)

	p, err := catalog.GetProduct(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "Denim jacket", p.Title)
}

func TestCatalogStore_SearchProducts(t *testing.T) {
	ctx := context.Background()
	catalog := seededStore(t)

	tests := []struct {
		name  string
		query string
		limit int
		want  []int64
	}{
		{"title substring", "cotton", 10, []int64{1, 2}},
		{"ignores ascii case", "COTTON", 10, []int64{1, 2}},
		{"limit applies after ordering", "shirt", 1, []int64{1}},
		{"trending label", "hot", 10, []int64{2}},
		{"translated title", "棉衬衫", 10, []int64{2}},
		{"category", "apparel", 10, []int64{2}},
		{"no limit", "j", 0, []int64{3}},
		{"no match", "trousers", 10, []int64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			products, err := catalog.SearchProducts(ctx, tt.query, tt.limit)
			require.NoError(t, err)

			got := make([]int64, len(products))
			for i, p := range products {
				got[i] = p.ProductID
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCatalogStore_ReplaceCatalogReplacesEverything(t *testing.T) {
	ctx := context.Background()
	catalog := seededStore(t)

	err := catalog.ReplaceCatalog(ctx, &domain.Catalog{
		Products: []domain.Product{
			{ProductID: 9, Title: "first"},
			{ProductID: 9, Title: "duplicate"},
		},
	})
	require.NoError(t, err)

	products, err := catalog.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "first", products[0].Title)

	attributes, err := catalog.ListAttributes(ctx)
	require.NoError(t, err)
	assert.Empty(t, attributes)

	variants, err := catalog.ListVariants(ctx)
	require.NoError(t, err)
	assert.Empty(t, variants)

	require.NoError(t, catalog.ReplaceCatalog(ctx, nil))
	products, err = catalog.ListProducts(ctx)
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestCatalogStore_ReplaceCatalogHonoursCancellation(t *testing.T) {
	catalog := seededStore(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := catalog.ReplaceCatalog(ctx, &domain.Catalog{})
	require.Error(t, err)

	products, err := catalog.ListProducts(context.Background())
	require.NoError(t, err)
	assert.Len(t, products, 3)
}
