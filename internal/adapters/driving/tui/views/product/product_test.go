package product

import (
	"context"
	"fmt"
	"math"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sourcy-labs/sourcy/internal/adapters/driving/tui/messages"
	"github.com/sourcy-labs/sourcy/internal/core/domain"
	"github.com/sourcy-labs/sourcy/internal/core/ports/driven"
)

type mockCatalogService struct {
	detail *domain.ProductDetail
}

func (m *mockCatalogService) Get(_ context.Context, id int64) (*domain.ProductDetail, error) {
	if m.detail == nil || m.detail.Product.ProductID != id {
		return nil, domain.ErrNotFound
	}
	return m.detail, nil
}

func (m *mockCatalogService) Search(_ context.Context, _ string, _ int) ([]domain.ProductSummary, error) {
	return nil, nil
}

func (m *mockCatalogService) Import(_ context.Context, _ driven.CatalogSource) (*domain.ImportResult, error) {
	return nil, nil
}

func sampleDetail() *domain.ProductDetail {
	return &domain.ProductDetail{
		Product: domain.Product{
			ProductID:      7,
			Title:          "Denim Jacket",
			Keyword:        "denim",
			StockCount:     12,
			StockUnits:     "pcs",
			RepurchaseRate: math.NaN(),
			GPTDescription: "A heavy denim jacket with brass buttons.",
		},
		Attributes: []domain.ProductAttribute{{Key: "material", Value: "denim"}},
		Variants: []domain.ProductVariant{
			{VariantKey: "L", Price: 49.5, PriceCurrency: "EUR", StockCount: 3},
		},
	}
}

func TestView_Load(t *testing.T) {
	v := NewView(nil, &mockCatalogService{detail: sampleDetail()})

	msg, ok := v.Load(7)().(messages.ProductLoaded)
	require.True(t, ok)
	require.NoError(t, msg.Err)

	v.Update(msg)
	assert.Equal(t, int64(7), v.Detail().Product.ProductID)
}

func TestView_LoadNotFound(t *testing.T) {
	v := NewView(nil, &mockCatalogService{})
	v.SetDimensions(100, 40)

	v.Update(v.Load(1)())

	assert.ErrorIs(t, v.Err(), domain.ErrNotFound)
	assert.Contains(t, v.View(), "Error:")
}

func TestView_LoadWithoutCatalog(t *testing.T) {
	v := NewView(nil, nil)

	msg := v.Load(1)()

	assert.Equal(t, messages.ProductLoaded{Err: ErrNoCatalogService}, msg)
}

func TestView_Render(t *testing.T) {
	v := NewView(nil, nil)
	v.SetDimensions(100, 40)
	v.SetDetail(sampleDetail())

	output := v.View()

	assert.Contains(t, output, "Denim Jacket")
	assert.Contains(t, output, "12 pcs")
	assert.Contains(t, output, "Repurchase:  -")
	assert.Contains(t, output, "material: denim")
	assert.Contains(t, output, "L  49.5 EUR  stock 3")
	assert.Contains(t, output, "brass buttons")
}

func TestView_RenderLoading(t *testing.T) {
	v := NewView(nil, nil)

	assert.Contains(t, v.View(), "Loading product...")
}

func TestView_Keys(t *testing.T) {
	v := NewView(nil, nil)
	v.SetDetail(sampleDetail())
	v.SetBack(messages.ViewSearch)

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	require.NotNil(t, cmd)
	assert.Equal(t, messages.SimilarRequested{ProductID: 7}, cmd())

	_, cmd = v.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewSearch}, cmd())
}

func TestView_Scroll(t *testing.T) {
	detail := sampleDetail()
	for i := 0; i < 40; i++ {
		detail.Attributes = append(detail.Attributes, domain.ProductAttribute{Key: fmt.Sprintf("k%d", i), Value: "v"})
	}
	v := NewView(nil, nil)
	v.SetDimensions(80, 20)
	v.SetDetail(detail)

	v.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, v.ScrollOffset())

	for i := 0; i < 200; i++ {
		v.Update(tea.KeyMsg{Type: tea.KeyDown})
	}
	assert.Equal(t, v.maxScrollOffset(), v.ScrollOffset())
	assert.Positive(t, v.ScrollOffset())
}

func TestWrap(t *testing.T) {
	lines := wrap("one two three four", 9)

	assert.Equal(t, []string{"  one two", "  three", "  four"}, lines)
}
