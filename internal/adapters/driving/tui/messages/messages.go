// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/sourcy-labs/sourcy/internal/core/domain"
)

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewSimilar looks up products similar to a product id.
	ViewSimilar
	// ViewSearch is the catalog text search.
	ViewSearch
	// ViewProduct shows one product in full.
	ViewProduct
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewSimilar:
		return "similar"
	case ViewSearch:
		return "search"
	case ViewProduct:
		return "product"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// RecommendationsLoaded carries recommendations for a product.
type RecommendationsLoaded struct {
	ProductID int64
	Results   []domain.Recommendation
	Err       error
}

// SearchCompleted carries catalog search results back to the model.
type SearchCompleted struct {
	Query   string
	Results []domain.ProductSummary
	Err     error
}

// SimilarRequested asks for products similar to ProductID.
type SimilarRequested struct {
	ProductID int64
}

// ProductSelected asks for the detail view of ProductID.
type ProductSelected struct {
	ProductID int64
}

// ProductLoaded carries a product with its attributes and variants.
type ProductLoaded struct {
	Detail *domain.ProductDetail
	Err    error
}

// CorpusStatsLoaded carries the corpus description shown on the menu.
type CorpusStatsLoaded struct {
	Stats *domain.CorpusStats
	Err   error
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
