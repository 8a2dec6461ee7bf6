// Package product provides the product detail view for the TUI.
package product

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sourcy-labs/sourcy/internal/adapters/driving/tui/messages"
	"github.com/sourcy-labs/sourcy/internal/adapters/driving/tui/styles"
	"github.com/sourcy-labs/sourcy/internal/core/domain"
	"github.com/sourcy-labs/sourcy/internal/core/ports/driving"
)

// ErrNoCatalogService indicates the view cannot load products.
var ErrNoCatalogService = errors.New("catalog service is required")

// View is the scrollable product detail view.
type View struct {
	styles  *styles.Styles
	catalog driving.CatalogService
	ctx     context.Context

	detail       *domain.ProductDetail
	back         messages.ViewType
	scrollOffset int
	width        int
	height       int
	ready        bool
	err          error
}

// NewView creates a new product detail view.
func NewView(s *styles.Styles, catalog driving.CatalogService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:  s,
		catalog: catalog,
		ctx:     context.Background(),
		back:    messages.ViewMenu,
		width:   80,
		height:  24,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// SetBack sets the view esc returns to.
func (v *View) SetBack(view messages.ViewType) {
	v.back = view
}

// Back returns the view esc returns to.
func (v *View) Back() messages.ViewType {
	return v.back
}

// Load fetches productID from the catalog.
func (v *View) Load(productID int64) tea.Cmd {
	v.detail = nil
	v.err = nil
	v.scrollOffset = 0
	return func() tea.Msg {
		if v.catalog == nil {
			return messages.ProductLoaded{Err: ErrNoCatalogService}
		}
		detail, err := v.catalog.Get(v.ctx, productID)
		return messages.ProductLoaded{Detail: detail, Err: err}
	}
}

// SetDetail sets the product to display.
func (v *View) SetDetail(detail *domain.ProductDetail) {
	v.detail = detail
	v.scrollOffset = 0
	v.err = nil
}

// Detail returns the displayed product.
func (v *View) Detail() *domain.ProductDetail {
	return v.detail
}

// SetError sets an error to display.
func (v *View) SetError(err error) {
	v.err = err
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the product view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.ProductLoaded:
		if msg.Err != nil {
			v.detail = nil
			v.err = msg.Err
			return v, nil
		}
		v.SetDetail(msg.Detail)
		return v, nil

	case messages.ErrorOccurred:
		v.err = msg.Err
		return v, nil
	}

	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.scrollOffset > 0 {
			v.scrollOffset--
		}
	case "down", "j":
		if v.scrollOffset < v.maxScrollOffset() {
			v.scrollOffset++
		}
	case "r":
		if v.detail != nil {
			id := v.detail.Product.ProductID
			return v, func() tea.Msg { return messages.SimilarRequested{ProductID: id} }
		}
	case "esc":
		back := v.back
		return v, func() tea.Msg { return messages.ViewChanged{View: back} }
	}

	return v, nil
}

// visibleLines returns the number of content lines that fit.
func (v *View) visibleLines() int {
	available := v.height - 6
	if available < 1 {
		available = 1
	}
	return available
}

func (v *View) maxScrollOffset() int {
	maxOffset := len(v.buildContent()) - v.visibleLines()
	if maxOffset < 0 {
		maxOffset = 0
	}
	return maxOffset
}

// buildContent lays the product out as display lines.
func (v *View) buildContent() []string {
	if v.detail == nil {
		return nil
	}

	p := v.detail.Product
	lines := []string{
		formatField("ID", strconv.FormatInt(p.ProductID, 10)),
		formatField("Title", p.Title),
	}
	if p.TitleTranslated != "" {
		lines = append(lines, formatField("Translated", p.TitleTranslated))
	}
	lines = append(lines,
		formatField("Keyword", p.Keyword),
		formatField("Category", p.GPTCategorySuggestion),
		formatField("Label", p.ProductLabel),
		formatField("Trending", p.TrendingLabel),
		formatField("Stock", fmt.Sprintf("%d %s", p.StockCount, p.StockUnits)),
		formatField("Repurchase", formatNumber(p.RepurchaseRate)),
		formatField("Link", p.Link))

	if p.GPTDescription != "" {
		lines = append(lines, "", "Description:")
		lines = append(lines, wrap(p.GPTDescription, 72)...)
	}

	if len(v.detail.Attributes) > 0 {
		lines = append(lines, "", fmt.Sprintf("Attributes (%d):", len(v.detail.Attributes)))
		for _, a := range v.detail.Attributes {
			lines = append(lines, fmt.Sprintf("  %s: %s", a.Key, a.Value))
		}
	}

	if len(v.detail.Variants) > 0 {
		lines = append(lines, "", fmt.Sprintf("Variants (%d):", len(v.detail.Variants)))
		for _, vr := range v.detail.Variants {
			lines = append(lines, fmt.Sprintf("  %s  %s %s  stock %d",
				vr.VariantKey, formatNumber(vr.Price), vr.PriceCurrency, vr.StockCount))
		}
	}

	return lines
}

func formatField(label, value string) string {
	if value == "" {
		value = "-"
	}
	return fmt.Sprintf("%-12s %s", label+":", value)
}

func formatNumber(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "-"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// wrap breaks text into indented lines of at most width runes of words.
func wrap(text string, width int) []string {
	var lines []string
	var line strings.Builder
	for _, word := range strings.Fields(text) {
		if line.Len() > 0 && len([]rune(line.String()))+1+len([]rune(word)) > width {
			lines = append(lines, "  "+line.String())
			line.Reset()
		}
		if line.Len() > 0 {
			line.WriteByte(' ')
		}
		line.WriteString(word)
	}
	if line.Len() > 0 {
		lines = append(lines, "  "+line.String())
	}
	return lines
}

// View renders the product view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Product Details"))
	b.WriteString("\n")
	b.WriteString(strings.Repeat("─", minInt(v.width-4, 60)))
	b.WriteString("\n\n")

	switch {
	case v.err != nil:
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
		b.WriteString("\n\n")
	case v.detail == nil:
		b.WriteString(v.styles.Muted.Render("Loading product..."))
		b.WriteString("\n\n")
	default:
		lines := v.buildContent()
		end := minInt(v.scrollOffset+v.visibleLines(), len(lines))
		for _, line := range lines[v.scrollOffset:end] {
			b.WriteString(line)
			b.WriteString("\n")
		}
		if len(lines) > v.visibleLines() {
			b.WriteString(v.styles.Muted.Render(fmt.Sprintf("\n(%d-%d of %d)", v.scrollOffset+1, end, len(lines))))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(v.styles.Help.Render("[j/k] Scroll  [r] Similar  [esc] Back"))
	return b.String()
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Ready returns whether the view has dimensions.
func (v *View) Ready() bool {
	return v.ready
}

// ScrollOffset returns the first visible content line.
func (v *View) ScrollOffset() int {
	return v.scrollOffset
}
