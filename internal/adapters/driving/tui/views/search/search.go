// Package search provides the lookup view for the TUI: products similar to
// an id, or catalog products matching text.
package search

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sourcy-labs/sourcy/internal/adapters/driving/tui/components/input"
	"github.com/sourcy-labs/sourcy/internal/adapters/driving/tui/components/list"
	"github.com/sourcy-labs/sourcy/internal/adapters/driving/tui/components/status"
	"github.com/sourcy-labs/sourcy/internal/adapters/driving/tui/keymap"
	"github.com/sourcy-labs/sourcy/internal/adapters/driving/tui/messages"
	"github.com/sourcy-labs/sourcy/internal/adapters/driving/tui/styles"
	"github.com/sourcy-labs/sourcy/internal/core/domain"
	"github.com/sourcy-labs/sourcy/internal/core/ports/driving"
)

// Mode selects what the input looks up.
type Mode int

const (
	// ModeSimilar treats the input as a product id and lists similar products.
	ModeSimilar Mode = iota
	// ModeText treats the input as a catalog search query.
	ModeText
)

// View is the lookup view with input, results list and status bar.
type View struct {
	mode      Mode
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.Field
	list      *list.ResultList
	statusbar *status.Bar

	recommend driving.RecommendService
	catalog   driving.CatalogService
	ctx       context.Context

	width      int
	height     int
	ready      bool
	err        error
	focusInput bool // true = typing, false = navigating results
}

// NewSimilarView creates a view listing products similar to an id.
func NewSimilarView(s *styles.Styles, km *keymap.KeyMap, recommend driving.RecommendService) *View {
	v := newView(ModeSimilar, s, km)
	v.recommend = recommend
	v.input = input.NewField(v.styles, "Product ID:", "e.g. 1024", true)
	v.list.SetEmptyText("No similar products")
	return v
}

// NewTextView creates a view searching the catalog by text.
func NewTextView(s *styles.Styles, km *keymap.KeyMap, catalog driving.CatalogService) *View {
	v := newView(ModeText, s, km)
	v.catalog = catalog
	v.input = input.NewField(v.styles, "Search:", "title, keyword or description...", false)
	v.list.SetEmptyText("No matching products")
	return v
}

func newView(mode Mode, s *styles.Styles, km *keymap.KeyMap) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		mode:       mode,
		styles:     s,
		keymap:     km,
		list:       list.NewResultList(s),
		statusbar:  status.NewBar(s, km),
		ctx:        context.Background(),
		width:      80,
		height:     24,
		focusInput: true,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Mode returns the lookup mode.
func (v *View) Mode() Mode {
	return v.mode
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// Update handles messages for the view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.RecommendationsLoaded:
		v.handleLoaded(msg.Err, list.FromRecommendations(msg.Results),
			fmt.Sprintf("%d similar to #%d", len(msg.Results), msg.ProductID))
		return v, nil

	case messages.SearchCompleted:
		v.handleLoaded(msg.Err, list.FromSummaries(msg.Results),
			fmt.Sprintf("%d matching %q", len(msg.Results), msg.Query))
		return v, nil

	case messages.ErrorOccurred:
		v.setError(msg.Err)
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if msg.Type == tea.KeyEsc {
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	}

	if v.focusInput {
		if msg.Type == tea.KeyEnter {
			return v, v.submit(strings.TrimSpace(v.input.Value()))
		}
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		return v, cmd
	}

	item := v.list.SelectedItem()

	switch {
	case msg.Type == tea.KeyEnter:
		if item != nil {
			id := item.ProductID
			return v, func() tea.Msg { return messages.ProductSelected{ProductID: id} }
		}
		return v, nil

	case keymap.Matches(msg.String(), v.keymap.Similar):
		if item != nil {
			id := item.ProductID
			return v, func() tea.Msg { return messages.SimilarRequested{ProductID: id} }
		}
		return v, nil

	case keymap.Matches(msg.String(), v.keymap.NewLookup):
		v.focusInput = true
		v.input.SetValue("")
		return v, v.input.Focus()
	}

	v.list, _ = v.list.Update(msg)
	return v, nil
}

// submit starts the lookup for the typed value.
func (v *View) submit(value string) tea.Cmd {
	if value == "" {
		return nil
	}

	if v.mode == ModeText {
		v.statusbar.Loading()
		return v.performSearch(value)
	}

	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		v.setError(ErrInvalidProductID)
		return nil
	}
	v.statusbar.Loading()
	return v.performRecommend(id)
}

// RecommendFor shows products similar to productID without typing.
func (v *View) RecommendFor(productID int64) tea.Cmd {
	v.input.SetValue(strconv.FormatInt(productID, 10))
	v.statusbar.Loading()
	return v.performRecommend(productID)
}

// performRecommend ranks similar products with the configured policy.
func (v *View) performRecommend(productID int64) tea.Cmd {
	return func() tea.Msg {
		if v.recommend == nil {
			return messages.ErrorOccurred{Err: ErrNoService}
		}
		recs, err := v.recommend.Recommend(v.ctx, productID, domain.Selection{})
		return messages.RecommendationsLoaded{ProductID: productID, Results: recs, Err: err}
	}
}

// performSearch runs a catalog text search.
func (v *View) performSearch(query string) tea.Cmd {
	return func() tea.Msg {
		if v.catalog == nil {
			return messages.ErrorOccurred{Err: ErrNoService}
		}
		results, err := v.catalog.Search(v.ctx, query, domain.DefaultSearchLimit)
		return messages.SearchCompleted{Query: query, Results: results, Err: err}
	}
}

// handleLoaded shows results and switches to navigation mode.
func (v *View) handleLoaded(err error, items []list.Item, summary string) {
	if err != nil {
		v.setError(err)
		return
	}

	v.err = nil
	v.list.SetItems(items)
	v.statusbar.Results(len(items), summary)

	v.focusInput = false
	v.input.Blur()
}

func (v *View) setError(err error) {
	v.err = err
	v.statusbar.Fail(err)
}

// View renders the lookup view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	title := "Similar products"
	if v.mode == ModeText {
		title = "Catalog search"
	}

	sections := make([]string, 0, 10)
	sections = append(sections, v.styles.Title.Render("Sourcy · "+title), "")
	sections = append(sections, v.input.View(), "")

	if v.err != nil {
		sections = append(sections, v.styles.Error.Render("Error: "+v.err.Error()), "")
	}

	sections = append(sections, v.list.View(), "", v.statusbar.View())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.input.SetWidth(width)
	v.list.SetDimensions(width, height-10)
	v.statusbar.SetWidth(width)
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Query returns the current input value.
func (v *View) Query() string {
	return v.input.Value()
}

// SetQuery sets the input value.
func (v *View) SetQuery(query string) {
	v.input.SetValue(query)
}

// Items returns the listed products.
func (v *View) Items() []list.Item {
	return v.list.Items()
}

// SelectedIndex returns the index of the selected row.
func (v *View) SelectedIndex() int {
	return v.list.Selected()
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}

// Reset returns the view to input mode with nothing listed.
func (v *View) Reset() {
	v.focusInput = true
	v.input.Focus()
	v.input.SetValue("")
	v.list.SetItems(nil)
	v.err = nil
	v.statusbar.Reset()
}

// InputFocused returns whether the input has focus.
func (v *View) InputFocused() bool {
	return v.focusInput
}
