package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sourcy-labs/sourcy/internal/adapters/driving/tui/keymap"
	"github.com/sourcy-labs/sourcy/internal/adapters/driving/tui/messages"
	"github.com/sourcy-labs/sourcy/internal/adapters/driving/tui/styles"
	"github.com/sourcy-labs/sourcy/internal/adapters/driving/tui/views/menu"
	"github.com/sourcy-labs/sourcy/internal/adapters/driving/tui/views/product"
	"github.com/sourcy-labs/sourcy/internal/adapters/driving/tui/views/search"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	styles *styles.Styles

	menuView    *menu.View
	similarView *search.View
	searchView  *search.View
	productView *product.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	return &App{
		ports:       ports,
		ctx:         context.Background(),
		styles:      s,
		menuView:    menu.NewView(s),
		similarView: search.NewSimilarView(s, km, ports.Recommend),
		searchView:  search.NewTextView(s, km, ports.Catalog),
		productView: product.NewView(s, ports.Catalog),
		currentView: messages.ViewMenu,
	}, nil
}

// WithContext sets the context for the app and its views.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.similarView.WithContext(ctx)
	a.searchView.WithContext(ctx)
	a.productView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("sourcy - Product Recommendations"),
		a.loadStats(),
	)
}

// loadStats describes the corpus for the menu subtitle.
func (a *App) loadStats() tea.Cmd {
	return func() tea.Msg {
		stats, err := a.ports.Recommend.Stats(a.ctx)
		return messages.CorpusStatsLoaded{Stats: stats, Err: err}
	}
}

// lookupView returns the lookup view for view, or nil.
func (a *App) lookupView(view messages.ViewType) *search.View {
	switch view {
	case messages.ViewSimilar:
		return a.similarView
	case messages.ViewSearch:
		return a.searchView
	default:
		return nil
	}
}

// Update implements tea.Model.
//
//nolint:gocyclo // central message handler requires complexity
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

		switch a.currentView {
		case messages.ViewMenu:
			a.menuView, cmd = a.menuView.Update(msg)
		case messages.ViewSimilar:
			a.similarView, cmd = a.similarView.Update(msg)
		case messages.ViewSearch:
			a.searchView, cmd = a.searchView.Update(msg)
		case messages.ViewProduct:
			a.productView, cmd = a.productView.Update(msg)
		case messages.ViewHelp:
			if msg.Type == tea.KeyEsc || msg.String() == "q" {
				a.currentView = messages.ViewMenu
			}
		}
		return a, cmd

	case messages.ViewChanged:
		previous := a.currentView
		a.currentView = msg.View
		if v := a.lookupView(msg.View); v != nil && previous == messages.ViewMenu {
			v.Reset()
			return a, v.Init()
		}
		if msg.View == messages.ViewMenu {
			return a, a.loadStats()
		}
		return a, nil

	case messages.CorpusStatsLoaded:
		a.menuView, cmd = a.menuView.Update(msg)
		return a, cmd

	case messages.RecommendationsLoaded:
		a.err = msg.Err
		a.similarView, cmd = a.similarView.Update(msg)
		return a, cmd

	case messages.SearchCompleted:
		a.err = msg.Err
		a.searchView, cmd = a.searchView.Update(msg)
		return a, cmd

	case messages.SimilarRequested:
		a.currentView = messages.ViewSimilar
		a.similarView.Reset()
		return a, a.similarView.RecommendFor(msg.ProductID)

	case messages.ProductSelected:
		a.productView.SetBack(a.currentView)
		a.currentView = messages.ViewProduct
		return a, a.productView.Load(msg.ProductID)

	case messages.ProductLoaded:
		a.err = msg.Err
		a.productView, cmd = a.productView.Update(msg)
		return a, cmd

	case messages.ErrorOccurred:
		a.err = msg.Err
		switch a.currentView {
		case messages.ViewSimilar:
			a.similarView, cmd = a.similarView.Update(msg)
		case messages.ViewSearch:
			a.searchView, cmd = a.searchView.Update(msg)
		case messages.ViewProduct:
			a.productView, cmd = a.productView.Update(msg)
		case messages.ViewMenu, messages.ViewHelp:
			// No error display
		}
		return a, cmd

	case messages.Quit:
		return a, tea.Quit
	}

	// Forward other messages (cursor blink etc.) to the active lookup view.
	if v := a.lookupView(a.currentView); v != nil {
		_, cmd = v.Update(msg)
	}
	return a, cmd
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewSimilar:
		return a.similarView.View()
	case messages.ViewSearch:
		return a.searchView.View()
	case messages.ViewProduct:
		return a.productView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	default:
		return a.menuView.View()
	}
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	return a.styles.Title.Render("Help") + `

Navigation:
  esc         Back
  ctrl+c      Quit

Menu:
  j/k, ↑/↓    Navigate options
  enter       Select option
  q           Quit

Similar products / Search catalog:
  (type)      Product id or search text
  enter       Run lookup

Results:
  j/k, ↑/↓    Navigate results
  enter       Product details
  r           Products similar to the selection
  n           New lookup

Product details:
  j/k, ↑/↓    Scroll
  r           Products similar to this one

[esc] back to menu`
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions on the app and every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.menuView.SetDimensions(width, height)
	a.similarView.SetDimensions(width, height)
	a.searchView.SetDimensions(width, height)
	a.productView.SetDimensions(width, height)
}
