// Package menu provides the main navigation menu view for the TUI.
package menu

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sourcy-labs/sourcy/internal/adapters/driving/tui/messages"
	"github.com/sourcy-labs/sourcy/internal/adapters/driving/tui/styles"
	"github.com/sourcy-labs/sourcy/internal/core/domain"
)

// Item represents a single menu option.
type Item struct {
	Label string
	View  messages.ViewType
	Quit  bool // If true, selecting this item quits the app
}

// View represents the main menu view.
type View struct {
	styles   *styles.Styles
	items    []Item
	selected int
	stats    *domain.CorpusStats
	statsErr error
	width    int
	height   int
	ready    bool
}

// NewView creates a new menu view.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &View{
		styles: s,
		items: []Item{
			{Label: "Similar products", View: messages.ViewSimilar},
			{Label: "Search catalog", View: messages.ViewSearch},
			{Label: "Help", View: messages.ViewHelp},
			{Label: "Quit", Quit: true},
		},
		width:  80,
		height: 24,
	}
}

// Init initialises the menu view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.CorpusStatsLoaded:
		v.SetStats(msg.Stats, msg.Err)
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if v.selected > 0 {
				v.selected--
			}
			return v, nil

		case "down", "j":
			if v.selected < len(v.items)-1 {
				v.selected++
			}
			return v, nil

		case "enter":
			item := v.items[v.selected]
			if item.Quit {
				return v, tea.Quit
			}
			return v, func() tea.Msg {
				return messages.ViewChanged{View: item.View}
			}

		case "?":
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewHelp}
			}

		case "q":
			return v, tea.Quit
		}
	}

	return v, nil
}

// SetStats records the corpus description shown under the title.
func (v *View) SetStats(stats *domain.CorpusStats, err error) {
	v.stats = stats
	v.statsErr = err
}

// subtitle describes the catalog the recommender ranks against.
func (v *View) subtitle() string {
	switch {
	case v.statsErr != nil:
		return "Catalog unavailable: " + v.statsErr.Error()
	case v.stats == nil:
		return "Product recommendations"
	case v.stats.Documents == 0:
		return "Catalog is empty. Run `sourcy import` first."
	default:
		return fmt.Sprintf("%d products · %d terms", v.stats.Documents, v.stats.Vocabulary)
	}
}

// View renders the menu.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Sourcy"))
	b.WriteString("\n\n")

	subtitle := v.styles.Muted
	if v.statsErr != nil {
		subtitle = v.styles.Error
	}
	b.WriteString(subtitle.Render(v.subtitle()))
	b.WriteString("\n\n")

	for i, item := range v.items {
		cursor := "  "
		style := lipgloss.NewStyle().Foreground(lipgloss.Color("252"))

		if i == v.selected {
			cursor = "> "
			style = v.styles.Selected
		}

		b.WriteString(cursor + style.Render(item.Label))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[j/k] Navigate  [Enter] Select  [?] Help  [q] Quit"))

	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Selected returns the currently selected index.
func (v *View) Selected() int {
	return v.selected
}

// Items returns the menu items.
func (v *View) Items() []Item {
	return v.items
}
