// Package status provides the lookup status line for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/sourcy-labs/sourcy/internal/adapters/driving/tui/keymap"
	"github.com/sourcy-labs/sourcy/internal/adapters/driving/tui/styles"
)

// State is the phase of the current lookup.
type State string

// Lookup phases.
const (
	StateReady   State = "ready"
	StateLoading State = "loading"
	StateError   State = "error"
	StateResults State = "results"
)

// Bar shows the lookup phase on the left and key hints on the right.
type Bar struct {
	styles *styles.Styles
	keymap *keymap.KeyMap

	state   State
	summary string
	count   int
	width   int
}

// NewBar creates a status bar in the ready state.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	return &Bar{styles: s, keymap: km, state: StateReady, width: 80}
}

// Loading marks a lookup as in flight.
func (b *Bar) Loading() {
	b.state = StateLoading
	b.summary = ""
}

// Fail shows err. The previous result count is kept.
func (b *Bar) Fail(err error) {
	b.state = StateError
	b.summary = ""
	if err != nil {
		b.summary = err.Error()
	}
}

// Results shows a finished lookup. An empty summary falls back to the count.
func (b *Bar) Results(count int, summary string) {
	b.state = StateResults
	b.count = count
	b.summary = summary
}

// Reset returns the bar to the ready state.
func (b *Bar) Reset() {
	b.state = StateReady
	b.summary = ""
	b.count = 0
}

// State returns the current phase.
func (b *Bar) State() State {
	return b.state
}

// Summary returns the text shown for the current phase.
func (b *Bar) Summary() string {
	return b.summary
}

// Count returns the number of listed products.
func (b *Bar) Count() int {
	return b.count
}

// SetWidth sets the rendered width.
func (b *Bar) SetWidth(width int) {
	b.width = width
}

// Width returns the rendered width.
func (b *Bar) Width() int {
	return b.width
}

// View renders the bar on one line.
func (b *Bar) View() string {
	left := b.phase()
	right := b.styles.Muted.Render(hints(b.bindings()))

	gap := b.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return b.styles.StatusBar.Width(b.width).Render(left + strings.Repeat(" ", gap) + right)
}

func (b *Bar) phase() string {
	switch b.state {
	case StateLoading:
		return b.styles.Muted.Render("Loading...")
	case StateError:
		if b.summary == "" {
			return b.styles.Error.Render("Error")
		}
		return b.styles.Error.Render("Error: " + b.summary)
	case StateResults:
		if b.summary == "" {
			return b.styles.Normal.Render(fmt.Sprintf("%d products", b.count))
		}
		return b.styles.Normal.Render(b.summary)
	default:
		return b.styles.Muted.Render("Ready")
	}
}

// bindings picks the hints that apply to the current phase.
func (b *Bar) bindings() []key.Binding {
	if b.state == StateResults && b.count > 0 {
		return b.keymap.ResultsHelp()
	}
	return b.keymap.ShortHelp()
}

func hints(bindings []key.Binding) string {
	parts := make([]string, len(bindings))
	for i, kb := range bindings {
		h := kb.Help()
		parts[i] = h.Key + ": " + h.Desc
	}
	return strings.Join(parts, " | ")
}
