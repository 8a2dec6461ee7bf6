// Package input provides text input components for the TUI.
package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sourcy-labs/sourcy/internal/adapters/driving/tui/styles"
)

// Field wraps a bubbles textinput with a label and themed border.
type Field struct {
	textinput textinput.Model
	styles    *styles.Styles
	label     string
	numeric   bool
	width     int
}

// NewField creates a focused input with the given label and placeholder.
// When numeric is set only digits are accepted.
func NewField(s *styles.Styles, label, placeholder string, numeric bool) *Field {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Focus()
	ti.CharLimit = 256
	ti.Width = 50
	if numeric {
		ti.CharLimit = 19
	}

	return &Field{
		textinput: ti,
		styles:    s,
		label:     label,
		numeric:   numeric,
		width:     50,
	}
}

// digits keeps only the ASCII digits of runes.
func digits(runes []rune) []rune {
	out := make([]rune, 0, len(runes))
	for _, r := range runes {
		if r >= '0' && r <= '9' {
			out = append(out, r)
		}
	}
	return out
}

// Init initialises the input.
func (f *Field) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles input messages. Numeric fields drop typed non-digits.
func (f *Field) Update(msg tea.Msg) (*Field, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && f.numeric && key.Type == tea.KeyRunes {
		key.Runes = digits(key.Runes)
		if len(key.Runes) == 0 {
			return f, nil
		}
		msg = key
	}

	var cmd tea.Cmd
	f.textinput, cmd = f.textinput.Update(msg)
	return f, cmd
}

// View renders the input.
func (f *Field) View() string {
	label := f.styles.Title.Render(f.label + " ")
	field := f.styles.InputField.Render(f.textinput.View())
	//nolint:misspell // lipgloss.Center is the correct constant from the library
	return lipgloss.JoinHorizontal(lipgloss.Center, label, field)
}

// Value returns the current input value.
func (f *Field) Value() string {
	return f.textinput.Value()
}

// SetValue sets the input value.
func (f *Field) SetValue(value string) {
	f.textinput.SetValue(value)
}

// Focus sets focus on the input.
func (f *Field) Focus() tea.Cmd {
	return f.textinput.Focus()
}

// Blur removes focus from the input.
func (f *Field) Blur() {
	f.textinput.Blur()
}

// Focused returns whether the input is focused.
func (f *Field) Focused() bool {
	return f.textinput.Focused()
}

// SetWidth sets the width of the input.
func (f *Field) SetWidth(width int) {
	f.width = width
	inputWidth := width - len(f.label) - 8
	if inputWidth < 20 {
		inputWidth = 20
	}
	f.textinput.Width = inputWidth
}

// Width returns the current width.
func (f *Field) Width() int {
	return f.width
}

// Reset clears the input.
func (f *Field) Reset() {
	f.textinput.Reset()
}
