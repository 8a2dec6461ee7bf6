// Package styles provides colour themes and styling for the TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme is the colour palette the styles are built from.
type Theme struct {
	Primary    lipgloss.Color // titles, selection background
	Secondary  lipgloss.Color // section headers
	Foreground lipgloss.Color
	Muted      lipgloss.Color
	Panel      lipgloss.Color // status bar background
	Border     lipgloss.Color

	// Similarity bands, strongest first.
	Strong lipgloss.Color
	Fair   lipgloss.Color
	Weak   lipgloss.Color

	Error lipgloss.Color
}

// DefaultTheme returns the orange/teal theme.
func DefaultTheme() *Theme {
	return &Theme{
		Primary:    lipgloss.Color("#F97316"),
		Secondary:  lipgloss.Color("#14B8A6"),
		Foreground: lipgloss.Color("#E7E5E4"),
		Muted:      lipgloss.Color("#78716C"),
		Panel:      lipgloss.Color("#1C1917"),
		Border:     lipgloss.Color("#44403C"),
		Strong:     lipgloss.Color("#4ADE80"),
		Fair:       lipgloss.Color("#FACC15"),
		Weak:       lipgloss.Color("#A8A29E"),
		Error:      lipgloss.Color("#F87171"),
	}
}

// Styles are the lipgloss styles shared by every view.
type Styles struct {
	theme *Theme

	Title      lipgloss.Style
	Subtitle   lipgloss.Style
	Normal     lipgloss.Style
	Muted      lipgloss.Style
	Selected   lipgloss.Style
	Error      lipgloss.Style
	InputField lipgloss.Style
	StatusBar  lipgloss.Style
	Help       lipgloss.Style

	// scores is indexed by similarity band, strongest first.
	scores [3]lipgloss.Style
}

// Similarity bands used to colour scores.
const (
	HighSimilarity = 0.5
	MidSimilarity  = 0.2
)

// NewStyles creates styles from a theme. A nil theme uses DefaultTheme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	fg := func(c lipgloss.Color) lipgloss.Style { return lipgloss.NewStyle().Foreground(c) }

	return &Styles{
		theme:    theme,
		Title:    fg(theme.Primary).Bold(true),
		Subtitle: fg(theme.Secondary).Bold(true),
		Normal:   fg(theme.Foreground),
		Muted:    fg(theme.Muted),
		Selected: fg(theme.Foreground).Background(theme.Primary).Bold(true),
		Error:    fg(theme.Error),
		InputField: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),
		StatusBar: fg(theme.Muted).Background(theme.Panel).Padding(0, 1),
		Help:      fg(theme.Muted).Italic(true),
		scores: [3]lipgloss.Style{
			fg(theme.Strong).Bold(true),
			fg(theme.Fair),
			fg(theme.Weak),
		},
	}
}

// Score returns the style for a similarity score.
func (s *Styles) Score(score float64) lipgloss.Style {
	switch {
	case score >= HighSimilarity:
		return s.scores[0]
	case score >= MidSimilarity:
		return s.scores[1]
	default:
		return s.scores[2]
	}
}

// DefaultStyles returns styles with the default theme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the theme used by these styles.
func (s *Styles) Theme() *Theme {
	return s.theme
}
