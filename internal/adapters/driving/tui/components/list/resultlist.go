// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sourcy-labs/sourcy/internal/adapters/driving/tui/styles"
	"github.com/sourcy-labs/sourcy/internal/core/domain"
)

// Item is one product row.
type Item struct {
	ProductID int64
	Title     string
	Preview   string

	// Score is shown only when HasScore is set.
	Score    float64
	HasScore bool
}

// FromRecommendations builds scored rows.
func FromRecommendations(recs []domain.Recommendation) []Item {
	items := make([]Item, len(recs))
	for i := range recs {
		items[i] = fromSummary(recs[i].ProductSummary)
		items[i].Score = recs[i].Score
		items[i].HasScore = true
	}
	return items
}

// FromSummaries builds unscored rows.
func FromSummaries(summaries []domain.ProductSummary) []Item {
	items := make([]Item, len(summaries))
	for i := range summaries {
		items[i] = fromSummary(summaries[i])
	}
	return items
}

func fromSummary(s domain.ProductSummary) Item {
	title := s.TitleTranslated
	if title == "" {
		title = s.Title
	}
	return Item{ProductID: s.ProductID, Title: title, Preview: s.GPTDescription}
}

// ResultList displays products in a navigable list.
type ResultList struct {
	items    []Item
	selected int
	styles   *styles.Styles
	empty    string
	width    int
	height   int
}

// NewResultList creates a new result list component.
func NewResultList(s *styles.Styles) *ResultList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &ResultList{
		styles: s,
		empty:  "No results",
		width:  80,
		height: 10,
	}
}

// Init initialises the result list.
func (r *ResultList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (r *ResultList) Update(msg tea.Msg) (*ResultList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			r.MoveUp()
		case "down", "j":
			r.MoveDown()
		}
	}
	return r, nil
}

// View renders the result list.
func (r *ResultList) View() string {
	if len(r.items) == 0 {
		return r.styles.Muted.Render(r.empty)
	}

	lines := make([]string, 0, len(r.items)+2)
	lines = append(lines, r.styles.Subtitle.Render(fmt.Sprintf("Results (%d)", len(r.items))), "")

	// Each row is two lines.
	visibleCount := (r.height - 4) / 2
	if visibleCount < 1 {
		visibleCount = 1
	}

	start := 0
	if r.selected >= visibleCount {
		start = r.selected - visibleCount + 1
	}
	end := start + visibleCount
	if end > len(r.items) {
		end = len(r.items)
	}

	for i := start; i < end; i++ {
		lines = append(lines, r.renderItem(i, &r.items[i]))
	}

	return strings.Join(lines, "\n")
}

// renderItem formats one row: id, title and score, then a preview line.
func (r *ResultList) renderItem(index int, item *Item) string {
	indicator := "  "
	if index == r.selected {
		indicator = "> "
	}

	title := item.Title
	if title == "" {
		title = "(Untitled)"
	}
	label := fmt.Sprintf("#%d %s", item.ProductID, title)

	maxLabelLen := r.width - 14
	if maxLabelLen < 10 {
		maxLabelLen = 10
	}
	label = clip(label, maxLabelLen)

	score := ""
	if item.HasScore {
		score = fmt.Sprintf("%.3f", item.Score)
	}

	var titleLine string
	if index == r.selected {
		titleLine = r.styles.Selected.Render(fmt.Sprintf("%s%-*s  %s", indicator, maxLabelLen, label, score))
	} else {
		titleLine = r.styles.Normal.Render(fmt.Sprintf("%s%-*s  ", indicator, maxLabelLen, label)) +
			r.styles.Score(item.Score).Render(score)
	}

	maxPreviewLen := r.width - 6
	if maxPreviewLen < 20 {
		maxPreviewLen = 20
	}
	previewLine := r.styles.Muted.Render("    " + clip(item.Preview, maxPreviewLen))

	return titleLine + "\n" + previewLine
}

// clip shortens s to at most n runes.
func clip(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}

// SetItems replaces the rows and resets the selection.
func (r *ResultList) SetItems(items []Item) {
	r.items = items
	r.selected = 0
}

// Items returns the current rows.
func (r *ResultList) Items() []Item {
	return r.items
}

// SetEmptyText sets the text shown when there are no rows.
func (r *ResultList) SetEmptyText(text string) {
	r.empty = text
}

// Selected returns the index of the selected row.
func (r *ResultList) Selected() int {
	return r.selected
}

// SetSelected sets the selected index.
func (r *ResultList) SetSelected(index int) {
	if index >= 0 && index < len(r.items) {
		r.selected = index
	}
}

// SelectedItem returns the currently selected row, or nil if none.
func (r *ResultList) SelectedItem() *Item {
	if len(r.items) == 0 || r.selected < 0 || r.selected >= len(r.items) {
		return nil
	}
	return &r.items[r.selected]
}

// MoveUp moves selection up.
func (r *ResultList) MoveUp() {
	if r.selected > 0 {
		r.selected--
	}
}

// MoveDown moves selection down.
func (r *ResultList) MoveDown() {
	if r.selected < len(r.items)-1 {
		r.selected++
	}
}

// SetDimensions sets the component dimensions.
func (r *ResultList) SetDimensions(width, height int) {
	r.width = width
	r.height = height
}

// Count returns the number of rows.
func (r *ResultList) Count() int {
	return len(r.items)
}

// IsEmpty returns whether the list is empty.
func (r *ResultList) IsEmpty() bool {
	return len(r.items) == 0
}
