package input

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func typeRunes(f *Field, s string) *Field {
	for _, r := range s {
		f, _ = f.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return f
}

func TestNewField(t *testing.T) {
	f := NewField(nil, "Product ID:", "e.g. 42", true)

	require.NotNil(t, f)
	assert.True(t, f.Focused())
	assert.Empty(t, f.Value())
	assert.Contains(t, f.View(), "Product ID:")
}

func TestField_TextAcceptsAnything(t *testing.T) {
	f := NewField(nil, "Search:", "", false)

	f = typeRunes(f, "mug 2")

	assert.Equal(t, "mug 2", f.Value())
}

func TestField_NumericRejectsLetters(t *testing.T) {
	f := NewField(nil, "Product ID:", "", true)

	f = typeRunes(f, "4x2")

	assert.Equal(t, "42", f.Value())
}

func TestField_NumericFiltersPastedRunes(t *testing.T) {
	f := NewField(nil, "Product ID:", "", true)

	f, _ = f.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("id: 1-2-3")})

	assert.Equal(t, "123", f.Value())
}

func TestDigits(t *testing.T) {
	assert.Equal(t, []rune("0123456789"), digits([]rune("0123456789")))
	assert.Empty(t, digits([]rune("abc")))
	assert.Equal(t, []rune("1"), digits([]rune("-1")))
}

func TestField_FocusBlurReset(t *testing.T) {
	f := NewField(nil, "Search:", "", false)
	f.SetValue("cotton")

	f.Blur()
	assert.False(t, f.Focused())

	f.Focus()
	assert.True(t, f.Focused())

	f.Reset()
	assert.Empty(t, f.Value())
}

func TestField_SetWidth(t *testing.T) {
	f := NewField(nil, "Search:", "", false)

	f.SetWidth(120)
	assert.Equal(t, 120, f.Width())

	f.SetWidth(5)
	assert.Equal(t, 5, f.Width())
}
