package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sourcy-labs/sourcy/internal/adapters/driving/tui"
	"github.com/sourcy-labs/sourcy/internal/adapters/driving/tui/messages"
)

func TestTUICommand_Registered(t *testing.T) {
	cmd, _, err := rootCmd.Find([]string{"tui"})

	require.NoError(t, err)
	assert.Equal(t, "tui", cmd.Name())
}

func TestTUI_NotConfigured(t *testing.T) {
	restore := setupTestServices()
	defer restore()
	SetServices(nil)

	_, err := runCommand(t, "tui")

	assert.ErrorIs(t, err, tui.ErrMissingRecommendService)
}

func TestTUI_RequiresTerminal(t *testing.T) {
	defer setupTestServices()()
	prev := isTerminal
	isTerminal = func() bool { return false }
	defer func() { isTerminal = prev }()

	_, err := runCommand(t, "tui")

	assert.ErrorIs(t, err, errNotTerminal)
}

func TestNewTUIApp(t *testing.T) {
	defer setupTestServices()()

	app, err := newTUIApp(rootCmd)

	require.NoError(t, err)
	assert.Equal(t, messages.ViewMenu, app.CurrentView())
}
