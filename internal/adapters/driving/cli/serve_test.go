package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runCancelled executes args with an already cancelled context so
// long-running commands return as soon as they start.
func runCancelled(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.ExecuteContext(ctx)
	return buf.String(), err
}

func TestServe_StopsOnCancel(t *testing.T) {
	defer setupTestServices()()

	out, err := runCancelled(t, "serve", "--addr", "127.0.0.1:0")

	require.NoError(t, err)
	assert.Contains(t, out, "Serving on 127.0.0.1:0")
}

func TestServe_CachedCorpusWithWatcher(t *testing.T) {
	defer setupTestServices()()
	require.NoError(t, settingsService.Set("recommender.cache_corpus", "true"))
	catalogPath = filepath.Join(t.TempDir(), "catalog.db")

	out, err := runCancelled(t, "serve", "-a", "127.0.0.1:0")

	require.NoError(t, err)
	assert.Contains(t, out, "Serving on")
}

func TestServe_NotConfigured(t *testing.T) {
	restore := setupTestServices()
	defer restore()
	SetServices(nil)

	_, err := runCommand(t, "serve")

	assert.EqualError(t, err, "recommend service not configured")
}
