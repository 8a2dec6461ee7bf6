package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sourcy-labs/sourcy/internal/core/domain"
)

func TestCorpusStats(t *testing.T) {
	defer setupTestServices()()

	out, err := runCommand(t, "corpus", "stats")

	require.NoError(t, err)
	assert.Contains(t, out, "Documents:  6")
	assert.Contains(t, out, "Cached:     false")
}

func TestCorpusStats_JSON(t *testing.T) {
	defer setupTestServices()()

	out, err := runCommand(t, "corpus", "stats", "--json")
	require.NoError(t, err)

	var stats domain.CorpusStats
	require.NoError(t, json.Unmarshal([]byte(out), &stats))
	assert.Equal(t, 6, stats.Documents)
	assert.Positive(t, stats.Vocabulary)
}

func TestCorpusRebuild(t *testing.T) {
	defer setupTestServices()()

	out, err := runCommand(t, "corpus", "rebuild")

	require.NoError(t, err)
	assert.Contains(t, out, "Documents:  6")
	assert.Contains(t, out, "Built at:")
}

func TestCorpus_NotConfigured(t *testing.T) {
	restore := setupTestServices()
	defer restore()
	SetServices(nil)

	_, err := runCommand(t, "corpus", "stats")
	assert.EqualError(t, err, "recommend service not configured")

	_, err = runCommand(t, "corpus", "rebuild")
	assert.EqualError(t, err, "recommend service not configured")
}
