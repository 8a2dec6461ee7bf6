package cli

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sourcy-labs/sourcy/internal/core/domain"
)

func TestProductGet(t *testing.T) {
	defer setupTestServices()()

	out, err := runCommand(t, "product", "get", "1")

	require.NoError(t, err)
	assert.Contains(t, out, "#1 red cotton shirt")
	assert.Contains(t, out, "Description: soft cotton")
	assert.Contains(t, out, "material: cotton")
	assert.Contains(t, out, "M  12.5 USD  stock 0")
}

func TestProductGet_JSON(t *testing.T) {
	defer setupTestServices()()

	out, err := runCommand(t, "product", "get", "1", "--json")
	require.NoError(t, err)

	var detail map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &detail))
	product, ok := detail["product"].(map[string]any)
	require.True(t, ok)
	assert.InDelta(t, 1, product["product_id"], 0)
	assert.Len(t, detail["attributes"], 1)
}

func TestProductGet_NotFound(t *testing.T) {
	defer setupTestServices()()

	_, err := runCommand(t, "product", "get", "42")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductGet_MalformedID(t *testing.T) {
	defer setupTestServices()()

	_, err := runCommand(t, "product", "get", "x1")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProductSearch(t *testing.T) {
	defer setupTestServices()()

	out, err := runCommand(t, "product", "search", "COTTON")

	require.NoError(t, err)
	assert.Contains(t, out, "#1 red cotton shirt")
	assert.Contains(t, out, "#2 blue cotton shirt")
	assert.NotContains(t, out, "#3")
}

func TestProductSearch_Limit(t *testing.T) {
	defer setupTestServices()()

	out, err := runCommand(t, "product", "search", "cotton", "--limit", "1")

	require.NoError(t, err)
	assert.Contains(t, out, "#1 ")
	assert.NotContains(t, out, "#2 ")
}

func TestProductSearch_NoResults(t *testing.T) {
	defer setupTestServices()()

	out, err := runCommand(t, "product", "search", "submarine")

	require.NoError(t, err)
	assert.Contains(t, out, "No products found.")
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "-", formatNumber(math.NaN()))
	assert.Equal(t, "-", formatNumber(math.Inf(1)))
	assert.Equal(t, "0.25", formatNumber(0.25))
}
