package mcp

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sourcy-labs/sourcy/internal/core/domain"
)

func TestExtractProductID(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		expected int64
		ok       bool
	}{
		{name: "valid product URI", uri: "sourcy://products/42", expected: 42, ok: true},
		{name: "invalid prefix", uri: "file://products/42"},
		{name: "non-numeric id", uri: "sourcy://products/abc"},
		{name: "missing id", uri: "sourcy://products/"},
		{name: "empty URI", uri: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := extractProductID(tt.uri)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, id)
		})
	}
}

func readRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{Params: &mcp.ReadResourceParams{URI: uri}}
}

func TestServer_handleCorpusResource(t *testing.T) {
	rec := &mockRecommendService{stats: &domain.CorpusStats{SnapshotID: "snap-1", Documents: 6, Vocabulary: 30}}
	server, err := newTestServer(rec, &mockCatalogService{})
	require.NoError(t, err)

	result, err := server.handleCorpusResource(context.Background(), readRequest("sourcy://corpus"))

	require.NoError(t, err)
	require.Len(t, result.Contents, 1)
	assert.Equal(t, "application/json", result.Contents[0].MIMEType)
	assert.Contains(t, result.Contents[0].Text, `"snapshot_id": "snap-1"`)
	assert.Contains(t, result.Contents[0].Text, `"documents": 6`)
}

func TestServer_handleProductResource(t *testing.T) {
	ctx := context.Background()

	t.Run("returns product", func(t *testing.T) {
		cat := &mockCatalogService{detail: &domain.ProductDetail{Product: domain.Product{ProductID: 3, Title: "shovel"}}}
		server, err := newTestServer(&mockRecommendService{}, cat)
		require.NoError(t, err)

		result, err := server.handleProductResource(ctx, readRequest("sourcy://products/3"))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "sourcy://products/3", result.Contents[0].URI)
		assert.Contains(t, result.Contents[0].Text, `"shovel"`)
	})

	t.Run("unknown product is not found", func(t *testing.T) {
		server, err := newTestServer(&mockRecommendService{}, &mockCatalogService{})
		require.NoError(t, err)

		_, err = server.handleProductResource(ctx, readRequest("sourcy://products/3"))

		require.Error(t, err)
	})

	t.Run("malformed URI is not found", func(t *testing.T) {
		server, err := newTestServer(&mockRecommendService{}, &mockCatalogService{})
		require.NoError(t, err)

		_, err = server.handleProductResource(ctx, readRequest("sourcy://products/abc"))

		require.Error(t, err)
	})
}
