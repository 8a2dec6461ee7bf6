package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/sourcy-labs/sourcy/internal/core/domain"
)

const (
	// URIScheme is the custom URI scheme for Sourcy resources.
	uriScheme = "sourcy://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "corpus",
		Name:        "corpus",
		Description: "Size and vocabulary of the recommendation corpus",
		MIMEType:    "application/json",
	}, s.handleCorpusResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "products/{productId}",
		Name:        "product",
		Description: "A catalog product with its attributes and variants",
		MIMEType:    "application/json",
	}, s.handleProductResource)
}

// handleCorpusResource returns corpus statistics.
func (s *Server) handleCorpusResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	stats, err := s.ports.Recommend.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("corpus stats: %w", err)
	}

	data, err := json.MarshalIndent(stats, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling stats: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleProductResource returns one product.
func (s *Server) handleProductResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	productID, ok := extractProductID(req.Params.URI)
	if !ok {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	text, err := s.productJSON(ctx, productID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, err
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     text,
		}},
	}, nil
}

// extractProductID extracts the product ID from a URI like sourcy://products/{productId}.
func extractProductID(uri string) (int64, bool) {
	const prefix = uriScheme + "products/"

	if !strings.HasPrefix(uri, prefix) {
		return 0, false
	}

	id, err := strconv.ParseInt(strings.TrimPrefix(uri, prefix), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
