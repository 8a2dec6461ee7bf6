package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/sourcy-labs/sourcy/internal/core/domain"
)

// RecommendInput is the input schema for the recommend tool.
type RecommendInput struct {
	ProductID int64    `json:"product_id" jsonschema:"id of the product to find similar products for"`
	TopN      int      `json:"top_n,omitempty" jsonschema:"return the N most similar products"`
	Threshold *float64 `json:"threshold,omitempty" jsonschema:"return every product with similarity above this value in [0,1)"`
}

// RecommendOutput is the output schema for the recommend tool.
type RecommendOutput struct {
	ProductID       int64                  `json:"product_id"`
	Recommendations []RecommendationOutput `json:"recommendations"`
	Count           int                    `json:"count"`
}

// RecommendationOutput represents a single recommended product.
type RecommendationOutput struct {
	ProductID       int64   `json:"product_id"`
	Title           string  `json:"title"`
	TitleTranslated string  `json:"title_translated,omitempty"`
	Description     string  `json:"description,omitempty"`
	ImageURLs       string  `json:"image_urls,omitempty"`
	Score           float64 `json:"score"`
}

// SearchProductsInput is the input schema for the search_products tool.
type SearchProductsInput struct {
	Query string `json:"query" jsonschema:"text to look for in titles, keywords and descriptions"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of results to return (default 20)"`
}

// SearchProductsOutput is the output schema for the search_products tool.
type SearchProductsOutput struct {
	Products []ProductOutput `json:"products"`
	Count    int             `json:"count"`
}

// ProductOutput is the summary of a product.
type ProductOutput struct {
	ProductID       int64  `json:"product_id"`
	Title           string `json:"title"`
	TitleTranslated string `json:"title_translated,omitempty"`
	Description     string `json:"description,omitempty"`
}

// GetProductInput is the input schema for the get_product tool.
type GetProductInput struct {
	ProductID int64 `json:"product_id" jsonschema:"id of the product"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "recommend",
		Description: "Find catalog products similar to a given product",
	}, s.handleRecommend)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_products",
		Description: "Search catalog products by text",
	}, s.handleSearchProducts)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_product",
		Description: "Get a product with its attributes and variants as JSON",
	}, s.handleGetProduct)
}

// selection maps tool input onto a selection policy. Neither field set
// means the configured default.
func (in RecommendInput) selection() (domain.Selection, error) {
	switch {
	case in.TopN != 0 && in.Threshold != nil:
		return domain.Selection{}, ErrConflictingSelection
	case in.TopN != 0:
		return domain.TopN(in.TopN), nil
	case in.Threshold != nil:
		return domain.Threshold(*in.Threshold), nil
	default:
		return domain.Selection{}, nil
	}
}

// handleRecommend handles the recommend tool invocation.
func (s *Server) handleRecommend(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RecommendInput,
) (*mcp.CallToolResult, RecommendOutput, error) {
	sel, err := input.selection()
	if err != nil {
		return nil, RecommendOutput{}, err
	}

	recs, err := s.ports.Recommend.Recommend(ctx, input.ProductID, sel)
	if err != nil {
		return nil, RecommendOutput{}, err
	}

	output := RecommendOutput{
		ProductID:       input.ProductID,
		Recommendations: make([]RecommendationOutput, len(recs)),
		Count:           len(recs),
	}
	for i := range recs {
		output.Recommendations[i] = RecommendationOutput{
			ProductID:       recs[i].ProductID,
			Title:           recs[i].Title,
			TitleTranslated: recs[i].TitleTranslated,
			Description:     recs[i].GPTDescription,
			ImageURLs:       recs[i].ImageURLs,
			Score:           recs[i].Score,
		}
	}

	return nil, output, nil
}

// handleSearchProducts handles the search_products tool invocation.
func (s *Server) handleSearchProducts(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchProductsInput,
) (*mcp.CallToolResult, SearchProductsOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = domain.DefaultSearchLimit
	}

	results, err := s.ports.Catalog.Search(ctx, input.Query, limit)
	if err != nil {
		return nil, SearchProductsOutput{}, err
	}

	output := SearchProductsOutput{
		Products: make([]ProductOutput, len(results)),
		Count:    len(results),
	}
	for i := range results {
		output.Products[i] = ProductOutput{
			ProductID:       results[i].ProductID,
			Title:           results[i].Title,
			TitleTranslated: results[i].TitleTranslated,
			Description:     results[i].GPTDescription,
		}
	}

	return nil, output, nil
}

// handleGetProduct handles the get_product tool invocation. The detail is
// returned as JSON text since unknown numeric fields encode as null.
func (s *Server) handleGetProduct(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GetProductInput,
) (*mcp.CallToolResult, any, error) {
	text, err := s.productJSON(ctx, input.ProductID)
	if err != nil {
		return nil, nil, err
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}, nil, nil
}

func (s *Server) productJSON(ctx context.Context, productID int64) (string, error) {
	detail, err := s.ports.Catalog.Get(ctx, productID)
	if err != nil {
		return "", fmt.Errorf("getting product %d: %w", productID, err)
	}

	data, err := json.MarshalIndent(detail, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshalling product: %w", err)
	}
	return string(data), nil
}
