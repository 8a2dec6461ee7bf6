// Package mcp provides an MCP (Model Context Protocol) server adapter for Sourcy.
// It lets AI assistants look up products and ask for similar ones.
package mcp

import "errors"

var (
	// ErrMissingRecommendService is returned when the recommend service is not provided.
	ErrMissingRecommendService = errors.New("mcp: recommend service is required")

	// ErrMissingCatalogService is returned when the catalog service is not provided.
	ErrMissingCatalogService = errors.New("mcp: catalog service is required")

	// ErrConflictingSelection is returned when both top_n and threshold are given.
	ErrConflictingSelection = errors.New("mcp: top_n and threshold are mutually exclusive")
)
