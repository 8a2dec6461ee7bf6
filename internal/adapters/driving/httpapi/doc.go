// Package httpapi exposes recommendations and catalog lookups over HTTP.
//
// Routes:
//
//	GET /health
//	GET /metrics
//	GET /api/v1/products/search?q=&limit=
//	GET /api/v1/products/{id}
//	GET /api/v1/products/{id}/recommendations?n=&threshold=
//
// Responses are JSON. Errors use the body {"error":{"code":...,"message":...}}.
package httpapi
