// Package domain defines the core business entities for Sourcy.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Product: A catalog entry with free-text and flag fields
//   - ProductAttribute: A key/value pair attached to a product
//   - ProductVariant: A priced SKU of a product
//   - ProductSummary: The lightweight projection returned to callers
//   - Selection: How recommendation candidates are picked (top-N or threshold)
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
