// Package csvdir reads a product catalog from a directory of CSV exports.
//
// The directory holds three header-keyed files:
//
//   - forexternal_products.csv (required)
//   - forexternal_product_attributes.csv
//   - forexternal_product_variants.csv
//
// Columns are matched by header name, so column order does not matter and
// unknown columns are ignored. Integers that fail to parse read as 0, floats
// as NaN, and booleans are true only for a case-insensitive "true".
package csvdir
