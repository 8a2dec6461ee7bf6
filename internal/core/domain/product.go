package domain

import (
	"strings"
	"time"
)

// Product is a catalog entry. Prices live on its variants.
type Product struct {
	ProductID             int64     `json:"product_id"`
	ScrapeProductID       int64     `json:"scrape_product_id"`
	PlatformID            int64     `json:"platform_id"`
	SupplierID            int64     `json:"supplier_id"`
	StockCount            int64     `json:"stock_count"`
	RepurchaseRate        float64   `json:"repurchase_rate"`
	IsValidated           bool      `json:"is_validated"`
	IsCatalogued          bool      `json:"is_catalogued"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
	StockUnits            string    `json:"stock_units"`
	Keyword               string    `json:"keyword"`
	Link                  string    `json:"link"`
	TitleTranslated       string    `json:"title_translated"`
	GPTCategorySuggestion string    `json:"gpt_category_suggestion"`
	GPTDescription        string    `json:"gpt_description"`
	ProductLabel          string    `json:"product_label"`
	TrendingLabel         string    `json:"trending_label"`
	Title                 string    `json:"title"`

	// ImageURLs is the raw image blob as stored in the catalog.
	ImageURLs string `json:"image_urls"`
}

// Summary projects the product down to the fields returned by recommendation
// and search responses.
func (p *Product) Summary() ProductSummary {
	return ProductSummary{
		ProductID:       p.ProductID,
		Title:           p.Title,
		TitleTranslated: p.TitleTranslated,
		GPTDescription:  p.GPTDescription,
		ImageURLs:       p.ImageURLs,
	}
}

// SearchText returns the fields product search matches against.
func (p *Product) SearchText() []string {
	return []string{
		p.Title,
		p.TitleTranslated,
		p.Keyword,
		p.GPTCategorySuggestion,
		p.GPTDescription,
		p.ProductLabel,
		p.TrendingLabel,
	}
}

// MatchesQuery reports whether any search field contains query,
// ignoring case.
func (p *Product) MatchesQuery(query string) bool {
	q := strings.ToLower(query)
	for _, field := range p.SearchText() {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

// ProductAttribute is a sparse key/value pair attached to a product
// (colour, material, ...).
type ProductAttribute struct {
	ProductAttributeID       int64     `json:"product_attribute_id"`
	ProductID                int64     `json:"product_id"`
	ScrapeProductAttributeID int64     `json:"scrape_product_attribute_id"`
	Key                      string    `json:"product_attribute_key"`
	Value                    string    `json:"product_attribute_value"`
	CreatedAt                time.Time `json:"created_at"`
	UpdatedAt                time.Time `json:"updated_at"`
}

// ProductVariant is a purchasable SKU of a product (size, colour, ...).
type ProductVariant struct {
	ProductVariantID       int64     `json:"product_variant_id"`
	ProductID              int64     `json:"product_id"`
	ScrapeProductVariantID int64     `json:"scrape_product_variant_id"`
	StockCount             int64     `json:"stock_count"`
	Price                  float64   `json:"price"`
	WeightPerUnitKg        float64   `json:"weight_per_unit_kg"`
	LengthCm               float64   `json:"length_cm"`
	WidthCm                float64   `json:"width_cm"`
	HeightCm               float64   `json:"height_cm"`
	VariantKey             string    `json:"product_variant_key"`
	PriceCurrency          string    `json:"price_currency"`
	StockUnits             string    `json:"stock_units"`
	IsValidated            bool      `json:"is_validated"`
	IsCatalogued           bool      `json:"is_catalogued"`
	CreatedAt              time.Time `json:"created_at"`
	UpdatedAt              time.Time `json:"updated_at"`
}

// ProductSummary is the lightweight projection of a product.
// Callers needing the full record re-fetch it by ProductID.
type ProductSummary struct {
	ProductID       int64  `json:"product_id"`
	Title           string `json:"title"`
	TitleTranslated string `json:"title_translated"`
	GPTDescription  string `json:"gpt_description"`
	ImageURLs       string `json:"image_urls"`
}

// Catalog is an in-memory snapshot of the three catalog collections.
// Collections keep the iteration order they were loaded in.
type Catalog struct {
	Products   []Product
	Attributes []ProductAttribute
	Variants   []ProductVariant
}

// IsEmpty returns true if the snapshot holds no products.
func (c *Catalog) IsEmpty() bool {
	return c == nil || len(c.Products) == 0
}

// DefaultSearchLimit caps product search results when no limit is given.
const DefaultSearchLimit = 20

// ProductDetail is a product together with the records that describe it.
type ProductDetail struct {
	Product    Product            `json:"product"`
	Attributes []ProductAttribute `json:"attributes"`
	Variants   []ProductVariant   `json:"variants"`
}

// ImportResult reports what a catalog import stored.
type ImportResult struct {
	Source     string `json:"source"`
	Products   int    `json:"products"`
	Attributes int    `json:"attributes"`
	Variants   int    `json:"variants"`
}

// ResultFor counts the records of catalog.
func ResultFor(source string, catalog *Catalog) ImportResult {
	if catalog == nil {
		return ImportResult{Source: source}
	}
	return ImportResult{
		Source:     source,
		Products:   len(catalog.Products),
		Attributes: len(catalog.Attributes),
		Variants:   len(catalog.Variants),
	}
}
