package csvdir

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/sourcy-labs/sourcy/internal/core/domain"
	"github.com/sourcy-labs/sourcy/internal/core/ports/driven"
	"github.com/sourcy-labs/sourcy/internal/logger"
)

// File names inside a catalog directory.
const (
	ProductsFile   = "forexternal_products.csv"
	AttributesFile = "forexternal_product_attributes.csv"
	VariantsFile   = "forexternal_product_variants.csv"
)

// Ensure Source implements the interface.
var _ driven.CatalogSource = (*Source)(nil)

// timeLayouts are tried in order when parsing createdAt/updatedAt.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999-07",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// Source reads a catalog from a CSV export directory.
type Source struct {
	dir string
}

// NewSource creates a source reading from dir.
func NewSource(dir string) *Source {
	return &Source{dir: dir}
}

// Name identifies the source.
func (s *Source) Name() string {
	return "csv:" + s.dir
}

// Read loads products, attributes and variants. Missing attribute or
// variant files read as empty.
func (s *Source) Read(ctx context.Context) (*domain.Catalog, error) {
	var catalog domain.Catalog

	err := s.readFile(ctx, ProductsFile, true, func(r row) {
		catalog.Products = append(catalog.Products, r.product())
	})
	if err != nil {
		return nil, err
	}

	err = s.readFile(ctx, AttributesFile, false, func(r row) {
		catalog.Attributes = append(catalog.Attributes, r.attribute())
	})
	if err != nil {
		return nil, err
	}

	err = s.readFile(ctx, VariantsFile, false, func(r row) {
		catalog.Variants = append(catalog.Variants, r.variant())
	})
	if err != nil {
		return nil, err
	}

	return &catalog, nil
}

func (s *Source) readFile(ctx context.Context, name string, required bool, emit func(row)) error {
	path := filepath.Join(s.dir, name)

	f, err := os.Open(path)
	if err != nil {
		if !required && errors.Is(err, os.ErrNotExist) {
			logger.Warn("%s not found, importing no rows from it", path)
			return nil
		}
		return fmt.Errorf("opening %s: %w", name, err)
	}
	defer f.Close()

	n, err := readRows(ctx, f, emit)
	if err != nil {
		return fmt.Errorf("reading %s: %w", name, err)
	}
	logger.Debug("Read %d rows from %s", n, path)
	return nil
}

// readRows streams CSV records to emit and returns the row count.
func readRows(ctx context.Context, r io.Reader, emit func(row)) (int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return 0, errors.New("missing header row")
		}
		return 0, err
	}

	columns := make(map[string]int, len(headers))
	for i, h := range headers {
		h = strings.TrimPrefix(h, "\ufeff")
		columns[strings.TrimSpace(h)] = i
	}
	if _, ok := columns["product_id"]; !ok {
		return 0, errors.New("missing required header: product_id")
	}

	count := 0
	for {
		if err := ctx.Err(); err != nil {
			return count, err
		}

		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return count, nil
		}
		if err != nil {
			return count, err
		}

		emit(row{columns: columns, values: record})
		count++
	}
}

// row is one CSV record addressed by header name.
type row struct {
	columns map[string]int
	values  []string
}

func (r row) str(column string) string {
	i, ok := r.columns[column]
	if !ok || i >= len(r.values) {
		return ""
	}
	return r.values[i]
}

// Numeric cells are read by their leading number, so "12 pcs" is 12.
var (
	intPrefix   = regexp.MustCompile(`^[+-]?\d+`)
	floatPrefix = regexp.MustCompile(`^[+-]?(?:Infinity|(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?)`)
)

func (r row) intVal(column string) int64 {
	n, err := strconv.ParseInt(intPrefix.FindString(strings.TrimSpace(r.str(column))), 10, 64)
	if err != nil {
		return 0
	}
	return n
}

func (r row) floatVal(column string) float64 {
	f, err := strconv.ParseFloat(floatPrefix.FindString(strings.TrimSpace(r.str(column))), 64)
	if err != nil {
		return math.NaN()
	}
	return f
}

func (r row) boolVal(column string) bool {
	return strings.ToLower(r.str(column)) == "true"
}

func (r row) timeVal(column string) time.Time {
	value := strings.TrimSpace(r.str(column))
	if value == "" {
		return time.Time{}
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}

func (r row) product() domain.Product {
	return domain.Product{
		ProductID:             r.intVal("product_id"),
		ScrapeProductID:       r.intVal("scrape_product_id"),
		PlatformID:            r.intVal("platform_id"),
		SupplierID:            r.intVal("supplier_id"),
		StockCount:            r.intVal("stock_count"),
		RepurchaseRate:        r.floatVal("repurchase_rate"),
		IsValidated:           r.boolVal("is_validated"),
		IsCatalogued:          r.boolVal("is_catalogued"),
		CreatedAt:             r.timeVal("createdAt"),
		UpdatedAt:             r.timeVal("updatedAt"),
		StockUnits:            r.str("stock_units"),
		Keyword:               r.str("keyword"),
		Link:                  r.str("link"),
		TitleTranslated:       r.str("title_translated"),
		GPTCategorySuggestion: r.str("gpt_category_suggestion"),
		GPTDescription:        r.str("gpt_description"),
		ProductLabel:          r.str("product_label"),
		TrendingLabel:         r.str("trending_label"),
		Title:                 r.str("title"),
		ImageURLs:             r.str("image_urls"),
	}
}

func (r row) attribute() domain.ProductAttribute {
	return domain.ProductAttribute{
		ProductAttributeID:       r.intVal("product_attribute_id"),
		ProductID:                r.intVal("product_id"),
		ScrapeProductAttributeID: r.intVal("scrape_product_attribute_id"),
		Key:                      r.str("product_attribute_key"),
		Value:                    r.str("product_attribute_value"),
		CreatedAt:                r.timeVal("createdAt"),
		UpdatedAt:                r.timeVal("updatedAt"),
	}
}

func (r row) variant() domain.ProductVariant {
	return domain.ProductVariant{
		ProductVariantID:       r.intVal("product_variant_id"),
		ProductID:              r.intVal("product_id"),
		ScrapeProductVariantID: r.intVal("scrape_product_variant_id"),
		StockCount:             r.intVal("stock_count"),
		Price:                  r.floatVal("price"),
		WeightPerUnitKg:        r.floatVal("weight_per_unit_kg"),
		LengthCm:               r.floatVal("length_cm"),
		WidthCm:                r.floatVal("width_cm"),
		HeightCm:               r.floatVal("height_cm"),
		VariantKey:             r.str("product_variant_key"),
		PriceCurrency:          r.str("price_currency"),
		StockUnits:             r.str("stock_units"),
		IsValidated:            r.boolVal("is_validated"),
		IsCatalogued:           r.boolVal("is_catalogued"),
		CreatedAt:              r.timeVal("createdAt"),
		UpdatedAt:              r.timeVal("updatedAt"),
	}
}
