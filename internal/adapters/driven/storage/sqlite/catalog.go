package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/sourcy-labs/sourcy/internal/core/domain"
	"github.com/sourcy-labs/sourcy/internal/core/ports/driven"
)

const productColumns = `product_id, scrape_product_id, platform_id, supplier_id, stock_count,
	repurchase_rate, is_validated, is_catalogued, created_at, updated_at, stock_units,
	keyword, link, title_translated, gpt_category_suggestion, gpt_description,
	product_label, trending_label, title, image_urls`

const attributeColumns = `product_attribute_id, product_id, scrape_product_attribute_id,
	product_attribute_key, product_attribute_value, created_at, updated_at`

const variantColumns = `product_variant_id, product_id, scrape_product_variant_id, stock_count,
	price, weight_per_unit_kg, length_cm, width_cm, height_cm, product_variant_key,
	price_currency, stock_units, is_validated, is_catalogued, created_at, updated_at`

// searchPredicate matches the product search fields case-insensitively.
const searchPredicate = `
	instr(lower(title), lower(?1)) > 0 OR
	instr(lower(title_translated), lower(?1)) > 0 OR
	instr(lower(keyword), lower(?1)) > 0 OR
	instr(lower(gpt_category_suggestion), lower(?1)) > 0 OR
	instr(lower(gpt_description), lower(?1)) > 0 OR
	instr(lower(product_label), lower(?1)) > 0 OR
	instr(lower(trending_label), lower(?1)) > 0`

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// catalogStore implements driven.CatalogStore.
type catalogStore struct {
	store *Store
}

var _ driven.CatalogStore = (*catalogStore)(nil)

// ListProducts returns every product ordered by product id.
func (s *catalogStore) ListProducts(ctx context.Context) ([]domain.Product, error) {
	rows, err := s.store.db.QueryContext(ctx,
		`SELECT `+productColumns+` FROM products ORDER BY product_id`)
	if err != nil {
		return nil, fmt.Errorf("querying products: %w", err)
	}
	return collect(rows, scanProduct)
}

// ListAttributes returns every attribute ordered by attribute id.
func (s *catalogStore) ListAttributes(ctx context.Context) ([]domain.ProductAttribute, error) {
	rows, err := s.store.db.QueryContext(ctx,
		`SELECT `+attributeColumns+` FROM product_attributes ORDER BY product_attribute_id`)
	if err != nil {
		return nil, fmt.Errorf("querying attributes: %w", err)
	}
	return collect(rows, scanAttribute)
}

// ListVariants returns every variant ordered by variant id.
func (s *catalogStore) ListVariants(ctx context.Context) ([]domain.ProductVariant, error) {
	rows, err := s.store.db.QueryContext(ctx,
		`SELECT `+variantColumns+` FROM product_variants ORDER BY product_variant_id`)
	if err != nil {
		return nil, fmt.Errorf("querying variants: %w", err)
	}
	return collect(rows, scanVariant)
}

// GetProduct retrieves a product by id.
func (s *catalogStore) GetProduct(ctx context.Context, productID int64) (*domain.Product, error) {
	row := s.store.db.QueryRowContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE product_id = ?`, productID)

	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// ProductAttributes returns the attributes of one product.
func (s *catalogStore) ProductAttributes(ctx context.Context, productID int64) ([]domain.ProductAttribute, error) {
	rows, err := s.store.db.QueryContext(ctx,
		`SELECT `+attributeColumns+` FROM product_attributes
		WHERE product_id = ? ORDER BY product_attribute_id`, productID)
	if err != nil {
		return nil, fmt.Errorf("querying attributes: %w", err)
	}
	return collect(rows, scanAttribute)
}

// ProductVariants returns the variants of one product.
func (s *catalogStore) ProductVariants(ctx context.Context, productID int64) ([]domain.ProductVariant, error) {
	rows, err := s.store.db.QueryContext(ctx,
		`SELECT `+variantColumns+` FROM product_variants
		WHERE product_id = ? ORDER BY product_variant_id`, productID)
	if err != nil {
		return nil, fmt.Errorf("querying variants: %w", err)
	}
	return collect(rows, scanVariant)
}

// SearchProducts returns up to limit products matching query.
// lower() in SQLite folds ASCII only.
func (s *catalogStore) SearchProducts(ctx context.Context, query string, limit int) ([]domain.Product, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.store.db.QueryContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE `+searchPredicate+`
		ORDER BY product_id LIMIT ?2`, query, limit)
	if err != nil {
		return nil, fmt.Errorf("searching products: %w", err)
	}
	return collect(rows, scanProduct)
}

// ReplaceCatalog deletes the stored catalog and inserts catalog in one
// transaction. Duplicate ids keep their first occurrence.
func (s *catalogStore) ReplaceCatalog(ctx context.Context, catalog *domain.Catalog) error {
	if catalog == nil {
		catalog = &domain.Catalog{}
	}

	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	for _, table := range []string{"product_variants", "product_attributes", "products"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	if err := insertProducts(ctx, tx, catalog.Products); err != nil {
		return err
	}
	if err := insertAttributes(ctx, tx, catalog.Attributes); err != nil {
		return err
	}
	if err := insertVariants(ctx, tx, catalog.Variants); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

func insertProducts(ctx context.Context, tx *sql.Tx, products []domain.Product) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO products (`+productColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(product_id) DO NOTHING
	`)
	if err != nil {
		return fmt.Errorf("preparing product insert: %w", err)
	}
	defer stmt.Close()

	for i := range products {
		p := &products[i]
		if _, err := stmt.ExecContext(ctx,
			p.ProductID, p.ScrapeProductID, p.PlatformID, p.SupplierID, p.StockCount,
			nullFloat(p.RepurchaseRate), p.IsValidated, p.IsCatalogued,
			nullTime(p.CreatedAt), nullTime(p.UpdatedAt), p.StockUnits,
			p.Keyword, p.Link, p.TitleTranslated, p.GPTCategorySuggestion, p.GPTDescription,
			p.ProductLabel, p.TrendingLabel, p.Title, p.ImageURLs,
		); err != nil {
			return fmt.Errorf("inserting product %d: %w", p.ProductID, err)
		}
	}
	return nil
}

func insertAttributes(ctx context.Context, tx *sql.Tx, attributes []domain.ProductAttribute) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO product_attributes (`+attributeColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(product_attribute_id) DO NOTHING
	`)
	if err != nil {
		return fmt.Errorf("preparing attribute insert: %w", err)
	}
	defer stmt.Close()

	for i := range attributes {
		a := &attributes[i]
		if _, err := stmt.ExecContext(ctx,
			a.ProductAttributeID, a.ProductID, a.ScrapeProductAttributeID,
			a.Key, a.Value, nullTime(a.CreatedAt), nullTime(a.UpdatedAt),
		); err != nil {
			return fmt.Errorf("inserting attribute %d: %w", a.ProductAttributeID, err)
		}
	}
	return nil
}

func insertVariants(ctx context.Context, tx *sql.Tx, variants []domain.ProductVariant) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO product_variants (`+variantColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(product_variant_id) DO NOTHING
	`)
	if err != nil {
		return fmt.Errorf("preparing variant insert: %w", err)
	}
	defer stmt.Close()

	for i := range variants {
		v := &variants[i]
		if _, err := stmt.ExecContext(ctx,
			v.ProductVariantID, v.ProductID, v.ScrapeProductVariantID, v.StockCount,
			nullFloat(v.Price), nullFloat(v.WeightPerUnitKg),
			nullFloat(v.LengthCm), nullFloat(v.WidthCm), nullFloat(v.HeightCm),
			v.VariantKey, v.PriceCurrency, v.StockUnits, v.IsValidated, v.IsCatalogued,
			nullTime(v.CreatedAt), nullTime(v.UpdatedAt),
		); err != nil {
			return fmt.Errorf("inserting variant %d: %w", v.ProductVariantID, err)
		}
	}
	return nil
}

func collect[T any](rows *sql.Rows, scan func(scanner) (T, error)) ([]T, error) {
	defer rows.Close()

	result := []T{}
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}
	return result, nil
}

func scanProduct(row scanner) (domain.Product, error) {
	var p domain.Product
	var repurchaseRate sql.NullFloat64
	var createdAt, updatedAt sql.NullTime
	err := row.Scan(
		&p.ProductID, &p.ScrapeProductID, &p.PlatformID, &p.SupplierID, &p.StockCount,
		&repurchaseRate, &p.IsValidated, &p.IsCatalogued, &createdAt, &updatedAt, &p.StockUnits,
		&p.Keyword, &p.Link, &p.TitleTranslated, &p.GPTCategorySuggestion, &p.GPTDescription,
		&p.ProductLabel, &p.TrendingLabel, &p.Title, &p.ImageURLs,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return p, err
		}
		return p, fmt.Errorf("scanning product: %w", err)
	}
	p.RepurchaseRate = floatOrNaN(repurchaseRate)
	p.CreatedAt = timeOrZero(createdAt)
	p.UpdatedAt = timeOrZero(updatedAt)
	return p, nil
}

func scanAttribute(row scanner) (domain.ProductAttribute, error) {
	var a domain.ProductAttribute
	var createdAt, updatedAt sql.NullTime
	if err := row.Scan(
		&a.ProductAttributeID, &a.ProductID, &a.ScrapeProductAttributeID,
		&a.Key, &a.Value, &createdAt, &updatedAt,
	); err != nil {
		return a, fmt.Errorf("scanning attribute: %w", err)
	}
	a.CreatedAt = timeOrZero(createdAt)
	a.UpdatedAt = timeOrZero(updatedAt)
	return a, nil
}

func scanVariant(row scanner) (domain.ProductVariant, error) {
	var v domain.ProductVariant
	var price, weight, length, width, height sql.NullFloat64
	var createdAt, updatedAt sql.NullTime
	if err := row.Scan(
		&v.ProductVariantID, &v.ProductID, &v.ScrapeProductVariantID, &v.StockCount,
		&price, &weight, &length, &width, &height, &v.VariantKey,
		&v.PriceCurrency, &v.StockUnits, &v.IsValidated, &v.IsCatalogued, &createdAt, &updatedAt,
	); err != nil {
		return v, fmt.Errorf("scanning variant: %w", err)
	}
	v.Price = floatOrNaN(price)
	v.WeightPerUnitKg = floatOrNaN(weight)
	v.LengthCm = floatOrNaN(length)
	v.WidthCm = floatOrNaN(width)
	v.HeightCm = floatOrNaN(height)
	v.CreatedAt = timeOrZero(createdAt)
	v.UpdatedAt = timeOrZero(updatedAt)
	return v, nil
}

// nullFloat stores NaN as NULL.
func nullFloat(f float64) sql.NullFloat64 {
	return sql.NullFloat64{Float64: f, Valid: !math.IsNaN(f)}
}

func floatOrNaN(f sql.NullFloat64) float64 {
	if !f.Valid {
		return math.NaN()
	}
	return f.Float64
}

func nullTime(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t.UTC(), Valid: !t.IsZero()}
}

func timeOrZero(t sql.NullTime) time.Time {
	if !t.Valid {
		return time.Time{}
	}
	return t.Time
}
