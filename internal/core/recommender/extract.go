package recommender

import (
	"strconv"
	"strings"

	"github.com/sourcy-labs/sourcy/internal/core/domain"
)

// ExtractFeatures renders a product, its attributes and its variants as a
// single "field:value" document.
//
// attributes and variants may be the full catalog collections: only records
// whose ProductID matches p are used, in the order supplied. Records that
// reference other products contribute nothing.
func ExtractFeatures(p *domain.Product, attributes []domain.ProductAttribute, variants []domain.ProductVariant) string {
	var productText strings.Builder
	writeField(&productText, "title", p.Title)
	writeField(&productText, "gpt_category_suggestion", p.GPTCategorySuggestion)
	writeField(&productText, "gpt_description", p.GPTDescription)
	writeField(&productText, "is_catalogued", strconv.FormatBool(p.IsCatalogued))
	writeField(&productText, "is_validated", strconv.FormatBool(p.IsValidated))
	writeField(&productText, "repurchase_rate", formatFloat(p.RepurchaseRate))
	writeField(&productText, "stock_count", strconv.FormatInt(p.StockCount, 10))
	writeField(&productText, "stock_units", p.StockUnits)
	writeField(&productText, "keyword", p.Keyword)
	writeField(&productText, "title_translated", p.TitleTranslated)

	attributeText := make([]string, 0)
	for i := range attributes {
		if attributes[i].ProductID != p.ProductID {
			continue
		}
		attributeText = append(attributeText, attributes[i].Key+":"+attributes[i].Value)
	}

	variantText := make([]string, 0)
	for i := range variants {
		v := &variants[i]
		if v.ProductID != p.ProductID {
			continue
		}
		var b strings.Builder
		writeField(&b, "variant_key", v.VariantKey)
		writeField(&b, "price", formatFloat(v.Price))
		writeField(&b, "stock_count", strconv.FormatInt(v.StockCount, 10))
		writeField(&b, "weight_per_unit_kg", formatFloat(v.WeightPerUnitKg))
		writeField(&b, "length_cm", formatFloat(v.LengthCm))
		writeField(&b, "width_cm", formatFloat(v.WidthCm))
		writeField(&b, "height_cm", formatFloat(v.HeightCm))
		writeField(&b, "price_currency", v.PriceCurrency)
		writeField(&b, "stock_units", v.StockUnits)
		writeField(&b, "is_validated", strconv.FormatBool(v.IsValidated))
		writeField(&b, "is_catalogued", strconv.FormatBool(v.IsCatalogued))
		variantText = append(variantText, b.String())
	}

	return productText.String() + " " + strings.Join(attributeText, " ") + " " + strings.Join(variantText, " ")
}

// writeField appends "name:value", space-separated from any previous field.
func writeField(b *strings.Builder, name, value string) {
	if b.Len() > 0 {
		b.WriteByte(' ')
	}
	b.WriteString(name)
	b.WriteByte(':')
	b.WriteString(value)
}

// formatFloat renders a float in its shortest exact form: 12.5, 3, NaN.
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
