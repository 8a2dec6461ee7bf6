package domain

import (
	"encoding/json"
	"math"
)

// nullable maps non-finite floats to nil so they encode as JSON null.
func nullable(f float64) *float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

// MarshalJSON encodes unknown numeric fields as null.
func (p Product) MarshalJSON() ([]byte, error) {
	type plain Product
	return json.Marshal(struct {
		plain
		RepurchaseRate *float64 `json:"repurchase_rate"`
	}{
		plain:          plain(p),
		RepurchaseRate: nullable(p.RepurchaseRate),
	})
}

// MarshalJSON encodes unknown numeric fields as null.
func (v ProductVariant) MarshalJSON() ([]byte, error) {
	type plain ProductVariant
	return json.Marshal(struct {
		plain
		Price           *float64 `json:"price"`
		WeightPerUnitKg *float64 `json:"weight_per_unit_kg"`
		LengthCm        *float64 `json:"length_cm"`
		WidthCm         *float64 `json:"width_cm"`
		HeightCm        *float64 `json:"height_cm"`
	}{
		plain:           plain(v),
		Price:           nullable(v.Price),
		WeightPerUnitKg: nullable(v.WeightPerUnitKg),
		LengthCm:        nullable(v.LengthCm),
		WidthCm:         nullable(v.WidthCm),
		HeightCm:        nullable(v.HeightCm),
	})
}
