package foodapi

import (
	"encoding/json"
	"strconv"
	"strings"
)

// SearchResponse is the raw API response from the search endpoint.
type SearchResponse struct {
	Count    int       `json:"count"`
	Products []Product `json:"products"`
}

// productResponse is the raw API response from the barcode endpoint.
type productResponse struct {
	Status  int      `json:"status"`
	Product *Product `json:"product"`
}

// Product is a single food item from the Open Food Facts database.
type Product struct {
	Code   string `json:"code"`
	Name   string `json:"product_name"`
	Brands string `json:"brands"`
	// Serving quantity arrives as a number or a string depending on the
	// product, so it stays raw until read.
	ServingQuantity json.RawMessage `json:"serving_quantity"`
	Nutriments      Nutriments      `json:"nutriments"`
}

// Nutriments holds per-100g nutrition facts. The database serves these
// as numbers or strings depending on the product, so each field is kept
// raw and parsed on access.
type Nutriments struct {
	EnergyKcal100g json.RawMessage `json:"energy-kcal_100g"`
	Proteins100g   json.RawMessage `json:"proteins_100g"`
	Carbs100g      json.RawMessage `json:"carbohydrates_100g"`
	Fat100g        json.RawMessage `json:"fat_100g"`
}

// KcalPer100g returns the product's energy density, if known.
func (p Product) KcalPer100g() (float64, bool) {
	return parseNumber(p.Nutriments.EnergyKcal100g)
}

// ServingGrams returns the serving size in grams, if known.
func (p Product) ServingGrams() (float64, bool) {
	return parseNumber(p.ServingQuantity)
}

// KcalForGrams scales the per-100g energy to a portion size.
func (p Product) KcalForGrams(grams float64) (float64, bool) {
	per100, ok := p.KcalPer100g()
	if !ok || grams < 0 {
		return 0, false
	}
	return per100 * grams / 100, true
}

// DisplayName joins brand and product name for listings.
func (p Product) DisplayName() string {
	name := strings.TrimSpace(p.Name)
	brand := strings.TrimSpace(p.Brands)
	// Multi-brand products list them comma separated; the first is enough.
	if i := strings.Index(brand, ","); i >= 0 {
		brand = strings.TrimSpace(brand[:i])
	}
	switch {
	case name == "" && brand == "":
		return p.Code
	case name == "":
		return brand
	case brand == "":
		return name
	}
	return brand + " " + name
}

// parseNumber parses a polymorphic numeric field.
// Handles JSON numbers (123 or 123.4) and strings ("123.4" or "123,4").
// Unmarshal treats null as a no-op success, so it is rejected up front.
func parseNumber(raw json.RawMessage) (float64, bool) {
	if len(raw) == 0 || string(raw) == "null" {
		return 0, false
	}

	// Try number first (covers both int and float JSON)
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f, true
	}

	// Try string
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
		if v, err := strconv.ParseFloat(s, 64); err == nil {
			return v, true
		}
	}

	return 0, false
}
