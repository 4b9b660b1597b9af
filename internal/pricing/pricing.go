package pricing

import "math"

// Size is a print size option with its price multiplier.
type Size struct {
	ID         string  `json:"id"`
	Dimensions string  `json:"dimensions"`
	Label      string  `json:"label"`
	Multiplier float64 `json:"multiplier"`
}

// Material is a print material option with its price multiplier and
// localized display names.
type Material struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	NameHe     string  `json:"nameHe"`
	NameRu     string  `json:"nameRu"`
	Multiplier float64 `json:"multiplier"`
}

// Table is the immutable process-wide pricing configuration: ordered
// size and material options plus per-size base prices in USD.
type Table struct {
	Sizes     []Size
	Materials []Material
	Base      map[string]float64
}

// Default mirrors the storefront's pricing configuration.
var Default = Table{
	Sizes: []Size{
		{ID: "small", Dimensions: "20x30", Label: "20x30 cm", Multiplier: 1.0},
		{ID: "medium", Dimensions: "40x60", Label: "40x60 cm", Multiplier: 2.0},
		{ID: "large", Dimensions: "60x90", Label: "60x90 cm", Multiplier: 4.0},
	},
	Materials: []Material{
		{ID: "canvas", Name: "Canvas", NameHe: "קנבס", NameRu: "Холст", Multiplier: 1.0},
		{ID: "framed", Name: "Framed Print", NameHe: "הדפס ממוסגר", NameRu: "В раме", Multiplier: 1.2},
		{ID: "paper_glossy", Name: "Photo Paper (Glossy)", NameHe: "נייר צילום (מבריק)", NameRu: "Фотобумага (глянец)", Multiplier: 0.6},
		{ID: "paper_matte", Name: "Photo Paper (Matte)", NameHe: "נייר צילום (מט)", NameRu: "Фотобумага (матовая)", Multiplier: 0.6},
		{ID: "metal", Name: "Metal Print", NameHe: "הדפס מתכת", NameRu: "На металле", Multiplier: 1.6},
		{ID: "acrylic", Name: "Acrylic Print", NameHe: "הדפס אקרילי", NameRu: "На акриле", Multiplier: 1.8},
		{ID: "wood", Name: "Wood Print", NameHe: "הדפס עץ", NameRu: "На дереве", Multiplier: 1.4},
	},
	Base: map[string]float64{
		"small":  50,
		"medium": 100,
		"large":  200,
	},
}

// ShippingCostUSD is the flat shipping cost added to every order.
const ShippingCostUSD = 10

// SizeByID returns the size option for id, or false when unknown.
func (t Table) SizeByID(id string) (Size, bool) {
	for _, s := range t.Sizes {
		if s.ID == id {
			return s, true
		}
	}
	return Size{}, false
}

// MaterialByID returns the material option for id, or false when unknown.
func (t Table) MaterialByID(id string) (Material, bool) {
	for _, m := range t.Materials {
		if m.ID == id {
			return m, true
		}
	}
	return Material{}, false
}

// CalculatePrice derives the display price for a size/material pair.
// Unknown ids fall back to the base price unchanged; this leniency is for
// display-time callers only, the checkout verifier resolves ids strictly.
func (t Table) CalculatePrice(sizeID, materialID string, basePrice float64) float64 {
	size, okSize := t.SizeByID(sizeID)
	material, okMaterial := t.MaterialByID(materialID)
	if !okSize || !okMaterial {
		return basePrice
	}
	return math.Round(basePrice * size.Multiplier * material.Multiplier)
}

// CalculatePrice derives a price from the default table.
func CalculatePrice(sizeID, materialID string, basePrice float64) float64 {
	return Default.CalculatePrice(sizeID, materialID, basePrice)
}
