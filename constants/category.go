package constants

import (
	"strings"
)

// Category is the product category assigned to an invoice line item.
type Category string

// The enumeration is fixed; the extraction engine is prompted with exactly
// these labels and anything it invents collapses to Other.
const (
	Produce    Category = "PRODUCE"
	Dairy      Category = "DAIRY"
	Meat       Category = "MEAT"
	Seafood    Category = "SEAFOOD"
	Beverages  Category = "Beverages"
	DryGrocery Category = "Dry Grocery"
	Bakery     Category = "BAKERY"
	Frozen     Category = "FROZEN"
	PaperGoods Category = "paper goods and Disposables"
	Liquor     Category = "liquor"
	Chemical   Category = "Chemical"
	Other      Category = "OTHER"
)

var allCategories = []Category{
	Produce,
	Dairy,
	Meat,
	Seafood,
	Beverages,
	DryGrocery,
	Bakery,
	Frozen,
	PaperGoods,
	Liquor,
	Chemical,
	Other,
}

// CategoryStrings returns the enumeration in prompt order.
func CategoryStrings() []string {
	result := make([]string, len(allCategories))
	for i, cat := range allCategories {
		result[i] = string(cat)
	}
	return result
}

// CanonicalizeCategory maps free-form engine output onto the enumeration.
// The second return reports whether the input matched anything.
func CanonicalizeCategory(input string) (Category, bool) {
	if input == "" {
		return Other, false
	}

	normalized := strings.ToLower(strings.TrimSpace(input))

	// synonyms map
	synonyms := map[string]Category{
		"fruit":       Produce,
		"vegetables":  Produce,
		"fresh":       Produce,
		"milk":        Dairy,
		"cheese":      Dairy,
		"poultry":     Meat,
		"fish":        Seafood,
		"shellfish":   Seafood,
		"beverage":    Beverages,
		"drinks":      Beverages,
		"grocery":     DryGrocery,
		"dry goods":   DryGrocery,
		"canned":      DryGrocery,
		"bread":       Bakery,
		"pastry":      Bakery,
		"paper goods": PaperGoods,
		"disposables": PaperGoods,
		"packaging":   PaperGoods,
		"beer":        Liquor,
		"wine":        Liquor,
		"spirits":     Liquor,
		"alcohol":     Liquor,
		"cleaning":    Chemical,
		"chemicals":   Chemical,
	}

	if cat, ok := synonyms[normalized]; ok {
		return cat, true
	}

	// check if it matches any category string
	for _, cat := range allCategories {
		if normalized == strings.ToLower(string(cat)) {
			return cat, true
		}
	}

	return Other, false
}
