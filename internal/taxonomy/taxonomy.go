// Package taxonomy holds the fixed category/subcategory enumeration of the
// catalog. Lookups are case-insensitive and whitespace-tolerant: inputs are
// normalized once to a canonical key instead of building per-query patterns.
package taxonomy

import "strings"

var categories = map[string][]string{
	"Office Stationaries": {
		"Notebooks & Papers",
		"Adhesive & Glue",
		"Pen & Pencil Kits",
		"Whitener & Markers",
		"Stapler & Scissors",
		"Calculator",
	},
	"Print and Demands": {
		"Business Cards",
		"Banners & Posters",
		"Marketing Materials",
		"Printing Products",
	},
	"IT Service and Repairs": {
		"Computer & Laptop Repair",
		"Software & OS Support",
		"Server & Networking Solutions",
		"IT Security & Cybersecurity Solutions",
		"Upgradation & Hardware Enhancement",
		"IT Consultation & AMC Services",
	},
}

// byKey maps a normalized category key to its canonical name, and a
// normalized "category|subCategory" key to the canonical subcategory name.
var (
	categoryByKey = map[string]string{}
	subByKey      = map[string]string{}
)

func init() {
	for cat, subs := range categories {
		categoryByKey[normalize(cat)] = cat
		for _, sub := range subs {
			subByKey[normalize(cat)+"|"+normalize(sub)] = sub
		}
	}
}

// normalize trims, collapses internal whitespace and lowercases.
func normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// Categories returns the canonical category names.
func Categories() []string {
	names := make([]string, 0, len(categories))
	for cat := range categories {
		names = append(names, cat)
	}
	return names
}

// Subcategories returns the allowed subcategories for a category, or nil when
// the category is unknown.
func Subcategories(category string) []string {
	canonical, ok := categoryByKey[normalize(category)]
	if !ok {
		return nil
	}
	subs := categories[canonical]
	out := make([]string, len(subs))
	copy(out, subs)
	return out
}

// All returns the full category -> subcategories map.
func All() map[string][]string {
	out := make(map[string][]string, len(categories))
	for cat := range categories {
		out[cat] = Subcategories(cat)
	}
	return out
}

// CanonicalCategory resolves a category name ignoring case and whitespace.
func CanonicalCategory(category string) (string, bool) {
	canonical, ok := categoryByKey[normalize(category)]
	return canonical, ok
}

// CanonicalSubcategory resolves a subcategory within its parent category.
// The category must already be valid.
func CanonicalSubcategory(category, subCategory string) (string, bool) {
	canonicalCat, ok := categoryByKey[normalize(category)]
	if !ok {
		return "", false
	}
	canonical, ok := subByKey[normalize(canonicalCat)+"|"+normalize(subCategory)]
	return canonical, ok
}
