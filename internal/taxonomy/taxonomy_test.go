package taxonomy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalCategory(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"Office Stationaries", "Office Stationaries", true},
		{"office stationaries", "Office Stationaries", true},
		{"  OFFICE   STATIONARIES  ", "Office Stationaries", true},
		{"print AND demands", "Print and Demands", true},
		{"it service and repairs", "IT Service and Repairs", true},
		{"Groceries", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := CanonicalCategory(tt.in)
		assert.Equal(t, tt.ok, ok, "input %q", tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
	}
}

func TestCanonicalSubcategory(t *testing.T) {
	got, ok := CanonicalSubcategory("office stationaries", "notebooks & papers")
	require.True(t, ok)
	assert.Equal(t, "Notebooks & Papers", got)

	// A subcategory only resolves inside its own category.
	_, ok = CanonicalSubcategory("Print and Demands", "Notebooks & Papers")
	assert.False(t, ok)

	_, ok = CanonicalSubcategory("Groceries", "Notebooks & Papers")
	assert.False(t, ok)
}

func TestSubcategories(t *testing.T) {
	subs := Subcategories("print and demands")
	assert.Equal(t, []string{
		"Business Cards",
		"Banners & Posters",
		"Marketing Materials",
		"Printing Products",
	}, subs)

	assert.Nil(t, Subcategories("unknown"))
}

func TestAll(t *testing.T) {
	all := All()
	require.Len(t, all, 3)
	assert.Len(t, all["IT Service and Repairs"], 6)
}
