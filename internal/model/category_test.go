package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategoryValid(t *testing.T) {
	for _, c := range AllCategories() {
		assert.True(t, c.Valid(), "category %q should be valid", c)
	}
	assert.True(t, CategoryUncategorized.Valid())
	assert.False(t, Category("Snacks").Valid())
	assert.False(t, Category("groceries").Valid(), "validity is case sensitive")
}

func TestCategoryString(t *testing.T) {
	assert.Equal(t, "Uncategorized", CategoryUncategorized.String())
	assert.Equal(t, "Cafe/Restaurant", CategoryCafeRestaurant.String())
}

func TestParseCategory(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Category
		wantErr bool
	}{
		{"exact", "Groceries", CategoryGroceries, false},
		{"slash form", "Cafe/Restaurant", CategoryCafeRestaurant, false},
		{"lowercase", "groceries", CategoryGroceries, false},
		{"surrounding space", "  Bills ", CategoryBills, false},
		{"uncategorized word", "Uncategorized", CategoryUncategorized, false},
		{"empty", "", CategoryUncategorized, false},
		{"unknown", "Snacks", CategoryUncategorized, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCategory(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAllCategoriesCount(t *testing.T) {
	all := AllCategories()
	assert.Len(t, all, 19)
	assert.NotContains(t, all, CategoryUncategorized)
}
