package classify

import (
	"testing"

	"github.com/balisaldo/saldo/internal/common"
	"github.com/balisaldo/saldo/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewKeywordClassifier_Validation(t *testing.T) {
	tests := []struct {
		name    string
		rules   []model.KeywordRule
		wantErr bool
	}{
		{
			name:    "empty rule table",
			rules:   nil,
			wantErr: true,
		},
		{
			name: "unknown category",
			rules: []model.KeywordRule{
				{Category: model.Category("Gadgets"), Keywords: []string{"phone"}},
			},
			wantErr: true,
		},
		{
			name: "uncategorized sentinel as rule category",
			rules: []model.KeywordRule{
				{Category: model.CategoryUncategorized, Keywords: []string{"x"}},
			},
			wantErr: true,
		},
		{
			name: "rule without keywords",
			rules: []model.KeywordRule{
				{Category: model.CategoryBills, Keywords: nil},
			},
			wantErr: true,
		},
		{
			name: "blank keyword",
			rules: []model.KeywordRule{
				{Category: model.CategoryBills, Keywords: []string{"  "}},
			},
			wantErr: true,
		},
		{
			name:    "default table is valid",
			rules:   model.DefaultKeywordRules(),
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewKeywordClassifier(tt.rules)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, common.ErrInvalidConfig)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestKeywordClassifier_Classify(t *testing.T) {
	classifier, err := NewKeywordClassifier(model.DefaultKeywordRules())
	require.NoError(t, err)

	tests := []struct {
		name        string
		description string
		want        model.Category
	}{
		{
			name:        "empty returns uncategorized",
			description: "",
			want:        model.CategoryUncategorized,
		},
		{
			name:        "whitespace only returns uncategorized",
			description: "   ",
			want:        model.CategoryUncategorized,
		},
		{
			name:        "cafe keyword",
			description: "Crumb and Coaster Canggu",
			want:        model.CategoryCafeRestaurant,
		},
		{
			name:        "case insensitive match",
			description: "PEPITO EXPRESS ULUWATU",
			want:        model.CategorySupermarket,
		},
		{
			name:        "keyword inside a longer word",
			description: "transmartplaza denpasar",
			want:        model.CategorySupermarket,
		},
		{
			name:        "no match",
			description: "Starbucks Seminyak",
			want:        model.CategoryUncategorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classifier.Classify(tt.description))
		})
	}
}

func TestKeywordClassifier_PriorityOrder(t *testing.T) {
	// A description matching keywords from two categories must resolve to
	// whichever rule comes first in the table, regardless of where the
	// keyword sits in the text.
	classifier, err := NewKeywordClassifier(model.DefaultKeywordRules())
	require.NoError(t, err)

	// "mart" (Supermarket/Products) appears before "cafe" in the text, but
	// Cafe/Restaurant is the higher-priority rule.
	assert.Equal(t, model.CategoryCafeRestaurant, classifier.Classify("Bali Mart and Cafe"))

	// "pepito" is in both Supermarket/Products and Groceries; the earlier
	// rule wins.
	assert.Equal(t, model.CategorySupermarket, classifier.Classify("pepito uluwatu"))

	// Custom two-rule table: flipping the order flips the result.
	first, err := NewKeywordClassifier([]model.KeywordRule{
		{Category: model.CategoryGroceries, Keywords: []string{"mart"}},
		{Category: model.CategoryCafeRestaurant, Keywords: []string{"cafe"}},
	})
	require.NoError(t, err)
	assert.Equal(t, model.CategoryGroceries, first.Classify("cafe mart corner"))

	second, err := NewKeywordClassifier([]model.KeywordRule{
		{Category: model.CategoryCafeRestaurant, Keywords: []string{"cafe"}},
		{Category: model.CategoryGroceries, Keywords: []string{"mart"}},
	})
	require.NoError(t, err)
	assert.Equal(t, model.CategoryCafeRestaurant, second.Classify("cafe mart corner"))
}
