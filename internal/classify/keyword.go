// Package classify provides deterministic keyword-based category inference.
package classify

import (
	"fmt"
	"strings"

	"github.com/balisaldo/saldo/internal/common"
	"github.com/balisaldo/saldo/internal/model"
)

// KeywordClassifier maps a description to a category by case-insensitive
// substring matching against an ordered rule table. The first rule with a
// matching keyword wins; rule order is fixed at construction.
type KeywordClassifier struct {
	rules []compiledRule
}

type compiledRule struct {
	category model.Category
	keywords []string
}

// NewKeywordClassifier validates the rule table and pre-lowercases all
// keywords. Rules referencing a category outside the closed set, or carrying
// no keywords, are configuration errors.
func NewKeywordClassifier(rules []model.KeywordRule) (*KeywordClassifier, error) {
	if len(rules) == 0 {
		return nil, fmt.Errorf("%w: keyword rule table is empty", common.ErrInvalidConfig)
	}

	compiled := make([]compiledRule, 0, len(rules))
	for i, rule := range rules {
		if rule.Category == model.CategoryUncategorized || !rule.Category.Valid() {
			return nil, fmt.Errorf("%w: rule %d references unknown category %q", common.ErrInvalidConfig, i, rule.Category)
		}
		if len(rule.Keywords) == 0 {
			return nil, fmt.Errorf("%w: rule %d (%s) has no keywords", common.ErrInvalidConfig, i, rule.Category)
		}

		keywords := make([]string, 0, len(rule.Keywords))
		for _, kw := range rule.Keywords {
			kw = strings.ToLower(strings.TrimSpace(kw))
			if kw == "" {
				return nil, fmt.Errorf("%w: rule %d (%s) contains an empty keyword", common.ErrInvalidConfig, i, rule.Category)
			}
			keywords = append(keywords, kw)
		}

		compiled = append(compiled, compiledRule{
			category: rule.Category,
			keywords: keywords,
		})
	}

	return &KeywordClassifier{rules: compiled}, nil
}

// Classify returns the first category whose keywords match the description,
// or CategoryUncategorized when nothing matches. Pure function, no I/O.
func (c *KeywordClassifier) Classify(description string) model.Category {
	if strings.TrimSpace(description) == "" {
		return model.CategoryUncategorized
	}

	lower := strings.ToLower(description)
	for _, rule := range c.rules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.category
			}
		}
	}

	return model.CategoryUncategorized
}
