// Package model defines the core domain types shared across the application.
package model

import (
	"fmt"
	"strings"
)

// Category is one label from the closed vocabulary of transaction categories.
// The zero value is CategoryUncategorized.
type Category string

// The closed category set. Order here is cosmetic; classification priority is
// carried by the keyword rule table, not by these declarations.
const (
	CategoryUncategorized   Category = ""
	CategoryCafeRestaurant  Category = "Cafe/Restaurant"
	CategorySupermarket     Category = "Supermarket/Products"
	CategoryTransfers       Category = "Transfers/Payments"
	CategoryBills           Category = "Bills"
	CategoryEntertainment   Category = "Entertainment"
	CategoryShopping        Category = "Shopping"
	CategoryTourism         Category = "Tourism"
	CategoryAccommodations  Category = "Accommodations"
	CategoryGroceries       Category = "Groceries"
	CategoryTransportation  Category = "Transportation"
	CategoryWellness        Category = "Wellness"
	CategoryHealth          Category = "Health"
	CategoryBeauty          Category = "Beauty"
	CategoryEducation       Category = "Education"
	CategoryHome            Category = "Home"
	CategoryPets            Category = "Pets"
	CategoryEvents          Category = "Events"
	CategoryOnline          Category = "Online"
	CategoryUtilities       Category = "Utilities"
)

// AllCategories returns every non-empty category in the closed set.
func AllCategories() []Category {
	return []Category{
		CategoryCafeRestaurant,
		CategorySupermarket,
		CategoryTransfers,
		CategoryBills,
		CategoryEntertainment,
		CategoryShopping,
		CategoryTourism,
		CategoryAccommodations,
		CategoryGroceries,
		CategoryTransportation,
		CategoryWellness,
		CategoryHealth,
		CategoryBeauty,
		CategoryEducation,
		CategoryHome,
		CategoryPets,
		CategoryEvents,
		CategoryOnline,
		CategoryUtilities,
	}
}

var categorySet = func() map[Category]struct{} {
	set := make(map[Category]struct{})
	for _, c := range AllCategories() {
		set[c] = struct{}{}
	}
	return set
}()

// Valid reports whether the category is in the closed set.
// CategoryUncategorized is valid: it is the sentinel for "no category".
func (c Category) Valid() bool {
	if c == CategoryUncategorized {
		return true
	}
	_, ok := categorySet[c]
	return ok
}

// String returns the category label, or "Uncategorized" for the sentinel.
func (c Category) String() string {
	if c == CategoryUncategorized {
		return "Uncategorized"
	}
	return string(c)
}

// ParseCategory converts user input into a Category. Matching ignores case
// and surrounding whitespace; labels outside the closed set are rejected so
// invalid strings never reach persistence.
func ParseCategory(s string) (Category, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" || strings.EqualFold(trimmed, "Uncategorized") {
		return CategoryUncategorized, nil
	}
	for _, c := range AllCategories() {
		if strings.EqualFold(trimmed, string(c)) {
			return c, nil
		}
	}
	return CategoryUncategorized, fmt.Errorf("unknown category: %q", s)
}
