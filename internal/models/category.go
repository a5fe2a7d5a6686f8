package models

import (
	"errors"
	"strings"
)

// Category is the closed set of expense categories. The zero value is
// CategoryUncategorized.
type Category string

const (
	CategoryUncategorized Category = ""
	CategoryFood          Category = "Food"
	CategoryTransport     Category = "Transport"
	CategoryBills         Category = "Bills"
	CategoryEntertainment Category = "Entertainment"
	CategoryShopping      Category = "Shopping"
	CategoryHealth        Category = "Health"
	CategoryEducation     Category = "Education"
	CategorySubscription  Category = "Subscription"
	CategoryOther         Category = "Other"
)

// ErrInvalidCategory is returned by ParseCategory for names outside the set.
var ErrInvalidCategory = errors.New("invalid expense category")

var categories = []Category{
	CategoryFood,
	CategoryTransport,
	CategoryBills,
	CategoryEntertainment,
	CategoryShopping,
	CategoryHealth,
	CategoryEducation,
	CategorySubscription,
	CategoryOther,
}

// Categories returns the selectable categories in display order.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// ParseCategory resolves a category name case-insensitively. An empty or
// blank name yields CategoryUncategorized.
func ParseCategory(name string) (Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return CategoryUncategorized, nil
	}
	for _, c := range categories {
		if strings.EqualFold(string(c), name) {
			return c, nil
		}
	}
	return CategoryUncategorized, ErrInvalidCategory
}

// IsValid reports whether c is a member of the set, uncategorized included.
func (c Category) IsValid() bool {
	if c == CategoryUncategorized {
		return true
	}
	for _, known := range categories {
		if c == known {
			return true
		}
	}
	return false
}

// Label is the display name; uncategorized expenses render as "Uncategorized".
func (c Category) Label() string {
	if c == CategoryUncategorized {
		return "Uncategorized"
	}
	return string(c)
}

// Tone maps a category to the badge variant used when rendering it.
func (c Category) Tone() string {
	switch c {
	case CategoryFood:
		return "success"
	case CategoryTransport:
		return "warning"
	case CategoryBills:
		return "destructive"
	case CategoryEntertainment:
		return "default"
	case CategorySubscription:
		return "secondary"
	default:
		return "outline"
	}
}
