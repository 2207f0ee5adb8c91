package domain

import "strings"

// Category is one of the five fixed activity categories a day is scored on.
type Category string

const (
	CategoryWork     Category = "work"
	CategoryHealth   Category = "health"
	CategoryLeisure  Category = "leisure"
	CategorySocial   Category = "social"
	CategoryLearning Category = "learning"
)

// Categories lists the taxonomy in its canonical iteration order.
var Categories = []Category{
	CategoryWork,
	CategoryHealth,
	CategoryLeisure,
	CategorySocial,
	CategoryLearning,
}

// OptimalDistribution is the reference percentage split used for scoring.
var OptimalDistribution = Breakdown{
	CategoryWork:     40,
	CategoryHealth:   25,
	CategoryLeisure:  20,
	CategorySocial:   10,
	CategoryLearning: 5,
}

// IsValid reports whether c belongs to the taxonomy.
func (c Category) IsValid() bool {
	switch c {
	case CategoryWork, CategoryHealth, CategoryLeisure, CategorySocial, CategoryLearning:
		return true
	default:
		return false
	}
}

// ParseCategory normalizes case and whitespace. The second return value is
// false when s does not name a known category.
func ParseCategory(s string) (Category, bool) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	return c, c.IsValid()
}

// CategoryNames returns the taxonomy as plain strings, in canonical order.
func CategoryNames() []string {
	names := make([]string, len(Categories))
	for i, c := range Categories {
		names[i] = string(c)
	}
	return names
}
