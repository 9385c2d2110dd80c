package food

import (
	"strings"

	"foodctl/internal/model"
)

// Filter returns the items whose dish or restaurant name contains query, ignoring case.
// Every alternate name field is checked so partially normalized records still match.
// A blank query returns items as given.
func Filter(items []model.FoodRecord, query string) []model.FoodRecord {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return items
	}

	filtered := make([]model.FoodRecord, 0, len(items))
	for _, item := range items {
		if Matches(item, q) {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

// Matches reports whether item matches an already lowercased, trimmed query.
func Matches(item model.FoodRecord, q string) bool {
	for _, field := range []model.FlexString{item.FoodName, item.RestaurantName, item.Name} {
		if strings.Contains(strings.ToLower(string(field)), q) {
			return true
		}
	}
	return false
}
