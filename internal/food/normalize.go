// Package food holds the pure rules for food records: field normalization, image
// fallbacks, search filtering, form drafts and validation.
package food

import (
	"math"
	"strings"

	"foodctl/internal/model"
)

// DefaultPrice is the canonical price when a record carries none.
const DefaultPrice = "0.00"

// DishName returns food_name, else name. The generic name field is claimed by the dish
// first; RestaurantName only falls back to it when food_name supplied the dish.
func DishName(r model.FoodRecord) string {
	return firstNonEmpty(string(r.FoodName), string(r.Name))
}

// Rating returns food_rating, else rating, else 0.
func Rating(r model.FoodRecord) float64 {
	for _, v := range []*model.FlexFloat{r.FoodRating, r.Rating} {
		if present(v) {
			return float64(*v)
		}
	}
	return 0
}

// Price returns Price, else price, else DefaultPrice.
func Price(r model.FoodRecord) string {
	if p := firstNonEmpty(string(r.PriceAlt), string(r.Price)); p != "" {
		return p
	}
	return DefaultPrice
}

// RestaurantName returns restaurant_name, else name when name is not already the dish name.
func RestaurantName(r model.FoodRecord) string {
	if n := firstNonEmpty(string(r.RestaurantName)); n != "" {
		return n
	}
	if firstNonEmpty(string(r.FoodName)) == "" {
		return ""
	}
	return firstNonEmpty(string(r.Name))
}

// RestaurantLogo returns avatar, logo or restaurant_image, first non-empty wins.
func RestaurantLogo(r model.FoodRecord) string {
	return firstNonEmpty(string(r.Avatar), string(r.Logo), string(r.RestaurantImage))
}

// Status returns restaurant_status when present, else the status implied by open,
// else StatusAbsent.
func Status(r model.FoodRecord) model.RestaurantStatus {
	if s := firstNonEmpty(string(r.RestaurantStatus)); s != "" {
		return model.RestaurantStatus(s)
	}
	if r.Open != nil {
		if *r.Open {
			return model.StatusOpen
		}
		return model.StatusClosed
	}
	return model.StatusAbsent
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}

func present(v *model.FlexFloat) bool {
	if v == nil {
		return false
	}
	f := float64(*v)
	return f != 0 && !math.IsNaN(f)
}
