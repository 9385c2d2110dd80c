package food

import (
	"strings"

	"foodctl/internal/model"
)

// ImageClass selects which fallback applies to a missing image.
type ImageClass int

const (
	ImageFood ImageClass = iota
	ImageRestaurant
)

// Fallback references, relative to the asset base URL.
const (
	FallbackFoodImage      = "/img/Indian_spicy_soup.png"
	FallbackRestaurantLogo = "/logo/restaurant-logo.png"
)

// Fallback returns the fallback reference for class.
func Fallback(class ImageClass) string {
	if class == ImageRestaurant {
		return FallbackRestaurantLogo
	}
	return FallbackFoodImage
}

// ResolveImage returns ref trimmed, or the fallback for class when ref is blank.
// The reference is not checked for reachability.
func ResolveImage(ref string, class ImageClass) string {
	if s := strings.TrimSpace(ref); s != "" {
		return s
	}
	return Fallback(class)
}

// FoodImage resolves the food photo of r.
func FoodImage(r model.FoodRecord) string {
	return ResolveImage(string(r.FoodImage), ImageFood)
}

// RestaurantLogoImage resolves the restaurant logo of r.
func RestaurantLogoImage(r model.FoodRecord) string {
	return ResolveImage(RestaurantLogo(r), ImageRestaurant)
}
