package food

import (
	"math"
	"strconv"
	"strings"

	"foodctl/internal/model"
)

// Rating bounds, inclusive.
const (
	RatingMin = 1.0
	RatingMax = 5.0
)

// Validation and save messages shown to the user.
const (
	MsgFoodNameRequired       = "Food Name is required"
	MsgRatingInvalid          = "Food Rating must be a number between 1 and 5"
	MsgFoodImageRequired      = "Food Image URL is required"
	MsgRestaurantNameRequired = "Restaurant Name is required"
	MsgRestaurantLogoRequired = "Restaurant Logo URL is required"
	MsgStatusInvalid          = "Restaurant Status must be 'Open Now' or 'Closed'"
	MsgSaveFailed             = "Failed to save food item. Please try again."
)

// Validate checks every rule against d and returns the full error set. Rules do not
// short-circuit each other. Price is optional; BuildSubmission substitutes a default.
func Validate(d model.FoodFormDraft) model.ValidationErrors {
	errs := map[model.Field]string{}

	if strings.TrimSpace(d.FoodName) == "" {
		errs[model.FieldFoodName] = MsgFoodNameRequired
	}
	if _, ok := ParseRating(d.Rating); !ok {
		errs[model.FieldRating] = MsgRatingInvalid
	}
	if strings.TrimSpace(d.FoodImage) == "" {
		errs[model.FieldFoodImage] = MsgFoodImageRequired
	}
	if strings.TrimSpace(d.RestaurantName) == "" {
		errs[model.FieldRestaurantName] = MsgRestaurantNameRequired
	}
	if strings.TrimSpace(d.RestaurantLogo) == "" {
		errs[model.FieldRestaurantLogo] = MsgRestaurantLogoRequired
	}
	if !d.Status.Valid() {
		errs[model.FieldRestaurantStatus] = MsgStatusInvalid
	}

	return model.ValidationErrors{Fields: errs}
}

// ParseRating parses s as a rating in [RatingMin, RatingMax].
func ParseRating(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || v < RatingMin || v > RatingMax {
		return 0, false
	}
	return v, true
}
