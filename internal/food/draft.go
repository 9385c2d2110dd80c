package food

import (
	"strconv"
	"strings"

	"foodctl/internal/model"
)

// NewDraft returns the empty draft used in create mode.
func NewDraft() model.FoodFormDraft {
	return model.FoodFormDraft{Status: model.StatusOpen}
}

// DraftFromRecord seeds an edit draft from the normalized values of r. An unrated record
// seeds "0", which fails validation until a rating is entered.
func DraftFromRecord(r model.FoodRecord) model.FoodFormDraft {
	d := model.FoodFormDraft{
		FoodName:       DishName(r),
		Rating:         strconv.FormatFloat(Rating(r), 'f', -1, 64),
		Price:          Price(r),
		FoodImage:      strings.TrimSpace(string(r.FoodImage)),
		RestaurantName: RestaurantName(r),
		RestaurantLogo: RestaurantLogo(r),
		Status:         Status(r),
	}
	if d.Status == model.StatusAbsent {
		d.Status = model.StatusOpen
	}
	return d
}

// BuildSubmission trims and coerces d. Call it only after Validate returned no errors;
// an unparseable rating becomes 0.
func BuildSubmission(d model.FoodFormDraft) model.FoodFormSubmission {
	rating, _ := ParseRating(d.Rating)
	price := strings.TrimSpace(d.Price)
	if price == "" {
		price = DefaultPrice
	}
	return model.FoodFormSubmission{
		FoodName:         strings.TrimSpace(d.FoodName),
		FoodRating:       rating,
		Price:            price,
		FoodImage:        strings.TrimSpace(d.FoodImage),
		RestaurantName:   strings.TrimSpace(d.RestaurantName),
		Avatar:           strings.TrimSpace(d.RestaurantLogo),
		RestaurantStatus: d.Status,
		Open:             d.Status == model.StatusOpen,
	}
}

// SubmissionFromRecord rebuilds the payload that would recreate r.
func SubmissionFromRecord(r model.FoodRecord) model.FoodFormSubmission {
	sub := BuildSubmission(DraftFromRecord(r))
	if sub.FoodRating == 0 {
		sub.FoodRating = Rating(r)
	}
	return sub
}
