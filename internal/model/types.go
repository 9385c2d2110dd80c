package model

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

// RestaurantStatus is the open/closed state reported for a restaurant.
type RestaurantStatus string

const (
	StatusOpen   RestaurantStatus = "Open Now"
	StatusClosed RestaurantStatus = "Closed"
	// StatusAbsent means the record carried no status at all, which is not the same as closed.
	StatusAbsent RestaurantStatus = ""
)

// Valid reports whether s is one of the two known enum values.
func (s RestaurantStatus) Valid() bool {
	return s == StatusOpen || s == StatusClosed
}

// Toggle flips between open and closed. Unknown values become open.
func (s RestaurantStatus) Toggle() RestaurantStatus {
	if s == StatusOpen {
		return StatusClosed
	}
	return StatusOpen
}

// FlexFloat decodes a JSON number or a numeric string. Anything else decodes to NaN.
type FlexFloat float64

func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			*f = FlexFloat(math.NaN())
			return nil
		}
		*f = FlexFloat(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		*f = FlexFloat(math.NaN())
		return nil
	}
	*f = FlexFloat(v)
	return nil
}

func (f FlexFloat) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return []byte("null"), nil
	}
	return json.Marshal(v)
}

// FlexString decodes a JSON string, or keeps the literal text of a number or boolean.
type FlexString string

func (s *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = FlexString(v)
		return nil
	}
	*s = FlexString(data)
	return nil
}

// parseFlexBool reads true/false or their string spellings. Other values are absent.
func parseFlexBool(data json.RawMessage) *bool {
	var v bool
	switch strings.ToLower(strings.Trim(strings.TrimSpace(string(data)), `"`)) {
	case "true":
		v = true
	case "false":
	default:
		return nil
	}
	return &v
}

// FoodRecord is one food item as returned by the remote API. Several concepts may arrive
// under either of two field names; use the food package normalizers to read them.
type FoodRecord struct {
	ID               string     `json:"id"`
	FoodName         FlexString `json:"food_name,omitempty"`
	Name             FlexString `json:"name,omitempty"`
	FoodRating       *FlexFloat `json:"food_rating,omitempty"`
	Rating           *FlexFloat `json:"rating,omitempty"`
	PriceAlt         FlexString `json:"Price,omitempty"`
	Price            FlexString `json:"price,omitempty"`
	FoodImage        FlexString `json:"food_image,omitempty"`
	RestaurantName   FlexString `json:"restaurant_name,omitempty"`
	RestaurantStatus FlexString `json:"restaurant_status,omitempty"`
	Open             *bool      `json:"open,omitempty"`
	Avatar           FlexString `json:"avatar,omitempty"`
	Logo             FlexString `json:"logo,omitempty"`
	RestaurantImage  FlexString `json:"restaurant_image,omitempty"`
	CreatedAt        string     `json:"createdAt,omitempty"`
}

// UnmarshalJSON decodes one record without letting a mistyped id, open or createdAt
// field reject the whole payload.
func (r *FoodRecord) UnmarshalJSON(data []byte) error {
	type plain FoodRecord
	aux := struct {
		*plain
		ID        FlexString      `json:"id"`
		Open      json.RawMessage `json:"open"`
		CreatedAt FlexString      `json:"createdAt"`
	}{plain: (*plain)(r)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	r.ID = string(aux.ID)
	r.Open = parseFlexBool(aux.Open)
	r.CreatedAt = string(aux.CreatedAt)
	return nil
}

// FoodFormDraft is the in-progress, unvalidated state of the add/edit form.
type FoodFormDraft struct {
	FoodName       string
	Rating         string
	Price          string
	FoodImage      string
	RestaurantName string
	RestaurantLogo string
	Status         RestaurantStatus
}

// FoodFormSubmission is the validated, coerced payload sent to the API.
type FoodFormSubmission struct {
	FoodName         string           `json:"food_name"`
	FoodRating       float64          `json:"food_rating"`
	Price            string           `json:"Price"`
	FoodImage        string           `json:"food_image"`
	RestaurantName   string           `json:"restaurant_name"`
	Avatar           string           `json:"avatar"`
	RestaurantStatus RestaurantStatus `json:"restaurant_status"`
	Open             bool             `json:"open"`
}

// Field names a form control. Values match the API's field names.
type Field string

const (
	FieldFoodName         Field = "food_name"
	FieldRating           Field = "food_rating"
	FieldPrice            Field = "Price"
	FieldFoodImage        Field = "food_image"
	FieldRestaurantName   Field = "restaurant_name"
	FieldRestaurantLogo   Field = "avatar"
	FieldRestaurantStatus Field = "restaurant_status"
)

// ValidationErrors maps fields to messages, plus an optional general error.
type ValidationErrors struct {
	Fields  map[Field]string
	General string
}

// Empty reports whether there are no field errors and no general error.
func (v ValidationErrors) Empty() bool {
	return len(v.Fields) == 0 && v.General == ""
}

// Get returns the message for field, or "".
func (v ValidationErrors) Get(field Field) string {
	return v.Fields[field]
}

// Has reports whether field has an error.
func (v ValidationErrors) Has(field Field) bool {
	_, ok := v.Fields[field]
	return ok
}

// NotificationKind classifies a user notification.
type NotificationKind string

const (
	NotifySuccess NotificationKind = "success"
	NotifyError   NotificationKind = "error"
	NotifyLoading NotificationKind = "loading"
)

// Notification is a user-facing event, rendered as a banner and kept in the activity log.
type Notification struct {
	Kind    NotificationKind
	Message string
	At      time.Time
}

// ActivityEntry is a persisted notification.
type ActivityEntry struct {
	ID        int64
	Kind      NotificationKind
	Message   string
	CreatedAt time.Time
}
