package util

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"foodctl/internal/model"
)

// FormatRating formats a rating as "4.5/5" or "—" when unrated (0).
func FormatRating(rating float64) string {
	if rating == 0 {
		return "—"
	}
	return formatRatingNumber(rating) + "/5"
}

// FormatRatingWithStar formats a rating as "4.5 ★" for display.
func FormatRatingWithStar(rating float64) string {
	if rating == 0 {
		return "—"
	}
	return formatRatingNumber(rating) + " ★"
}

// FormatRatingStars formats a 1-5 rating as stars (e.g., "★★★★☆").
func FormatRatingStars(rating float64) string {
	if rating == 0 || math.IsNaN(rating) {
		return "—"
	}
	stars := int(math.Round(rating))
	if stars < 0 {
		stars = 0
	}
	if stars > 5 {
		stars = 5
	}
	return strings.Repeat("★", stars) + strings.Repeat("☆", 5-stars)
}

// FormatPrice formats a price string as "$1,234.50". Non-numeric prices are shown as given.
func FormatPrice(price string) string {
	price = strings.TrimSpace(price)
	if price == "" {
		return "—"
	}
	v, err := strconv.ParseFloat(strings.TrimPrefix(price, "$"), 64)
	if err != nil {
		return price
	}
	return "$" + humanize.FormatFloat("#,###.##", v)
}

// FormatStatus renders a restaurant status, showing the absent sentinel as "Unknown".
func FormatStatus(s model.RestaurantStatus) string {
	if s == model.StatusAbsent {
		return "Unknown"
	}
	return string(s)
}

// FormatStatusSymbol formats a status as ●, ○ or –.
func FormatStatusSymbol(s model.RestaurantStatus) string {
	switch s {
	case model.StatusOpen:
		return "●"
	case model.StatusClosed:
		return "○"
	default:
		return "–"
	}
}

// ParseCreatedAt parses the API's createdAt timestamp.
func ParseCreatedAt(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatCreatedAt formats createdAt relative to now ("3 days ago"), or as given when unparseable.
func FormatCreatedAt(s string) string {
	t, ok := ParseCreatedAt(s)
	if !ok {
		if strings.TrimSpace(s) == "" {
			return "Unknown"
		}
		return s
	}
	return humanize.Time(t)
}

// FormatDate formats a timestamp as "Jan 02, 2006".
func FormatDate(s string) string {
	t, ok := ParseCreatedAt(s)
	if !ok {
		return "Unknown"
	}
	return t.Format("Jan 02, 2006")
}

func formatRatingNumber(v float64) string {
	// Keep one decimal at most, but avoid trailing .0 for whole values.
	s := strconv.FormatFloat(v, 'f', 1, 64)
	s = strings.TrimSuffix(s, ".0")
	return s
}

// TruncateString truncates a string to maxLen and adds "..." if needed.
func TruncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen < 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
