package trip

import (
	"strings"
	"time"

	"example.com/travel-genie/backend/internal/models"
)

const dateLayout = "2006-01-02"

// ActivityDate resolves the calendar date of a day offset (0-indexed from the
// itinerary's start date). An unparsable start date yields "" so callers fall
// back to offset-only labelling.
func ActivityDate(startDate string, offset int) string {
	parsed, err := time.Parse(dateLayout, strings.TrimSpace(startDate))
	if err != nil {
		return ""
	}
	return parsed.AddDate(0, 0, offset).Format(dateLayout)
}

// MatchReservation links an activity to the first reservation that plausibly
// refers to the same booking: the reservation date must equal the activity's
// computed date, and a case-insensitive substring relation must hold between
// the reservation name and the activity's place name or description, in either
// direction. This is a best-effort heuristic, not a guaranteed join; iteration
// order of the reservation list decides ties, and no match is not an error.
func MatchReservation(activity models.Activity, date string, reservations []models.Reservation) *models.Reservation {
	if date == "" {
		return nil
	}

	placeName := strings.ToLower(activity.PlaceName)
	description := strings.ToLower(activity.Description)

	for i := range reservations {
		reservation := &reservations[i]
		if reservation.Date != date {
			continue
		}

		name := strings.ToLower(reservation.Name)
		if name == "" {
			continue
		}

		if namesOverlap(name, placeName) || namesOverlap(name, description) {
			return reservation
		}
	}

	return nil
}

func namesOverlap(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}
