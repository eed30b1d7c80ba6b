package trip

import (
	"testing"

	"example.com/travel-genie/backend/internal/models"
)

// TestActivityDate checks day offsets against the trip start date.
func TestActivityDate(t *testing.T) {
	if got := ActivityDate("2025-06-01", 0); got != "2025-06-01" {
		t.Fatalf("expected 2025-06-01, got %s", got)
	}
	if got := ActivityDate("2025-06-01", 1); got != "2025-06-02" {
		t.Fatalf("expected 2025-06-02, got %s", got)
	}
	// Month rollover.
	if got := ActivityDate("2025-06-30", 1); got != "2025-07-01" {
		t.Fatalf("expected 2025-07-01, got %s", got)
	}
}

// TestActivityDateUnparsable checks that a bad start date falls back to the
// raw input instead of failing.
func TestActivityDateUnparsable(t *testing.T) {
	if got := ActivityDate("soon", 2); got != "soon" {
		t.Fatalf("expected raw fallback, got %s", got)
	}
}

// TestMatchReservation checks the name-overlap link on the same calendar day.
func TestMatchReservation(t *testing.T) {
	reservations := []models.Reservation{
		{ID: "r1", Type: models.ReservationTypeHotel, Name: "Hotel Danieli", Date: "2025-06-02"},
	}
	activity := models.Activity{PlaceName: "Check in at the Hotel Danieli"}

	match := MatchReservation(activity, "2025-06-02", reservations)
	if match == nil || match.ID != "r1" {
		t.Fatalf("expected match on r1, got %+v", match)
	}
}

// TestMatchReservationDateMismatch checks that a name overlap on a different
// day never links.
func TestMatchReservationDateMismatch(t *testing.T) {
	reservations := []models.Reservation{
		{ID: "r1", Type: models.ReservationTypeHotel, Name: "Hotel Danieli", Date: "2025-06-03"},
	}
	activity := models.Activity{PlaceName: "Hotel Danieli"}

	if match := MatchReservation(activity, "2025-06-02", reservations); match != nil {
		t.Fatalf("expected no match, got %+v", match)
	}
}

// TestMatchReservationCaseInsensitive checks that matching ignores case and
// accepts the overlap in either direction.
func TestMatchReservationCaseInsensitive(t *testing.T) {
	reservations := []models.Reservation{
		{ID: "r1", Type: models.ReservationTypeFood, Name: "TRATTORIA DA LUIGI dinner", Date: "2025-06-02"},
	}
	activity := models.Activity{
		PlaceName:   "Evening stroll",
		Description: "End the day at trattoria da luigi",
	}

	match := MatchReservation(activity, "2025-06-02", reservations)
	if match == nil || match.ID != "r1" {
		t.Fatalf("expected match via description, got %+v", match)
	}
}

// TestMatchReservationFirstWins checks that the first stored reservation wins
// when several could match.
func TestMatchReservationFirstWins(t *testing.T) {
	reservations := []models.Reservation{
		{ID: "r1", Type: models.ReservationTypeActivity, Name: "Museum", Date: "2025-06-02"},
		{ID: "r2", Type: models.ReservationTypeActivity, Name: "Museum of Modern Art", Date: "2025-06-02"},
	}
	activity := models.Activity{PlaceName: "Museum of Modern Art"}

	match := MatchReservation(activity, "2025-06-02", reservations)
	if match == nil || match.ID != "r1" {
		t.Fatalf("expected first match r1, got %+v", match)
	}
}
