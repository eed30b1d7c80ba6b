package handlers

import (
	"strings"
	"testing"
	"time"

	"example.com/travel-genie/backend/internal/models"
)

// TestTooFarForFlights checks the airline booking window cutoff.
func TestTooFarForFlights(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	if tooFarForFlights("2026-06-01", now) {
		t.Fatal("expected a trip three months out to be bookable")
	}

	if !tooFarForFlights("2027-06-01", now) {
		t.Fatal("expected a trip over a year out to be flagged")
	}

	if tooFarForFlights("not-a-date", now) {
		t.Fatal("expected unparseable start date to not be flagged")
	}
}

// TestBookingLinks checks that the deep links carry the trip's dates and party size.
func TestBookingLinks(t *testing.T) {
	tripRecord := models.Trip{
		City:      "Venice",
		Travelers: 3,
	}

	links := bookingLinks(tripRecord, "2026-06-01", "2026-06-05")
	if len(links) != 4 {
		t.Fatalf("expected 4 links, got %d", len(links))
	}

	var booking string
	for _, link := range links {
		if link.Name == "Booking.com" {
			booking = link.URL
		}
	}

	if booking == "" {
		t.Fatal("expected a Booking.com link")
	}
	for _, fragment := range []string{"ss=Venice", "checkin=2026-06-01", "checkout=2026-06-05", "group_adults=3"} {
		if !strings.Contains(booking, fragment) {
			t.Fatalf("expected %q in %s", fragment, booking)
		}
	}
}

// TestFlightWindowWarning checks the localized warning text.
func TestFlightWindowWarning(t *testing.T) {
	if msg := flightWindowWarning(models.LanguageItalian); !strings.Contains(msg, "330 giorni") {
		t.Fatalf("unexpected italian warning: %s", msg)
	}
	if msg := flightWindowWarning(models.LanguageEnglish); !strings.Contains(msg, "330 days") {
		t.Fatalf("unexpected english warning: %s", msg)
	}
}
