package trip

import (
	"strings"
	"testing"

	"example.com/travel-genie/backend/internal/models"
)

// TestSessionAddExpense checks the guard rails on manual expense entry.
func TestSessionAddExpense(t *testing.T) {
	s := NewSession(models.LanguageEnglish)

	if _, ok := s.AddExpense("", 10); ok {
		t.Fatal("expected empty description rejected")
	}
	if _, ok := s.AddExpense("Taxi", 0); ok {
		t.Fatal("expected zero amount rejected")
	}
	if _, ok := s.AddExpense("Taxi", -5); ok {
		t.Fatal("expected negative amount rejected")
	}

	exp, ok := s.AddExpense("Taxi", 23.5)
	if !ok {
		t.Fatal("expected expense accepted")
	}
	if exp.ID == "" || exp.Amount != 23.5 {
		t.Fatalf("unexpected expense: %+v", exp)
	}
	if len(s.Expenses) != 1 {
		t.Fatalf("expected 1 expense, got %d", len(s.Expenses))
	}
}

// TestSessionRemoveExpense checks removal by id and idempotence.
func TestSessionRemoveExpense(t *testing.T) {
	s := NewSession(models.LanguageEnglish)
	a, _ := s.AddExpense("Taxi", 10)
	b, _ := s.AddExpense("Dinner", 40)

	if !s.RemoveExpense(a.ID) {
		t.Fatal("expected removal to succeed")
	}
	if s.RemoveExpense(a.ID) {
		t.Fatal("expected second removal to be a no-op")
	}
	if len(s.Expenses) != 1 || s.Expenses[0].ID != b.ID {
		t.Fatalf("unexpected ledger state: %+v", s.Expenses)
	}
}

// TestSessionTravelerNaming checks default names count from the current list
// length, so earlier deletions never renumber survivors.
func TestSessionTravelerNaming(t *testing.T) {
	s := NewSession(models.LanguageEnglish)
	first := s.AddTraveler("")
	second := s.AddTraveler("")

	if first.Name != "Traveler 1" || second.Name != "Traveler 2" {
		t.Fatalf("unexpected names: %q, %q", first.Name, second.Name)
	}

	s.RemoveTraveler(first.ID)
	third := s.AddTraveler("")
	if third.Name != "Traveler 2" {
		t.Fatalf("expected next default name Traveler 2, got %q", third.Name)
	}
	if s.Travelers[0].Name != "Traveler 2" {
		t.Fatalf("expected survivor untouched, got %q", s.Travelers[0].Name)
	}
}

// TestSessionTravelerNamingItalian checks the localized default name.
func TestSessionTravelerNamingItalian(t *testing.T) {
	s := NewSession(models.LanguageItalian)
	traveler := s.AddTraveler("  ")
	if traveler.Name != "Viaggiatore 1" {
		t.Fatalf("expected Viaggiatore 1, got %q", traveler.Name)
	}
}

// TestSessionSetAdvance checks that advances coerce bad values to zero.
func TestSessionSetAdvance(t *testing.T) {
	s := NewSession(models.LanguageEnglish)
	traveler := s.AddTraveler("Ada")

	s.SetAdvance(traveler.ID, 150)
	if s.Travelers[0].Advance != 150 {
		t.Fatalf("expected advance 150, got %v", s.Travelers[0].Advance)
	}

	s.SetAdvance(traveler.ID, -30)
	if s.Travelers[0].Advance != 0 {
		t.Fatalf("expected negative advance coerced to 0, got %v", s.Travelers[0].Advance)
	}
}

// TestSessionReservationMirroring checks that a priced reservation writes a
// single mirrored expense with the derived id and localized label.
func TestSessionReservationMirroring(t *testing.T) {
	s := NewSession(models.LanguageEnglish)
	res, mirror := s.AddReservation(models.Reservation{
		Type: models.ReservationTypeFood,
		Name: "Trattoria da Luigi",
		Date: "2025-06-02",
		Cost: 25,
	})

	if mirror == nil {
		t.Fatal("expected mirrored expense")
	}
	if mirror.ID != MirrorExpenseID(res.ID) {
		t.Fatalf("expected id %q, got %q", MirrorExpenseID(res.ID), mirror.ID)
	}
	if mirror.Description != "Food: Trattoria da Luigi" {
		t.Fatalf("unexpected description: %q", mirror.Description)
	}
	if mirror.Amount != 25 {
		t.Fatalf("expected amount 25, got %v", mirror.Amount)
	}
	if len(s.Expenses) != 1 {
		t.Fatalf("expected 1 mirrored expense, got %d", len(s.Expenses))
	}
}

// TestSessionReservationMirroringItalian checks the localized type label.
func TestSessionReservationMirroringItalian(t *testing.T) {
	s := NewSession(models.LanguageItalian)
	_, mirror := s.AddReservation(models.Reservation{
		Type: models.ReservationTypeTransport,
		Name: "Vaporetto",
		Date: "2025-06-02",
		Cost: 9.5,
	})

	if mirror == nil {
		t.Fatal("expected mirrored expense")
	}
	if !strings.HasPrefix(mirror.Description, "Trasporto: ") {
		t.Fatalf("unexpected description: %q", mirror.Description)
	}
}

// TestSessionReservationNoCost checks that a free reservation never mirrors.
func TestSessionReservationNoCost(t *testing.T) {
	s := NewSession(models.LanguageEnglish)
	_, mirror := s.AddReservation(models.Reservation{
		Type: models.ReservationTypeActivity,
		Name: "Free walking tour",
		Date: "2025-06-02",
		Cost: 0,
	})

	if mirror != nil {
		t.Fatalf("expected no mirrored expense, got %+v", mirror)
	}
	if len(s.Expenses) != 0 {
		t.Fatalf("expected empty ledger, got %d expenses", len(s.Expenses))
	}
}

// TestSessionRemoveReservationKeepsExpense checks that deleting a reservation
// leaves its mirrored expense in the ledger.
func TestSessionRemoveReservationKeepsExpense(t *testing.T) {
	s := NewSession(models.LanguageEnglish)
	res, _ := s.AddReservation(models.Reservation{
		Type: models.ReservationTypeHotel,
		Name: "Hotel Danieli",
		Date: "2025-06-01",
		Cost: 320,
	})

	if !s.RemoveReservation(res.ID) {
		t.Fatal("expected removal to succeed")
	}
	if len(s.Reservations) != 0 {
		t.Fatalf("expected no reservations, got %d", len(s.Reservations))
	}
	if len(s.Expenses) != 1 {
		t.Fatalf("expected mirrored expense to survive, got %d", len(s.Expenses))
	}
	if s.Expenses[0].ID != MirrorExpenseID(res.ID) {
		t.Fatalf("unexpected surviving expense: %+v", s.Expenses[0])
	}
}

// TestSessionApplyItinerary checks the wholesale replacement semantics.
func TestSessionApplyItinerary(t *testing.T) {
	s := NewSession(models.LanguageEnglish)
	s.ApplyItinerary(models.Itinerary{TripTitle: "Venice", City: "Venice", Days: 3})
	s.ApplyItinerary(models.Itinerary{TripTitle: "Rome", City: "Rome", Days: 2})

	if s.Itinerary == nil || s.Itinerary.City != "Rome" {
		t.Fatalf("expected Rome itinerary, got %+v", s.Itinerary)
	}
}
