package trip

import (
	"strings"

	"github.com/google/uuid"

	"example.com/travel-genie/backend/internal/models"
)

// MirrorExpenseID derives the deterministic id linking a reservation to the
// expense that tracks its cost in the shared ledger.
func MirrorExpenseID(reservationID string) string {
	return "res-" + reservationID
}

// Session is the explicit state object of one planning session: the itinerary
// plus the raw user-entered records the ledger and matcher operate on. All
// mutation goes through the named operations below; derived values (settlement,
// cost aggregates) are read-only computations over the current state. A
// Session is not safe for concurrent use. It belongs to a single interactive
// session and every operation runs to completion before the next.
type Session struct {
	Language     models.Language
	Itinerary    *models.Itinerary
	Expenses     []models.Expense
	Travelers    []models.Traveler
	Reservations []models.Reservation
}

func NewSession(lang models.Language) *Session {
	return &Session{Language: lang}
}

// AddExpense appends a ledger entry with a fresh id. An empty description or
// a non-positive amount makes the call a no-op, never an error.
func (s *Session) AddExpense(description string, amount float64) (models.Expense, bool) {
	description = strings.TrimSpace(description)
	amount = ClampAmount(amount)
	if description == "" || amount <= 0 {
		return models.Expense{}, false
	}

	return s.appendExpense(uuid.NewString(), description, amount), true
}

func (s *Session) appendExpense(id, description string, amount float64) models.Expense {
	expense := models.Expense{
		ID:          id,
		Description: description,
		Amount:      amount,
	}
	s.Expenses = append(s.Expenses, expense)
	return expense
}

// RemoveExpense deletes by id, preserving the order of the remainder.
// Removing an absent id is a no-op.
func (s *Session) RemoveExpense(id string) bool {
	for i, expense := range s.Expenses {
		if expense.ID == id {
			s.Expenses = append(s.Expenses[:i], s.Expenses[i+1:]...)
			return true
		}
	}
	return false
}

// AddTraveler appends a traveler with a zero advance. When name is blank the
// label is synthesized from the count at the time of the call; earlier
// deletions do not trigger renumbering.
func (s *Session) AddTraveler(name string) models.Traveler {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultTravelerName(s.Language, len(s.Travelers)+1)
	}

	traveler := models.Traveler{
		ID:   uuid.NewString(),
		Name: name,
	}
	s.Travelers = append(s.Travelers, traveler)
	return traveler
}

func (s *Session) RemoveTraveler(id string) bool {
	for i, traveler := range s.Travelers {
		if traveler.ID == id {
			s.Travelers = append(s.Travelers[:i], s.Travelers[i+1:]...)
			return true
		}
	}
	return false
}

func (s *Session) RenameTraveler(id, name string) bool {
	for i := range s.Travelers {
		if s.Travelers[i].ID == id {
			s.Travelers[i].Name = strings.TrimSpace(name)
			return true
		}
	}
	return false
}

// SetAdvance updates a traveler's prepayment. The amount has already been
// through ParseAmount/ClampAmount coercion, so an invalid entry arrives as 0.
func (s *Session) SetAdvance(id string, amount float64) bool {
	for i := range s.Travelers {
		if s.Travelers[i].ID == id {
			s.Travelers[i].Advance = ClampAmount(amount)
			return true
		}
	}
	return false
}

// AddReservation appends a booking and, when its cost is positive, mirrors it
// into the ledger through the expense path using the derived id; that link is
// how the booking's expense can later be found. A reservation with cost <= 0
// never produces a mirrored expense.
func (s *Session) AddReservation(reservation models.Reservation) (models.Reservation, *models.Expense) {
	if reservation.ID == "" {
		reservation.ID = uuid.NewString()
	}
	reservation.Cost = ClampAmount(reservation.Cost)
	s.Reservations = append(s.Reservations, reservation)

	if reservation.Cost <= 0 {
		return reservation, nil
	}

	description := ReservationTypeLabel(s.Language, reservation.Type) + ": " + reservation.Name
	mirrored := s.appendExpense(MirrorExpenseID(reservation.ID), description, reservation.Cost)
	return reservation, &mirrored
}

// RemoveReservation deletes the booking only. The mirrored expense, if any,
// stays in the ledger and must be removed explicitly.
func (s *Session) RemoveReservation(id string) bool {
	for i, reservation := range s.Reservations {
		if reservation.ID == id {
			s.Reservations = append(s.Reservations[:i], s.Reservations[i+1:]...)
			return true
		}
	}
	return false
}

// ApplyItinerary replaces the current plan wholesale; itineraries are never
// merged.
func (s *Session) ApplyItinerary(itinerary models.Itinerary) {
	s.Itinerary = &itinerary
}

// Settlement computes the fair-split ledger over the session's current state.
func (s *Session) Settlement() Settlement {
	return ComputeSettlement(s.Expenses, s.Travelers)
}

// ActivitiesCost computes the discretionary activity total of the current
// itinerary; 0 when no itinerary is set.
func (s *Session) ActivitiesCost() float64 {
	if s.Itinerary == nil {
		return 0
	}
	return ActivitiesCost(*s.Itinerary)
}
