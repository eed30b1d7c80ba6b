package models

import (
	"time"

	"github.com/google/uuid"
)

type ReservationType string

type Language string

type ChatRole string

const (
	ReservationTypeHotel     ReservationType = "hotel"
	ReservationTypeActivity  ReservationType = "activity"
	ReservationTypeFood      ReservationType = "food"
	ReservationTypeTransport ReservationType = "transport"
	ReservationTypeSpa       ReservationType = "spa"

	LanguageEnglish Language = "en"
	LanguageItalian Language = "it"

	ChatRoleUser  ChatRole = "user"
	ChatRoleModel ChatRole = "model"
)

type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         *string   `json:"name,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Trip is a planning session owned by one user. The itinerary is replaced
// wholesale whenever a new plan is generated or an AI revision is applied.
type Trip struct {
	ID            uuid.UUID `json:"id"`
	UserID        uuid.UUID `json:"user_id"`
	City          string    `json:"city"`
	DepartureCity string    `json:"departure_city,omitempty"`
	Days          int       `json:"days"`
	Travelers     int       `json:"travelers"`
	StartDate     string    `json:"start_date"`
	Budget        float64   `json:"budget"`
	Style         int       `json:"style"`
	Language      Language  `json:"language"`
	Itinerary     Itinerary `json:"itinerary"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Expense is a ledger entry. Immutable once created except for removal.
// A mirrored expense tracking a reservation carries the derived id
// "res-" + reservation id; every other id is a fresh uuid string.
type Expense struct {
	ID          string    `json:"id"`
	TripID      uuid.UUID `json:"trip_id"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
	CreatedAt   time.Time `json:"created_at"`
}

type Traveler struct {
	ID        string    `json:"id"`
	TripID    uuid.UUID `json:"trip_id"`
	Name      string    `json:"name"`
	Advance   float64   `json:"advance"`
	CreatedAt time.Time `json:"created_at"`
}

type Reservation struct {
	ID     string          `json:"id"`
	TripID uuid.UUID       `json:"trip_id"`
	Type   ReservationType `json:"type"`
	Name   string          `json:"name"`
	Date   string          `json:"date"`
	Time   string          `json:"time,omitempty"`
	Notes  string          `json:"notes,omitempty"`
	Cost   float64         `json:"cost"`

	CreatedAt time.Time `json:"created_at"`
}

// Itinerary is the structured plan produced by the AI backend. It is treated
// as an untrusted external payload until it passes validation.
type Itinerary struct {
	TripTitle          string            `json:"tripTitle"`
	City               string            `json:"city"`
	Days               int               `json:"days"`
	StartDate          string            `json:"startDate,omitempty"`
	DailyItinerary     []DailyPlan       `json:"dailyItinerary"`
	EstimatedTotalCost float64           `json:"estimatedTotalCost,omitempty"`
	Travelers          int               `json:"travelers,omitempty"`
	BaseCosts          []BaseCost        `json:"baseCosts,omitempty"`
	Sources            []GroundingSource `json:"sources,omitempty"`
}

type DailyPlan struct {
	Day              int        `json:"day"`
	Theme            string     `json:"theme"`
	Activities       []Activity `json:"activities"`
	NarrativeSummary string     `json:"narrativeSummary,omitempty"`
}

type Activity struct {
	Time        string   `json:"time"`
	PlaceName   string   `json:"placeName"`
	Description string   `json:"description"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
	MinCost     *float64 `json:"minCost,omitempty"`
	MaxCost     *float64 `json:"maxCost,omitempty"`
}

type BaseCost struct {
	Category       string  `json:"category"`
	Item           string  `json:"item"`
	Provider       string  `json:"provider,omitempty"`
	EstimatedPrice float64 `json:"estimatedPrice"`
	Link           string  `json:"link,omitempty"`
}

type GroundingSource struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

type ChatMessage struct {
	ID        uuid.UUID `json:"id"`
	TripID    uuid.UUID `json:"trip_id"`
	Role      ChatRole  `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type DiaryNote struct {
	ID        uuid.UUID `json:"id"`
	TripID    uuid.UUID `json:"trip_id"`
	Day       int       `json:"day"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type RefreshToken struct {
	ID         uuid.UUID  `json:"id"`
	UserID     uuid.UUID  `json:"user_id"`
	TokenHash  string     `json:"-"`
	ExpiresAt  time.Time  `json:"expires_at"`
	CreatedAt  time.Time  `json:"created_at"`
	RevokedAt  *time.Time `json:"revoked_at,omitempty"`
	ReplacedBy *uuid.UUID `json:"replaced_by,omitempty"`
}

// IsValidReservationType reports whether value is one of the known booking kinds.
func IsValidReservationType(value ReservationType) bool {
	switch value {
	case ReservationTypeHotel, ReservationTypeActivity, ReservationTypeFood,
		ReservationTypeTransport, ReservationTypeSpa:
		return true
	default:
		return false
	}
}

// NormalizeLanguage falls back to English for anything that is not a supported tag.
func NormalizeLanguage(value string) Language {
	if Language(value) == LanguageItalian {
		return LanguageItalian
	}
	return LanguageEnglish
}
