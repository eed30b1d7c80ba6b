package ai

import "example.com/travel-genie/backend/internal/models"

// TripRequest carries the trip parameters forwarded to the model when a new
// itinerary is generated.
type TripRequest struct {
	City          string          `json:"city"`
	DepartureCity string          `json:"departureCity,omitempty"`
	Days          int             `json:"days"`
	Travelers     int             `json:"travelers"`
	StartDate     string          `json:"startDate"`
	Budget        float64         `json:"budget"`
	Style         int             `json:"style"`
	Language      models.Language `json:"language"`
}

// ChatReply is the assistant's answer to a conversational turn. Proposal is
// non-nil when the answer embedded a revised itinerary; Text has the fenced
// block stripped in that case.
type ChatReply struct {
	Text     string
	Proposal *models.Itinerary
}
