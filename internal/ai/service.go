package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"example.com/travel-genie/backend/internal/models"
	"example.com/travel-genie/backend/internal/trip"
)

type Service struct {
	client Client
}

func NewService(client Client) *Service {
	return &Service{client: client}
}

// GenerateItinerary asks the model for a complete day-by-day plan and
// validates the response. There is no fallback: a provider failure or an
// invalid payload is returned to the caller as-is.
func (s *Service) GenerateItinerary(ctx context.Context, request TripRequest) (models.Itinerary, string, []byte, error) {
	prompt := buildItineraryPrompt(request)

	messages := []Message{
		{Role: "system", Content: "You are a travel planning assistant. Respond with JSON only, without extra text."},
		{Role: "user", Content: prompt},
	}

	content, raw, err := s.client.Chat(ctx, messages)
	if err != nil {
		return models.Itinerary{}, prompt, raw, err
	}

	var itinerary models.Itinerary
	if err := parseJSON(content, &itinerary); err != nil {
		return models.Itinerary{}, prompt, raw, err
	}

	normalizeItinerary(&itinerary)
	if err := validateItinerary(itinerary); err != nil {
		return models.Itinerary{}, prompt, raw, err
	}

	// The model is unreliable for these two, so the request wins.
	itinerary.Travelers = request.Travelers
	itinerary.StartDate = request.StartDate

	return itinerary, prompt, raw, nil
}

func buildItineraryPrompt(request TripRequest) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Plan a %d-day trip to %s", request.Days, request.City)
	if strings.TrimSpace(request.DepartureCity) != "" {
		fmt.Fprintf(&sb, " departing from %s", request.DepartureCity)
	}
	fmt.Fprintf(&sb, " for %d traveler(s), starting on %s, with a total budget of %.2f EUR.\n\n", request.Travelers, request.StartDate, request.Budget)

	sb.WriteString("Travel style: ")
	sb.WriteString(styleDescription(request.Style))
	sb.WriteString("\n\n")

	sb.WriteString("Requirements:\n")
	sb.WriteString("- Output JSON only, no code fences, no extra text.\n")
	fmt.Fprintf(&sb, "- Write every title, place name and description in %s.\n", languageName(request.Language))
	sb.WriteString(`- Schema:
{
  "tripTitle": string,
  "city": string,
  "days": integer,
  "dailyItinerary": [
    {
      "day": integer,
      "theme": string,
      "narrativeSummary": string,
      "activities": [
        {
          "time": string,
          "placeName": string,
          "description": string,
          "latitude": number,
          "longitude": number,
          "minCost": number,
          "maxCost": number
        }
      ]
    }
  ],
  "estimatedTotalCost": number,
  "baseCosts": [
    {"category": string, "item": string, "provider": string, "estimatedPrice": number}
  ]
}
`)
	sb.WriteString("- Provide latitude and longitude for every physical place.\n")
	sb.WriteString("- Cost bounds are per person in EUR; use 0 for free activities.\n")
	sb.WriteString("- baseCosts covers transport to the destination and lodging for the whole stay.\n")
	fmt.Fprintf(&sb, "- dailyItinerary must contain exactly %d days.\n", request.Days)
	sb.WriteString("- Keep the estimated total within the stated budget when feasible.\n")

	return sb.String()
}

// styleDescription maps the 0-100 adventure dial to prompt wording.
func styleDescription(style int) string {
	switch {
	case style < 30:
		return "relaxed. Prefer a slow pace, two or three activities per day, long meals, parks and easy sights."
	case style < 70:
		return "balanced. Mix famous landmarks with local spots, moderate walking, one highlight per day."
	default:
		return "adventurous. Pack the days with activities, favor off-the-beaten-path places, outdoor options and local experiences."
	}
}

func languageName(lang models.Language) string {
	if lang == models.LanguageItalian {
		return "Italian"
	}
	return "English"
}

func parseJSON(input string, target interface{}) error {
	payload := extractJSON(input)
	if payload == "" {
		return errors.New("ai response does not contain json")
	}

	return json.Unmarshal([]byte(payload), target)
}

// extractJSON tolerates fenced code blocks and leading prose around the
// JSON object.
func extractJSON(input string) string {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return ""
	}

	if strings.HasPrefix(trimmed, "```") {
		trimmed = strings.TrimPrefix(trimmed, "```")
		trimmed = strings.TrimPrefix(strings.TrimSpace(trimmed), "json")
		trimmed = strings.TrimSpace(trimmed)
		if idx := strings.LastIndex(trimmed, "```"); idx >= 0 {
			trimmed = trimmed[:idx]
		}
		trimmed = strings.TrimSpace(trimmed)
	}

	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")
	if start == -1 || end == -1 || end <= start {
		return ""
	}

	return trimmed[start : end+1]
}

// ValidateItinerary normalizes and checks a plan submitted from outside the
// generation path, such as a chat proposal being applied.
func ValidateItinerary(itinerary *models.Itinerary) error {
	normalizeItinerary(itinerary)
	return validateItinerary(*itinerary)
}

// normalizeItinerary coerces out-of-range numbers so downstream arithmetic
// never sees negatives or NaN.
func normalizeItinerary(itinerary *models.Itinerary) {
	itinerary.EstimatedTotalCost = trip.ClampAmount(itinerary.EstimatedTotalCost)

	for i := range itinerary.BaseCosts {
		itinerary.BaseCosts[i].EstimatedPrice = trip.ClampAmount(itinerary.BaseCosts[i].EstimatedPrice)
	}

	for i := range itinerary.DailyItinerary {
		for j := range itinerary.DailyItinerary[i].Activities {
			activity := &itinerary.DailyItinerary[i].Activities[j]
			if activity.MinCost != nil {
				clamped := trip.ClampAmount(*activity.MinCost)
				activity.MinCost = &clamped
			}
			if activity.MaxCost != nil {
				clamped := trip.ClampAmount(*activity.MaxCost)
				activity.MaxCost = &clamped
			}
		}
	}
}

func validateItinerary(itinerary models.Itinerary) error {
	if strings.TrimSpace(itinerary.TripTitle) == "" {
		return errors.New("itinerary title is required")
	}
	if strings.TrimSpace(itinerary.City) == "" {
		return errors.New("itinerary city is required")
	}
	if itinerary.Days < 1 {
		return errors.New("itinerary must cover at least one day")
	}
	if len(itinerary.DailyItinerary) == 0 {
		return errors.New("itinerary has no daily plans")
	}

	hasActivities := false
	for _, day := range itinerary.DailyItinerary {
		if len(day.Activities) > 0 {
			hasActivities = true
			break
		}
	}
	if !hasActivities {
		return errors.New("itinerary has no activities")
	}

	return nil
}
