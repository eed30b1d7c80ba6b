package ai

import (
	"context"
	"errors"
	"strings"
	"testing"

	"example.com/travel-genie/backend/internal/models"
)

type fakeClient struct {
	content string
	err     error
}

func (f *fakeClient) Chat(ctx context.Context, messages []Message) (string, []byte, error) {
	if f.err != nil {
		return "", nil, f.err
	}
	return f.content, []byte(f.content), nil
}

const validItineraryJSON = `{
  "tripTitle": "Venice Escape",
  "city": "Venice",
  "days": 2,
  "dailyItinerary": [
    {"day": 1, "theme": "Arrival", "activities": [
      {"time": "10:00", "placeName": "Piazza San Marco", "description": "Walk the square", "latitude": 45.4341, "longitude": 12.3388, "minCost": 0, "maxCost": 0}
    ]},
    {"day": 2, "theme": "Museums", "activities": [
      {"time": "09:30", "placeName": "Doge's Palace", "description": "Guided tour", "minCost": 20, "maxCost": 30}
    ]}
  ],
  "estimatedTotalCost": 450,
  "baseCosts": [{"category": "Hotel", "item": "2 nights", "estimatedPrice": 240}]
}`

// TestGenerateItinerary checks the happy path and that travelers and start
// date come from the request, not the model.
func TestGenerateItinerary(t *testing.T) {
	service := NewService(&fakeClient{content: validItineraryJSON})

	itinerary, _, _, err := service.GenerateItinerary(context.Background(), TripRequest{
		City:      "Venice",
		Days:      2,
		Travelers: 3,
		StartDate: "2025-06-01",
		Budget:    600,
		Style:     50,
		Language:  models.LanguageEnglish,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if itinerary.City != "Venice" || itinerary.Days != 2 {
		t.Fatalf("unexpected itinerary: %+v", itinerary)
	}
	if itinerary.Travelers != 3 {
		t.Fatalf("expected travelers from request, got %d", itinerary.Travelers)
	}
	if itinerary.StartDate != "2025-06-01" {
		t.Fatalf("expected start date from request, got %s", itinerary.StartDate)
	}
}

// TestGenerateItineraryFencedResponse checks that a fenced model reply still
// parses.
func TestGenerateItineraryFencedResponse(t *testing.T) {
	service := NewService(&fakeClient{content: "```json\n" + validItineraryJSON + "\n```"})

	itinerary, _, _, err := service.GenerateItinerary(context.Background(), TripRequest{
		City: "Venice", Days: 2, Travelers: 1, StartDate: "2025-06-01", Language: models.LanguageEnglish,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if itinerary.TripTitle != "Venice Escape" {
		t.Fatalf("unexpected title: %s", itinerary.TripTitle)
	}
}

// TestGenerateItineraryProviderError checks that a provider failure is
// surfaced instead of producing a substitute plan.
func TestGenerateItineraryProviderError(t *testing.T) {
	service := NewService(&fakeClient{err: errors.New("quota exceeded")})

	_, _, _, err := service.GenerateItinerary(context.Background(), TripRequest{
		City: "Venice", Days: 2, Travelers: 1, StartDate: "2025-06-01",
	})
	if err == nil {
		t.Fatal("expected error")
	}
}

// TestGenerateItineraryInvalidPayload checks that a plan missing required
// fields is rejected.
func TestGenerateItineraryInvalidPayload(t *testing.T) {
	service := NewService(&fakeClient{content: `{"tripTitle": "", "city": "Venice", "days": 2}`})

	_, _, _, err := service.GenerateItinerary(context.Background(), TripRequest{
		City: "Venice", Days: 2, Travelers: 1, StartDate: "2025-06-01",
	})
	if err == nil {
		t.Fatal("expected validation error")
	}
}

// TestGenerateItineraryNegativeCosts checks that negative amounts are
// coerced to zero rather than propagated.
func TestGenerateItineraryNegativeCosts(t *testing.T) {
	payload := strings.Replace(validItineraryJSON, `"maxCost": 30`, `"maxCost": -30`, 1)
	service := NewService(&fakeClient{content: payload})

	itinerary, _, _, err := service.GenerateItinerary(context.Background(), TripRequest{
		City: "Venice", Days: 2, Travelers: 1, StartDate: "2025-06-01",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	activity := itinerary.DailyItinerary[1].Activities[0]
	if activity.MaxCost == nil || *activity.MaxCost != 0 {
		t.Fatalf("expected coerced max cost 0, got %+v", activity.MaxCost)
	}
}

// TestExtractProposal checks fenced-block detection and text stripping.
func TestExtractProposal(t *testing.T) {
	reply := "Here is the updated plan:\n```json\n" + validItineraryJSON + "\n```\nLet me know."

	proposal, text, ok := ExtractProposal(reply)
	if !ok || proposal == nil {
		t.Fatal("expected proposal")
	}
	if proposal.City != "Venice" {
		t.Fatalf("unexpected proposal city: %s", proposal.City)
	}
	if strings.Contains(text, "```") {
		t.Fatalf("expected fenced block stripped, got %q", text)
	}
	if !strings.Contains(text, "Here is the updated plan:") {
		t.Fatalf("expected surrounding text kept, got %q", text)
	}
}

// TestExtractProposalPlainText checks that a plain answer yields no proposal.
func TestExtractProposalPlainText(t *testing.T) {
	proposal, text, ok := ExtractProposal("The museum opens at 9am.")
	if ok || proposal != nil {
		t.Fatal("expected no proposal")
	}
	if text != "The museum opens at 9am." {
		t.Fatalf("unexpected text: %q", text)
	}
}

// TestExtractProposalInvalidBlock checks that a malformed block is ignored.
func TestExtractProposalInvalidBlock(t *testing.T) {
	proposal, _, ok := ExtractProposal("Try this:\n```json\n{not json}\n```")
	if ok || proposal != nil {
		t.Fatal("expected malformed block ignored")
	}
}

// TestStyleDescription checks the adventure dial thresholds.
func TestStyleDescription(t *testing.T) {
	if !strings.HasPrefix(styleDescription(10), "relaxed") {
		t.Fatalf("expected relaxed, got %s", styleDescription(10))
	}
	if !strings.HasPrefix(styleDescription(30), "balanced") {
		t.Fatalf("expected balanced, got %s", styleDescription(30))
	}
	if !strings.HasPrefix(styleDescription(70), "adventurous") {
		t.Fatalf("expected adventurous, got %s", styleDescription(70))
	}
}
