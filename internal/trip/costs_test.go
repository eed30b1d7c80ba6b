package trip

import (
	"testing"

	"example.com/travel-genie/backend/internal/models"
)

func floatPtr(v float64) *float64 { return &v }

// TestActivitiesCost checks that the aggregate sums the upper cost bound of
// every activity and treats missing bounds as zero.
func TestActivitiesCost(t *testing.T) {
	itinerary := models.Itinerary{
		DailyItinerary: []models.DailyPlan{
			{Day: 1, Activities: []models.Activity{
				{PlaceName: "Museum", MaxCost: floatPtr(20)},
				{PlaceName: "Walk"},
			}},
			{Day: 2, Activities: []models.Activity{
				{PlaceName: "Boat tour", MaxCost: floatPtr(25)},
			}},
		},
	}

	if got := ActivitiesCost(itinerary); got != 45 {
		t.Fatalf("expected 45, got %v", got)
	}
}

// TestActivitiesCostEmpty checks that an itinerary with no days costs zero.
func TestActivitiesCostEmpty(t *testing.T) {
	if got := ActivitiesCost(models.Itinerary{}); got != 0 {
		t.Fatalf("expected 0, got %v", got)
	}
}

// TestActivitiesCostNegativeBound checks that a negative upper bound is
// coerced to zero instead of reducing the total.
func TestActivitiesCostNegativeBound(t *testing.T) {
	itinerary := models.Itinerary{
		DailyItinerary: []models.DailyPlan{
			{Day: 1, Activities: []models.Activity{
				{PlaceName: "Museum", MaxCost: floatPtr(30)},
				{PlaceName: "Glitch", MaxCost: floatPtr(-10)},
			}},
		},
	}

	if got := ActivitiesCost(itinerary); got != 30 {
		t.Fatalf("expected 30, got %v", got)
	}
}

// TestBreakdown checks that base costs and the activities aggregate are
// reported side by side without being reconciled.
func TestBreakdown(t *testing.T) {
	itinerary := models.Itinerary{
		EstimatedTotalCost: 500,
		BaseCosts: []models.BaseCost{
			{Category: "Flights", Item: "Round trip", EstimatedPrice: 180},
			{Category: "Hotel", Item: "3 nights", EstimatedPrice: 240},
		},
		DailyItinerary: []models.DailyPlan{
			{Day: 1, Activities: []models.Activity{{PlaceName: "Museum", MaxCost: floatPtr(20)}}},
		},
	}

	breakdown := Breakdown(itinerary)

	if breakdown.BaseCostsTotal != 420 {
		t.Fatalf("expected base costs total 420, got %v", breakdown.BaseCostsTotal)
	}
	if breakdown.ActivitiesCost != 20 {
		t.Fatalf("expected activities cost 20, got %v", breakdown.ActivitiesCost)
	}
	if breakdown.DeclaredTotal != 500 {
		t.Fatalf("expected declared total 500, got %v", breakdown.DeclaredTotal)
	}
}
