package trip

import "example.com/travel-genie/backend/internal/models"

// ActivitiesCost sums activity.maxCost over every day of the itinerary,
// treating a missing cost as 0. An itinerary with no days yields 0.
func ActivitiesCost(itinerary models.Itinerary) float64 {
	var total float64
	for _, day := range itinerary.DailyItinerary {
		for _, activity := range day.Activities {
			if activity.MaxCost != nil {
				total += ClampAmount(*activity.MaxCost)
			}
		}
	}
	return total
}

// BudgetBreakdown carries the trip's budget figures side by side. DeclaredTotal
// is the provider's headline estimate, passed through verbatim; ActivitiesCost
// is the locally computed fold over daily activities. The two are distinct
// figures and are never reconciled: the declared total may include line items
// (flights, hotels) that the activity sum does not capture.
type BudgetBreakdown struct {
	BaseCosts      []models.BaseCost `json:"base_costs"`
	BaseCostsTotal float64           `json:"base_costs_total"`
	ActivitiesCost float64           `json:"activities_cost"`
	DeclaredTotal  float64           `json:"declared_total"`
}

// Breakdown derives the budget view of an itinerary.
func Breakdown(itinerary models.Itinerary) BudgetBreakdown {
	baseCosts := itinerary.BaseCosts
	if baseCosts == nil {
		baseCosts = []models.BaseCost{}
	}

	var baseTotal float64
	for _, cost := range baseCosts {
		baseTotal += ClampAmount(cost.EstimatedPrice)
	}

	return BudgetBreakdown{
		BaseCosts:      baseCosts,
		BaseCostsTotal: baseTotal,
		ActivitiesCost: ActivitiesCost(itinerary),
		DeclaredTotal:  itinerary.EstimatedTotalCost,
	}
}
