package trip

import (
	"math"
	"strconv"
	"strings"

	"example.com/travel-genie/backend/internal/models"
)

// settleEpsilon absorbs floating-point rounding noise when classifying a
// traveler's balance. It is a fixed tolerance, not relative to the amounts.
const settleEpsilon = 0.01

type BalanceStatus string

const (
	BalanceOwes     BalanceStatus = "owes"
	BalanceReceives BalanceStatus = "receives"
	BalanceSettled  BalanceStatus = "settled"
)

// TravelerShare is one traveler's position relative to the even split.
// Amount is the magnitude of the debt or refund; zero when settled.
type TravelerShare struct {
	TravelerID string        `json:"traveler_id"`
	Name       string        `json:"name"`
	Advance    float64       `json:"advance"`
	Status     BalanceStatus `json:"status"`
	Amount     float64       `json:"amount"`
}

type Settlement struct {
	TotalCost     float64         `json:"total_cost"`
	TotalAdvances float64         `json:"total_advances"`
	Balance       float64         `json:"balance"`
	CostPerPerson float64         `json:"cost_per_person"`
	TravelerCount int             `json:"traveler_count"`
	Shares        []TravelerShare `json:"shares"`
}

// ComputeSettlement derives the fair-split ledger for a set of expenses and
// traveler prepayments. It is a pure function: it never fails, and on empty
// input every aggregate is zero. The divisor is clamped to one so a
// zero-traveler state never divides by zero; shares keep the input order.
func ComputeSettlement(expenses []models.Expense, travelers []models.Traveler) Settlement {
	var totalCost float64
	for _, expense := range expenses {
		totalCost += expense.Amount
	}

	var totalAdvances float64
	for _, traveler := range travelers {
		totalAdvances += traveler.Advance
	}

	travelerCount := len(travelers)
	if travelerCount < 1 {
		travelerCount = 1
	}
	costPerPerson := totalCost / float64(travelerCount)

	shares := make([]TravelerShare, 0, len(travelers))
	for _, traveler := range travelers {
		debt := costPerPerson - traveler.Advance

		share := TravelerShare{
			TravelerID: traveler.ID,
			Name:       traveler.Name,
			Advance:    traveler.Advance,
		}

		switch {
		case debt > settleEpsilon:
			share.Status = BalanceOwes
			share.Amount = math.Abs(debt)
		case debt < -settleEpsilon:
			share.Status = BalanceReceives
			share.Amount = math.Abs(debt)
		default:
			share.Status = BalanceSettled
		}

		shares = append(shares, share)
	}

	return Settlement{
		TotalCost:     totalCost,
		TotalAdvances: totalAdvances,
		Balance:       totalCost - totalAdvances,
		CostPerPerson: costPerPerson,
		TravelerCount: travelerCount,
		Shares:        shares,
	}
}

// ParseAmount turns free-form numeric input into a safe monetary value.
// Unparsable, non-finite, and negative input all coerce to 0; a bad entry
// must never propagate as NaN or a negative amount.
func ParseAmount(value string) float64 {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0
	}

	parsed, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0
	}

	return ClampAmount(parsed)
}

// ClampAmount maps NaN, infinities, and negative values to 0.
func ClampAmount(value float64) float64 {
	if math.IsNaN(value) || math.IsInf(value, 0) || value < 0 {
		return 0
	}
	return value
}
