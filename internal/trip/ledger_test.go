package trip

import (
	"math"
	"testing"

	"example.com/travel-genie/backend/internal/models"
)

// TestComputeSettlementExample checks the canonical two-traveler scenario.
func TestComputeSettlementExample(t *testing.T) {
	expenses := []models.Expense{{ID: "e1", Description: "Hotel", Amount: 400}}
	travelers := []models.Traveler{
		{ID: "t1", Name: "A", Advance: 200},
		{ID: "t2", Name: "B", Advance: 0},
	}

	settlement := ComputeSettlement(expenses, travelers)

	if settlement.TotalCost != 400 {
		t.Fatalf("expected total 400, got %v", settlement.TotalCost)
	}
	if settlement.TotalAdvances != 200 {
		t.Fatalf("expected advances 200, got %v", settlement.TotalAdvances)
	}
	if settlement.Balance != 200 {
		t.Fatalf("expected balance 200, got %v", settlement.Balance)
	}
	if settlement.CostPerPerson != 200 {
		t.Fatalf("expected cost per person 200, got %v", settlement.CostPerPerson)
	}

	if len(settlement.Shares) != 2 {
		t.Fatalf("expected 2 shares, got %d", len(settlement.Shares))
	}
	if settlement.Shares[0].Status != BalanceSettled {
		t.Fatalf("expected A settled, got %s", settlement.Shares[0].Status)
	}
	if settlement.Shares[1].Status != BalanceOwes || settlement.Shares[1].Amount != 200 {
		t.Fatalf("expected B owes 200, got %s %v", settlement.Shares[1].Status, settlement.Shares[1].Amount)
	}
}

// TestComputeSettlementZeroTravelers checks the clamped divisor: with no
// travelers the per-person cost equals the total and nothing divides by zero.
func TestComputeSettlementZeroTravelers(t *testing.T) {
	expenses := []models.Expense{
		{ID: "e1", Description: "Flight", Amount: 120.5},
		{ID: "e2", Description: "Dinner", Amount: 79.5},
	}

	settlement := ComputeSettlement(expenses, nil)

	if settlement.TotalCost != 200 {
		t.Fatalf("expected total 200, got %v", settlement.TotalCost)
	}
	if settlement.CostPerPerson != settlement.TotalCost {
		t.Fatalf("expected cost per person to equal total, got %v", settlement.CostPerPerson)
	}
	if settlement.TravelerCount != 1 {
		t.Fatalf("expected clamped traveler count 1, got %d", settlement.TravelerCount)
	}
	if len(settlement.Shares) != 0 {
		t.Fatalf("expected no shares, got %d", len(settlement.Shares))
	}
}

// TestComputeSettlementEmpty checks that empty input yields all-zero aggregates.
func TestComputeSettlementEmpty(t *testing.T) {
	settlement := ComputeSettlement(nil, nil)

	if settlement.TotalCost != 0 || settlement.TotalAdvances != 0 || settlement.Balance != 0 {
		t.Fatalf("expected zero aggregates, got %+v", settlement)
	}
	if settlement.CostPerPerson != 0 {
		t.Fatalf("expected zero cost per person, got %v", settlement.CostPerPerson)
	}
}

// TestComputeSettlementOrderIndependence checks that the expense fold does not
// depend on list order.
func TestComputeSettlementOrderIndependence(t *testing.T) {
	forward := []models.Expense{
		{ID: "e1", Amount: 10},
		{ID: "e2", Amount: 25.25},
		{ID: "e3", Amount: 4.75},
	}
	reversed := []models.Expense{forward[2], forward[1], forward[0]}

	a := ComputeSettlement(forward, nil)
	b := ComputeSettlement(reversed, nil)

	if a.TotalCost != b.TotalCost {
		t.Fatalf("expected identical totals, got %v and %v", a.TotalCost, b.TotalCost)
	}
	if a.TotalCost != 40 {
		t.Fatalf("expected total 40, got %v", a.TotalCost)
	}
}

// TestComputeSettlementEpsilon checks that the 0.01 tolerance classifies a
// near-even advance as settled, and anything beyond it as owing or receiving.
func TestComputeSettlementEpsilon(t *testing.T) {
	expenses := []models.Expense{{ID: "e1", Amount: 300}}
	travelers := []models.Traveler{
		{ID: "t1", Name: "Exact", Advance: 100},
		{ID: "t2", Name: "Close", Advance: 100.005},
		{ID: "t3", Name: "Over", Advance: 160},
	}

	settlement := ComputeSettlement(expenses, travelers)

	if settlement.Shares[0].Status != BalanceSettled {
		t.Fatalf("expected exact advance settled, got %s", settlement.Shares[0].Status)
	}
	if settlement.Shares[1].Status != BalanceSettled {
		t.Fatalf("expected within-epsilon advance settled, got %s", settlement.Shares[1].Status)
	}
	if settlement.Shares[2].Status != BalanceReceives {
		t.Fatalf("expected overpayer to receive, got %s", settlement.Shares[2].Status)
	}
	if math.Abs(settlement.Shares[2].Amount-60) > 1e-9 {
		t.Fatalf("expected refund 60, got %v", settlement.Shares[2].Amount)
	}
}

// TestParseAmount checks the coercion rules for free-form numeric input.
func TestParseAmount(t *testing.T) {
	if got := ParseAmount("12.50"); got != 12.5 {
		t.Fatalf("expected 12.5, got %v", got)
	}
	if got := ParseAmount("  7 "); got != 7 {
		t.Fatalf("expected 7, got %v", got)
	}
	if got := ParseAmount("abc"); got != 0 {
		t.Fatalf("expected 0 for unparsable input, got %v", got)
	}
	if got := ParseAmount(""); got != 0 {
		t.Fatalf("expected 0 for empty input, got %v", got)
	}
	if got := ParseAmount("-15"); got != 0 {
		t.Fatalf("expected negative input coerced to 0, got %v", got)
	}
	if got := ParseAmount("NaN"); got != 0 {
		t.Fatalf("expected NaN coerced to 0, got %v", got)
	}
}
