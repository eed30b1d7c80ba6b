package handlers

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/google/uuid"

	"example.com/travel-genie/backend/internal/models"
	"example.com/travel-genie/backend/internal/trip"
)

// TestWriteExpensesCSV checks the ledger export layout.
func TestWriteExpensesCSV(t *testing.T) {
	export := TripExport{
		Trip: models.Trip{ID: uuid.New(), City: "Venice"},
		Expenses: []models.Expense{
			{ID: "e1", Description: "Dinner", Amount: 45.5},
			{ID: "res-r1", Description: "Hotel: Danieli", Amount: 300},
		},
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	if err := writeExpensesCSV(writer, export); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	writer.Flush()

	records, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	if err != nil {
		t.Fatalf("failed to parse csv: %v", err)
	}

	if len(records) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d", len(records))
	}
	if records[0][3] != "description" {
		t.Fatalf("unexpected header: %v", records[0])
	}
	if records[1][2] != "e1" || records[1][4] != "45.50" {
		t.Fatalf("unexpected first row: %v", records[1])
	}
	if records[2][2] != "res-r1" || records[2][4] != "300.00" {
		t.Fatalf("unexpected second row: %v", records[2])
	}
}

// TestWriteSettlementCSV checks the settlement export layout.
func TestWriteSettlementCSV(t *testing.T) {
	export := TripExport{
		Trip: models.Trip{ID: uuid.New(), City: "Venice"},
		Settlement: trip.Settlement{
			Shares: []trip.TravelerShare{
				{TravelerID: "t1", Name: "Anna", Advance: 400, Status: trip.BalanceReceives, Amount: 100},
				{TravelerID: "t2", Name: "Marco", Advance: 200, Status: trip.BalanceOwes, Amount: 100},
			},
		},
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	if err := writeSettlementCSV(writer, export); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	writer.Flush()

	records, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	if err != nil {
		t.Fatalf("failed to parse csv: %v", err)
	}

	if len(records) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d", len(records))
	}
	if records[1][3] != "Anna" || records[1][5] != "receives" {
		t.Fatalf("unexpected first row: %v", records[1])
	}
	if records[2][3] != "Marco" || records[2][6] != "100.00" {
		t.Fatalf("unexpected second row: %v", records[2])
	}
}

// TestFormatAmount checks two-decimal money formatting.
func TestFormatAmount(t *testing.T) {
	if got := formatAmount(45.5); got != "45.50" {
		t.Fatalf("expected 45.50, got %s", got)
	}
	if got := formatAmount(0); got != "0.00" {
		t.Fatalf("expected 0.00, got %s", got)
	}
}
