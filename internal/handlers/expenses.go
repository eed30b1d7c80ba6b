package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"example.com/travel-genie/backend/internal/auth"
	"example.com/travel-genie/backend/internal/models"
	"example.com/travel-genie/backend/internal/notifications"
	"example.com/travel-genie/backend/internal/repository"
	"example.com/travel-genie/backend/internal/trip"
)

type ExpenseHandler struct {
	Expenses  *repository.ExpenseRepository
	Travelers *repository.TravelerRepository
	Hub       *notifications.Hub
}

func NewExpenseHandler(expenses *repository.ExpenseRepository, travelers *repository.TravelerRepository, hub *notifications.Hub) *ExpenseHandler {
	return &ExpenseHandler{
		Expenses:  expenses,
		Travelers: travelers,
		Hub:       hub,
	}
}

type CreateExpenseRequest struct {
	Description string `json:"description" validate:"required,max=300"`
	Amount      string `json:"amount" validate:"required"`
}

type ExpenseResponse struct {
	Expense models.Expense `json:"expense"`
}

type ExpenseListResponse struct {
	Expenses []models.Expense `json:"expenses"`
}

type SettlementResponse struct {
	Settlement trip.Settlement `json:"settlement"`
}

// List returns the trip's ledger in insertion order.
func (h *ExpenseHandler) List(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	tripID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid trip id")
	}

	expenses, err := h.Expenses.ListByTrip(c.Request().Context(), userID, tripID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "trip not found")
		}
		return serverError(c)
	}

	return c.JSON(http.StatusOK, ExpenseListResponse{Expenses: expenses})
}

// Create adds a manual ledger entry. The amount arrives as free-form text
// and goes through the same coercion as the UI input: unparsable or negative
// values become 0, and a zero amount makes the whole call a no-op.
func (h *ExpenseHandler) Create(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	tripID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid trip id")
	}

	var req CreateExpenseRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	description := strings.TrimSpace(req.Description)
	amount := trip.ParseAmount(req.Amount)
	if description == "" || amount <= 0 {
		return c.JSON(http.StatusOK, ExpenseListResponse{Expenses: []models.Expense{}})
	}

	expense, err := h.Expenses.Create(c.Request().Context(), userID, tripID, models.Expense{
		ID:          uuid.NewString(),
		Description: description,
		Amount:      amount,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "trip not found")
		}
		return serverError(c)
	}

	h.Hub.Publish(userID, notifications.Event{
		Type: notifications.EventLedgerUpdated,
		Data: map[string]string{"trip_id": tripID.String()},
	})

	return c.JSON(http.StatusCreated, ExpenseResponse{Expense: expense})
}

// Delete removes one ledger entry. Deleting a mirrored expense leaves its
// reservation in place.
func (h *ExpenseHandler) Delete(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	tripID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid trip id")
	}

	expenseID := c.Param("expenseId")
	if expenseID == "" {
		return badRequest(c, "invalid expense id")
	}

	if err := h.Expenses.Delete(c.Request().Context(), userID, tripID, expenseID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "expense not found")
		}
		return serverError(c)
	}

	h.Hub.Publish(userID, notifications.Event{
		Type: notifications.EventLedgerUpdated,
		Data: map[string]string{"trip_id": tripID.String()},
	})

	return c.NoContent(http.StatusNoContent)
}

// Settlement computes the fair-split view over the trip's current ledger
// and travelers.
func (h *ExpenseHandler) Settlement(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	tripID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid trip id")
	}

	expenses, err := h.Expenses.ListByTrip(c.Request().Context(), userID, tripID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "trip not found")
		}
		return serverError(c)
	}

	travelers, err := h.Travelers.ListByTrip(c.Request().Context(), userID, tripID)
	if err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusOK, SettlementResponse{
		Settlement: trip.ComputeSettlement(expenses, travelers),
	})
}
