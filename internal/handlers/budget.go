package handlers

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"example.com/travel-genie/backend/internal/auth"
	"example.com/travel-genie/backend/internal/repository"
	"example.com/travel-genie/backend/internal/trip"
)

type BudgetHandler struct {
	Trips *repository.TripRepository
}

func NewBudgetHandler(trips *repository.TripRepository) *BudgetHandler {
	return &BudgetHandler{Trips: trips}
}

type BudgetResponse struct {
	Budget    float64             `json:"budget"`
	Breakdown trip.BudgetBreakdown `json:"breakdown"`
}

// Breakdown returns the itinerary's cost figures. The headline estimate and
// the activities sum are separate numbers and are reported as such.
func (h *BudgetHandler) Breakdown(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	tripID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid trip id")
	}

	tripRecord, err := h.Trips.GetByID(c.Request().Context(), userID, tripID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "trip not found")
		}
		return serverError(c)
	}

	return c.JSON(http.StatusOK, BudgetResponse{
		Budget:    tripRecord.Budget,
		Breakdown: trip.Breakdown(tripRecord.Itinerary),
	})
}
