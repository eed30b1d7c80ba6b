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

type TravelerHandler struct {
	Trips     *repository.TripRepository
	Travelers *repository.TravelerRepository
	Hub       *notifications.Hub
}

func NewTravelerHandler(trips *repository.TripRepository, travelers *repository.TravelerRepository, hub *notifications.Hub) *TravelerHandler {
	return &TravelerHandler{
		Trips:     trips,
		Travelers: travelers,
		Hub:       hub,
	}
}

type CreateTravelerRequest struct {
	Name string `json:"name" validate:"omitempty,max=100"`
}

type RenameTravelerRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

type SetAdvanceRequest struct {
	Advance string `json:"advance" validate:"required"`
}

type TravelerResponse struct {
	Traveler models.Traveler `json:"traveler"`
}

type TravelerListResponse struct {
	Travelers []models.Traveler `json:"travelers"`
}

// List returns the trip's travelers in insertion order.
func (h *TravelerHandler) List(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	tripID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid trip id")
	}

	travelers, err := h.Travelers.ListByTrip(c.Request().Context(), userID, tripID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "trip not found")
		}
		return serverError(c)
	}

	return c.JSON(http.StatusOK, TravelerListResponse{Travelers: travelers})
}

// Create adds a traveler. A blank name gets the localized default label,
// numbered from the current count; earlier deletions never renumber anyone.
func (h *TravelerHandler) Create(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	tripID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid trip id")
	}

	var req CreateTravelerRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		tripRecord, err := h.Trips.GetByID(c.Request().Context(), userID, tripID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return notFound(c, "trip not found")
			}
			return serverError(c)
		}

		count, err := h.Travelers.Count(c.Request().Context(), userID, tripID)
		if err != nil {
			return serverError(c)
		}

		name = trip.DefaultTravelerName(tripRecord.Language, count+1)
	}

	traveler, err := h.Travelers.Create(c.Request().Context(), userID, tripID, models.Traveler{
		ID:   uuid.NewString(),
		Name: name,
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

	return c.JSON(http.StatusCreated, TravelerResponse{Traveler: traveler})
}

// Rename changes a traveler's display name.
func (h *TravelerHandler) Rename(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	tripID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid trip id")
	}

	travelerID := c.Param("travelerId")

	var req RenameTravelerRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	if err := h.Travelers.UpdateName(c.Request().Context(), userID, tripID, travelerID, strings.TrimSpace(req.Name)); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "traveler not found")
		}
		return serverError(c)
	}

	return c.NoContent(http.StatusNoContent)
}

// SetAdvance records how much a traveler has prepaid. Free-form input is
// coerced the same way as expense amounts: unparsable or negative becomes 0.
func (h *TravelerHandler) SetAdvance(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	tripID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid trip id")
	}

	travelerID := c.Param("travelerId")

	var req SetAdvanceRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	advance := trip.ParseAmount(req.Advance)

	if err := h.Travelers.UpdateAdvance(c.Request().Context(), userID, tripID, travelerID, advance); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "traveler not found")
		}
		return serverError(c)
	}

	h.Hub.Publish(userID, notifications.Event{
		Type: notifications.EventLedgerUpdated,
		Data: map[string]string{"trip_id": tripID.String()},
	})

	return c.NoContent(http.StatusNoContent)
}

// Delete removes a traveler. Remaining travelers keep their labels.
func (h *TravelerHandler) Delete(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	tripID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid trip id")
	}

	travelerID := c.Param("travelerId")

	if err := h.Travelers.Delete(c.Request().Context(), userID, tripID, travelerID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "traveler not found")
		}
		return serverError(c)
	}

	h.Hub.Publish(userID, notifications.Event{
		Type: notifications.EventLedgerUpdated,
		Data: map[string]string{"trip_id": tripID.String()},
	})

	return c.NoContent(http.StatusNoContent)
}
