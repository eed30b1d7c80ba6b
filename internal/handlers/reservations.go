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

type ReservationHandler struct {
	Trips        *repository.TripRepository
	Reservations *repository.ReservationRepository
	Hub          *notifications.Hub
}

func NewReservationHandler(trips *repository.TripRepository, reservations *repository.ReservationRepository, hub *notifications.Hub) *ReservationHandler {
	return &ReservationHandler{
		Trips:        trips,
		Reservations: reservations,
		Hub:          hub,
	}
}

type CreateReservationRequest struct {
	Type  string `json:"type" validate:"required,oneof=hotel activity food transport spa"`
	Name  string `json:"name" validate:"required,max=200"`
	Date  string `json:"date" validate:"required,datetime=2006-01-02"`
	Time  string `json:"time" validate:"omitempty,max=20"`
	Notes string `json:"notes" validate:"omitempty,max=1000"`
	Cost  string `json:"cost" validate:"omitempty"`
}

type ReservationResponse struct {
	Reservation models.Reservation `json:"reservation"`
	Expense     *models.Expense    `json:"expense,omitempty"`
}

type ReservationListResponse struct {
	Reservations []models.Reservation `json:"reservations"`
}

// List returns the trip's bookings in insertion order.
func (h *ReservationHandler) List(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	tripID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid trip id")
	}

	reservations, err := h.Reservations.ListByTrip(c.Request().Context(), userID, tripID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "trip not found")
		}
		return serverError(c)
	}

	return c.JSON(http.StatusOK, ReservationListResponse{Reservations: reservations})
}

// Create stores a booking. A positive cost also writes the mirrored ledger
// entry with the derived "res-" id and the localized type label, in the same
// transaction; a zero cost never does.
func (h *ReservationHandler) Create(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	tripID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid trip id")
	}

	var req CreateReservationRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	tripRecord, err := h.Trips.GetByID(c.Request().Context(), userID, tripID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "trip not found")
		}
		return serverError(c)
	}

	reservation := models.Reservation{
		ID:    uuid.NewString(),
		Type:  models.ReservationType(req.Type),
		Name:  strings.TrimSpace(req.Name),
		Date:  req.Date,
		Time:  strings.TrimSpace(req.Time),
		Notes: strings.TrimSpace(req.Notes),
		Cost:  trip.ParseAmount(req.Cost),
	}

	var mirror *models.Expense
	if reservation.Cost > 0 {
		mirror = &models.Expense{
			ID:          trip.MirrorExpenseID(reservation.ID),
			Description: trip.ReservationTypeLabel(tripRecord.Language, reservation.Type) + ": " + reservation.Name,
			Amount:      reservation.Cost,
		}
	}

	created, err := h.Reservations.Create(c.Request().Context(), userID, tripID, reservation, mirror)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "trip not found")
		}
		return serverError(c)
	}

	h.Hub.Publish(userID, notifications.Event{
		Type: notifications.EventReservationAdded,
		Data: map[string]string{"trip_id": tripID.String(), "reservation_id": created.ID},
	})
	if mirror != nil {
		h.Hub.Publish(userID, notifications.Event{
			Type: notifications.EventLedgerUpdated,
			Data: map[string]string{"trip_id": tripID.String()},
		})
	}

	return c.JSON(http.StatusCreated, ReservationResponse{
		Reservation: created,
		Expense:     mirror,
	})
}

// Delete removes the booking only; the mirrored expense stays in the ledger
// until it is deleted through the expense endpoint.
func (h *ReservationHandler) Delete(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	tripID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid trip id")
	}

	reservationID := c.Param("reservationId")
	if reservationID == "" {
		return badRequest(c, "invalid reservation id")
	}

	if err := h.Reservations.Delete(c.Request().Context(), userID, tripID, reservationID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "reservation not found")
		}
		return serverError(c)
	}

	h.Hub.Publish(userID, notifications.Event{
		Type: notifications.EventReservationRemoved,
		Data: map[string]string{"trip_id": tripID.String(), "reservation_id": reservationID},
	})

	return c.NoContent(http.StatusNoContent)
}
