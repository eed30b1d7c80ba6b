package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"example.com/travel-genie/backend/internal/auth"
	"example.com/travel-genie/backend/internal/models"
	"example.com/travel-genie/backend/internal/repository"
	"example.com/travel-genie/backend/internal/trip"
)

type MapHandler struct {
	Trips        *repository.TripRepository
	Reservations *repository.ReservationRepository
}

func NewMapHandler(trips *repository.TripRepository, reservations *repository.ReservationRepository) *MapHandler {
	return &MapHandler{
		Trips:        trips,
		Reservations: reservations,
	}
}

type MapMarker struct {
	Day         int                 `json:"day"`
	Date        string              `json:"date"`
	Time        string              `json:"time,omitempty"`
	PlaceName   string              `json:"place_name"`
	Description string              `json:"description,omitempty"`
	Latitude    float64             `json:"latitude"`
	Longitude   float64             `json:"longitude"`
	Reservation *models.Reservation `json:"reservation,omitempty"`
}

type MapResponse struct {
	Markers []MapMarker `json:"markers"`
}

type RouteResponse struct {
	Available bool   `json:"available"`
	URL       string `json:"url,omitempty"`
	Points    int    `json:"points"`
}

// Markers returns every located activity as a map marker, each linked to a
// same-day reservation when the name heuristic finds one.
func (h *MapHandler) Markers(c echo.Context) error {
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

	reservations, err := h.Reservations.ListByTrip(c.Request().Context(), userID, tripID)
	if err != nil {
		return serverError(c)
	}

	markers := make([]MapMarker, 0)
	for dayIndex, day := range tripRecord.Itinerary.DailyItinerary {
		date := trip.ActivityDate(tripRecord.StartDate, dayIndex)
		for _, activity := range day.Activities {
			if activity.Latitude == nil || activity.Longitude == nil {
				continue
			}

			markers = append(markers, MapMarker{
				Day:         day.Day,
				Date:        date,
				Time:        activity.Time,
				PlaceName:   activity.PlaceName,
				Description: activity.Description,
				Latitude:    *activity.Latitude,
				Longitude:   *activity.Longitude,
				Reservation: trip.MatchReservation(activity, date, reservations),
			})
		}
	}

	return c.JSON(http.StatusOK, MapResponse{Markers: markers})
}

// Route builds the Google Maps directions link for one day's activities,
// capped to the waypoint limit. Fewer than two located activities makes the
// affordance unavailable rather than an error.
func (h *MapHandler) Route(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	tripID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid trip id")
	}

	dayNumber, err := strconv.Atoi(c.Param("day"))
	if err != nil || dayNumber < 1 {
		return badRequest(c, "invalid day")
	}

	tripRecord, err := h.Trips.GetByID(c.Request().Context(), userID, tripID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "trip not found")
		}
		return serverError(c)
	}

	var activities []models.Activity
	for _, day := range tripRecord.Itinerary.DailyItinerary {
		if day.Day == dayNumber {
			activities = day.Activities
			break
		}
	}

	points := trip.RoutePoints(activities)
	url := trip.GoogleMapsRouteURL(points, c.QueryParam("mode"))

	return c.JSON(http.StatusOK, RouteResponse{
		Available: url != "",
		URL:       url,
		Points:    len(points),
	})
}
