package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"example.com/travel-genie/backend/internal/auth"
	"example.com/travel-genie/backend/internal/models"
	"example.com/travel-genie/backend/internal/repository"
	"example.com/travel-genie/backend/internal/trip"
)

// Flights are typically not bookable further out than this.
const flightBookingWindowDays = 330

type ResourcesHandler struct {
	Trips *repository.TripRepository
}

func NewResourcesHandler(trips *repository.TripRepository) *ResourcesHandler {
	return &ResourcesHandler{Trips: trips}
}

type BookingLink struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	URL      string `json:"url"`
}

type ResourcesResponse struct {
	CheckIn           string        `json:"check_in,omitempty"`
	CheckOut          string        `json:"check_out,omitempty"`
	FlightDateWarning string        `json:"flight_date_warning,omitempty"`
	Links             []BookingLink `json:"links"`
}

// Links returns prefilled booking deep links for the trip's destination and
// dates, with a warning when the departure is beyond the airline booking
// window.
func (h *ResourcesHandler) Links(c echo.Context) error {
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

	checkIn := tripRecord.StartDate
	checkOut := trip.ActivityDate(tripRecord.StartDate, tripRecord.Days)

	resp := ResourcesResponse{
		CheckIn:  checkIn,
		CheckOut: checkOut,
		Links:    bookingLinks(tripRecord, checkIn, checkOut),
	}

	if tooFarForFlights(checkIn, time.Now()) {
		resp.FlightDateWarning = flightWindowWarning(tripRecord.Language)
	}

	return c.JSON(http.StatusOK, resp)
}

func bookingLinks(tripRecord models.Trip, checkIn, checkOut string) []BookingLink {
	city := url.QueryEscape(tripRecord.City)
	travelers := tripRecord.Travelers

	links := []BookingLink{
		{
			Name:     "Google Flights",
			Category: "flights",
			URL: fmt.Sprintf("https://www.google.com/travel/flights?q=%s",
				url.QueryEscape(fmt.Sprintf("Flights to %s from %s to %s for %d people",
					tripRecord.City, checkIn, checkOut, travelers))),
		},
		{
			Name:     "Booking.com",
			Category: "hotels",
			URL: fmt.Sprintf("https://www.booking.com/searchresults.html?ss=%s&checkin=%s&checkout=%s&group_adults=%d",
				city, checkIn, checkOut, travelers),
		},
		{
			Name:     "Airbnb",
			Category: "hotels",
			URL: fmt.Sprintf("https://www.airbnb.com/s/%s/homes?checkin=%s&checkout=%s&adults=%d",
				city, checkIn, checkOut, travelers),
		},
		{
			Name:     "Trainline",
			Category: "transport",
			URL:      fmt.Sprintf("https://www.thetrainline.com/search-results?to=%s", city),
		},
	}

	return links
}

func tooFarForFlights(startDate string, now time.Time) bool {
	start, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		return false
	}
	return start.Sub(now) > flightBookingWindowDays*24*time.Hour
}

func flightWindowWarning(lang models.Language) string {
	if lang == models.LanguageItalian {
		return "Nota: i voli di solito non sono prenotabili oltre i 330 giorni di anticipo."
	}
	return "Note: flights usually cannot be booked more than 330 days in advance."
}
