package handlers

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"example.com/travel-genie/backend/internal/ai"
	"example.com/travel-genie/backend/internal/auth"
	"example.com/travel-genie/backend/internal/models"
	"example.com/travel-genie/backend/internal/notifications"
	"example.com/travel-genie/backend/internal/repository"
)

type TripHandler struct {
	Trips    *repository.TripRepository
	AI       *ai.Service
	AILogs   *repository.AIRepository
	Hub      *notifications.Hub
	Provider string
	Model    string
}

func NewTripHandler(trips *repository.TripRepository, aiService *ai.Service, aiLogs *repository.AIRepository, hub *notifications.Hub, provider, model string) *TripHandler {
	return &TripHandler{
		Trips:    trips,
		AI:       aiService,
		AILogs:   aiLogs,
		Hub:      hub,
		Provider: provider,
		Model:    model,
	}
}

type CreateTripRequest struct {
	City          string  `json:"city" validate:"required,max=100"`
	DepartureCity string  `json:"departure_city" validate:"omitempty,max=100"`
	Days          int     `json:"days" validate:"required,min=1,max=30"`
	Travelers     int     `json:"travelers" validate:"required,min=1,max=20"`
	StartDate     string  `json:"start_date" validate:"required,datetime=2006-01-02"`
	Budget        float64 `json:"budget" validate:"omitempty,gte=0"`
	Style         int     `json:"style" validate:"gte=0,lte=100"`
	Language      string  `json:"language" validate:"omitempty,oneof=en it"`
}

type TripResponse struct {
	Trip models.Trip `json:"trip"`
}

type TripListResponse struct {
	Trips []models.Trip `json:"trips"`
}

// aiFailureMessage is the generic, localized message shown when the provider
// fails. The trip state is left untouched; there is no substitute plan.
func aiFailureMessage(lang models.Language) string {
	if lang == models.LanguageItalian {
		return "Impossibile generare l'itinerario. Riprova tra qualche istante."
	}
	return "Could not generate the itinerary. Please try again in a moment."
}

// Create generates an itinerary for the requested trip and persists both in
// one go. An AI failure surfaces as 502 and nothing is stored.
func (h *TripHandler) Create(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	var req CreateTripRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	lang := models.NormalizeLanguage(req.Language)
	request := ai.TripRequest{
		City:          req.City,
		DepartureCity: req.DepartureCity,
		Days:          req.Days,
		Travelers:     req.Travelers,
		StartDate:     req.StartDate,
		Budget:        req.Budget,
		Style:         req.Style,
		Language:      lang,
	}

	itinerary, prompt, raw, err := h.AI.GenerateItinerary(c.Request().Context(), request)
	h.logAIRequest(c, userID, "generate_itinerary", prompt, raw, err)
	if err != nil {
		return badGateway(c, aiFailureMessage(lang))
	}

	trip, err := h.Trips.Create(c.Request().Context(), userID, models.Trip{
		City:          req.City,
		DepartureCity: req.DepartureCity,
		Days:          req.Days,
		Travelers:     req.Travelers,
		StartDate:     req.StartDate,
		Budget:        req.Budget,
		Style:         req.Style,
		Language:      lang,
	})
	if err != nil {
		return serverError(c)
	}

	if err := h.Trips.ReplaceItinerary(c.Request().Context(), userID, trip.ID, itinerary); err != nil {
		return serverError(c)
	}
	trip.Itinerary = itinerary

	h.Hub.Publish(userID, notifications.Event{
		Type: notifications.EventItineraryReplaced,
		Data: map[string]string{"trip_id": trip.ID.String()},
	})

	return c.JSON(http.StatusCreated, TripResponse{Trip: trip})
}

// List returns the user's trips.
func (h *TripHandler) List(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	trips, err := h.Trips.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusOK, TripListResponse{Trips: trips})
}

// Get returns one trip with its itinerary.
func (h *TripHandler) Get(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	tripID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid trip id")
	}

	trip, err := h.Trips.GetByID(c.Request().Context(), userID, tripID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "trip not found")
		}
		return serverError(c)
	}

	return c.JSON(http.StatusOK, TripResponse{Trip: trip})
}

// Delete removes a trip and all its records.
func (h *TripHandler) Delete(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	tripID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid trip id")
	}

	if err := h.Trips.Delete(c.Request().Context(), userID, tripID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "trip not found")
		}
		return serverError(c)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *TripHandler) logAIRequest(c echo.Context, userID uuid.UUID, requestType, prompt string, raw []byte, callErr error) {
	var errMessage *string
	if callErr != nil {
		msg := callErr.Error()
		errMessage = &msg
	}

	log := repository.AIRequestLog{
		UserID:          userID,
		RequestType:     requestType,
		Provider:        h.Provider,
		Model:           h.Model,
		Prompt:          prompt,
		ResponsePayload: raw,
		Success:         callErr == nil,
		ErrorMessage:    errMessage,
	}

	if err := h.AILogs.LogRequest(c.Request().Context(), log); err != nil {
		c.Logger().Errorf("log ai request: %v", err)
	}
}
