package handlers

import (
	"errors"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"example.com/travel-genie/backend/internal/ai"
	"example.com/travel-genie/backend/internal/auth"
	"example.com/travel-genie/backend/internal/models"
	"example.com/travel-genie/backend/internal/notifications"
	"example.com/travel-genie/backend/internal/repository"
)

type ChatHandler struct {
	Trips    *repository.TripRepository
	Chats    *repository.ChatRepository
	AI       *ai.Service
	AILogs   *repository.AIRepository
	Hub      *notifications.Hub
	Provider string
	Model    string

	mu       sync.Mutex
	inFlight map[uuid.UUID]struct{}
}

func NewChatHandler(trips *repository.TripRepository, chats *repository.ChatRepository, aiService *ai.Service, aiLogs *repository.AIRepository, hub *notifications.Hub, provider, model string) *ChatHandler {
	return &ChatHandler{
		Trips:    trips,
		Chats:    chats,
		AI:       aiService,
		AILogs:   aiLogs,
		Hub:      hub,
		Provider: provider,
		Model:    model,
		inFlight: make(map[uuid.UUID]struct{}),
	}
}

type ChatRequest struct {
	Message string `json:"message" validate:"required,max=4000"`
}

type ChatResponse struct {
	Message  models.ChatMessage `json:"message"`
	Proposal *models.Itinerary  `json:"proposal,omitempty"`
}

type ChatHistoryResponse struct {
	Messages []models.ChatMessage `json:"messages"`
}

type ApplyItineraryRequest struct {
	Itinerary models.Itinerary `json:"itinerary"`
}

// History returns the trip's conversation in order.
func (h *ChatHandler) History(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	tripID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid trip id")
	}

	messages, err := h.Chats.ListByTrip(c.Request().Context(), userID, tripID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "trip not found")
		}
		return serverError(c)
	}

	return c.JSON(http.StatusOK, ChatHistoryResponse{Messages: messages})
}

// Send handles one conversational turn. Only one request per trip may be in
// flight; concurrent sends get 409. When the model proposes a revised
// itinerary it is returned as a proposal and nothing is applied.
func (h *ChatHandler) Send(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	tripID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid trip id")
	}

	var req ChatRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	if !h.acquire(tripID) {
		return conflict(c, "assistant is already answering for this trip")
	}
	defer h.release(tripID)

	trip, err := h.Trips.GetByID(c.Request().Context(), userID, tripID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "trip not found")
		}
		return serverError(c)
	}

	history, err := h.Chats.ListByTrip(c.Request().Context(), userID, tripID)
	if err != nil {
		return serverError(c)
	}

	var itinerary *models.Itinerary
	if trip.Itinerary.TripTitle != "" {
		itinerary = &trip.Itinerary
	}

	reply, raw, err := h.AI.Chat(c.Request().Context(), itinerary, history, req.Message, trip.Language)
	h.logAIRequest(c, userID, "chat", req.Message, raw, err)
	if err != nil {
		return badGateway(c, aiFailureMessage(trip.Language))
	}

	if _, err := h.Chats.Append(c.Request().Context(), userID, tripID, models.ChatRoleUser, req.Message); err != nil {
		return serverError(c)
	}

	modelMessage, err := h.Chats.Append(c.Request().Context(), userID, tripID, models.ChatRoleModel, reply.Text)
	if err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusOK, ChatResponse{
		Message:  modelMessage,
		Proposal: reply.Proposal,
	})
}

// Apply replaces the trip's itinerary with an accepted proposal. The swap is
// wholesale; the previous plan is discarded.
func (h *ChatHandler) Apply(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	tripID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid trip id")
	}

	var req ApplyItineraryRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}

	if err := ai.ValidateItinerary(&req.Itinerary); err != nil {
		return badRequest(c, "invalid itinerary")
	}

	if err := h.Trips.ReplaceItinerary(c.Request().Context(), userID, tripID, req.Itinerary); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "trip not found")
		}
		return serverError(c)
	}

	h.Hub.Publish(userID, notifications.Event{
		Type: notifications.EventItineraryReplaced,
		Data: map[string]string{"trip_id": tripID.String()},
	})

	return c.NoContent(http.StatusNoContent)
}

func (h *ChatHandler) acquire(tripID uuid.UUID) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, busy := h.inFlight[tripID]; busy {
		return false
	}
	h.inFlight[tripID] = struct{}{}
	return true
}

func (h *ChatHandler) release(tripID uuid.UUID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.inFlight, tripID)
}

func (h *ChatHandler) logAIRequest(c echo.Context, userID uuid.UUID, requestType, prompt string, raw []byte, callErr error) {
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
