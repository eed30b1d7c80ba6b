package handlers

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"example.com/travel-genie/backend/internal/auth"
	"example.com/travel-genie/backend/internal/models"
	"example.com/travel-genie/backend/internal/repository"
)

type DiaryHandler struct {
	Notes *repository.DiaryRepository
}

func NewDiaryHandler(notes *repository.DiaryRepository) *DiaryHandler {
	return &DiaryHandler{Notes: notes}
}

type CreateDiaryNoteRequest struct {
	Day     int    `json:"day" validate:"required,min=1"`
	Content string `json:"content" validate:"required,max=10000"`
}

type UpdateDiaryNoteRequest struct {
	Content string `json:"content" validate:"required,max=10000"`
}

type DiaryListResponse struct {
	Notes []models.DiaryNote `json:"notes"`
}

func (h *DiaryHandler) List(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	tripID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid trip id")
	}

	notes, err := h.Notes.ListByTrip(c.Request().Context(), userID, tripID)
	if err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusOK, DiaryListResponse{Notes: notes})
}

func (h *DiaryHandler) Create(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	tripID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid trip id")
	}

	var req CreateDiaryNoteRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}

	note, err := h.Notes.Create(c.Request().Context(), userID, tripID, req.Day, req.Content)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "trip not found")
		}
		return serverError(c)
	}

	return c.JSON(http.StatusCreated, note)
}

func (h *DiaryHandler) Update(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	noteID, err := uuid.Parse(c.Param("noteId"))
	if err != nil {
		return badRequest(c, "invalid note id")
	}

	var req UpdateDiaryNoteRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, err.Error())
	}

	note, err := h.Notes.Update(c.Request().Context(), userID, noteID, req.Content)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "note not found")
		}
		return serverError(c)
	}

	return c.JSON(http.StatusOK, note)
}

func (h *DiaryHandler) Delete(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	noteID, err := uuid.Parse(c.Param("noteId"))
	if err != nil {
		return badRequest(c, "invalid note id")
	}

	if err := h.Notes.Delete(c.Request().Context(), userID, noteID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "note not found")
		}
		return serverError(c)
	}

	return c.NoContent(http.StatusNoContent)
}
