package handlers

import (
	"bytes"
	"encoding/csv"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"example.com/travel-genie/backend/internal/auth"
	"example.com/travel-genie/backend/internal/models"
	"example.com/travel-genie/backend/internal/repository"
	"example.com/travel-genie/backend/internal/trip"
)

const (
	exportTypeExpenses   = "expenses"
	exportTypeSettlement = "settlement"
)

const timeLayout = time.RFC3339

type ExportHandler struct {
	Trips        *repository.TripRepository
	Expenses     *repository.ExpenseRepository
	Travelers    *repository.TravelerRepository
	Reservations *repository.ReservationRepository
	Diary        *repository.DiaryRepository
}

func NewExportHandler(
	trips *repository.TripRepository,
	expenses *repository.ExpenseRepository,
	travelers *repository.TravelerRepository,
	reservations *repository.ReservationRepository,
	diary *repository.DiaryRepository,
) *ExportHandler {
	return &ExportHandler{
		Trips:        trips,
		Expenses:     expenses,
		Travelers:    travelers,
		Reservations: reservations,
		Diary:        diary,
	}
}

type TripExport struct {
	Trip         models.Trip          `json:"trip"`
	Expenses     []models.Expense     `json:"expenses"`
	Travelers    []models.Traveler    `json:"travelers"`
	Reservations []models.Reservation `json:"reservations"`
	DiaryNotes   []models.DiaryNote   `json:"diary_notes"`
	Settlement   trip.Settlement      `json:"settlement"`
}

// ExportJSON downloads the whole trip as a single JSON bundle.
func (h *ExportHandler) ExportJSON(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	tripID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid trip id")
	}

	export, err := h.buildExport(c, userID, tripID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "trip not found")
		}
		return serverError(c)
	}

	filename := "trip-" + export.Trip.ID.String() + ".json"
	c.Response().Header().Set(echo.HeaderContentType, "application/json")
	c.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename=\""+filename+"\"")
	return c.JSON(http.StatusOK, export)
}

// ExportCSV downloads the ledger or the settlement as a CSV file.
func (h *ExportHandler) ExportCSV(c echo.Context) error {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		return unauthorized(c)
	}

	tripID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "invalid trip id")
	}

	exportType := strings.ToLower(strings.TrimSpace(c.QueryParam("type")))
	if exportType == "" {
		exportType = exportTypeExpenses
	}

	export, err := h.buildExport(c, userID, tripID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "trip not found")
		}
		return serverError(c)
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	switch exportType {
	case exportTypeExpenses:
		if err := writeExpensesCSV(writer, export); err != nil {
			return serverError(c)
		}
	case exportTypeSettlement:
		if err := writeSettlementCSV(writer, export); err != nil {
			return serverError(c)
		}
	default:
		return badRequest(c, "invalid export type")
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return serverError(c)
	}

	filename := "trip-" + export.Trip.ID.String() + "-" + exportType + ".csv"
	c.Response().Header().Set(echo.HeaderContentType, "text/csv; charset=utf-8")
	c.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename=\""+filename+"\"")
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

func (h *ExportHandler) buildExport(c echo.Context, userID, tripID uuid.UUID) (TripExport, error) {
	ctx := c.Request().Context()

	tripRecord, err := h.Trips.GetByID(ctx, userID, tripID)
	if err != nil {
		return TripExport{}, err
	}

	expenses, err := h.Expenses.ListByTrip(ctx, userID, tripID)
	if err != nil {
		return TripExport{}, err
	}

	travelers, err := h.Travelers.ListByTrip(ctx, userID, tripID)
	if err != nil {
		return TripExport{}, err
	}

	reservations, err := h.Reservations.ListByTrip(ctx, userID, tripID)
	if err != nil {
		return TripExport{}, err
	}

	notes, err := h.Diary.ListByTrip(ctx, userID, tripID)
	if err != nil {
		return TripExport{}, err
	}

	return TripExport{
		Trip:         tripRecord,
		Expenses:     expenses,
		Travelers:    travelers,
		Reservations: reservations,
		DiaryNotes:   notes,
		Settlement:   trip.ComputeSettlement(expenses, travelers),
	}, nil
}

func writeExpensesCSV(writer *csv.Writer, export TripExport) error {
	header := []string{
		"trip_id",
		"city",
		"expense_id",
		"description",
		"amount",
		"created_at",
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, expense := range export.Expenses {
		record := []string{
			export.Trip.ID.String(),
			export.Trip.City,
			expense.ID,
			expense.Description,
			formatAmount(expense.Amount),
			expense.CreatedAt.Format(timeLayout),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	return nil
}

func writeSettlementCSV(writer *csv.Writer, export TripExport) error {
	header := []string{
		"trip_id",
		"city",
		"traveler_id",
		"name",
		"advance",
		"status",
		"amount",
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, share := range export.Settlement.Shares {
		record := []string{
			export.Trip.ID.String(),
			export.Trip.City,
			share.TravelerID,
			share.Name,
			formatAmount(share.Advance),
			string(share.Status),
			formatAmount(share.Amount),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	return nil
}

func formatAmount(value float64) string {
	return strconv.FormatFloat(value, 'f', 2, 64)
}
