package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"example.com/travel-genie/backend/internal/models"
)

type TripRepository struct {
	db *pgxpool.Pool
}

func NewTripRepository(db *pgxpool.Pool) *TripRepository {
	return &TripRepository{db: db}
}

// Create inserts a trip without an itinerary; the plan arrives later from
// the AI boundary.
func (r *TripRepository) Create(ctx context.Context, userID uuid.UUID, trip models.Trip) (models.Trip, error) {
	var created models.Trip
	var itineraryRaw []byte

	err := r.db.QueryRow(ctx,
		`INSERT INTO trips (user_id, city, departure_city, days, travelers, start_date, budget, style, language)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id, user_id, city, departure_city, days, travelers, start_date, budget, style, language, itinerary, created_at, updated_at`,
		userID, trip.City, trip.DepartureCity, trip.Days, trip.Travelers, trip.StartDate, trip.Budget, trip.Style, trip.Language,
	).Scan(&created.ID, &created.UserID, &created.City, &created.DepartureCity, &created.Days, &created.Travelers,
		&created.StartDate, &created.Budget, &created.Style, &created.Language, &itineraryRaw, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		return created, err
	}

	if err := unmarshalItinerary(itineraryRaw, &created.Itinerary); err != nil {
		return created, err
	}

	return created, nil
}

// GetByID returns the trip only when it belongs to the user.
func (r *TripRepository) GetByID(ctx context.Context, userID, tripID uuid.UUID) (models.Trip, error) {
	var trip models.Trip
	var itineraryRaw []byte

	err := r.db.QueryRow(ctx,
		`SELECT id, user_id, city, departure_city, days, travelers, start_date, budget, style, language, itinerary, created_at, updated_at
		 FROM trips
		 WHERE id = $1 AND user_id = $2`,
		tripID, userID,
	).Scan(&trip.ID, &trip.UserID, &trip.City, &trip.DepartureCity, &trip.Days, &trip.Travelers,
		&trip.StartDate, &trip.Budget, &trip.Style, &trip.Language, &itineraryRaw, &trip.CreatedAt, &trip.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return trip, ErrNotFound
		}
		return trip, err
	}

	if err := unmarshalItinerary(itineraryRaw, &trip.Itinerary); err != nil {
		return trip, err
	}

	return trip, nil
}

// ListByUser returns the user's trips, newest first.
func (r *TripRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Trip, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, city, departure_city, days, travelers, start_date, budget, style, language, itinerary, created_at, updated_at
		 FROM trips
		 WHERE user_id = $1
		 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	trips := make([]models.Trip, 0)
	for rows.Next() {
		var trip models.Trip
		var itineraryRaw []byte

		err := rows.Scan(&trip.ID, &trip.UserID, &trip.City, &trip.DepartureCity, &trip.Days, &trip.Travelers,
			&trip.StartDate, &trip.Budget, &trip.Style, &trip.Language, &itineraryRaw, &trip.CreatedAt, &trip.UpdatedAt)
		if err != nil {
			return nil, err
		}

		if err := unmarshalItinerary(itineraryRaw, &trip.Itinerary); err != nil {
			return nil, err
		}

		trips = append(trips, trip)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return trips, nil
}

// ReplaceItinerary swaps the stored plan wholesale. Plans are never merged;
// the previous itinerary is discarded.
func (r *TripRepository) ReplaceItinerary(ctx context.Context, userID, tripID uuid.UUID, itinerary models.Itinerary) error {
	payload, err := json.Marshal(itinerary)
	if err != nil {
		return err
	}

	cmd, err := r.db.Exec(ctx,
		`UPDATE trips
		 SET itinerary = $3, updated_at = NOW()
		 WHERE id = $1 AND user_id = $2`,
		tripID, userID, payload,
	)
	if err != nil {
		return err
	}

	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// Delete removes the trip and, through cascades, all its records.
func (r *TripRepository) Delete(ctx context.Context, userID, tripID uuid.UUID) error {
	cmd, err := r.db.Exec(ctx,
		`DELETE FROM trips
		 WHERE id = $1 AND user_id = $2`,
		tripID, userID,
	)
	if err != nil {
		return err
	}

	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// Exists reports whether the trip belongs to the user. Record repositories
// use it as their ownership guard.
func (r *TripRepository) Exists(ctx context.Context, userID, tripID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (
			SELECT 1 FROM trips WHERE id = $1 AND user_id = $2
		 )`,
		tripID, userID,
	).Scan(&exists)
	return exists, err
}

func unmarshalItinerary(raw []byte, target *models.Itinerary) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, target)
}
