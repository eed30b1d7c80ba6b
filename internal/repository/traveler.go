package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"example.com/travel-genie/backend/internal/models"
)

type TravelerRepository struct {
	db *pgxpool.Pool
}

func NewTravelerRepository(db *pgxpool.Pool) *TravelerRepository {
	return &TravelerRepository{db: db}
}

// Create inserts a traveler. The caller has already resolved a blank name
// into the localized default label.
func (r *TravelerRepository) Create(ctx context.Context, userID, tripID uuid.UUID, traveler models.Traveler) (models.Traveler, error) {
	var created models.Traveler

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return created, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	var exists bool
	if err := tx.QueryRow(ctx,
		`SELECT EXISTS (
			SELECT 1 FROM trips WHERE id = $1 AND user_id = $2
		 )`,
		tripID, userID,
	).Scan(&exists); err != nil {
		return created, err
	}

	if !exists {
		return created, ErrNotFound
	}

	err = tx.QueryRow(ctx,
		`INSERT INTO travelers (id, trip_id, name, advance)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, trip_id, name, advance, created_at`,
		traveler.ID, tripID, traveler.Name, traveler.Advance,
	).Scan(&created.ID, &created.TripID, &created.Name, &created.Advance, &created.CreatedAt)
	if err != nil {
		return created, err
	}

	if err := tx.Commit(ctx); err != nil {
		return created, err
	}

	return created, nil
}

// ListByTrip returns travelers in insertion order.
func (r *TravelerRepository) ListByTrip(ctx context.Context, userID, tripID uuid.UUID) ([]models.Traveler, error) {
	var exists bool
	if err := r.db.QueryRow(ctx,
		`SELECT EXISTS (
			SELECT 1 FROM trips WHERE id = $1 AND user_id = $2
		 )`,
		tripID, userID,
	).Scan(&exists); err != nil {
		return nil, err
	}

	if !exists {
		return nil, ErrNotFound
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, trip_id, name, advance, created_at
		 FROM travelers
		 WHERE trip_id = $1
		 ORDER BY created_at, id`,
		tripID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	travelers := make([]models.Traveler, 0)
	for rows.Next() {
		var traveler models.Traveler

		err := rows.Scan(&traveler.ID, &traveler.TripID, &traveler.Name, &traveler.Advance, &traveler.CreatedAt)
		if err != nil {
			return nil, err
		}

		travelers = append(travelers, traveler)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return travelers, nil
}

// Count returns how many travelers the trip currently has. Used to derive
// the next default name.
func (r *TravelerRepository) Count(ctx context.Context, userID, tripID uuid.UUID) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*)
		 FROM travelers tr
		 JOIN trips t ON t.id = tr.trip_id
		 WHERE t.id = $1 AND t.user_id = $2`,
		tripID, userID,
	).Scan(&count)
	return count, err
}

// UpdateName renames a traveler.
func (r *TravelerRepository) UpdateName(ctx context.Context, userID, tripID uuid.UUID, travelerID, name string) error {
	cmd, err := r.db.Exec(ctx,
		`UPDATE travelers tr
		 SET name = $2
		 FROM trips t
		 WHERE tr.id = $1
		   AND tr.trip_id = t.id
		   AND t.id = $3
		   AND t.user_id = $4`,
		travelerID, name, tripID, userID,
	)
	if err != nil {
		return err
	}

	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// UpdateAdvance sets a traveler's prepayment.
func (r *TravelerRepository) UpdateAdvance(ctx context.Context, userID, tripID uuid.UUID, travelerID string, advance float64) error {
	cmd, err := r.db.Exec(ctx,
		`UPDATE travelers tr
		 SET advance = $2
		 FROM trips t
		 WHERE tr.id = $1
		   AND tr.trip_id = t.id
		   AND t.id = $3
		   AND t.user_id = $4`,
		travelerID, advance, tripID, userID,
	)
	if err != nil {
		return err
	}

	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// Delete removes a traveler. Remaining travelers keep their names.
func (r *TravelerRepository) Delete(ctx context.Context, userID, tripID uuid.UUID, travelerID string) error {
	cmd, err := r.db.Exec(ctx,
		`DELETE FROM travelers tr
		 USING trips t
		 WHERE tr.id = $1
		   AND tr.trip_id = t.id
		   AND t.id = $2
		   AND t.user_id = $3`,
		travelerID, tripID, userID,
	)
	if err != nil {
		return err
	}

	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}
