package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"example.com/travel-genie/backend/internal/models"
)

type ReservationRepository struct {
	db *pgxpool.Pool
}

func NewReservationRepository(db *pgxpool.Pool) *ReservationRepository {
	return &ReservationRepository{db: db}
}

// Create inserts a booking and, when mirror is non-nil, the expense that
// tracks its cost in the same transaction.
func (r *ReservationRepository) Create(ctx context.Context, userID, tripID uuid.UUID, reservation models.Reservation, mirror *models.Expense) (models.Reservation, error) {
	var created models.Reservation

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
		`INSERT INTO reservations (id, trip_id, type, name, date, time, notes, cost)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, trip_id, type, name, date, time, notes, cost, created_at`,
		reservation.ID, tripID, reservation.Type, reservation.Name, reservation.Date,
		reservation.Time, reservation.Notes, reservation.Cost,
	).Scan(&created.ID, &created.TripID, &created.Type, &created.Name, &created.Date,
		&created.Time, &created.Notes, &created.Cost, &created.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return created, ErrConflict
		}
		return created, err
	}

	if mirror != nil {
		_, err = tx.Exec(ctx,
			`INSERT INTO expenses (id, trip_id, description, amount)
			 VALUES ($1, $2, $3, $4)`,
			mirror.ID, tripID, mirror.Description, mirror.Amount,
		)
		if err != nil {
			return created, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return created, err
	}

	return created, nil
}

// ListByTrip returns bookings in insertion order.
func (r *ReservationRepository) ListByTrip(ctx context.Context, userID, tripID uuid.UUID) ([]models.Reservation, error) {
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
		`SELECT id, trip_id, type, name, date, time, notes, cost, created_at
		 FROM reservations
		 WHERE trip_id = $1
		 ORDER BY created_at, id`,
		tripID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reservations := make([]models.Reservation, 0)
	for rows.Next() {
		var reservation models.Reservation

		err := rows.Scan(&reservation.ID, &reservation.TripID, &reservation.Type, &reservation.Name,
			&reservation.Date, &reservation.Time, &reservation.Notes, &reservation.Cost, &reservation.CreatedAt)
		if err != nil {
			return nil, err
		}

		reservations = append(reservations, reservation)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return reservations, nil
}

// Delete removes the booking only. The mirrored expense, if one was created,
// stays in the ledger until deleted through the expense endpoint.
func (r *ReservationRepository) Delete(ctx context.Context, userID, tripID uuid.UUID, reservationID string) error {
	cmd, err := r.db.Exec(ctx,
		`DELETE FROM reservations res
		 USING trips t
		 WHERE res.id = $1
		   AND res.trip_id = t.id
		   AND t.id = $2
		   AND t.user_id = $3`,
		reservationID, tripID, userID,
	)
	if err != nil {
		return err
	}

	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}
