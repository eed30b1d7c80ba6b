package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"example.com/travel-genie/backend/internal/models"
)

type ExpenseRepository struct {
	db *pgxpool.Pool
}

func NewExpenseRepository(db *pgxpool.Pool) *ExpenseRepository {
	return &ExpenseRepository{db: db}
}

// Create inserts a ledger entry. The id is supplied by the caller because
// mirrored expenses carry an id derived from their reservation.
func (r *ExpenseRepository) Create(ctx context.Context, userID, tripID uuid.UUID, expense models.Expense) (models.Expense, error) {
	var created models.Expense

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
		`INSERT INTO expenses (id, trip_id, description, amount)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, trip_id, description, amount, created_at`,
		expense.ID, tripID, expense.Description, expense.Amount,
	).Scan(&created.ID, &created.TripID, &created.Description, &created.Amount, &created.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return created, ErrConflict
		}
		return created, err
	}

	if err := tx.Commit(ctx); err != nil {
		return created, err
	}

	return created, nil
}

// ListByTrip returns the ledger in insertion order.
func (r *ExpenseRepository) ListByTrip(ctx context.Context, userID, tripID uuid.UUID) ([]models.Expense, error) {
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
		`SELECT id, trip_id, description, amount, created_at
		 FROM expenses
		 WHERE trip_id = $1
		 ORDER BY created_at, id`,
		tripID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	expenses := make([]models.Expense, 0)
	for rows.Next() {
		var expense models.Expense

		err := rows.Scan(&expense.ID, &expense.TripID, &expense.Description, &expense.Amount, &expense.CreatedAt)
		if err != nil {
			return nil, err
		}

		expenses = append(expenses, expense)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return expenses, nil
}

// Delete removes one ledger entry. Removing a mirrored expense does not
// touch its reservation.
func (r *ExpenseRepository) Delete(ctx context.Context, userID, tripID uuid.UUID, expenseID string) error {
	cmd, err := r.db.Exec(ctx,
		`DELETE FROM expenses e
		 USING trips t
		 WHERE e.id = $1
		   AND e.trip_id = t.id
		   AND t.id = $2
		   AND t.user_id = $3`,
		expenseID, tripID, userID,
	)
	if err != nil {
		return err
	}

	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}
