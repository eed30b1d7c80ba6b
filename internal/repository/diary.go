package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"example.com/travel-genie/backend/internal/models"
)

type DiaryRepository struct {
	db *pgxpool.Pool
}

func NewDiaryRepository(db *pgxpool.Pool) *DiaryRepository {
	return &DiaryRepository{db: db}
}

// ListByTrip returns diary notes ordered by trip day.
func (r *DiaryRepository) ListByTrip(ctx context.Context, userID, tripID uuid.UUID) ([]models.DiaryNote, error) {
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
		`SELECT id, trip_id, day, content, created_at, updated_at
		 FROM diary_notes
		 WHERE trip_id = $1
		 ORDER BY day, created_at`,
		tripID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notes := make([]models.DiaryNote, 0)
	for rows.Next() {
		var note models.DiaryNote

		err := rows.Scan(&note.ID, &note.TripID, &note.Day, &note.Content, &note.CreatedAt, &note.UpdatedAt)
		if err != nil {
			return nil, err
		}

		notes = append(notes, note)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return notes, nil
}

// Create adds a diary note to a trip day.
func (r *DiaryRepository) Create(ctx context.Context, userID, tripID uuid.UUID, day int, content string) (models.DiaryNote, error) {
	var note models.DiaryNote

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return note, err
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
		return note, err
	}

	if !exists {
		return note, ErrNotFound
	}

	err = tx.QueryRow(ctx,
		`INSERT INTO diary_notes (id, trip_id, day, content)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, trip_id, day, content, created_at, updated_at`,
		uuid.New(), tripID, day, content,
	).Scan(&note.ID, &note.TripID, &note.Day, &note.Content, &note.CreatedAt, &note.UpdatedAt)
	if err != nil {
		return note, err
	}

	if err := tx.Commit(ctx); err != nil {
		return note, err
	}

	return note, nil
}

// Update edits a note's content.
func (r *DiaryRepository) Update(ctx context.Context, userID, noteID uuid.UUID, content string) (models.DiaryNote, error) {
	var note models.DiaryNote

	err := r.db.QueryRow(ctx,
		`UPDATE diary_notes n
		 SET content = $2,
		     updated_at = NOW()
		 FROM trips t
		 WHERE n.id = $1
		   AND n.trip_id = t.id
		   AND t.user_id = $3
		 RETURNING n.id, n.trip_id, n.day, n.content, n.created_at, n.updated_at`,
		noteID, content, userID,
	).Scan(&note.ID, &note.TripID, &note.Day, &note.Content, &note.CreatedAt, &note.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return note, ErrNotFound
		}
		return note, err
	}

	return note, nil
}

// Delete removes a note.
func (r *DiaryRepository) Delete(ctx context.Context, userID, noteID uuid.UUID) error {
	cmd, err := r.db.Exec(ctx,
		`DELETE FROM diary_notes n
		 USING trips t
		 WHERE n.id = $1
		   AND n.trip_id = t.id
		   AND t.user_id = $2`,
		noteID, userID,
	)
	if err != nil {
		return err
	}

	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}
