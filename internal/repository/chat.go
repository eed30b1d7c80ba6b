package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"example.com/travel-genie/backend/internal/models"
)

type ChatRepository struct {
	db *pgxpool.Pool
}

func NewChatRepository(db *pgxpool.Pool) *ChatRepository {
	return &ChatRepository{db: db}
}

// Append stores one conversational turn.
func (r *ChatRepository) Append(ctx context.Context, userID, tripID uuid.UUID, role models.ChatRole, content string) (models.ChatMessage, error) {
	var message models.ChatMessage

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return message, err
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
		return message, err
	}

	if !exists {
		return message, ErrNotFound
	}

	err = tx.QueryRow(ctx,
		`INSERT INTO chat_messages (id, trip_id, role, content)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, trip_id, role, content, created_at`,
		uuid.New(), tripID, role, content,
	).Scan(&message.ID, &message.TripID, &message.Role, &message.Content, &message.CreatedAt)
	if err != nil {
		return message, err
	}

	if err := tx.Commit(ctx); err != nil {
		return message, err
	}

	return message, nil
}

// ListByTrip returns the conversation in chronological order.
func (r *ChatRepository) ListByTrip(ctx context.Context, userID, tripID uuid.UUID) ([]models.ChatMessage, error) {
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
		`SELECT id, trip_id, role, content, created_at
		 FROM chat_messages
		 WHERE trip_id = $1
		 ORDER BY created_at, id`,
		tripID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := make([]models.ChatMessage, 0)
	for rows.Next() {
		var message models.ChatMessage

		err := rows.Scan(&message.ID, &message.TripID, &message.Role, &message.Content, &message.CreatedAt)
		if err != nil {
			return nil, err
		}

		messages = append(messages, message)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return messages, nil
}
