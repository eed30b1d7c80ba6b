package repository

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AIRepository struct {
	db *pgxpool.Pool
}

type AIRequestLog struct {
	UserID          uuid.UUID
	RequestType     string
	Provider        string
	Model           string
	Prompt          string
	ResponsePayload []byte
	Success         bool
	ErrorMessage    *string
}

// AIRequestRecord is a stored provider call, read back for the admin view.
type AIRequestRecord struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	RequestType     string
	Provider        string
	Model           string
	Prompt          *string
	ResponsePayload []byte
	Success         bool
	ErrorMessage    *string
	CreatedAt       time.Time
}

type AIRequestFilter struct {
	UserID      *uuid.UUID
	Success     *bool
	RequestType *string
}

type AIUsageDay struct {
	Day   time.Time
	Count int
}

type AIUsage struct {
	Users           int
	Trips           int
	TotalRequests   int
	FailedRequests  int
	AIRequestsByDay []AIUsageDay
}

func NewAIRepository(db *pgxpool.Pool) *AIRepository {
	return &AIRepository{db: db}
}

// LogRequest records one provider call for the admin usage view.
func (r *AIRepository) LogRequest(ctx context.Context, log AIRequestLog) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO ai_requests
		 (user_id, request_type, provider, model, prompt, response_payload, success, error_message)
		 VALUES ($1, $2, $3, $4, $5, NULLIF($6, '')::jsonb, $7, $8)`,
		log.UserID,
		log.RequestType,
		log.Provider,
		log.Model,
		log.Prompt,
		string(log.ResponsePayload),
		log.Success,
		log.ErrorMessage,
	)
	return err
}

// ListRequests returns logged provider calls, newest first. When
// includePayloads is false the prompt and response columns are left empty to
// keep the listing cheap.
func (r *AIRepository) ListRequests(ctx context.Context, filter AIRequestFilter, limit, offset int, includePayloads bool) ([]AIRequestRecord, error) {
	columns := "id, user_id, request_type, provider, model, success, error_message, created_at"
	if includePayloads {
		columns += ", prompt, response_payload"
	}

	where, args := buildAIRequestFilter(filter)

	query := "SELECT " + columns + " FROM ai_requests" + where +
		" ORDER BY created_at DESC LIMIT $" + strconv.Itoa(len(args)+1) +
		" OFFSET $" + strconv.Itoa(len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]AIRequestRecord, 0)
	for rows.Next() {
		var record AIRequestRecord
		dest := []any{
			&record.ID,
			&record.UserID,
			&record.RequestType,
			&record.Provider,
			&record.Model,
			&record.Success,
			&record.ErrorMessage,
			&record.CreatedAt,
		}
		if includePayloads {
			dest = append(dest, &record.Prompt, &record.ResponsePayload)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	return records, rows.Err()
}

// CountRequests counts logged provider calls matching the filter.
func (r *AIRepository) CountRequests(ctx context.Context, filter AIRequestFilter) (int, error) {
	where, args := buildAIRequestFilter(filter)

	var total int
	err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM ai_requests"+where, args...).Scan(&total)
	return total, err
}

// Usage aggregates platform counters plus a daily request histogram for the
// last `days` days.
func (r *AIRepository) Usage(ctx context.Context, days int) (AIUsage, error) {
	var usage AIUsage

	err := r.db.QueryRow(ctx,
		`SELECT
		   (SELECT COUNT(*) FROM users),
		   (SELECT COUNT(*) FROM trips),
		   (SELECT COUNT(*) FROM ai_requests),
		   (SELECT COUNT(*) FROM ai_requests WHERE NOT success)`,
	).Scan(&usage.Users, &usage.Trips, &usage.TotalRequests, &usage.FailedRequests)
	if err != nil {
		return usage, err
	}

	since := time.Now().AddDate(0, 0, -days)
	rows, err := r.db.Query(ctx,
		`SELECT date_trunc('day', created_at) AS day, COUNT(*)
		 FROM ai_requests
		 WHERE created_at >= $1
		 GROUP BY day
		 ORDER BY day`,
		since,
	)
	if err != nil {
		return usage, err
	}
	defer rows.Close()

	for rows.Next() {
		var day AIUsageDay
		if err := rows.Scan(&day.Day, &day.Count); err != nil {
			return usage, err
		}
		usage.AIRequestsByDay = append(usage.AIRequestsByDay, day)
	}

	return usage, rows.Err()
}

func buildAIRequestFilter(filter AIRequestFilter) (string, []any) {
	clauses := make([]string, 0, 3)
	args := make([]any, 0, 3)

	if filter.UserID != nil {
		args = append(args, *filter.UserID)
		clauses = append(clauses, "user_id = $"+strconv.Itoa(len(args)))
	}
	if filter.Success != nil {
		args = append(args, *filter.Success)
		clauses = append(clauses, "success = $"+strconv.Itoa(len(args)))
	}
	if filter.RequestType != nil {
		args = append(args, *filter.RequestType)
		clauses = append(clauses, "request_type = $"+strconv.Itoa(len(args)))
	}

	if len(clauses) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}
