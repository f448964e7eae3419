package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/studystack/studystack-api/internal/domain"
	"github.com/studystack/studystack-api/internal/store"
)

// PostgresInteractionLogStore implements the store.InteractionLogStore
// interface. The table is append-only: no update or delete paths exist
// here, matching the write-once contract of the records.
type PostgresInteractionLogStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresInteractionLogStore creates a new PostgreSQL
// implementation of the InteractionLogStore interface. If logger is
// nil, the default logger is used.
func NewPostgresInteractionLogStore(
	db store.DBTX,
	logger *slog.Logger,
) *PostgresInteractionLogStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresInteractionLogStore{
		db:     db,
		logger: logger.With(slog.String("component", "interaction_log_store")),
	}
}

// Ensure PostgresInteractionLogStore implements store.InteractionLogStore
var _ store.InteractionLogStore = (*PostgresInteractionLogStore)(nil)

// Append implements store.InteractionLogStore.Append.
func (s *PostgresInteractionLogStore) Append(ctx context.Context, log *domain.InteractionLog) error {
	if err := log.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO interaction_logs
			(user_id, card_id, created_at, was_correct, latency_ms, fluency, corrections, attempts, user_answer, synced)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`

	err := s.db.QueryRowContext(ctx, query,
		log.UserID,
		log.CardID,
		log.Timestamp,
		log.WasCorrect,
		log.LatencyMS,
		log.Fluency,
		log.Corrections,
		log.Attempts,
		log.UserAnswer,
		log.Synced,
	).Scan(&log.ID)
	if err != nil {
		s.logger.Error("failed to append interaction log",
			slog.String("error", err.Error()),
			slog.String("card_id", log.CardID.String()))
		return MapError(err)
	}

	return nil
}

// ListByCard implements store.InteractionLogStore.ListByCard.
func (s *PostgresInteractionLogStore) ListByCard(
	ctx context.Context,
	cardID uuid.UUID,
) ([]*domain.InteractionLog, error) {
	query := `
		SELECT id, user_id, card_id, created_at, was_correct, latency_ms, fluency, corrections, attempts, user_answer, synced
		FROM interaction_logs
		WHERE card_id = $1
		ORDER BY created_at
	`

	rows, err := s.db.QueryContext(ctx, query, cardID)
	if err != nil {
		s.logger.Error("failed to list interaction logs",
			slog.String("error", err.Error()),
			slog.String("card_id", cardID.String()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var logs []*domain.InteractionLog
	for rows.Next() {
		var log domain.InteractionLog
		err := rows.Scan(
			&log.ID,
			&log.UserID,
			&log.CardID,
			&log.Timestamp,
			&log.WasCorrect,
			&log.LatencyMS,
			&log.Fluency,
			&log.Corrections,
			&log.Attempts,
			&log.UserAnswer,
			&log.Synced,
		)
		if err != nil {
			return nil, MapError(err)
		}
		logs = append(logs, &log)
	}

	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return logs, nil
}
