package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/studystack/studystack-api/internal/domain"
	"github.com/studystack/studystack-api/internal/store"
)

// PostgresKnowledgeStore implements the store.KnowledgeStore interface
// using a PostgreSQL database as the storage backend. Rows are keyed by
// the composite (user_id, card_id) primary key.
type PostgresKnowledgeStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresKnowledgeStore creates a new PostgreSQL implementation of
// the KnowledgeStore interface. If logger is nil, the default logger is
// used.
func NewPostgresKnowledgeStore(db store.DBTX, logger *slog.Logger) *PostgresKnowledgeStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresKnowledgeStore{
		db:     db,
		logger: logger.With(slog.String("component", "knowledge_store")),
	}
}

// Ensure PostgresKnowledgeStore implements store.KnowledgeStore
var _ store.KnowledgeStore = (*PostgresKnowledgeStore)(nil)

// Get implements store.KnowledgeStore.Get.
// Returns store.ErrKnowledgeStateNotFound if no state exists for the
// (user, card) pair.
func (s *PostgresKnowledgeStore) Get(
	ctx context.Context,
	userID string,
	cardID uuid.UUID,
) (*domain.KnowledgeState, error) {
	query := `
		SELECT user_id, card_id, mastery_score, stability, last_reviewed
		FROM user_knowledge_state
		WHERE user_id = $1 AND card_id = $2
	`

	var state domain.KnowledgeState
	err := s.db.QueryRowContext(ctx, query, userID, cardID).Scan(
		&state.UserID,
		&state.CardID,
		&state.MasteryScore,
		&state.Stability,
		&state.LastReviewed,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrKnowledgeStateNotFound
		}
		s.logger.Error("failed to get knowledge state",
			slog.String("error", err.Error()),
			slog.String("user_id", userID),
			slog.String("card_id", cardID.String()))
		return nil, MapError(err)
	}

	return &state, nil
}

// Save implements store.KnowledgeStore.Save as an upsert keyed by the
// composite primary key.
func (s *PostgresKnowledgeStore) Save(ctx context.Context, state *domain.KnowledgeState) error {
	if err := state.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO user_knowledge_state (user_id, card_id, mastery_score, stability, last_reviewed)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, card_id) DO UPDATE SET
			mastery_score = EXCLUDED.mastery_score,
			stability = EXCLUDED.stability,
			last_reviewed = EXCLUDED.last_reviewed
	`

	_, err := s.db.ExecContext(ctx, query,
		state.UserID,
		state.CardID,
		state.MasteryScore,
		state.Stability,
		state.LastReviewed,
	)
	if err != nil {
		s.logger.Error("failed to save knowledge state",
			slog.String("error", err.Error()),
			slog.String("user_id", state.UserID),
			slog.String("card_id", state.CardID.String()))
		return MapError(err)
	}

	return nil
}

// DeleteForCards implements store.KnowledgeStore.DeleteForCards.
func (s *PostgresKnowledgeStore) DeleteForCards(
	ctx context.Context,
	userID string,
	cardIDs []uuid.UUID,
) error {
	if len(cardIDs) == 0 {
		return nil
	}

	ids := make([]string, len(cardIDs))
	for i, id := range cardIDs {
		ids[i] = id.String()
	}

	query := `
		DELETE FROM user_knowledge_state
		WHERE user_id = $1 AND card_id = ANY($2::uuid[])
	`

	_, err := s.db.ExecContext(ctx, query, userID, ids)
	if err != nil {
		s.logger.Error("failed to delete knowledge state",
			slog.String("error", err.Error()),
			slog.String("user_id", userID),
			slog.Int("cards", len(cardIDs)))
		return MapError(err)
	}

	return nil
}

// WithTx implements store.KnowledgeStore.WithTx.
func (s *PostgresKnowledgeStore) WithTx(tx *sql.Tx) store.KnowledgeStore {
	return &PostgresKnowledgeStore{
		db:     tx,
		logger: s.logger,
	}
}
