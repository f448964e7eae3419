package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/studystack/studystack-api/internal/domain"
)

// KnowledgeStore defines the interface for per-(user, card) knowledge
// state persistence. State is keyed independently of decks so it
// survives deck edits that keep the card ID.
type KnowledgeStore interface {
	// Get retrieves the knowledge state for a (user, card) pair.
	// Returns ErrKnowledgeStateNotFound if no state exists yet.
	Get(ctx context.Context, userID string, cardID uuid.UUID) (*domain.KnowledgeState, error)

	// Save upserts the knowledge state for its (user, card) pair.
	Save(ctx context.Context, state *domain.KnowledgeState) error

	// DeleteForCards removes the user's knowledge state for the given
	// cards. Missing rows are not an error.
	DeleteForCards(ctx context.Context, userID string, cardIDs []uuid.UUID) error

	// WithTx returns a KnowledgeStore bound to the given transaction.
	WithTx(tx *sql.Tx) KnowledgeStore
}
