package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/studystack/studystack-api/internal/domain"
)

// DeckStore defines the interface for deck persistence. A deck row
// carries the full document the study engine checkpoints after every
// card move: cards (with embedded SM2 data), settings, learn state,
// and review state.
type DeckStore interface {
	// Save upserts the complete deck record. The session controller
	// calls this after every card move (write-through, no batching),
	// so implementations must make it a single atomic statement.
	Save(ctx context.Context, deck *domain.Deck) error

	// GetByID retrieves a deck by its unique ID.
	// Returns ErrDeckNotFound if the deck does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Deck, error)

	// List retrieves all decks, ordered by creation time.
	List(ctx context.Context) ([]*domain.Deck, error)

	// Delete removes a deck by its ID.
	// Returns ErrDeckNotFound if the deck does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a DeckStore bound to the given transaction.
	WithTx(tx *sql.Tx) DeckStore

	// DB returns the underlying database connection for starting
	// transactions, or nil when the store is transaction-scoped.
	DB() *sql.DB
}
