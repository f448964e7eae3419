package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/studystack/studystack-api/internal/domain"
	"github.com/studystack/studystack-api/internal/store"
)

// PostgresDeckStore implements the store.DeckStore interface using a
// PostgreSQL database as the storage backend.
type PostgresDeckStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresDeckStore creates a new PostgreSQL implementation of the
// DeckStore interface. If logger is nil, the default logger is used.
func NewPostgresDeckStore(db store.DBTX, logger *slog.Logger) *PostgresDeckStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresDeckStore{
		db:     db,
		logger: logger.With(slog.String("component", "deck_store")),
	}
}

// Ensure PostgresDeckStore implements store.DeckStore
var _ store.DeckStore = (*PostgresDeckStore)(nil)

// deckRow is the JSONB column layout of a deck record.
type deckRow struct {
	cards       []byte
	settings    []byte
	learnState  []byte
	reviewState []byte
}

// Save implements store.DeckStore.Save as a single upsert so every
// card-move checkpoint is atomic.
func (s *PostgresDeckStore) Save(ctx context.Context, deck *domain.Deck) error {
	if err := deck.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	row, err := marshalDeck(deck)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO decks (id, name, settings, cards, learn_state, review_state, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			settings = EXCLUDED.settings,
			cards = EXCLUDED.cards,
			learn_state = EXCLUDED.learn_state,
			review_state = EXCLUDED.review_state,
			updated_at = EXCLUDED.updated_at
	`

	_, err = s.db.ExecContext(ctx, query,
		deck.ID,
		deck.Name,
		row.settings,
		row.cards,
		row.learnState,
		row.reviewState,
		deck.CreatedAt,
		deck.UpdatedAt,
	)
	if err != nil {
		s.logger.Error("failed to save deck",
			slog.String("error", err.Error()),
			slog.String("deck_id", deck.ID.String()))
		return MapError(err)
	}

	return nil
}

// GetByID implements store.DeckStore.GetByID.
// Returns store.ErrDeckNotFound if the deck does not exist.
func (s *PostgresDeckStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Deck, error) {
	query := `
		SELECT id, name, settings, cards, learn_state, review_state, created_at, updated_at
		FROM decks
		WHERE id = $1
	`

	deck, err := scanDeck(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrDeckNotFound
		}
		s.logger.Error("failed to get deck",
			slog.String("error", err.Error()),
			slog.String("deck_id", id.String()))
		return nil, MapError(err)
	}

	return deck, nil
}

// List implements store.DeckStore.List.
func (s *PostgresDeckStore) List(ctx context.Context) ([]*domain.Deck, error) {
	query := `
		SELECT id, name, settings, cards, learn_state, review_state, created_at, updated_at
		FROM decks
		ORDER BY created_at
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		s.logger.Error("failed to list decks", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var decks []*domain.Deck
	for rows.Next() {
		deck, err := scanDeck(rows)
		if err != nil {
			return nil, MapError(err)
		}
		decks = append(decks, deck)
	}

	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return decks, nil
}

// Delete implements store.DeckStore.Delete.
// Returns store.ErrDeckNotFound if the deck does not exist.
func (s *PostgresDeckStore) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM decks WHERE id = $1`, id)
	if err != nil {
		s.logger.Error("failed to delete deck",
			slog.String("error", err.Error()),
			slog.String("deck_id", id.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, "deck"); err != nil {
		return store.ErrDeckNotFound
	}

	return nil
}

// WithTx implements store.DeckStore.WithTx.
func (s *PostgresDeckStore) WithTx(tx *sql.Tx) store.DeckStore {
	return &PostgresDeckStore{
		db:     tx,
		logger: s.logger,
	}
}

// DB implements store.DeckStore.DB.
func (s *PostgresDeckStore) DB() *sql.DB {
	if db, ok := s.db.(*sql.DB); ok {
		return db
	}
	return nil
}

// scanner covers *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func marshalDeck(deck *domain.Deck) (*deckRow, error) {
	cards, err := json.Marshal(deck.Cards)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal cards: %w", err)
	}

	settings, err := json.Marshal(deck.Settings)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal settings: %w", err)
	}

	row := &deckRow{cards: cards, settings: settings}

	if deck.LearnState != nil {
		row.learnState, err = json.Marshal(deck.LearnState)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal learn state: %w", err)
		}
	}

	if deck.ReviewState != nil {
		row.reviewState, err = json.Marshal(deck.ReviewState)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal review state: %w", err)
		}
	}

	return row, nil
}

func scanDeck(sc scanner) (*domain.Deck, error) {
	var (
		deck        domain.Deck
		cards       []byte
		settings    []byte
		learnState  []byte
		reviewState []byte
	)

	err := sc.Scan(
		&deck.ID,
		&deck.Name,
		&settings,
		&cards,
		&learnState,
		&reviewState,
		&deck.CreatedAt,
		&deck.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(settings, &deck.Settings); err != nil {
		return nil, fmt.Errorf("failed to unmarshal settings: %w", err)
	}

	if err := json.Unmarshal(cards, &deck.Cards); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cards: %w", err)
	}

	if len(learnState) > 0 {
		deck.LearnState = &domain.LearnState{}
		if err := json.Unmarshal(learnState, deck.LearnState); err != nil {
			return nil, fmt.Errorf("failed to unmarshal learn state: %w", err)
		}
	}

	if len(reviewState) > 0 {
		deck.ReviewState = &domain.ReviewState{}
		if err := json.Unmarshal(reviewState, deck.ReviewState); err != nil {
			return nil, fmt.Errorf("failed to unmarshal review state: %w", err)
		}
	}

	return &deck, nil
}
