// Package service wires domain operations to the stores. Services own
// validation and orchestration; the stores stay dumb.
package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/studystack/studystack-api/internal/domain"
	"github.com/studystack/studystack-api/internal/platform/logger"
	"github.com/studystack/studystack-api/internal/store"
)

// CardInput is the caller-supplied content for a new card.
type CardInput struct {
	Question string `json:"question" validate:"required"`
	Answer   string `json:"answer" validate:"required"`
}

// DeckService manages deck lifecycle and card membership.
type DeckService interface {
	// Create builds a deck with default settings and the given cards.
	Create(ctx context.Context, name string, cards []CardInput) (*domain.Deck, error)

	// Get returns the deck, or store.ErrDeckNotFound.
	Get(ctx context.Context, id uuid.UUID) (*domain.Deck, error)

	// List returns all decks in creation order.
	List(ctx context.Context) ([]*domain.Deck, error)

	// Rename changes the deck's display name.
	Rename(ctx context.Context, id uuid.UUID, name string) (*domain.Deck, error)

	// UpdateSettings replaces the deck's study options.
	UpdateSettings(ctx context.Context, id uuid.UUID, settings domain.DeckSettings) (*domain.Deck, error)

	// AddCards appends new cards to the deck. Cards added while learn
	// state exists join the first bucket so they enter the rotation.
	AddCards(ctx context.Context, id uuid.UUID, cards []CardInput) (*domain.Deck, error)

	// RemoveCard deletes a card and scrubs it from any persisted
	// scheduler state so stale IDs never resurface in a session.
	RemoveCard(ctx context.Context, deckID, cardID uuid.UUID) (*domain.Deck, error)

	// Delete removes the deck entirely.
	Delete(ctx context.Context, id uuid.UUID) error
}

// deckServiceImpl implements the DeckService interface.
type deckServiceImpl struct {
	decks     store.DeckStore
	knowledge store.KnowledgeStore
	userID    string
	logger    *slog.Logger
	timeFunc  func() time.Time
}

// NewDeckService creates a DeckService backed by the given stores. The
// knowledge store is needed so deck deletion can clean up per-card
// knowledge state in the same transaction.
func NewDeckService(
	decks store.DeckStore,
	knowledge store.KnowledgeStore,
	userID string,
	log *slog.Logger,
) DeckService {
	if decks == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("deck store cannot be nil")
	}
	if knowledge == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("knowledge store cannot be nil")
	}

	if userID == "" {
		userID = domain.DefaultUserID
	}
	if log == nil {
		log = slog.Default()
	}

	return &deckServiceImpl{
		decks:     decks,
		knowledge: knowledge,
		userID:    userID,
		logger:    log.With(slog.String("component", "deck_service")),
		timeFunc:  func() time.Time { return time.Now().UTC() },
	}
}

// Ensure deckServiceImpl implements DeckService
var _ DeckService = (*deckServiceImpl)(nil)

// Create implements DeckService.Create.
func (s *deckServiceImpl) Create(
	ctx context.Context,
	name string,
	cards []CardInput,
) (*domain.Deck, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	domainCards, err := buildCards(cards)
	if err != nil {
		return nil, err
	}

	deck, err := domain.NewDeck(name, domainCards)
	if err != nil {
		return nil, err
	}

	if err := s.decks.Save(ctx, deck); err != nil {
		return nil, fmt.Errorf("failed to save deck: %w", err)
	}

	log.Info("deck created",
		slog.String("deck_id", deck.ID.String()),
		slog.Int("cards", len(deck.Cards)))

	return deck, nil
}

// Get implements DeckService.Get.
func (s *deckServiceImpl) Get(ctx context.Context, id uuid.UUID) (*domain.Deck, error) {
	return s.decks.GetByID(ctx, id)
}

// List implements DeckService.List.
func (s *deckServiceImpl) List(ctx context.Context) ([]*domain.Deck, error) {
	return s.decks.List(ctx)
}

// Rename implements DeckService.Rename.
func (s *deckServiceImpl) Rename(
	ctx context.Context,
	id uuid.UUID,
	name string,
) (*domain.Deck, error) {
	if name == "" {
		return nil, domain.ErrDeckNameEmpty
	}

	return s.mutate(ctx, id, func(deck *domain.Deck) error {
		deck.Name = name
		return nil
	})
}

// UpdateSettings implements DeckService.UpdateSettings.
func (s *deckServiceImpl) UpdateSettings(
	ctx context.Context,
	id uuid.UUID,
	settings domain.DeckSettings,
) (*domain.Deck, error) {
	if err := validateSettings(settings); err != nil {
		return nil, err
	}

	return s.mutate(ctx, id, func(deck *domain.Deck) error {
		deck.Settings = settings
		return nil
	})
}

// AddCards implements DeckService.AddCards.
func (s *deckServiceImpl) AddCards(
	ctx context.Context,
	id uuid.UUID,
	cards []CardInput,
) (*domain.Deck, error) {
	domainCards, err := buildCards(cards)
	if err != nil {
		return nil, err
	}

	return s.mutate(ctx, id, func(deck *domain.Deck) error {
		deck.Cards = append(deck.Cards, domainCards...)
		if deck.LearnState != nil && len(deck.LearnState.Buckets) > 0 {
			for i := range domainCards {
				deck.LearnState.Buckets[0] = append(deck.LearnState.Buckets[0], domainCards[i].ID)
			}
		}
		return nil
	})
}

// RemoveCard implements DeckService.RemoveCard.
func (s *deckServiceImpl) RemoveCard(
	ctx context.Context,
	deckID, cardID uuid.UUID,
) (*domain.Deck, error) {
	return s.mutate(ctx, deckID, func(deck *domain.Deck) error {
		index := -1
		for i := range deck.Cards {
			if deck.Cards[i].ID == cardID {
				index = i
				break
			}
		}
		if index == -1 {
			return fmt.Errorf("%w: card %s", store.ErrNotFound, cardID)
		}

		deck.Cards = append(deck.Cards[:index:index], deck.Cards[index+1:]...)

		if deck.LearnState != nil {
			for i, bucket := range deck.LearnState.Buckets {
				deck.LearnState.Buckets[i] = removeID(bucket, cardID)
			}
		}
		if deck.ReviewState != nil {
			deck.ReviewState.StillLearning = removeID(deck.ReviewState.StillLearning, cardID)
			deck.ReviewState.Correct = removeID(deck.ReviewState.Correct, cardID)
			deck.ReviewState.LastRoundIncorrect = removeID(deck.ReviewState.LastRoundIncorrect, cardID)
		}

		return nil
	})
}

// Delete implements DeckService.Delete. The deck row and its cards'
// knowledge state go in one transaction so a partial failure never
// leaves orphaned state behind.
func (s *deckServiceImpl) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	deck, err := s.decks.GetByID(ctx, id)
	if err != nil {
		return err
	}

	cardIDs := make([]uuid.UUID, len(deck.Cards))
	for i := range deck.Cards {
		cardIDs[i] = deck.Cards[i].ID
	}

	err = store.RunInTransaction(ctx, s.decks.DB(), func(ctx context.Context, tx *sql.Tx) error {
		if err := s.decks.WithTx(tx).Delete(ctx, id); err != nil {
			return err
		}
		return s.knowledge.WithTx(tx).DeleteForCards(ctx, s.userID, cardIDs)
	})
	if err != nil {
		return err
	}

	log.Info("deck deleted",
		slog.String("deck_id", id.String()),
		slog.Int("cards", len(cardIDs)))
	return nil
}

// mutate loads, modifies, and saves a deck in one place so every write
// path touches UpdatedAt the same way.
func (s *deckServiceImpl) mutate(
	ctx context.Context,
	id uuid.UUID,
	fn func(deck *domain.Deck) error,
) (*domain.Deck, error) {
	deck, err := s.decks.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get deck: %w", err)
	}

	if err := fn(deck); err != nil {
		return nil, err
	}

	deck.Touch(s.timeFunc())
	if err := s.decks.Save(ctx, deck); err != nil {
		return nil, fmt.Errorf("failed to save deck: %w", err)
	}

	return deck, nil
}

func buildCards(inputs []CardInput) ([]domain.Card, error) {
	cards := make([]domain.Card, 0, len(inputs))
	for i, in := range inputs {
		card, err := domain.NewCard(in.Question, in.Answer)
		if err != nil {
			return nil, fmt.Errorf("card %d: %w", i, err)
		}
		cards = append(cards, *card)
	}
	return cards, nil
}

func validateSettings(settings domain.DeckSettings) error {
	if settings.ReviewOrder != "" &&
		settings.ReviewOrder != domain.ReviewOrderRandom &&
		settings.ReviewOrder != domain.ReviewOrderOriginal {
		return fmt.Errorf("%w: unknown review order %q", domain.ErrValidation, settings.ReviewOrder)
	}
	if settings.CardsPerRound < 0 {
		return fmt.Errorf("%w: cards per round cannot be negative", domain.ErrValidation)
	}
	if settings.MaxBuckets != 0 && settings.MaxBuckets < 2 {
		return fmt.Errorf("%w: at least two buckets are required", domain.ErrValidation)
	}
	return nil
}

func removeID(ids []uuid.UUID, target uuid.UUID) []uuid.UUID {
	out := ids[:0]
	for _, id := range ids {
		if id != target {
			out = append(out, id)
		}
	}
	return out
}
