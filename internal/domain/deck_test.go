package domain_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studystack/studystack-api/internal/domain"
)

func newTestDeck(t *testing.T, n int) *domain.Deck {
	t.Helper()

	cards := make([]domain.Card, 0, n)
	for i := 0; i < n; i++ {
		card, err := domain.NewCard("q", "a")
		require.NoError(t, err)
		cards = append(cards, *card)
	}

	deck, err := domain.NewDeck("Test Deck", cards)
	require.NoError(t, err)
	return deck
}

func TestNewDeck(t *testing.T) {
	t.Parallel()

	deck := newTestDeck(t, 3)
	assert.NotEqual(t, uuid.Nil, deck.ID)
	assert.Equal(t, domain.DefaultDeckSettings(), deck.Settings)
	assert.Len(t, deck.Cards, 3)
	assert.Nil(t, deck.LearnState)
	assert.Nil(t, deck.ReviewState)
}

func TestNewDeckValidation(t *testing.T) {
	t.Parallel()

	_, err := domain.NewDeck("", nil)
	assert.ErrorIs(t, err, domain.ErrDeckNameEmpty)
}

func TestCardByID(t *testing.T) {
	t.Parallel()

	deck := newTestDeck(t, 3)

	card := deck.CardByID(deck.Cards[1].ID)
	require.NotNil(t, card)
	assert.Equal(t, deck.Cards[1].ID, card.ID)

	// Returned pointer aliases the deck's slice so mutations stick.
	card.IsNew = false
	assert.False(t, deck.Cards[1].IsNew)

	assert.Nil(t, deck.CardByID(uuid.New()))
}

func TestDueCards(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	deck := newTestDeck(t, 3)

	// All cards are new, so all are due.
	assert.Len(t, deck.DueCards(now), 3)

	// Schedule one into the future.
	deck.Cards[0].SM2Data = &domain.SM2Data{Interval: 5, Factor: 2.5, DueDate: now.AddDate(0, 0, 5)}
	assert.Len(t, deck.DueCards(now), 2)

	// It becomes due again once its date arrives.
	assert.Len(t, deck.DueCards(now.AddDate(0, 0, 5)), 3)
}
