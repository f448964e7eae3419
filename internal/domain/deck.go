package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Deck-specific validation errors
var (
	// ErrDeckIDEmpty is returned when a deck ID is empty or nil.
	ErrDeckIDEmpty = fmt.Errorf("%w: deck ID cannot be empty", ErrValidation)

	// ErrDeckNameEmpty is returned when a deck has no name.
	ErrDeckNameEmpty = fmt.Errorf("%w: deck name cannot be empty", ErrValidation)
)

// Deck owns its cards and their persisted scheduling state. The whole
// deck is saved as one record after every card move, so the field
// layout here is the durable compatibility contract for anything
// reading the store directly.
type Deck struct {
	ID          uuid.UUID    `json:"id"`
	Name        string       `json:"name"`
	Settings    DeckSettings `json:"settings"`
	Cards       []Card       `json:"cards"`
	LearnState  *LearnState  `json:"learn_state,omitempty"`
	ReviewState *ReviewState `json:"review_state,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// NewDeck creates a deck with default settings and the given cards.
func NewDeck(name string, cards []Card) (*Deck, error) {
	now := time.Now().UTC()
	deck := &Deck{
		ID:        uuid.New(),
		Name:      name,
		Settings:  DefaultDeckSettings(),
		Cards:     cards,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := deck.Validate(); err != nil {
		return nil, err
	}

	return deck, nil
}

// Validate checks the deck and all of its cards.
func (d *Deck) Validate() error {
	if d.ID == uuid.Nil {
		return ErrDeckIDEmpty
	}

	if d.Name == "" {
		return ErrDeckNameEmpty
	}

	for i := range d.Cards {
		if err := d.Cards[i].Validate(); err != nil {
			return fmt.Errorf("card %d: %w", i, err)
		}
	}

	return nil
}

// CardByID returns a pointer into the deck's card slice, or nil if the
// card is not part of the deck.
func (d *Deck) CardByID(id uuid.UUID) *Card {
	for i := range d.Cards {
		if d.Cards[i].ID == id {
			return &d.Cards[i]
		}
	}
	return nil
}

// CardIDs returns the IDs of all cards in deck order.
func (d *Deck) CardIDs() []uuid.UUID {
	ids := make([]uuid.UUID, len(d.Cards))
	for i := range d.Cards {
		ids[i] = d.Cards[i].ID
	}
	return ids
}

// DueCards returns the cards due for spaced review at the given time:
// cards whose due date has arrived plus cards never reviewed.
func (d *Deck) DueCards(now time.Time) []Card {
	var due []Card
	for i := range d.Cards {
		if d.Cards[i].Due(now) {
			due = append(due, d.Cards[i])
		}
	}
	return due
}

// Touch updates the deck's UpdatedAt timestamp.
func (d *Deck) Touch(now time.Time) {
	d.UpdatedAt = now
}
