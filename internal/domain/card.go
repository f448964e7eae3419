package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Card-specific validation errors
var (
	// ErrCardIDEmpty is returned when a card ID is empty or nil.
	ErrCardIDEmpty = fmt.Errorf("%w: card ID cannot be empty", ErrValidation)

	// ErrCardQuestionEmpty is returned when a card has no question text.
	ErrCardQuestionEmpty = fmt.Errorf("%w: card question cannot be empty", ErrValidation)

	// ErrCardAnswerEmpty is returned when a card has no answer text.
	ErrCardAnswerEmpty = fmt.Errorf("%w: card answer cannot be empty", ErrValidation)
)

// SM2Data validation errors
var (
	ErrInvalidInterval = errors.New("interval must be greater than or equal to 0")
	ErrInvalidFactor   = errors.New("factor must be at least 1.3")
)

// MinFactor is the floor for the SM2 easiness factor. The classic
// algorithm never lets the factor drop below this value.
const MinFactor = 1.3

// DefaultFactor is the easiness factor assigned to a card that has
// never been reviewed in spaced mode.
const DefaultFactor = 2.5

// Card is a single flashcard owned by exactly one deck. SM2Data stays
// nil until the card's first spaced-mode review; IsNew flips to false
// the first time the card is answered in any mode.
type Card struct {
	ID       uuid.UUID `json:"id"`
	Question string    `json:"question"`
	Answer   string    `json:"answer"`
	IsNew    bool      `json:"is_new"`
	SM2Data  *SM2Data  `json:"sm2_data,omitempty"`
}

// SM2Data holds the per-card state of the SM2 spaced repetition
// algorithm. DueDate never moves backwards; Repetition resets to zero
// on a failed review.
type SM2Data struct {
	Interval   int       `json:"interval"`   // days until next review
	Factor     float64   `json:"factor"`     // easiness factor, >= 1.3
	Repetition int       `json:"repetition"` // consecutive successful reviews
	DueDate    time.Time `json:"due_date"`
}

// NewCard creates a card with a fresh ID, marked as new.
// Returns an error if validation fails.
func NewCard(question, answer string) (*Card, error) {
	card := &Card{
		ID:       uuid.New(),
		Question: question,
		Answer:   answer,
		IsNew:    true,
	}

	if err := card.Validate(); err != nil {
		return nil, err
	}

	return card, nil
}

// Validate checks if the Card has valid data.
func (c *Card) Validate() error {
	if c.ID == uuid.Nil {
		return ErrCardIDEmpty
	}

	if c.Question == "" {
		return ErrCardQuestionEmpty
	}

	if c.Answer == "" {
		return ErrCardAnswerEmpty
	}

	if c.SM2Data != nil {
		if err := c.SM2Data.Validate(); err != nil {
			return err
		}
	}

	return nil
}

// NewSM2Data returns the initial SM2 state for a card that has never
// been reviewed: zero interval, default factor, due immediately.
func NewSM2Data(now time.Time) *SM2Data {
	return &SM2Data{
		Interval:   0,
		Factor:     DefaultFactor,
		Repetition: 0,
		DueDate:    now,
	}
}

// Validate checks the SM2Data invariants.
func (d *SM2Data) Validate() error {
	if d.Interval < 0 {
		return ErrInvalidInterval
	}

	if d.Factor < MinFactor {
		return ErrInvalidFactor
	}

	return nil
}

// Due reports whether the card is due at the given time. A card with no
// SM2 data has never been reviewed and is always due.
func (c *Card) Due(now time.Time) bool {
	if c.SM2Data == nil {
		return true
	}
	return !c.SM2Data.DueDate.After(now)
}
