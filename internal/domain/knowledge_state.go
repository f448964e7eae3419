package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// DefaultUserID keys all knowledge state and interaction logs for this
// single-user tool. Kept as a column so the data survives a future
// multi-user migration unchanged.
const DefaultUserID = "default_user"

// KnowledgeState validation errors
var (
	ErrEmptyStateUserID  = fmt.Errorf("%w: knowledge state user ID cannot be empty", ErrValidation)
	ErrEmptyStateCardID  = fmt.Errorf("%w: knowledge state card ID cannot be empty", ErrValidation)
	ErrInvalidMastery    = fmt.Errorf("%w: mastery score must be within [0,1]", ErrValidation)
	ErrInvalidStability  = fmt.Errorf("%w: stability must be positive", ErrValidation)
)

// KnowledgeState is the per-(user, card) learning estimate. Mastery is
// a bounded strength score; Stability is the half-life in days of the
// exponential recall-decay model. One row per pair, created lazily on
// first review, never deleted by the engine. The state is independent
// of deck lifetime: it survives deck edits that keep the card ID.
type KnowledgeState struct {
	UserID       string    `json:"user_id"`
	CardID       uuid.UUID `json:"card_id"`
	MasteryScore float64   `json:"mastery_score"` // in [0,1]
	Stability    float64   `json:"stability"`     // half-life in days, > 0
	LastReviewed time.Time `json:"last_reviewed"`
}

// NewKnowledgeState returns the default state for a card's first
// review: zero mastery, one-day half-life.
func NewKnowledgeState(userID string, cardID uuid.UUID, now time.Time) *KnowledgeState {
	return &KnowledgeState{
		UserID:       userID,
		CardID:       cardID,
		MasteryScore: 0.0,
		Stability:    1.0,
		LastReviewed: now,
	}
}

// Validate checks the KnowledgeState invariants.
func (s *KnowledgeState) Validate() error {
	if s.UserID == "" {
		return ErrEmptyStateUserID
	}

	if s.CardID == uuid.Nil {
		return ErrEmptyStateCardID
	}

	if s.MasteryScore < 0 || s.MasteryScore > 1 {
		return ErrInvalidMastery
	}

	if s.Stability <= 0 {
		return ErrInvalidStability
	}

	return nil
}
