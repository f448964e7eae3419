package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// InteractionLog validation errors
var (
	ErrEmptyLogCardID   = fmt.Errorf("%w: interaction log card ID cannot be empty", ErrValidation)
	ErrInvalidLatency   = fmt.Errorf("%w: latency cannot be negative", ErrValidation)
	ErrInvalidAttempts  = fmt.Errorf("%w: attempts must be at least 1", ErrValidation)
	ErrInvalidCorrections = fmt.Errorf("%w: corrections cannot be negative", ErrValidation)
)

// InteractionLog is one write-once telemetry record for a single
// answer. Rows are append-only; only the Synced flag may be flipped
// later, and only by an external sync collaborator.
type InteractionLog struct {
	ID          int64     `json:"id"`
	UserID      string    `json:"user_id"`
	CardID      uuid.UUID `json:"card_id"`
	Timestamp   time.Time `json:"timestamp"`
	WasCorrect  bool      `json:"was_correct"`
	LatencyMS   float64   `json:"latency_ms"`
	Fluency     float64   `json:"fluency"`
	Corrections int       `json:"corrections"`
	Attempts    int       `json:"attempts"`
	UserAnswer  string    `json:"user_answer"`
	Synced      bool      `json:"synced"`
}

// Validate checks the InteractionLog invariants.
func (l *InteractionLog) Validate() error {
	if l.CardID == uuid.Nil {
		return ErrEmptyLogCardID
	}

	if l.LatencyMS < 0 {
		return ErrInvalidLatency
	}

	if l.Attempts < 1 {
		return ErrInvalidAttempts
	}

	if l.Corrections < 0 {
		return ErrInvalidCorrections
	}

	return nil
}
