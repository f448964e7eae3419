// Package study runs study sessions over decks. A session binds a deck
// to one of the three modes (learn, review, spaced), serves cards in
// scheduler order, and checkpoints the deck after every answer so an
// interrupted session resumes from its last graded card.
package study

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/studystack/studystack-api/internal/domain"
	"github.com/studystack/studystack-api/internal/domain/scoring"
)

// Answer is one graded response to a card. Learn and review sessions
// require Correct; spaced sessions require Quality in [0,5]. Telemetry
// is optional in every mode and feeds the knowledge tracker when
// present.
type Answer struct {
	Correct    *bool
	Quality    *int
	UserAnswer string
	Telemetry  *scoring.Interaction
}

// Progress is a mode-shaped snapshot of how far a session has come.
// Percent is always populated; the remaining fields depend on the mode.
type Progress struct {
	Mode    domain.StudyMode `json:"mode"`
	Round   int              `json:"round"`
	Percent float64          `json:"percent"`

	// Learn mode: card count per bucket, first bucket to last.
	BucketCounts []int `json:"bucket_counts,omitempty"`
	Mastered     int   `json:"mastered,omitempty"`

	// Review mode pools.
	StillLearning int `json:"still_learning,omitempty"`
	Correct       int `json:"correct,omitempty"`

	Total     int  `json:"total"`
	Remaining int  `json:"remaining"`
	Complete  bool `json:"complete"`
}

// StartResult is the initial state of a freshly started (or advanced)
// session: the ordered queue of cards to present and a progress
// snapshot.
type StartResult struct {
	DeckID   uuid.UUID        `json:"deck_id"`
	Mode     domain.StudyMode `json:"mode"`
	Queue    []domain.Card    `json:"queue"`
	Progress Progress         `json:"progress"`
}

// AnswerResult reports the scheduling outcome of one graded answer.
// FromBucket/ToBucket are set in learn mode, NextDue in spaced mode.
type AnswerResult struct {
	CardID     uuid.UUID        `json:"card_id"`
	Mode       domain.StudyMode `json:"mode"`
	Correct    bool             `json:"correct"`
	FromBucket *int             `json:"from_bucket,omitempty"`
	ToBucket   *int             `json:"to_bucket,omitempty"`
	NextDue    *time.Time       `json:"next_due,omitempty"`
	IQS        *float64         `json:"iqs,omitempty"`
	Mastery    *float64         `json:"mastery,omitempty"`
	Progress   Progress         `json:"progress"`
}

// Service runs study sessions. At most one session is active per deck;
// starting a new one replaces it.
type Service interface {
	// Start begins a session on the deck in the given mode and returns
	// the first round's queue. Review sessions reset their review state;
	// learn sessions resume persisted bucket state. Returns ErrNoCardsDue
	// when a spaced session finds nothing due.
	Start(ctx context.Context, deckID uuid.UUID, mode domain.StudyMode) (*StartResult, error)

	// NextCard returns the next unanswered card in the session queue.
	// Returns ErrSessionComplete when the queue is exhausted.
	NextCard(ctx context.Context, deckID uuid.UUID) (*domain.Card, error)

	// SubmitAnswer grades one card, updates the scheduler state and the
	// knowledge tracker, appends an interaction log, and checkpoints the
	// deck. A storage failure surfaces as an error but never corrupts
	// the in-memory session.
	SubmitAnswer(ctx context.Context, deckID, cardID uuid.UUID, answer Answer) (*AnswerResult, error)

	// AdvanceRound rolls a learn or review session over to its next
	// round and returns the new queue. Returns ErrWrongMode for spaced
	// sessions and ErrSessionComplete when nothing remains to study.
	AdvanceRound(ctx context.Context, deckID uuid.UUID) (*StartResult, error)

	// Progress returns the current progress snapshot for the deck's
	// active session.
	Progress(ctx context.Context, deckID uuid.UUID) (*Progress, error)

	// Abandon discards the deck's active session, if any. Persisted
	// scheduler state is untouched.
	Abandon(deckID uuid.UUID)
}
