package scheduler

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/studystack/studystack-api/internal/domain"
)

// ErrCardNotInRound is returned when an answer targets a card that is
// not in the still-learning pool.
var ErrCardNotInRound = errors.New("card not found in still-learning pool")

// Round drives review mode over a deck's ReviewState. A correct answer
// retires the card to the correct pool; an incorrect answer records it
// in the per-round scratch list while the card stays in the
// still-learning pool until the round boundary. The review is complete
// when the still-learning pool is empty.
type Round struct {
	state *domain.ReviewState
}

// NewReviewState builds the initial review state: every card still
// learning, nothing correct, round 1.
func NewReviewState(cards []domain.Card) *domain.ReviewState {
	still := make([]uuid.UUID, len(cards))
	for i := range cards {
		still[i] = cards[i].ID
	}

	return &domain.ReviewState{
		StillLearning:      still,
		Correct:            []uuid.UUID{},
		LastRoundIncorrect: []uuid.UUID{},
		CurrentRound:       1,
	}
}

// NewRound wraps an existing ReviewState.
func NewRound(state *domain.ReviewState) *Round {
	return &Round{state: state}
}

// Answer records the outcome for a card. Correct answers move the card
// from still-learning to correct; incorrect answers append it to the
// round's incorrect list and leave it in the still-learning pool.
func (r *Round) Answer(cardID uuid.UUID, correct bool) error {
	index := -1
	for i, id := range r.state.StillLearning {
		if id == cardID {
			index = i
			break
		}
	}

	if index == -1 {
		return fmt.Errorf("%w: %s", ErrCardNotInRound, cardID)
	}

	if correct {
		r.state.StillLearning = append(
			r.state.StillLearning[:index:index],
			r.state.StillLearning[index+1:]...,
		)
		r.state.Correct = append(r.state.Correct, cardID)
	} else {
		r.state.LastRoundIncorrect = append(r.state.LastRoundIncorrect, cardID)
	}

	return nil
}

// Complete reports whether every card has been answered correctly.
func (r *Round) Complete() bool {
	return len(r.state.StillLearning) == 0
}

// Progress is the fraction of the deck retired to the correct pool,
// in [0,1]. An empty deck reports 0.
func (r *Round) Progress() float64 {
	total := len(r.state.StillLearning) + len(r.state.Correct)
	if total == 0 {
		return 0
	}
	return float64(len(r.state.Correct)) / float64(total)
}

// AdvanceRound rolls over to the next round. Cards missed during the
// round re-enter only here: the round counter increments, the scratch
// list clears, and the remaining still-learning pool becomes the next
// round's working set, which is returned.
func (r *Round) AdvanceRound() []uuid.UUID {
	r.state.CurrentRound++
	r.state.LastRoundIncorrect = []uuid.UUID{}

	next := make([]uuid.UUID, len(r.state.StillLearning))
	copy(next, r.state.StillLearning)
	return next
}

// State returns the underlying ReviewState for persistence.
func (r *Round) State() *domain.ReviewState {
	return r.state
}
