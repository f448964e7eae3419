package scheduler

import (
	"errors"
	"math"
	"testing"

	"github.com/google/uuid"
)

func TestNewReviewState(t *testing.T) {
	t.Parallel()

	cards := makeCards(4)
	state := NewReviewState(cards)

	if len(state.StillLearning) != 4 {
		t.Errorf("still-learning size = %d, want 4", len(state.StillLearning))
	}
	if len(state.Correct) != 0 || len(state.LastRoundIncorrect) != 0 {
		t.Errorf("fresh state has non-empty pools: %+v", state)
	}
	if state.CurrentRound != 1 {
		t.Errorf("initial round = %d, want 1", state.CurrentRound)
	}
}

func TestAnswerCorrectRetiresCard(t *testing.T) {
	t.Parallel()

	cards := makeCards(3)
	state := NewReviewState(cards)
	round := NewRound(state)

	if err := round.Answer(cards[1].ID, true); err != nil {
		t.Fatalf("Answer() error = %v", err)
	}

	if len(state.StillLearning) != 2 {
		t.Errorf("still-learning size = %d, want 2", len(state.StillLearning))
	}
	if len(state.Correct) != 1 || state.Correct[0] != cards[1].ID {
		t.Errorf("correct pool = %v, want [%s]", state.Correct, cards[1].ID)
	}
}

func TestAnswerIncorrectKeepsCardInPool(t *testing.T) {
	t.Parallel()

	cards := makeCards(2)
	state := NewReviewState(cards)
	round := NewRound(state)

	if err := round.Answer(cards[0].ID, false); err != nil {
		t.Fatalf("Answer() error = %v", err)
	}

	if len(state.StillLearning) != 2 {
		t.Errorf("still-learning size = %d, want 2 (missed card stays)", len(state.StillLearning))
	}
	if len(state.LastRoundIncorrect) != 1 || state.LastRoundIncorrect[0] != cards[0].ID {
		t.Errorf("incorrect scratch = %v, want [%s]", state.LastRoundIncorrect, cards[0].ID)
	}
}

func TestAnswerUnknownCard(t *testing.T) {
	t.Parallel()

	round := NewRound(NewReviewState(makeCards(2)))
	if err := round.Answer(uuid.New(), true); !errors.Is(err, ErrCardNotInRound) {
		t.Errorf("Answer(unknown) error = %v, want ErrCardNotInRound", err)
	}
}

func TestAdvanceRound(t *testing.T) {
	t.Parallel()

	cards := makeCards(3)
	state := NewReviewState(cards)
	round := NewRound(state)

	// One correct, one missed.
	if err := round.Answer(cards[0].ID, true); err != nil {
		t.Fatalf("Answer() error = %v", err)
	}
	if err := round.Answer(cards[1].ID, false); err != nil {
		t.Fatalf("Answer() error = %v", err)
	}

	next := round.AdvanceRound()

	if state.CurrentRound != 2 {
		t.Errorf("round = %d after advance, want 2", state.CurrentRound)
	}
	if len(state.LastRoundIncorrect) != 0 {
		t.Errorf("scratch list not cleared: %v", state.LastRoundIncorrect)
	}
	// The missed card and the unanswered card carry over.
	if len(next) != 2 {
		t.Fatalf("next working set size = %d, want 2", len(next))
	}
	for _, id := range next {
		if id == cards[0].ID {
			t.Errorf("retired card %s re-entered the working set", id)
		}
	}
}

func TestCompleteAndProgress(t *testing.T) {
	t.Parallel()

	cards := makeCards(4)
	state := NewReviewState(cards)
	round := NewRound(state)

	if round.Complete() {
		t.Error("fresh round reports complete")
	}
	if got := round.Progress(); got != 0 {
		t.Errorf("initial progress = %v, want 0", got)
	}

	for i, card := range cards {
		if err := round.Answer(card.ID, true); err != nil {
			t.Fatalf("Answer() error = %v", err)
		}
		want := float64(i+1) / 4
		if got := round.Progress(); math.Abs(got-want) > 1e-9 {
			t.Errorf("progress after %d answers = %v, want %v", i+1, got, want)
		}
	}

	if !round.Complete() {
		t.Error("round not complete after all cards answered correctly")
	}
}

func TestProgressEmptyReview(t *testing.T) {
	t.Parallel()

	round := NewRound(NewReviewState(nil))
	if got := round.Progress(); got != 0 {
		t.Errorf("empty review progress = %v, want 0", got)
	}
}
