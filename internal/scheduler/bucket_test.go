package scheduler

import (
	"errors"
	"math"
	"testing"

	"github.com/google/uuid"

	"github.com/studystack/studystack-api/internal/domain"
)

func makeCards(n int) []domain.Card {
	cards := make([]domain.Card, n)
	for i := range cards {
		cards[i] = domain.Card{
			ID:       uuid.New(),
			Question: "q",
			Answer:   "a",
			IsNew:    true,
		}
	}
	return cards
}

func totalCards(state *domain.LearnState) int {
	total := 0
	for _, bucket := range state.Buckets {
		total += len(bucket)
	}
	return total
}

func TestNewLearnState(t *testing.T) {
	t.Parallel()

	cards := makeCards(5)
	state := NewLearnState(cards, 4)

	if len(state.Buckets) != 4 {
		t.Fatalf("bucket count = %d, want 4", len(state.Buckets))
	}
	if len(state.Buckets[0]) != 5 {
		t.Errorf("bucket 0 size = %d, want 5", len(state.Buckets[0]))
	}
	for i := 1; i < 4; i++ {
		if len(state.Buckets[i]) != 0 {
			t.Errorf("bucket %d size = %d, want 0", i, len(state.Buckets[i]))
		}
	}
	if state.CurrentRound != 1 {
		t.Errorf("initial round = %d, want 1", state.CurrentRound)
	}
}

func TestMoveUpAndDown(t *testing.T) {
	t.Parallel()

	cards := makeCards(3)
	state := NewLearnState(cards, 4)
	bucket := NewBucket(state, 4)
	cardID := cards[0].ID

	from, to, err := bucket.Move(cardID, true)
	if err != nil {
		t.Fatalf("Move() error = %v", err)
	}
	if from != 0 || to != 1 {
		t.Errorf("Move(correct) = (%d, %d), want (0, 1)", from, to)
	}

	from, to, err = bucket.Move(cardID, false)
	if err != nil {
		t.Fatalf("Move() error = %v", err)
	}
	if from != 1 || to != 0 {
		t.Errorf("Move(incorrect) = (%d, %d), want (1, 0)", from, to)
	}
}

func TestMoveClampsAtEnds(t *testing.T) {
	t.Parallel()

	cards := makeCards(1)
	state := NewLearnState(cards, 3)
	bucket := NewBucket(state, 3)
	cardID := cards[0].ID

	// Incorrect in bucket 0 stays in bucket 0.
	from, to, err := bucket.Move(cardID, false)
	if err != nil {
		t.Fatalf("Move() error = %v", err)
	}
	if from != 0 || to != 0 {
		t.Errorf("Move at floor = (%d, %d), want (0, 0)", from, to)
	}

	// Climb to the top, then one more correct stays at the top.
	for i := 0; i < 2; i++ {
		if _, _, err := bucket.Move(cardID, true); err != nil {
			t.Fatalf("Move() error = %v", err)
		}
	}
	from, to, err = bucket.Move(cardID, true)
	if err != nil {
		t.Fatalf("Move() error = %v", err)
	}
	if from != 2 || to != 2 {
		t.Errorf("Move at ceiling = (%d, %d), want (2, 2)", from, to)
	}
}

func TestMoveConservesCardCount(t *testing.T) {
	t.Parallel()

	cards := makeCards(10)
	state := NewLearnState(cards, 4)
	bucket := NewBucket(state, 4)

	moves := []struct {
		card    int
		correct bool
	}{
		{0, true}, {1, true}, {0, true}, {2, false}, {0, false}, {3, true}, {1, false},
	}
	for _, m := range moves {
		if _, _, err := bucket.Move(cards[m.card].ID, m.correct); err != nil {
			t.Fatalf("Move() error = %v", err)
		}
		if got := totalCards(state); got != 10 {
			t.Fatalf("total cards = %d after move, want 10", got)
		}
	}
}

func TestMoveUnknownCard(t *testing.T) {
	t.Parallel()

	state := NewLearnState(makeCards(2), 4)
	bucket := NewBucket(state, 4)

	_, _, err := bucket.Move(uuid.New(), true)
	if !errors.Is(err, ErrCardNotInBuckets) {
		t.Errorf("Move(unknown) error = %v, want ErrCardNotInBuckets", err)
	}
	if got := totalCards(state); got != 2 {
		t.Errorf("total cards = %d after failed move, want 2", got)
	}
}

func TestProgress(t *testing.T) {
	t.Parallel()

	cards := makeCards(2)
	state := NewLearnState(cards, 4)
	bucket := NewBucket(state, 4)

	if got := bucket.Progress(); got != 0 {
		t.Errorf("initial progress = %v, want 0", got)
	}

	// Master both cards: three correct answers each.
	for _, card := range cards {
		for i := 0; i < 3; i++ {
			if _, _, err := bucket.Move(card.ID, true); err != nil {
				t.Fatalf("Move() error = %v", err)
			}
		}
	}
	if got := bucket.Progress(); math.Abs(got-1) > 1e-9 {
		t.Errorf("mastered progress = %v, want 1", got)
	}

	if got := bucket.MasteredCount(); got != 2 {
		t.Errorf("MasteredCount() = %d, want 2", got)
	}
	if got := bucket.Unmastered(); len(got) != 0 {
		t.Errorf("Unmastered() = %v, want empty", got)
	}
}

func TestProgressEmptyDeck(t *testing.T) {
	t.Parallel()

	bucket := NewBucket(NewLearnState(nil, 4), 4)
	if got := bucket.Progress(); got != 0 {
		t.Errorf("empty deck progress = %v, want 0", got)
	}
}

func TestNewBucketPadsGrownState(t *testing.T) {
	t.Parallel()

	cards := makeCards(2)
	state := NewLearnState(cards, 3)

	bucket := NewBucket(state, 5)
	if len(state.Buckets) != 5 {
		t.Errorf("padded bucket count = %d, want 5", len(state.Buckets))
	}
	if got := totalCards(state); got != 2 {
		t.Errorf("total cards after padding = %d, want 2", got)
	}
	if got := bucket.MasteredCount(); got != 0 {
		t.Errorf("MasteredCount() after padding = %d, want 0", got)
	}
}

func TestBucketName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		index, max int
		want       string
	}{
		{0, 4, "Learning"},
		{3, 4, "Mastered"},
		{1, 4, "Bucket 2"},
		{2, 4, "Bucket 3"},
		{0, 2, "Learning"},
		{1, 2, "Mastered"},
	}

	for _, tt := range tests {
		if got := BucketName(tt.index, tt.max); got != tt.want {
			t.Errorf("BucketName(%d, %d) = %q, want %q", tt.index, tt.max, got, tt.want)
		}
	}
}
