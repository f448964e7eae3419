package scheduler

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/studystack/studystack-api/internal/domain"
)

// ErrCardNotInBuckets is returned when a move targets a card that is
// not present in any bucket. The session controller logs and skips the
// move rather than aborting the session.
var ErrCardNotInBuckets = errors.New("card not found in any bucket")

// Bucket drives learn mode over a deck's LearnState. Bucket 0 is
// "Learning" and the last bucket is "Mastered"; a correct answer moves
// a card one bucket up, an incorrect answer one bucket down, clamped at
// the ends. The total card count across buckets is invariant under
// every move.
type Bucket struct {
	state      *domain.LearnState
	maxBuckets int
}

// NewLearnState builds the initial bucket partition: every card in
// bucket 0, the remaining maxBuckets-1 buckets empty.
func NewLearnState(cards []domain.Card, maxBuckets int) *domain.LearnState {
	buckets := make([][]uuid.UUID, maxBuckets)
	buckets[0] = make([]uuid.UUID, len(cards))
	for i := range cards {
		buckets[0][i] = cards[i].ID
	}
	for i := 1; i < maxBuckets; i++ {
		buckets[i] = []uuid.UUID{}
	}

	return &domain.LearnState{
		Buckets:      buckets,
		CurrentRound: 1,
	}
}

// NewBucket wraps an existing LearnState. Saved state is padded with
// empty buckets when maxBuckets has grown since the last save.
func NewBucket(state *domain.LearnState, maxBuckets int) *Bucket {
	for len(state.Buckets) < maxBuckets {
		state.Buckets = append(state.Buckets, []uuid.UUID{})
	}

	return &Bucket{
		state:      state,
		maxBuckets: maxBuckets,
	}
}

// Move relocates a card one bucket up or down depending on
// correctness and appends it to the tail of its new bucket. It returns
// the old and new bucket indices, or ErrCardNotInBuckets if the card is
// absent.
func (b *Bucket) Move(cardID uuid.UUID, correct bool) (from, to int, err error) {
	from = -1
	for i, bucket := range b.state.Buckets {
		for j, id := range bucket {
			if id == cardID {
				from = i
				// remove, preserving order of the rest
				b.state.Buckets[i] = append(bucket[:j:j], bucket[j+1:]...)
				break
			}
		}
		if from != -1 {
			break
		}
	}

	if from == -1 {
		return 0, 0, fmt.Errorf("%w: %s", ErrCardNotInBuckets, cardID)
	}

	if correct {
		to = from + 1
		if to > b.maxBuckets-1 {
			to = b.maxBuckets - 1
		}
	} else {
		to = from - 1
		if to < 0 {
			to = 0
		}
	}

	b.state.Buckets[to] = append(b.state.Buckets[to], cardID)
	return from, to, nil
}

// Progress is the weighted-position completion metric in [0,1]:
// sum(len(bucket_i) * i) / (total * (maxBuckets-1)). An empty deck
// reports 0.
func (b *Bucket) Progress() float64 {
	total := b.state.TotalCards()
	if total == 0 || b.maxBuckets < 2 {
		return 0
	}

	points := 0
	for i, bucket := range b.state.Buckets {
		points += len(bucket) * i
	}

	return float64(points) / float64(total*(b.maxBuckets-1))
}

// Counts returns the card count per bucket in bucket order.
func (b *Bucket) Counts() []int {
	counts := make([]int, len(b.state.Buckets))
	for i, bucket := range b.state.Buckets {
		counts[i] = len(bucket)
	}
	return counts
}

// MasteredCount returns the number of cards in the final bucket.
func (b *Bucket) MasteredCount() int {
	return len(b.state.Buckets[b.maxBuckets-1])
}

// Unmastered returns, in bucket order, the IDs of all cards not yet in
// the mastered bucket. This is the serving pool for a learn round.
func (b *Bucket) Unmastered() []uuid.UUID {
	var ids []uuid.UUID
	for i := 0; i < b.maxBuckets-1; i++ {
		ids = append(ids, b.state.Buckets[i]...)
	}
	return ids
}

// State returns the underlying LearnState for persistence.
func (b *Bucket) State() *domain.LearnState {
	return b.state
}

// BucketName returns the display name for a bucket index: "Learning"
// for the first, "Mastered" for the last, "Bucket N" in between.
func BucketName(index, maxBuckets int) string {
	if index == 0 {
		return "Learning"
	}
	if index == maxBuckets-1 {
		return "Mastered"
	}
	return fmt.Sprintf("Bucket %d", index+1)
}
