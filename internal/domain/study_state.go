package domain

import "github.com/google/uuid"

// LearnState is the persisted bucket partition for learn mode. Buckets
// hold card IDs rather than card copies so a deck edit can never leave
// a stale card aliased inside a bucket. The multiset union of all
// buckets always equals the deck's card set.
type LearnState struct {
	Buckets      [][]uuid.UUID `json:"buckets"`
	CurrentRound int           `json:"current_round"`
}

// ReviewState is the persisted round-mode state. Every deck card sits
// in exactly one of StillLearning or Correct before a round starts;
// LastRoundIncorrect is per-round scratch space cleared on rollover.
type ReviewState struct {
	StillLearning      []uuid.UUID `json:"still_learning"`
	Correct            []uuid.UUID `json:"correct"`
	LastRoundIncorrect []uuid.UUID `json:"last_round_incorrect"`
	CurrentRound       int         `json:"current_round"`
}

// TotalCards returns the number of card IDs across all buckets.
func (s *LearnState) TotalCards() int {
	total := 0
	for _, bucket := range s.Buckets {
		total += len(bucket)
	}
	return total
}
