package scheduler

import (
	"math/rand"

	"github.com/google/uuid"
)

// Shuffle returns a uniform random permutation of the given card IDs
// (Fisher-Yates). The input slice is not modified.
func Shuffle(ids []uuid.UUID) []uuid.UUID {
	shuffled := make([]uuid.UUID, len(ids))
	copy(shuffled, ids)

	for i := len(shuffled) - 1; i > 0; i-- {
		j := rand.Intn(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}

	return shuffled
}
