// Package recall predicts the probability that a card can still be
// recalled, using an exponential forgetting curve whose half-life is
// the knowledge state's stability.
package recall

import (
	"math"
	"time"

	"github.com/studystack/studystack-api/internal/domain"
)

// Predict returns the probability of recall at the given time:
//
//	p = 2^(-deltaDays / stability)
//
// where deltaDays is the time since the last review in days. The result
// is 1 at the moment of review and decays toward 0; stability is the
// half-life in days. For deltaDays >= 0 the value is already bounded in
// (0,1], so no clamping is needed.
func Predict(state *domain.KnowledgeState, now time.Time) float64 {
	deltaDays := now.Sub(state.LastReviewed).Hours() / 24

	return math.Pow(2, -deltaDays/state.Stability)
}
