// Package scoring converts raw interaction telemetry into the
// normalized interaction quality score (IQS) that drives the knowledge
// tracker and the spaced repetition grade. Scoring is pure: no clocks,
// no storage.
package scoring

import "errors"

// ErrInvalidAttemptCount is returned when an interaction reports fewer
// than one attempt. An answer implies at least one attempt; anything
// less would divide by zero in the attempts sub-score.
var ErrInvalidAttemptCount = errors.New("attempt count must be at least 1")

// Sub-score weights. They sum to 1.0 so the IQS stays in [0,1] for any
// valid input.
const (
	weightLatency     = 0.30
	weightFluency     = 0.20
	weightCorrections = 0.25
	weightAttempts    = 0.25
)

// Interaction is the raw telemetry for a single answer.
type Interaction struct {
	RecallLatencyMS  float64 // time from prompt to first input
	AnswerFluency    float64 // typing cadence metric
	TotalCorrections int     // backspace/edit count
	AttemptCount     int     // >= 1
}

// Baseline calibrates the latency and fluency sub-scores to the user.
type Baseline struct {
	LatencyMS float64
	Fluency   float64
}

// DefaultBaseline returns the uncalibrated baseline: 1500 ms recall
// latency, fluency 10.
func DefaultBaseline() Baseline {
	return Baseline{LatencyMS: 1500, Fluency: 10}
}

// Score computes the interaction quality score in [0,1]:
//
//	latency     1 - min(latency/baseline, 2)/2   (faster is better, capped at 2x)
//	fluency     min(fluency/baseline, 1.5)/1.5   (capped at 1.5x)
//	corrections 1/(1+corrections)                (any correction penalizes sharply)
//	attempts    1/attempts
//
// weighted 0.30/0.20/0.25/0.25 and clamped to [0,1].
func Score(in Interaction, baseline Baseline) (float64, error) {
	if in.AttemptCount < 1 {
		return 0, ErrInvalidAttemptCount
	}

	vLatency := 1 - min64(in.RecallLatencyMS/baseline.LatencyMS, 2)/2
	vFluency := min64(in.AnswerFluency/baseline.Fluency, 1.5) / 1.5
	vCorrections := 1 / (1 + float64(in.TotalCorrections))
	vAttempts := 1 / float64(in.AttemptCount)

	iqs := weightLatency*vLatency +
		weightFluency*vFluency +
		weightCorrections*vCorrections +
		weightAttempts*vAttempts

	return clamp01(iqs), nil
}

// Passing reports whether an IQS counts as a correct-leaning answer.
// The knowledge tracker grows stability above this threshold and halves
// it below.
func Passing(iqs float64) bool {
	return iqs > 0.5
}

func min64(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
