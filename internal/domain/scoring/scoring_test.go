package scoring

import (
	"errors"
	"math"
	"testing"
)

func TestScore(t *testing.T) {
	t.Parallel()

	baseline := DefaultBaseline()

	tests := []struct {
		name string
		in   Interaction
		want float64
	}{
		{
			name: "instant fluent answer scores 1",
			in:   Interaction{RecallLatencyMS: 0, AnswerFluency: 15, TotalCorrections: 0, AttemptCount: 1},
			want: 1.0,
		},
		{
			name: "baseline latency halves the latency sub-score",
			in:   Interaction{RecallLatencyMS: 1500, AnswerFluency: 15, TotalCorrections: 0, AttemptCount: 1},
			// latency: 1 - 0.5 = 0.5 weighted 0.30; rest perfect.
			want: 0.30*0.5 + 0.20 + 0.25 + 0.25,
		},
		{
			name: "latency capped at twice baseline",
			in:   Interaction{RecallLatencyMS: 100000, AnswerFluency: 15, TotalCorrections: 0, AttemptCount: 1},
			want: 0.20 + 0.25 + 0.25,
		},
		{
			name: "fluency capped at 1.5x baseline",
			in:   Interaction{RecallLatencyMS: 0, AnswerFluency: 100, TotalCorrections: 0, AttemptCount: 1},
			want: 1.0,
		},
		{
			name: "one correction halves the corrections sub-score",
			in:   Interaction{RecallLatencyMS: 0, AnswerFluency: 15, TotalCorrections: 1, AttemptCount: 1},
			want: 0.30 + 0.20 + 0.25*0.5 + 0.25,
		},
		{
			name: "two attempts halve the attempts sub-score",
			in:   Interaction{RecallLatencyMS: 0, AnswerFluency: 15, TotalCorrections: 0, AttemptCount: 2},
			want: 0.30 + 0.20 + 0.25 + 0.25*0.5,
		},
		{
			name: "worst realistic answer bottoms out near zero",
			in:   Interaction{RecallLatencyMS: 100000, AnswerFluency: 0, TotalCorrections: 1000, AttemptCount: 1000},
			want: 0.25/1001 + 0.25/1000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Score(tt.in, baseline)
			if err != nil {
				t.Fatalf("Score() error = %v", err)
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Score() = %v, want %v", got, tt.want)
			}
			if got < 0 || got > 1 {
				t.Errorf("Score() = %v, outside [0,1]", got)
			}
		})
	}
}

func TestScoreRejectsZeroAttempts(t *testing.T) {
	t.Parallel()

	for _, attempts := range []int{0, -1} {
		_, err := Score(Interaction{AttemptCount: attempts}, DefaultBaseline())
		if !errors.Is(err, ErrInvalidAttemptCount) {
			t.Errorf("Score(attempts=%d) error = %v, want ErrInvalidAttemptCount", attempts, err)
		}
	}
}

func TestPassing(t *testing.T) {
	t.Parallel()

	tests := []struct {
		iqs  float64
		want bool
	}{
		{0.0, false},
		{0.5, false}, // boundary is exclusive
		{0.500001, true},
		{1.0, true},
	}

	for _, tt := range tests {
		if got := Passing(tt.iqs); got != tt.want {
			t.Errorf("Passing(%v) = %v, want %v", tt.iqs, got, tt.want)
		}
	}
}
