package sm2

import (
	"errors"
	"testing"
	"time"

	"github.com/studystack/studystack-api/internal/domain"
)

func TestReviewValidation(t *testing.T) {
	t.Parallel()

	svc := NewDefaultService()
	now := time.Now().UTC()

	if _, err := svc.Review(nil, 4, now); !errors.Is(err, ErrNilData) {
		t.Errorf("Review(nil) error = %v, want ErrNilData", err)
	}

	data := domain.NewSM2Data(now)
	for _, quality := range []int{-1, 6, 100} {
		if _, err := svc.Review(data, quality, now); !errors.Is(err, ErrInvalidQuality) {
			t.Errorf("Review(quality=%d) error = %v, want ErrInvalidQuality", quality, err)
		}
	}
}

func TestReviewWithCustomParams(t *testing.T) {
	t.Parallel()

	svc := NewServiceWithParams(&Params{
		MinFactor:      1.3,
		PassThreshold:  4,
		FirstInterval:  2,
		SecondInterval: 10,
	})
	now := time.Now().UTC()

	next, err := svc.Review(domain.NewSM2Data(now), 4, now)
	if err != nil {
		t.Fatalf("Review() error = %v", err)
	}
	if next.Interval != 2 {
		t.Errorf("first pass interval = %d, want 2", next.Interval)
	}

	// Quality 3 fails under the raised threshold.
	next, err = svc.Review(domain.NewSM2Data(now), 3, now)
	if err != nil {
		t.Fatalf("Review() error = %v", err)
	}
	if next.Repetition != 0 {
		t.Errorf("quality 3 repetition = %d, want 0 under threshold 4", next.Repetition)
	}
}
