package sm2

import (
	"math"
	"time"

	"github.com/studystack/studystack-api/internal/domain"
)

// calculateNewFactor applies the classic SM2 easiness factor recurrence
// and enforces the 1.3 floor. The recurrence runs on every review,
// pass or fail:
//
//	factor += 0.1 - (5-quality)*(0.08 + (5-quality)*0.02)
//
// so a perfect answer (5) nudges the factor up by 0.1 and a blackout
// (0) drags it down by 0.8, never below the floor.
func calculateNewFactor(currentFactor float64, quality int, params *Params) float64 {
	miss := float64(5 - quality)
	newFactor := currentFactor + (0.1 - miss*(0.08+miss*0.02))

	if newFactor < params.MinFactor {
		newFactor = params.MinFactor
	}

	return newFactor
}

// calculateNextData computes the full post-review SM2 state. It never
// mutates the input; callers get a fresh value to persist.
//
// Pass (quality >= PassThreshold):
//   - first pass: interval = FirstInterval (1 day)
//   - second pass: interval = SecondInterval (6 days)
//   - later passes: interval = round(interval * factor)
//   - repetition increments
//
// Fail: repetition resets to 0, interval resets to 1 day.
//
// The factor recurrence applies in both branches, and the due date is
// always now + interval days, so the due date never moves backwards.
func calculateNextData(data *domain.SM2Data, quality int, now time.Time, params *Params) domain.SM2Data {
	next := *data

	if quality >= params.PassThreshold {
		switch data.Repetition {
		case 0:
			next.Interval = params.FirstInterval
		case 1:
			next.Interval = params.SecondInterval
		default:
			next.Interval = int(math.Round(float64(data.Interval) * data.Factor))
		}
		next.Repetition = data.Repetition + 1
	} else {
		next.Repetition = 0
		next.Interval = 1
	}

	next.Factor = calculateNewFactor(data.Factor, quality, params)
	next.DueDate = now.AddDate(0, 0, next.Interval)

	return next
}
