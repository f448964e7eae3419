package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/studystack/studystack-api/internal/domain"
)

func TestStudyModeValid(t *testing.T) {
	t.Parallel()

	assert.True(t, domain.StudyModeLearn.Valid())
	assert.True(t, domain.StudyModeReview.Valid())
	assert.True(t, domain.StudyModeSpaced.Valid())
	assert.False(t, domain.StudyMode("cram").Valid())
	assert.False(t, domain.StudyMode("").Valid())
}

func TestMergedFillsZeroFields(t *testing.T) {
	t.Parallel()

	merged := domain.DeckSettings{}.Merged()
	assert.Equal(t, domain.DefaultDeckSettings(), merged)
}

func TestMergedKeepsExplicitValues(t *testing.T) {
	t.Parallel()

	settings := domain.DeckSettings{
		ReviewOrder:   domain.ReviewOrderOriginal,
		CardsPerRound: 25,
		MaxBuckets:    6,
	}

	merged := settings.Merged()
	assert.Equal(t, domain.ReviewOrderOriginal, merged.ReviewOrder)
	assert.Equal(t, 25, merged.CardsPerRound)
	assert.Equal(t, 6, merged.MaxBuckets)
	// Unset strings fall back to defaults.
	assert.Equal(t, "flashcard", merged.LearnMode)
}

func TestMergedKeepsBooleanFalse(t *testing.T) {
	t.Parallel()

	// RetypeIncorrect defaults to true; an explicit false must survive
	// the merge.
	settings := domain.DeckSettings{RetypeIncorrect: false}
	merged := settings.Merged()
	assert.False(t, merged.RetypeIncorrect)
}
