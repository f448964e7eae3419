package domain

// Study mode identifiers. The session controller dispatches to a
// scheduler based on these.
type StudyMode string

const (
	StudyModeLearn  StudyMode = "learn"
	StudyModeReview StudyMode = "review"
	StudyModeSpaced StudyMode = "spaced"
)

// Valid reports whether the mode is one of the three known study modes.
func (m StudyMode) Valid() bool {
	switch m {
	case StudyModeLearn, StudyModeReview, StudyModeSpaced:
		return true
	default:
		return false
	}
}

// DeckSettings are the per-deck study options. A session always runs on
// the defaults merged under whatever the deck has persisted, so decks
// saved before a setting existed pick up its default transparently.
type DeckSettings struct {
	LearnMode           string `json:"learn_mode"`
	ReviewOrder         string `json:"review_order"`
	CardsPerRound       int    `json:"cards_per_round"`
	MaxBuckets          int    `json:"max_buckets"`
	CaseSensitive       bool   `json:"case_sensitive"`
	Punctuation         bool   `json:"punctuation"`
	RetypeIncorrect     bool   `json:"retype_incorrect"`
	FeedbackStyle       string `json:"feedback_style"`
	ForgivingAutomarking bool  `json:"forgiving_automarking"`
}

// Review order values recognized by the session controller.
const (
	ReviewOrderRandom   = "random"
	ReviewOrderOriginal = "original"
)

// DefaultDeckSettings returns the default study options applied to
// every deck.
func DefaultDeckSettings() DeckSettings {
	return DeckSettings{
		LearnMode:            "flashcard",
		ReviewOrder:          ReviewOrderRandom,
		CardsPerRound:        10,
		MaxBuckets:           4,
		CaseSensitive:        false,
		Punctuation:          false,
		RetypeIncorrect:      true,
		FeedbackStyle:        "simple",
		ForgivingAutomarking: false,
	}
}

// Merged returns the settings with zero-valued string/int fields
// replaced by defaults. Boolean options keep their stored value since
// false is meaningful for them.
func (s DeckSettings) Merged() DeckSettings {
	defaults := DefaultDeckSettings()

	if s.LearnMode == "" {
		s.LearnMode = defaults.LearnMode
	}
	if s.ReviewOrder == "" {
		s.ReviewOrder = defaults.ReviewOrder
	}
	if s.CardsPerRound <= 0 {
		s.CardsPerRound = defaults.CardsPerRound
	}
	if s.MaxBuckets < 2 {
		s.MaxBuckets = defaults.MaxBuckets
	}
	if s.FeedbackStyle == "" {
		s.FeedbackStyle = defaults.FeedbackStyle
	}

	return s
}
