package study

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/studystack/studystack-api/internal/domain"
	"github.com/studystack/studystack-api/internal/domain/scoring"
	"github.com/studystack/studystack-api/internal/domain/sm2"
	"github.com/studystack/studystack-api/internal/platform/logger"
	"github.com/studystack/studystack-api/internal/scheduler"
	"github.com/studystack/studystack-api/internal/service/knowledge"
	"github.com/studystack/studystack-api/internal/store"
)

// serviceImpl implements the Service interface.
type serviceImpl struct {
	decks        store.DeckStore
	interactions store.InteractionLogStore
	tracker      knowledge.Tracker
	sm2Service   sm2.Service
	baseline     scoring.Baseline
	userID       string
	sessions     *sessionManager
	logger       *slog.Logger
	timeFunc     func() time.Time
}

// Config holds the dependencies for the study service.
type Config struct {
	DeckStore        store.DeckStore
	InteractionStore store.InteractionLogStore
	Tracker          knowledge.Tracker
	SM2Service       sm2.Service
	Baseline         scoring.Baseline
	UserID           string
	Logger           *slog.Logger
}

// NewService creates a study session service.
func NewService(cfg Config) Service {
	if cfg.DeckStore == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("deck store cannot be nil")
	}
	if cfg.InteractionStore == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("interaction store cannot be nil")
	}
	if cfg.Tracker == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("knowledge tracker cannot be nil")
	}
	if cfg.SM2Service == nil {
		cfg.SM2Service = sm2.NewDefaultService()
	}
	if cfg.Baseline == (scoring.Baseline{}) {
		cfg.Baseline = scoring.DefaultBaseline()
	}
	if cfg.UserID == "" {
		cfg.UserID = domain.DefaultUserID
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	return &serviceImpl{
		decks:        cfg.DeckStore,
		interactions: cfg.InteractionStore,
		tracker:      cfg.Tracker,
		sm2Service:   cfg.SM2Service,
		baseline:     cfg.Baseline,
		userID:       cfg.UserID,
		sessions:     newSessionManager(),
		logger:       cfg.Logger.With(slog.String("component", "study_service")),
		timeFunc:     func() time.Time { return time.Now().UTC() },
	}
}

// Ensure serviceImpl implements Service
var _ Service = (*serviceImpl)(nil)

// Start implements Service.Start.
func (s *serviceImpl) Start(
	ctx context.Context,
	deckID uuid.UUID,
	mode domain.StudyMode,
) (*StartResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if !mode.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMode, mode)
	}

	deck, err := s.decks.GetByID(ctx, deckID)
	if err != nil {
		return nil, fmt.Errorf("failed to get deck: %w", err)
	}

	settings := deck.Settings.Merged()
	now := s.timeFunc()

	var queue []uuid.UUID
	switch mode {
	case domain.StudyModeLearn:
		if deck.LearnState == nil {
			deck.LearnState = scheduler.NewLearnState(deck.Cards, settings.MaxBuckets)
		}
		bucket := scheduler.NewBucket(deck.LearnState, settings.MaxBuckets)
		queue = s.orderQueue(bucket.Unmastered(), settings)
		if len(queue) > settings.CardsPerRound {
			queue = queue[:settings.CardsPerRound]
		}

	case domain.StudyModeReview:
		// Review always starts from a clean slate.
		deck.ReviewState = scheduler.NewReviewState(deck.Cards)
		queue = s.orderQueue(deck.CardIDs(), settings)

	case domain.StudyModeSpaced:
		due := deck.DueCards(now)
		if len(due) == 0 {
			return nil, ErrNoCardsDue
		}
		ids := make([]uuid.UUID, len(due))
		for i := range due {
			ids[i] = due[i].ID
		}
		queue = s.orderQueue(ids, settings)
	}

	deck.Touch(now)
	if err := s.decks.Save(ctx, deck); err != nil {
		return nil, fmt.Errorf("failed to save deck: %w", err)
	}

	sess := &session{
		deckID:   deckID,
		mode:     mode,
		settings: settings,
		queue:    queue,
	}
	s.sessions.put(sess)

	log.Info("study session started",
		slog.String("deck_id", deckID.String()),
		slog.String("mode", string(mode)),
		slog.Int("queue_size", len(queue)))

	return s.startResult(deck, sess), nil
}

// NextCard implements Service.NextCard.
func (s *serviceImpl) NextCard(ctx context.Context, deckID uuid.UUID) (*domain.Card, error) {
	sess := s.sessions.get(deckID)
	if sess == nil {
		return nil, ErrNoActiveSession
	}

	sess.mu.Lock()
	cardID, ok := sess.peek()
	sess.mu.Unlock()
	if !ok {
		return nil, ErrSessionComplete
	}

	deck, err := s.decks.GetByID(ctx, deckID)
	if err != nil {
		return nil, fmt.Errorf("failed to get deck: %w", err)
	}

	card := deck.CardByID(cardID)
	if card == nil {
		return nil, fmt.Errorf("%w: %s", ErrCardNotInDeck, cardID)
	}

	return card, nil
}

// SubmitAnswer implements Service.SubmitAnswer.
func (s *serviceImpl) SubmitAnswer(
	ctx context.Context,
	deckID, cardID uuid.UUID,
	answer Answer,
) (*AnswerResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	sess := s.sessions.get(deckID)
	if sess == nil {
		return nil, ErrNoActiveSession
	}

	// One grading pipeline at a time per deck.
	sess.mu.Lock()
	defer sess.mu.Unlock()

	deck, err := s.decks.GetByID(ctx, deckID)
	if err != nil {
		return nil, fmt.Errorf("failed to get deck: %w", err)
	}

	card := deck.CardByID(cardID)
	if card == nil {
		return nil, fmt.Errorf("%w: %s", ErrCardNotInDeck, cardID)
	}

	correct, quality, err := resolveGrade(sess.mode, answer)
	if err != nil {
		return nil, err
	}

	now := s.timeFunc()
	result := &AnswerResult{
		CardID:  cardID,
		Mode:    sess.mode,
		Correct: correct,
	}

	if answer.Telemetry != nil {
		s.applyTelemetry(ctx, cardID, *answer.Telemetry, sess.mode, result, log)
	}

	s.appendInteraction(ctx, cardID, correct, answer, now, log)

	switch sess.mode {
	case domain.StudyModeLearn:
		if deck.LearnState == nil {
			deck.LearnState = scheduler.NewLearnState(deck.Cards, sess.settings.MaxBuckets)
		}
		bucket := scheduler.NewBucket(deck.LearnState, sess.settings.MaxBuckets)
		from, to, err := bucket.Move(cardID, correct)
		if err != nil {
			// The card vanished from the buckets, likely edited out of
			// the deck mid-session. Grade is logged, scheduling skipped.
			log.Warn("card missing from buckets, move skipped",
				slog.String("card_id", cardID.String()),
				slog.String("error", err.Error()))
		} else {
			result.FromBucket = &from
			result.ToBucket = &to
		}

	case domain.StudyModeReview:
		if deck.ReviewState == nil {
			deck.ReviewState = scheduler.NewReviewState(deck.Cards)
		}
		round := scheduler.NewRound(deck.ReviewState)
		if err := round.Answer(cardID, correct); err != nil {
			log.Warn("card missing from round, answer skipped",
				slog.String("card_id", cardID.String()),
				slog.String("error", err.Error()))
		}

	case domain.StudyModeSpaced:
		data := card.SM2Data
		if data == nil {
			data = domain.NewSM2Data(now)
		}
		next, err := s.sm2Service.Review(data, quality, now)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAnswer, err)
		}
		card.SM2Data = &next
		result.NextDue = &next.DueDate
	}

	card.IsNew = false
	deck.Touch(now)

	// Checkpoint before the queue moves so a failed save leaves the
	// card answerable again.
	if err := s.decks.Save(ctx, deck); err != nil {
		return nil, fmt.Errorf("failed to save deck: %w", err)
	}

	sess.advance(cardID)
	result.Progress = s.progressLocked(deck, sess)

	return result, nil
}

// AdvanceRound implements Service.AdvanceRound.
func (s *serviceImpl) AdvanceRound(ctx context.Context, deckID uuid.UUID) (*StartResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	sess := s.sessions.get(deckID)
	if sess == nil {
		return nil, ErrNoActiveSession
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.mode == domain.StudyModeSpaced {
		return nil, fmt.Errorf("%w: spaced sessions have no rounds", ErrWrongMode)
	}

	deck, err := s.decks.GetByID(ctx, deckID)
	if err != nil {
		return nil, fmt.Errorf("failed to get deck: %w", err)
	}

	var queue []uuid.UUID
	switch sess.mode {
	case domain.StudyModeLearn:
		if deck.LearnState == nil {
			return nil, ErrNoActiveSession
		}
		bucket := scheduler.NewBucket(deck.LearnState, sess.settings.MaxBuckets)
		pool := bucket.Unmastered()
		if len(pool) == 0 {
			return nil, ErrSessionComplete
		}
		deck.LearnState.CurrentRound++
		queue = s.orderQueue(pool, sess.settings)
		if len(queue) > sess.settings.CardsPerRound {
			queue = queue[:sess.settings.CardsPerRound]
		}

	case domain.StudyModeReview:
		if deck.ReviewState == nil {
			return nil, ErrNoActiveSession
		}
		round := scheduler.NewRound(deck.ReviewState)
		if round.Complete() {
			return nil, ErrSessionComplete
		}
		queue = s.orderQueue(round.AdvanceRound(), sess.settings)
	}

	deck.Touch(s.timeFunc())
	if err := s.decks.Save(ctx, deck); err != nil {
		return nil, fmt.Errorf("failed to save deck: %w", err)
	}

	sess.queue = queue
	sess.position = 0

	log.Info("round advanced",
		slog.String("deck_id", deckID.String()),
		slog.String("mode", string(sess.mode)),
		slog.Int("queue_size", len(queue)))

	return s.startResult(deck, sess), nil
}

// Progress implements Service.Progress.
func (s *serviceImpl) Progress(ctx context.Context, deckID uuid.UUID) (*Progress, error) {
	sess := s.sessions.get(deckID)
	if sess == nil {
		return nil, ErrNoActiveSession
	}

	deck, err := s.decks.GetByID(ctx, deckID)
	if err != nil {
		return nil, fmt.Errorf("failed to get deck: %w", err)
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	progress := s.progressLocked(deck, sess)
	return &progress, nil
}

// Abandon implements Service.Abandon.
func (s *serviceImpl) Abandon(deckID uuid.UUID) {
	s.sessions.remove(deckID)
}

// resolveGrade extracts the mode's required grading input from an
// answer. Spaced mode derives correctness from the quality score using
// the usual SM2 pass threshold.
func resolveGrade(mode domain.StudyMode, answer Answer) (correct bool, quality int, err error) {
	switch mode {
	case domain.StudyModeSpaced:
		if answer.Quality == nil {
			return false, 0, fmt.Errorf("%w: spaced mode requires a quality score", ErrInvalidAnswer)
		}
		quality = *answer.Quality
		if quality < 0 || quality > 5 {
			return false, 0, fmt.Errorf("%w: quality must be between 0 and 5", ErrInvalidAnswer)
		}
		return quality >= 3, quality, nil

	default:
		if answer.Correct == nil {
			return false, 0, fmt.Errorf("%w: %s mode requires a correctness flag", ErrInvalidAnswer, mode)
		}
		return *answer.Correct, 0, nil
	}
}

// applyTelemetry scores the interaction and feeds the knowledge
// tracker. Tracker failures are logged but never fail the answer; the
// scheduling outcome matters more than the analytics write.
func (s *serviceImpl) applyTelemetry(
	ctx context.Context,
	cardID uuid.UUID,
	telemetry scoring.Interaction,
	mode domain.StudyMode,
	result *AnswerResult,
	log *slog.Logger,
) {
	iqs, err := scoring.Score(telemetry, s.baseline)
	if err != nil {
		log.Warn("telemetry rejected",
			slog.String("card_id", cardID.String()),
			slog.String("error", err.Error()))
		return
	}
	result.IQS = &iqs

	state, err := s.tracker.Update(ctx, cardID, iqs, mode == domain.StudyModeSpaced)
	if err != nil {
		log.Error("knowledge update failed",
			slog.String("card_id", cardID.String()),
			slog.String("error", err.Error()))
		return
	}
	result.Mastery = &state.MasteryScore
}

// appendInteraction records the raw interaction. Append failures are
// logged and swallowed so a full log table cannot block studying.
func (s *serviceImpl) appendInteraction(
	ctx context.Context,
	cardID uuid.UUID,
	correct bool,
	answer Answer,
	now time.Time,
	log *slog.Logger,
) {
	entry := &domain.InteractionLog{
		UserID:     s.userID,
		CardID:     cardID,
		Timestamp:  now,
		WasCorrect: correct,
		UserAnswer: answer.UserAnswer,
		Attempts:   1,
	}
	if answer.Telemetry != nil {
		entry.LatencyMS = answer.Telemetry.RecallLatencyMS
		entry.Fluency = answer.Telemetry.AnswerFluency
		entry.Corrections = answer.Telemetry.TotalCorrections
		entry.Attempts = answer.Telemetry.AttemptCount
	}

	if err := s.interactions.Append(ctx, entry); err != nil {
		log.Error("interaction log append failed",
			slog.String("card_id", cardID.String()),
			slog.String("error", err.Error()))
	}
}

// orderQueue applies the deck's review-order setting to a card pool.
func (s *serviceImpl) orderQueue(ids []uuid.UUID, settings domain.DeckSettings) []uuid.UUID {
	if settings.ReviewOrder == domain.ReviewOrderRandom {
		return scheduler.Shuffle(ids)
	}
	ordered := make([]uuid.UUID, len(ids))
	copy(ordered, ids)
	return ordered
}

// startResult resolves the session queue into cards. Callers must hold
// sess.mu or have exclusive access to the session.
func (s *serviceImpl) startResult(deck *domain.Deck, sess *session) *StartResult {
	cards := make([]domain.Card, 0, len(sess.queue))
	for _, id := range sess.queue {
		if card := deck.CardByID(id); card != nil {
			cards = append(cards, *card)
		}
	}

	return &StartResult{
		DeckID:   deck.ID,
		Mode:     sess.mode,
		Queue:    cards,
		Progress: s.progressLocked(deck, sess),
	}
}

// progressLocked builds the mode-shaped progress snapshot. Callers must
// hold sess.mu.
func (s *serviceImpl) progressLocked(deck *domain.Deck, sess *session) Progress {
	progress := Progress{
		Mode:      sess.mode,
		Total:     len(deck.Cards),
		Remaining: len(sess.queue) - sess.position,
	}

	switch sess.mode {
	case domain.StudyModeLearn:
		if deck.LearnState == nil {
			break
		}
		bucket := scheduler.NewBucket(deck.LearnState, sess.settings.MaxBuckets)
		progress.Round = deck.LearnState.CurrentRound
		progress.Percent = bucket.Progress()
		progress.BucketCounts = bucket.Counts()
		progress.Mastered = bucket.MasteredCount()
		progress.Complete = len(bucket.Unmastered()) == 0 && progress.Total > 0

	case domain.StudyModeReview:
		if deck.ReviewState == nil {
			break
		}
		round := scheduler.NewRound(deck.ReviewState)
		progress.Round = deck.ReviewState.CurrentRound
		progress.Percent = round.Progress()
		progress.StillLearning = len(deck.ReviewState.StillLearning)
		progress.Correct = len(deck.ReviewState.Correct)
		progress.Complete = round.Complete()

	case domain.StudyModeSpaced:
		if len(sess.queue) > 0 {
			progress.Percent = float64(sess.position) / float64(len(sess.queue))
		}
		progress.Complete = progress.Remaining == 0
	}

	return progress
}
