// Package knowledge maintains the per-card mastery and stability
// estimates that feed the recall predictor and study analytics.
package knowledge

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/studystack/studystack-api/internal/domain"
	"github.com/studystack/studystack-api/internal/platform/logger"
	"github.com/studystack/studystack-api/internal/store"
)

// Tracker updates and serves per-card knowledge state.
type Tracker interface {
	// Update applies one interaction quality score to the card's
	// knowledge state and persists the result. The state is created
	// with defaults on the card's first review. Stability only moves
	// in spaced mode; mastery moves in every mode:
	//
	//	mastery' = clamp01(mastery + (1-mastery) * (2*iqs - 1))
	//
	// so correct-leaning answers (iqs > 0.5) push mastery up in
	// proportion to the remaining headroom and incorrect-leaning
	// answers push it down.
	Update(ctx context.Context, cardID uuid.UUID, iqs float64, spaced bool) (*domain.KnowledgeState, error)

	// Get retrieves the persisted knowledge state for a card.
	// Returns store.ErrKnowledgeStateNotFound when the card has never
	// been reviewed.
	Get(ctx context.Context, cardID uuid.UUID) (*domain.KnowledgeState, error)

	// Mastery returns the cached in-memory mastery score for a card,
	// if one has been computed this process lifetime.
	Mastery(cardID uuid.UUID) (float64, bool)
}

// trackerImpl implements the Tracker interface.
type trackerImpl struct {
	userID string
	stores store.KnowledgeStore
	logger *slog.Logger

	mu    sync.Mutex
	cache map[uuid.UUID]float64
}

// NewTracker creates a Tracker for the given user.
func NewTracker(userID string, knowledgeStore store.KnowledgeStore, log *slog.Logger) Tracker {
	if knowledgeStore == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("knowledgeStore cannot be nil")
	}

	if log == nil {
		log = slog.Default()
	}

	return &trackerImpl{
		userID: userID,
		stores: knowledgeStore,
		logger: log.With(slog.String("component", "knowledge_tracker")),
		cache:  make(map[uuid.UUID]float64),
	}
}

// Update implements Tracker.Update.
func (t *trackerImpl) Update(
	ctx context.Context,
	cardID uuid.UUID,
	iqs float64,
	spaced bool,
) (*domain.KnowledgeState, error) {
	log := logger.FromContextOrDefault(ctx, t.logger)

	if iqs < 0 || iqs > 1 {
		return nil, fmt.Errorf("iqs out of range: %f", iqs)
	}

	now := time.Now().UTC()

	state, err := t.stores.Get(ctx, t.userID, cardID)
	if err != nil {
		if !errors.Is(err, store.ErrKnowledgeStateNotFound) {
			return nil, fmt.Errorf("failed to get knowledge state: %w", err)
		}
		state = domain.NewKnowledgeState(t.userID, cardID, now)
	}

	state.MasteryScore = clamp01(state.MasteryScore + (1-state.MasteryScore)*(2*iqs-1))

	if spaced {
		if iqs > 0.5 {
			state.Stability *= 1 + 2*iqs
		} else {
			state.Stability *= 0.5
		}
	}

	state.LastReviewed = now

	if err := t.stores.Save(ctx, state); err != nil {
		return nil, fmt.Errorf("failed to save knowledge state: %w", err)
	}

	t.mu.Lock()
	t.cache[cardID] = state.MasteryScore
	t.mu.Unlock()

	log.Debug("knowledge state updated",
		slog.String("card_id", cardID.String()),
		slog.Float64("iqs", iqs),
		slog.Float64("mastery", state.MasteryScore),
		slog.Float64("stability", state.Stability))

	return state, nil
}

// Get implements Tracker.Get.
func (t *trackerImpl) Get(ctx context.Context, cardID uuid.UUID) (*domain.KnowledgeState, error) {
	return t.stores.Get(ctx, t.userID, cardID)
}

// Mastery implements Tracker.Mastery.
func (t *trackerImpl) Mastery(cardID uuid.UUID) (float64, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	score, ok := t.cache[cardID]
	return score, ok
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
