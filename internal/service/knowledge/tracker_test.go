package knowledge

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studystack/studystack-api/internal/domain"
	"github.com/studystack/studystack-api/internal/store"
)

// fakeKnowledgeStore is an in-memory store.KnowledgeStore.
type fakeKnowledgeStore struct {
	states  map[string]*domain.KnowledgeState
	saveErr error
	getErr  error
}

func newFakeKnowledgeStore() *fakeKnowledgeStore {
	return &fakeKnowledgeStore{states: make(map[string]*domain.KnowledgeState)}
}

func (f *fakeKnowledgeStore) key(userID string, cardID uuid.UUID) string {
	return userID + "/" + cardID.String()
}

func (f *fakeKnowledgeStore) Get(
	ctx context.Context,
	userID string,
	cardID uuid.UUID,
) (*domain.KnowledgeState, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	state, ok := f.states[f.key(userID, cardID)]
	if !ok {
		return nil, store.ErrKnowledgeStateNotFound
	}
	copied := *state
	return &copied, nil
}

func (f *fakeKnowledgeStore) Save(ctx context.Context, state *domain.KnowledgeState) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	copied := *state
	f.states[f.key(state.UserID, state.CardID)] = &copied
	return nil
}

func (f *fakeKnowledgeStore) DeleteForCards(
	ctx context.Context,
	userID string,
	cardIDs []uuid.UUID,
) error {
	for _, id := range cardIDs {
		delete(f.states, f.key(userID, id))
	}
	return nil
}

func (f *fakeKnowledgeStore) WithTx(tx *sql.Tx) store.KnowledgeStore {
	return f
}

func TestUpdateFirstReviewCreatesState(t *testing.T) {
	t.Parallel()

	fake := newFakeKnowledgeStore()
	tracker := NewTracker(domain.DefaultUserID, fake, nil)
	cardID := uuid.New()

	state, err := tracker.Update(context.Background(), cardID, 1.0, false)
	require.NoError(t, err)

	// First review starts from mastery 0, stability 1. A perfect IQS
	// lifts mastery all the way to 1.
	assert.InDelta(t, 1.0, state.MasteryScore, 1e-9)
	assert.InDelta(t, 1.0, state.Stability, 1e-9)
	assert.False(t, state.LastReviewed.IsZero())
}

func TestUpdateMasteryRecurrence(t *testing.T) {
	t.Parallel()

	fake := newFakeKnowledgeStore()
	tracker := NewTracker(domain.DefaultUserID, fake, nil)
	cardID := uuid.New()
	ctx := context.Background()

	// IQS 0.75: mastery' = m + (1-m)*0.5, halving the gap each time.
	state, err := tracker.Update(ctx, cardID, 0.75, false)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, state.MasteryScore, 1e-9)

	state, err = tracker.Update(ctx, cardID, 0.75, false)
	require.NoError(t, err)
	assert.InDelta(t, 0.75, state.MasteryScore, 1e-9)

	// A bad answer (IQS 0.25) pulls mastery down:
	// m' = 0.75 + 0.25*(-0.5) = 0.625.
	state, err = tracker.Update(ctx, cardID, 0.25, false)
	require.NoError(t, err)
	assert.InDelta(t, 0.625, state.MasteryScore, 1e-9)
}

func TestUpdateStabilityOnlyMovesInSpacedMode(t *testing.T) {
	t.Parallel()

	fake := newFakeKnowledgeStore()
	tracker := NewTracker(domain.DefaultUserID, fake, nil)
	cardID := uuid.New()
	ctx := context.Background()

	state, err := tracker.Update(ctx, cardID, 0.9, false)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, state.Stability, 1e-9, "non-spaced review must not touch stability")

	// Spaced pass: stability *= 1 + 2*iqs.
	state, err = tracker.Update(ctx, cardID, 0.9, true)
	require.NoError(t, err)
	assert.InDelta(t, 2.8, state.Stability, 1e-9)

	// Spaced fail: stability halves.
	state, err = tracker.Update(ctx, cardID, 0.3, true)
	require.NoError(t, err)
	assert.InDelta(t, 1.4, state.Stability, 1e-9)
}

func TestUpdateClampsMastery(t *testing.T) {
	t.Parallel()

	fake := newFakeKnowledgeStore()
	tracker := NewTracker(domain.DefaultUserID, fake, nil)
	cardID := uuid.New()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		state, err := tracker.Update(ctx, cardID, 1.0, false)
		require.NoError(t, err)
		assert.LessOrEqual(t, state.MasteryScore, 1.0)
	}

	for i := 0; i < 10; i++ {
		state, err := tracker.Update(ctx, cardID, 0.0, false)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, state.MasteryScore, 0.0)
	}
}

func TestUpdateRejectsOutOfRangeIQS(t *testing.T) {
	t.Parallel()

	tracker := NewTracker(domain.DefaultUserID, newFakeKnowledgeStore(), nil)

	_, err := tracker.Update(context.Background(), uuid.New(), 1.5, false)
	assert.Error(t, err)

	_, err = tracker.Update(context.Background(), uuid.New(), -0.1, false)
	assert.Error(t, err)
}

func TestUpdateSurfacesStoreErrors(t *testing.T) {
	t.Parallel()

	fake := newFakeKnowledgeStore()
	fake.saveErr = errors.New("disk full")
	tracker := NewTracker(domain.DefaultUserID, fake, nil)

	_, err := tracker.Update(context.Background(), uuid.New(), 0.8, false)
	assert.ErrorContains(t, err, "disk full")
}

func TestMasteryCache(t *testing.T) {
	t.Parallel()

	fake := newFakeKnowledgeStore()
	tracker := NewTracker(domain.DefaultUserID, fake, nil)
	cardID := uuid.New()

	_, ok := tracker.Mastery(cardID)
	assert.False(t, ok, "cache must be empty before any update")

	state, err := tracker.Update(context.Background(), cardID, 0.75, false)
	require.NoError(t, err)

	cached, ok := tracker.Mastery(cardID)
	require.True(t, ok)
	assert.Equal(t, state.MasteryScore, cached)
}

func TestGetPassesThrough(t *testing.T) {
	t.Parallel()

	fake := newFakeKnowledgeStore()
	tracker := NewTracker(domain.DefaultUserID, fake, nil)
	cardID := uuid.New()

	_, err := tracker.Get(context.Background(), cardID)
	assert.ErrorIs(t, err, store.ErrKnowledgeStateNotFound)

	now := time.Now().UTC()
	require.NoError(t, fake.Save(context.Background(), domain.NewKnowledgeState(domain.DefaultUserID, cardID, now)))

	state, err := tracker.Get(context.Background(), cardID)
	require.NoError(t, err)
	assert.Equal(t, cardID, state.CardID)
}
