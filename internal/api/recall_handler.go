package api

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/studystack/studystack-api/internal/api/shared"
	"github.com/studystack/studystack-api/internal/domain/recall"
	"github.com/studystack/studystack-api/internal/platform/logger"
	"github.com/studystack/studystack-api/internal/service/knowledge"
	"github.com/studystack/studystack-api/internal/store"
)

// RecallResponse represents the predicted recall state for a card.
type RecallResponse struct {
	CardID       string    `json:"card_id"`
	Recall       float64   `json:"recall"`
	MasteryScore float64   `json:"mastery_score"`
	Stability    float64   `json:"stability"`
	LastReviewed time.Time `json:"last_reviewed"`
}

// RecallHandler serves recall predictions from the knowledge tracker.
type RecallHandler struct {
	tracker  knowledge.Tracker
	logger   *slog.Logger
	timeFunc func() time.Time
}

// NewRecallHandler creates a new RecallHandler.
func NewRecallHandler(tracker knowledge.Tracker, log *slog.Logger) *RecallHandler {
	if log == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for RecallHandler")
	}

	return &RecallHandler{
		tracker:  tracker,
		logger:   log.With(slog.String("component", "recall_handler")),
		timeFunc: func() time.Time { return time.Now().UTC() },
	}
}

// GetRecall handles GET /cards/{id}/recall requests. It predicts the
// probability the card can be recalled right now from its persisted
// knowledge state.
func (h *RecallHandler) GetRecall(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	cardID, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	state, err := h.tracker.Get(r.Context(), cardID)
	if errors.Is(err, store.ErrKnowledgeStateNotFound) {
		shared.RespondWithError(w, r, http.StatusNotFound, "Card has never been reviewed")
		return
	}
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	now := h.timeFunc()
	response := RecallResponse{
		CardID:       cardID.String(),
		Recall:       recall.Predict(state, now),
		MasteryScore: state.MasteryScore,
		Stability:    state.Stability,
		LastReviewed: state.LastReviewed,
	}

	log.Debug("recall predicted",
		slog.String("card_id", cardID.String()),
		slog.Float64("recall", response.Recall))
	shared.RespondWithJSON(w, r, http.StatusOK, response)
}
