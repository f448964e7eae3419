package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/studystack/studystack-api/internal/api/shared"
	"github.com/studystack/studystack-api/internal/domain"
	"github.com/studystack/studystack-api/internal/domain/scoring"
	"github.com/studystack/studystack-api/internal/platform/logger"
	"github.com/studystack/studystack-api/internal/service/study"
)

// StartSessionRequest represents the request body for starting a
// study session.
type StartSessionRequest struct {
	Mode string `json:"mode" validate:"required,oneof=learn review spaced"`
}

// TelemetryRequest carries the optional raw interaction telemetry for
// an answer.
type TelemetryRequest struct {
	RecallLatencyMS  float64 `json:"recall_latency_ms" validate:"gte=0"`
	AnswerFluency    float64 `json:"answer_fluency" validate:"gte=0"`
	TotalCorrections int     `json:"total_corrections" validate:"gte=0"`
	AttemptCount     int     `json:"attempt_count" validate:"gte=1"`
}

// SubmitAnswerRequest represents the request body for answering a card.
// Learn and review sessions grade on Correct; spaced sessions grade on
// Quality.
type SubmitAnswerRequest struct {
	CardID     string            `json:"card_id" validate:"required,uuid"`
	Correct    *bool             `json:"correct,omitempty"`
	Quality    *int              `json:"quality,omitempty" validate:"omitempty,gte=0,lte=5"`
	UserAnswer string            `json:"user_answer,omitempty"`
	Telemetry  *TelemetryRequest `json:"telemetry,omitempty"`
}

// StudyHandler handles study session HTTP requests.
type StudyHandler struct {
	studyService study.Service
	logger       *slog.Logger
}

// NewStudyHandler creates a new StudyHandler.
func NewStudyHandler(studyService study.Service, log *slog.Logger) *StudyHandler {
	if log == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for StudyHandler")
	}

	return &StudyHandler{
		studyService: studyService,
		logger:       log.With(slog.String("component", "study_handler")),
	}
}

// StartSession handles POST /decks/{id}/study requests.
func (h *StudyHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	deckID, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	var req StartSessionRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	result, err := h.studyService.Start(r.Context(), deckID, domain.StudyMode(req.Mode))
	if errors.Is(err, study.ErrNoCardsDue) {
		log.Debug("no cards due", slog.String("deck_id", deckID.String()))
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, result)
}

// NextCard handles GET /decks/{id}/study/next requests.
func (h *StudyHandler) NextCard(w http.ResponseWriter, r *http.Request) {
	deckID, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	card, err := h.studyService.NextCard(r.Context(), deckID)
	if errors.Is(err, study.ErrSessionComplete) {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, card)
}

// SubmitAnswer handles POST /decks/{id}/study/answer requests.
func (h *StudyHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	deckID, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	var req SubmitAnswerRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	cardID, err := parseUUIDField(req.CardID)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid card_id format")
		return
	}

	answer := study.Answer{
		Correct:    req.Correct,
		Quality:    req.Quality,
		UserAnswer: req.UserAnswer,
	}
	if req.Telemetry != nil {
		answer.Telemetry = &scoring.Interaction{
			RecallLatencyMS:  req.Telemetry.RecallLatencyMS,
			AnswerFluency:    req.Telemetry.AnswerFluency,
			TotalCorrections: req.Telemetry.TotalCorrections,
			AttemptCount:     req.Telemetry.AttemptCount,
		}
	}

	result, err := h.studyService.SubmitAnswer(r.Context(), deckID, cardID, answer)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("answer graded",
		slog.String("deck_id", deckID.String()),
		slog.String("card_id", cardID.String()),
		slog.Bool("correct", result.Correct))
	shared.RespondWithJSON(w, r, http.StatusOK, result)
}

// AdvanceRound handles POST /decks/{id}/study/advance requests.
func (h *StudyHandler) AdvanceRound(w http.ResponseWriter, r *http.Request) {
	deckID, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	result, err := h.studyService.AdvanceRound(r.Context(), deckID)
	if errors.Is(err, study.ErrSessionComplete) {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, result)
}

// Progress handles GET /decks/{id}/study/progress requests.
func (h *StudyHandler) Progress(w http.ResponseWriter, r *http.Request) {
	deckID, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	progress, err := h.studyService.Progress(r.Context(), deckID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, progress)
}

// AbandonSession handles DELETE /decks/{id}/study requests.
func (h *StudyHandler) AbandonSession(w http.ResponseWriter, r *http.Request) {
	deckID, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	h.studyService.Abandon(deckID)
	w.WriteHeader(http.StatusNoContent)
}
