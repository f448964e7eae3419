// Package api provides HTTP handlers for the API.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/studystack/studystack-api/internal/api/shared"
	"github.com/studystack/studystack-api/internal/domain"
	"github.com/studystack/studystack-api/internal/platform/logger"
	"github.com/studystack/studystack-api/internal/service"
)

// DeckResponse represents the response data for a deck.
type DeckResponse struct {
	ID        string              `json:"id"`
	Name      string              `json:"name"`
	Settings  domain.DeckSettings `json:"settings"`
	Cards     []domain.Card       `json:"cards"`
	CardCount int                 `json:"card_count"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

// DeckSummaryResponse is the list-view shape of a deck, without cards.
type DeckSummaryResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CardCount int       `json:"card_count"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateDeckRequest represents the request body for creating a deck.
type CreateDeckRequest struct {
	Name  string              `json:"name" validate:"required"`
	Cards []service.CardInput `json:"cards" validate:"dive"`
}

// RenameDeckRequest represents the request body for renaming a deck.
type RenameDeckRequest struct {
	Name string `json:"name" validate:"required"`
}

// AddCardsRequest represents the request body for adding cards.
type AddCardsRequest struct {
	Cards []service.CardInput `json:"cards" validate:"required,min=1,dive"`
}

// DeckHandler handles deck-related HTTP requests.
type DeckHandler struct {
	deckService service.DeckService
	logger      *slog.Logger
}

// NewDeckHandler creates a new DeckHandler.
func NewDeckHandler(deckService service.DeckService, log *slog.Logger) *DeckHandler {
	if log == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for DeckHandler")
	}

	return &DeckHandler{
		deckService: deckService,
		logger:      log.With(slog.String("component", "deck_handler")),
	}
}

// CreateDeck handles POST /decks requests.
func (h *DeckHandler) CreateDeck(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateDeckRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	deck, err := h.deckService.Create(r.Context(), req.Name, req.Cards)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Info("deck created via API", slog.String("deck_id", deck.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, deckToResponse(deck))
}

// ListDecks handles GET /decks requests.
func (h *DeckHandler) ListDecks(w http.ResponseWriter, r *http.Request) {
	decks, err := h.deckService.List(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	summaries := make([]DeckSummaryResponse, 0, len(decks))
	for _, deck := range decks {
		summaries = append(summaries, DeckSummaryResponse{
			ID:        deck.ID.String(),
			Name:      deck.Name,
			CardCount: len(deck.Cards),
			CreatedAt: deck.CreatedAt,
			UpdatedAt: deck.UpdatedAt,
		})
	}

	shared.RespondWithJSON(w, r, http.StatusOK, summaries)
}

// GetDeck handles GET /decks/{id} requests.
func (h *DeckHandler) GetDeck(w http.ResponseWriter, r *http.Request) {
	deckID, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	deck, err := h.deckService.Get(r.Context(), deckID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, deckToResponse(deck))
}

// RenameDeck handles PATCH /decks/{id} requests.
func (h *DeckHandler) RenameDeck(w http.ResponseWriter, r *http.Request) {
	deckID, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	var req RenameDeckRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	deck, err := h.deckService.Rename(r.Context(), deckID, req.Name)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, deckToResponse(deck))
}

// UpdateSettings handles PUT /decks/{id}/settings requests.
func (h *DeckHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	deckID, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	var settings domain.DeckSettings
	if err := shared.DecodeJSON(r, &settings); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}

	deck, err := h.deckService.UpdateSettings(r.Context(), deckID, settings)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, deckToResponse(deck))
}

// AddCards handles POST /decks/{id}/cards requests.
func (h *DeckHandler) AddCards(w http.ResponseWriter, r *http.Request) {
	deckID, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	var req AddCardsRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	deck, err := h.deckService.AddCards(r.Context(), deckID, req.Cards)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, deckToResponse(deck))
}

// RemoveCard handles DELETE /decks/{id}/cards/{cardID} requests.
func (h *DeckHandler) RemoveCard(w http.ResponseWriter, r *http.Request) {
	deckID, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}
	cardID, ok := parseIDParam(w, r, "cardID")
	if !ok {
		return
	}

	deck, err := h.deckService.RemoveCard(r.Context(), deckID, cardID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, deckToResponse(deck))
}

// DeleteDeck handles DELETE /decks/{id} requests.
func (h *DeckHandler) DeleteDeck(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	deckID, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.deckService.Delete(r.Context(), deckID); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Info("deck deleted via API", slog.String("deck_id", deckID.String()))
	w.WriteHeader(http.StatusNoContent)
}

// parseIDParam extracts and parses a UUID path parameter, writing a 400
// response on failure.
func parseIDParam(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	raw := chi.URLParam(r, name)
	if raw == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Missing "+name+" parameter")
		return uuid.Nil, false
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid "+name+" format")
		return uuid.Nil, false
	}

	return id, true
}

func deckToResponse(deck *domain.Deck) DeckResponse {
	return DeckResponse{
		ID:        deck.ID.String(),
		Name:      deck.Name,
		Settings:  deck.Settings.Merged(),
		Cards:     deck.Cards,
		CardCount: len(deck.Cards),
		CreatedAt: deck.CreatedAt,
		UpdatedAt: deck.UpdatedAt,
	}
}
