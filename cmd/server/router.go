package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/studystack/studystack-api/internal/api"
	apiMiddleware "github.com/studystack/studystack-api/internal/api/middleware"
)

// setupRouter configures the application router with all routes and
// middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	deckHandler := api.NewDeckHandler(app.deckService, app.logger)
	studyHandler := api.NewStudyHandler(app.studyService, app.logger)
	recallHandler := api.NewRecallHandler(app.tracker, app.logger)

	r.Route("/api", func(r chi.Router) {
		// Deck management endpoints
		r.Post("/decks", deckHandler.CreateDeck)
		r.Get("/decks", deckHandler.ListDecks)
		r.Get("/decks/{id}", deckHandler.GetDeck)
		r.Patch("/decks/{id}", deckHandler.RenameDeck)
		r.Delete("/decks/{id}", deckHandler.DeleteDeck)
		r.Put("/decks/{id}/settings", deckHandler.UpdateSettings)
		r.Post("/decks/{id}/cards", deckHandler.AddCards)
		r.Delete("/decks/{id}/cards/{cardID}", deckHandler.RemoveCard)

		// Study session endpoints
		r.Post("/decks/{id}/study", studyHandler.StartSession)
		r.Delete("/decks/{id}/study", studyHandler.AbandonSession)
		r.Get("/decks/{id}/study/next", studyHandler.NextCard)
		r.Post("/decks/{id}/study/answer", studyHandler.SubmitAnswer)
		r.Post("/decks/{id}/study/advance", studyHandler.AdvanceRound)
		r.Get("/decks/{id}/study/progress", studyHandler.Progress)

		// Recall prediction endpoint
		r.Get("/cards/{id}/recall", recallHandler.GetRecall)
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
