package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/studystack/studystack-api/internal/config"
	"github.com/studystack/studystack-api/internal/domain/scoring"
	"github.com/studystack/studystack-api/internal/domain/sm2"
	"github.com/studystack/studystack-api/internal/platform/logger"
	"github.com/studystack/studystack-api/internal/platform/postgres"
	"github.com/studystack/studystack-api/internal/reminder"
	"github.com/studystack/studystack-api/internal/service"
	"github.com/studystack/studystack-api/internal/service/knowledge"
	"github.com/studystack/studystack-api/internal/service/study"
	"github.com/studystack/studystack-api/internal/store"
)

// application holds the wired dependencies for the server process.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	deckStore        store.DeckStore
	knowledgeStore   store.KnowledgeStore
	interactionStore store.InteractionLogStore

	deckService  service.DeckService
	studyService study.Service
	tracker      knowledge.Tracker
	digest       *reminder.Digest
}

// newApplication loads configuration and wires every component.
func newApplication() (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	log.Info("server configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.Bool("digest_enabled", cfg.Study.DigestEnabled))

	db, err := openDatabase(cfg.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := runMigrations(db, log); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	app := &application{
		config: cfg,
		logger: log,
		db:     db,
	}

	app.deckStore = postgres.NewPostgresDeckStore(db, log)
	app.knowledgeStore = postgres.NewPostgresKnowledgeStore(db, log)
	app.interactionStore = postgres.NewPostgresInteractionLogStore(db, log)

	app.tracker = knowledge.NewTracker(cfg.Study.UserID, app.knowledgeStore, log)
	app.deckService = service.NewDeckService(app.deckStore, app.knowledgeStore, cfg.Study.UserID, log)
	app.studyService = study.NewService(study.Config{
		DeckStore:        app.deckStore,
		InteractionStore: app.interactionStore,
		Tracker:          app.tracker,
		SM2Service:       sm2.NewDefaultService(),
		Baseline: scoring.Baseline{
			LatencyMS: cfg.Study.BaselineLatencyMS,
			Fluency:   cfg.Study.BaselineFluency,
		},
		UserID: cfg.Study.UserID,
		Logger: log,
	})

	if cfg.Study.DigestEnabled {
		app.digest = reminder.NewDigest(app.deckStore, log)
	}

	return app, nil
}

// run starts the digest job and the HTTP server, blocking until the
// context is canceled or the server fails.
func (app *application) run(ctx context.Context) error {
	if app.digest != nil {
		if err := app.digest.Start(); err != nil {
			return fmt.Errorf("failed to start due digest: %w", err)
		}
	}

	return app.serve(ctx)
}

// close releases the application's resources.
func (app *application) close() {
	if app.digest != nil {
		app.digest.Stop()
	}
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("failed to close database", slog.String("error", err.Error()))
		}
	}
}
