// Package main implements the deck import CLI. It reads a CSV or Excel
// file of question/answer pairs and creates a deck in the configured
// database.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/studystack/studystack-api/internal/config"
	"github.com/studystack/studystack-api/internal/importer"
	"github.com/studystack/studystack-api/internal/platform/logger"
	"github.com/studystack/studystack-api/internal/platform/postgres"
	"github.com/studystack/studystack-api/internal/service"
)

func main() {
	name := flag.String("name", "", "deck name (defaults to the file name)")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [-name NAME] FILE\n", os.Args[0])
		os.Exit(2)
	}
	path := flag.Arg(0)

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("warning: could not load .env file: %v", err)
	}

	if err := run(path, *name); err != nil {
		log.Fatalf("import failed: %v", err)
	}
}

func run(path, name string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logr, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	db, err := openDatabase(cfg.Database.URL)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	deckService := service.NewDeckService(
		postgres.NewPostgresDeckStore(db, logr),
		postgres.NewPostgresKnowledgeStore(db, logr),
		cfg.Study.UserID,
		logr,
	)
	im := importer.NewImporter(deckService, logr)

	deck, err := im.ImportFile(context.Background(), path, name)
	if err != nil {
		return err
	}

	fmt.Printf("imported deck %q (%s) with %d cards\n", deck.Name, deck.ID, len(deck.Cards))
	return nil
}
