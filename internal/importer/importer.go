// Package importer builds decks from spreadsheet and CSV files. The
// expected layout is two columns, question then answer, with an
// optional header row.
package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/studystack/studystack-api/internal/domain"
	"github.com/studystack/studystack-api/internal/service"
)

// Import errors
var (
	// ErrUnsupportedFormat is returned for file extensions other than
	// .csv, .xlsx, and .xlsm.
	ErrUnsupportedFormat = errors.New("unsupported import format")

	// ErrNoCards is returned when the file parses but contains no
	// usable question/answer rows.
	ErrNoCards = errors.New("no cards found in import file")
)

// Importer parses card files and creates decks from them.
type Importer struct {
	deckService service.DeckService
	logger      *slog.Logger
}

// NewImporter creates an Importer backed by the given deck service.
func NewImporter(deckService service.DeckService, log *slog.Logger) *Importer {
	if deckService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("deck service cannot be nil")
	}

	if log == nil {
		log = slog.Default()
	}

	return &Importer{
		deckService: deckService,
		logger:      log.With(slog.String("component", "importer")),
	}
}

// ImportFile parses the file at path and creates a deck named after it
// (or the given name, when non-empty).
func (im *Importer) ImportFile(ctx context.Context, path, name string) (*domain.Deck, error) {
	cards, err := ParseFile(path)
	if err != nil {
		return nil, err
	}

	if name == "" {
		base := filepath.Base(path)
		name = strings.TrimSuffix(base, filepath.Ext(base))
	}

	deck, err := im.deckService.Create(ctx, name, cards)
	if err != nil {
		return nil, fmt.Errorf("failed to create deck: %w", err)
	}

	im.logger.Info("deck imported",
		slog.String("deck_id", deck.ID.String()),
		slog.String("source", filepath.Base(path)),
		slog.Int("cards", len(deck.Cards)))

	return deck, nil
}

// ParseFile reads question/answer pairs from a .csv, .xlsx, or .xlsm
// file.
func ParseFile(path string) ([]service.CardInput, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open import file: %w", err)
		}
		defer func() { _ = f.Close() }()
		return parseCSV(f)

	case ".xlsx", ".xlsm":
		return parseWorkbook(path)

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

func parseCSV(r io.Reader) ([]service.CardInput, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	var rows [][]string
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %w", err)
		}
		rows = append(rows, record)
	}

	return rowsToCards(rows)
}

func parseWorkbook(path string) ([]service.CardInput, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoCards
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}

	return rowsToCards(rows)
}

// rowsToCards converts raw rows to card inputs. Rows with fewer than
// two non-empty cells are skipped, as is a leading header row.
func rowsToCards(rows [][]string) ([]service.CardInput, error) {
	var cards []service.CardInput
	for i, row := range rows {
		if len(row) < 2 {
			continue
		}

		question := strings.TrimSpace(row[0])
		answer := strings.TrimSpace(row[1])
		if question == "" || answer == "" {
			continue
		}

		if i == 0 && isHeaderRow(question, answer) {
			continue
		}

		cards = append(cards, service.CardInput{Question: question, Answer: answer})
	}

	if len(cards) == 0 {
		return nil, ErrNoCards
	}

	return cards, nil
}

func isHeaderRow(question, answer string) bool {
	q := strings.ToLower(question)
	a := strings.ToLower(answer)
	return (q == "question" || q == "front" || q == "term") &&
		(a == "answer" || a == "back" || a == "definition")
}
