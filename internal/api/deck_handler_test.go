package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studystack/studystack-api/internal/domain"
	"github.com/studystack/studystack-api/internal/service"
	"github.com/studystack/studystack-api/internal/store"
)

// fakeDeckService backs handler tests with canned decks.
type fakeDeckService struct {
	service.DeckService
	deck    *domain.Deck
	decks   []*domain.Deck
	err     error
	gotName string
}

func (f *fakeDeckService) Create(
	ctx context.Context,
	name string,
	cards []service.CardInput,
) (*domain.Deck, error) {
	f.gotName = name
	return f.deck, f.err
}

func (f *fakeDeckService) Get(ctx context.Context, id uuid.UUID) (*domain.Deck, error) {
	return f.deck, f.err
}

func (f *fakeDeckService) List(ctx context.Context) ([]*domain.Deck, error) {
	return f.decks, f.err
}

func (f *fakeDeckService) Delete(ctx context.Context, id uuid.UUID) error {
	return f.err
}

func newDeckRouter(svc service.DeckService) http.Handler {
	handler := NewDeckHandler(svc, testLogger())
	r := chi.NewRouter()
	r.Post("/decks", handler.CreateDeck)
	r.Get("/decks", handler.ListDecks)
	r.Get("/decks/{id}", handler.GetDeck)
	r.Delete("/decks/{id}", handler.DeleteDeck)
	return r
}

func sampleDeck(t *testing.T) *domain.Deck {
	t.Helper()
	card, err := domain.NewCard("q", "a")
	require.NoError(t, err)
	deck, err := domain.NewDeck("Sample", []domain.Card{*card})
	require.NoError(t, err)
	return deck
}

func TestCreateDeckHandler(t *testing.T) {
	t.Parallel()

	fake := &fakeDeckService{deck: sampleDeck(t)}
	router := newDeckRouter(fake)

	body := `{"name":"Sample","cards":[{"question":"q","answer":"a"}]}`
	req := httptest.NewRequest(http.MethodPost, "/decks", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Sample", fake.gotName)

	var resp DeckResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Sample", resp.Name)
	assert.Equal(t, 1, resp.CardCount)
}

func TestCreateDeckHandlerRequiresName(t *testing.T) {
	t.Parallel()

	router := newDeckRouter(&fakeDeckService{})

	req := httptest.NewRequest(http.MethodPost, "/decks", strings.NewReader(`{"cards":[]}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Name")
}

func TestGetDeckHandlerNotFound(t *testing.T) {
	t.Parallel()

	router := newDeckRouter(&fakeDeckService{err: store.ErrDeckNotFound})

	req := httptest.NewRequest(http.MethodGet, "/decks/"+uuid.NewString(), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Deck not found")
}

func TestListDecksHandler(t *testing.T) {
	t.Parallel()

	fake := &fakeDeckService{decks: []*domain.Deck{sampleDeck(t), sampleDeck(t)}}
	router := newDeckRouter(fake)

	req := httptest.NewRequest(http.MethodGet, "/decks", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp []DeckSummaryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp, 2)
	assert.Equal(t, 1, resp[0].CardCount)
}

func TestDeleteDeckHandler(t *testing.T) {
	t.Parallel()

	router := newDeckRouter(&fakeDeckService{})

	req := httptest.NewRequest(http.MethodDelete, "/decks/"+uuid.NewString(), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}
