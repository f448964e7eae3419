package study

import (
	"sync"

	"github.com/google/uuid"

	"github.com/studystack/studystack-api/internal/domain"
)

// session is the in-memory state of one running study session. The
// scheduler state itself lives on the deck and is persisted after every
// answer; the session only tracks the serving queue and mode.
type session struct {
	mu sync.Mutex

	deckID   uuid.UUID
	mode     domain.StudyMode
	settings domain.DeckSettings
	queue    []uuid.UUID
	position int
}

// peek returns the next unanswered card ID, or false when the queue is
// exhausted. Callers must hold s.mu.
func (s *session) peek() (uuid.UUID, bool) {
	if s.position >= len(s.queue) {
		return uuid.Nil, false
	}
	return s.queue[s.position], true
}

// advance moves past the card at the head of the queue if it matches
// the given ID. Out-of-order answers are graded but do not consume the
// queue head. Callers must hold s.mu.
func (s *session) advance(cardID uuid.UUID) {
	if head, ok := s.peek(); ok && head == cardID {
		s.position++
	}
}

// sessionManager holds the active session per deck.
type sessionManager struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*session
}

func newSessionManager() *sessionManager {
	return &sessionManager{sessions: make(map[uuid.UUID]*session)}
}

// put installs a session for the deck, replacing any existing one.
func (m *sessionManager) put(s *session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.deckID] = s
}

// get returns the deck's active session, or nil.
func (m *sessionManager) get(deckID uuid.UUID) *session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sessions[deckID]
}

// remove discards the deck's active session.
func (m *sessionManager) remove(deckID uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, deckID)
}
