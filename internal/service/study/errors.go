package study

import "errors"

// Common study session errors. Handlers map these to HTTP statuses; the
// wrapped store errors stay available for errors.Is matching.
var (
	// ErrNoActiveSession is returned when an answer or advance arrives
	// for a deck with no running session.
	ErrNoActiveSession = errors.New("no active study session for deck")

	// ErrSessionComplete is returned when the session's queue is
	// exhausted and the scheduler has nothing left to serve.
	ErrSessionComplete = errors.New("study session complete")

	// ErrNoCardsDue is returned when a spaced session is started and no
	// cards are due for review.
	ErrNoCardsDue = errors.New("no cards due for review")

	// ErrInvalidMode is returned when the requested study mode is not
	// one of learn, review, or spaced.
	ErrInvalidMode = errors.New("invalid study mode")

	// ErrWrongMode is returned when an operation does not apply to the
	// session's mode, such as advancing rounds in spaced mode.
	ErrWrongMode = errors.New("operation not valid for session mode")

	// ErrInvalidAnswer is returned when a submitted answer is missing
	// the fields its mode requires or carries out-of-range values.
	ErrInvalidAnswer = errors.New("invalid answer submission")

	// ErrCardNotInDeck is returned when an answer targets a card the
	// deck does not contain.
	ErrCardNotInDeck = errors.New("card not found in deck")
)
