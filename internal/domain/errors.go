package domain

import "errors"

// Common validation errors shared across domain entities.
var (
	// ErrValidation is the base error for all domain validation failures.
	// Entity-specific errors wrap it so callers can match broadly with
	// errors.Is(err, ErrValidation).
	ErrValidation = errors.New("validation error")

	// ErrStudyModeInvalid is returned when a study mode string is not one
	// of learn, review, or spaced.
	ErrStudyModeInvalid = errors.New("invalid study mode")
)
