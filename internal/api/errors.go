package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/studystack/studystack-api/internal/domain"
	"github.com/studystack/studystack-api/internal/service/study"
	"github.com/studystack/studystack-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes. This
// keeps internal error types from leaking to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, store.ErrDeckNotFound),
		errors.Is(err, store.ErrKnowledgeStateNotFound),
		errors.Is(err, store.ErrNotFound),
		errors.Is(err, study.ErrCardNotInDeck):
		return http.StatusNotFound

	// Session state errors
	case errors.Is(err, study.ErrNoActiveSession):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, study.ErrInvalidMode),
		errors.Is(err, study.ErrWrongMode),
		errors.Is(err, study.ErrInvalidAnswer):
		return http.StatusBadRequest

	// Special cases: nothing to serve is not a failure
	case errors.Is(err, study.ErrNoCardsDue),
		errors.Is(err, study.ErrSessionComplete):
		return http.StatusNoContent

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, store.ErrDeckNotFound):
		return "Deck not found"

	case errors.Is(err, study.ErrCardNotInDeck):
		return "Card not found in deck"

	case errors.Is(err, store.ErrKnowledgeStateNotFound):
		return "Card has never been reviewed"

	case errors.Is(err, study.ErrNoActiveSession):
		return "No active study session for this deck"

	case errors.Is(err, study.ErrInvalidMode):
		return "Unknown study mode"

	case errors.Is(err, study.ErrWrongMode):
		return "Operation not valid for this session mode"

	case errors.Is(err, study.ErrInvalidAnswer):
		return "Invalid answer"

	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrInvalidEntity):
		return "Invalid request data"

	default:
		if strings.Contains(err.Error(), "save deck") {
			return "Failed to save study progress"
		}
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError turns a struct-tag validation error into a
// user-friendly message without echoing the submitted values.
func SanitizeValidationError(err error) string {
	errMsg := err.Error()

	if strings.Contains(errMsg, "Field validation") {
		parts := strings.Split(errMsg, "Error:")
		if len(parts) >= 2 {
			fieldParts := strings.Split(parts[1], "'")
			if len(fieldParts) >= 3 {
				field := fieldParts[1]
				var tag string
				if len(fieldParts) >= 5 {
					tag = fieldParts[3]
				}
				if tag != "" {
					return fmt.Sprintf("Invalid %s: %s", field, getValidationTagMessage(tag))
				}
				return fmt.Sprintf("Invalid %s", field)
			}
		}
	}

	return "Validation error"
}

func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "min":
		return "too small"
	case "max":
		return "too large"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}
