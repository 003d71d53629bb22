package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/phrazzld/vocabvault/internal/domain"
	"github.com/phrazzld/vocabvault/internal/domain/practice"
	"github.com/phrazzld/vocabvault/internal/service"
	"github.com/phrazzld/vocabvault/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, domain.ErrUnknownCategory),
		errors.Is(err, domain.ErrIndexOutOfRange),
		errors.Is(err, service.ErrSessionNotFound):
		return http.StatusNotFound

	// Bad request errors
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, practice.ErrInvalidMode),
		errors.Is(err, practice.ErrInvalidCount),
		errors.Is(err, practice.ErrInvalidOutcome),
		errors.Is(err, practice.ErrInvalidSide),
		errors.Is(err, practice.ErrInvalidSlot):
		return http.StatusBadRequest

	// Conflict errors: the request is well-formed but the drill state
	// forbids it.
	case errors.Is(err, practice.ErrEmptyCategory),
		errors.Is(err, practice.ErrDrillFinished),
		errors.Is(err, practice.ErrAlreadyJudged),
		errors.Is(err, practice.ErrNotJudged),
		errors.Is(err, practice.ErrSlotRetired),
		errors.Is(err, practice.ErrSlotLocked),
		errors.Is(err, practice.ErrRoundNotComplete):
		return http.StatusConflict

	// Default: internal server error (includes store failures)
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	// Not found errors
	case errors.Is(err, domain.ErrUnknownCategory):
		return "Category not found"

	case errors.Is(err, domain.ErrIndexOutOfRange):
		return "Item not found"

	case errors.Is(err, service.ErrSessionNotFound):
		return "Practice session not found"

	// Bad request errors
	case errors.Is(err, domain.ErrValidation):
		return "Invalid item data"

	case errors.Is(err, domain.ErrInvalidID):
		return "Invalid identifier"

	case errors.Is(err, practice.ErrInvalidMode):
		return "Invalid practice mode"

	case errors.Is(err, practice.ErrInvalidCount):
		return "Invalid item count"

	case errors.Is(err, practice.ErrInvalidOutcome):
		return "Invalid answer outcome"

	case errors.Is(err, practice.ErrInvalidSide),
		errors.Is(err, practice.ErrInvalidSlot):
		return "Invalid board position"

	// Drill state conflicts
	case errors.Is(err, practice.ErrEmptyCategory):
		return "Category has no items to practice"

	case errors.Is(err, practice.ErrDrillFinished):
		return "Practice session already finished"

	case errors.Is(err, practice.ErrAlreadyJudged):
		return "Card already answered"

	case errors.Is(err, practice.ErrNotJudged):
		return "Card not answered yet"

	case errors.Is(err, practice.ErrSlotRetired):
		return "Board position already matched"

	case errors.Is(err, practice.ErrSlotLocked):
		return "Board position locked by a pending mismatch"

	case errors.Is(err, practice.ErrRoundNotComplete):
		return "Round still has unmatched pairs"

	// Store errors surface as a generic persistence failure
	case errors.Is(err, store.ErrSaveFailed),
		errors.Is(err, store.ErrLoadFailed):
		return "Failed to persist vocabulary data"

	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError removes sensitive details from validation errors
// and returns a user-friendly message.
func SanitizeValidationError(err error) string {
	errMsg := err.Error()

	if strings.Contains(errMsg, "Field validation") {
		// Example format: "Key: 'AddItemRequest.Term' Error:Field validation
		// for 'Term' failed on the 'required' tag"
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

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "gte":
		return "too small"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}
