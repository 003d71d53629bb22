// Package domain defines the core business entities and errors.
package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrUnknownCategory is returned when an operation names a category
	// that is not part of the configured category set.
	ErrUnknownCategory = errors.New("unknown category")

	// ErrIndexOutOfRange is returned when an item is addressed by a position
	// that does not exist in its category. This should be unreachable through
	// normal API flow and indicates a stale or corrupted client view.
	ErrIndexOutOfRange = errors.New("item index out of range")
)
