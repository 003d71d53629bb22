package store

import "errors"

// Common store errors used across all store implementations.
var (
	// ErrLoadFailed is returned when a collection cannot be read from the
	// underlying storage for reasons other than malformed content (which
	// degrades to the empty default instead).
	ErrLoadFailed = errors.New("collection load failed")

	// ErrSaveFailed is returned when a collection cannot be written to the
	// underlying storage. The in-memory collection stays valid; the caller
	// may retry, at the risk of data loss if the process exits first.
	ErrSaveFailed = errors.New("collection save failed")
)
