// Package service orchestrates the item store and the practice engine:
// collection CRUD with persistence, summary stats, and drill sessions.
package service

import "errors"

// Common service errors
var (
	// ErrSessionNotFound indicates that no active drill session carries the
	// given ID. Sessions disappear when their drill completes or when a new
	// drill of the same protocol starts.
	ErrSessionNotFound = errors.New("practice session not found")
)
