// Package store defines the persistence boundary for the vocabulary
// collection. The core treats persistence as an external collaborator with a
// document contract: load the whole collection, save the whole collection.
package store

import (
	"context"

	"github.com/phrazzld/vocabvault/internal/domain"
)

// ItemStore is the persistence collaborator contract.
// Version: 1.0
type ItemStore interface {
	// Load reads the full collection. Implementations must guarantee that
	// every configured category key exists in the result (empty sequence if
	// absent in underlying storage), and must degrade malformed or corrupt
	// storage to the empty default collection instead of failing.
	//
	// Stored records missing a score default to zero, and records missing a
	// stable ID are assigned one on load, so documents written by older
	// versions of the program remain readable.
	Load(ctx context.Context) (domain.Collection, error)

	// Save writes the full collection, replacing whatever was stored before.
	// Failures are surfaced to the caller wrapped in ErrSaveFailed; they must
	// never be silently swallowed. In-memory state remains valid after a
	// failed save and the caller may retry.
	Save(ctx context.Context, collection domain.Collection) error
}
