package registry

import (
	"context"

	"melodie/pkg/midds/codec"
	"melodie/pkg/platform/sentinel"
)

var (
	// ErrNotFound keeps storage-specific 404s consistent across
	// implementations.
	ErrNotFound = sentinel.ErrNotFound
	// ErrConflict reports an insert racing an existing identifier.
	ErrConflict = sentinel.ErrConflict
)

// Store persists records. Implementations must allocate identifiers
// monotonically per kind.
type Store interface {
	// Save inserts the record under (kind, id). Fails with ErrConflict
	// when the slot is taken.
	Save(ctx context.Context, record Record) error
	// Find returns the record at (kind, id) or ErrNotFound.
	Find(ctx context.Context, kind codec.Kind, id uint64) (Record, error)
	// NextID allocates the next identifier for a kind.
	NextID(ctx context.Context, kind codec.Kind) (uint64, error)
}
