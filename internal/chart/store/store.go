// Package store caches computed charts. A chart is deterministic in its
// birth record, so the cache key is the record's identity and entries can
// live for as long as the operator wants; the default TTL only bounds memory.
package store

import (
	"context"
	"time"
)

// Cache stores serialized chart results keyed by birth-record identity and
// keeps a newest-first list of recent computations.
type Cache interface {
	// Get returns the cached payload or sentinel.ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set stores the payload and promotes the key to the front of the
	// recent list.
	Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error
	// Recent returns up to n cached payloads, most recent first. Entries
	// whose payload has expired are skipped.
	Recent(ctx context.Context, n int) ([][]byte, error)
}
