package store

import (
	"context"
	"sync"
	"time"

	"ziwei/pkg/platform/sentinel"
	"ziwei/pkg/requestcontext"
)

type memoryEntry struct {
	payload   []byte
	expiresAt time.Time
}

// InMemoryCache is the default cache for single-process deployments and the
// test double for the Redis one. Expiry is checked lazily on read against
// the request-scoped clock.
type InMemoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	recent  []string // keys, most recent first
	maxKeys int
}

func NewInMemoryCache(maxKeys int) *InMemoryCache {
	if maxKeys <= 0 {
		maxKeys = 256
	}
	return &InMemoryCache{
		entries: make(map[string]memoryEntry),
		maxKeys: maxKeys,
	}
}

func (c *InMemoryCache) Get(ctx context.Context, key string) ([]byte, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || requestcontext.Now(ctx).After(entry.expiresAt) {
		return nil, sentinel.ErrNotFound
	}
	return entry.payload, nil
}

func (c *InMemoryCache) Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = memoryEntry{
		payload:   payload,
		expiresAt: requestcontext.Now(ctx).Add(ttl),
	}
	c.promote(key)

	// Evict the oldest keys beyond capacity.
	for len(c.recent) > c.maxKeys {
		last := c.recent[len(c.recent)-1]
		c.recent = c.recent[:len(c.recent)-1]
		delete(c.entries, last)
	}
	return nil
}

func (c *InMemoryCache) Recent(ctx context.Context, n int) ([][]byte, error) {
	now := requestcontext.Now(ctx)

	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([][]byte, 0, n)
	for _, key := range c.recent {
		if len(out) >= n {
			break
		}
		if entry, ok := c.entries[key]; ok && !now.After(entry.expiresAt) {
			out = append(out, entry.payload)
		}
	}
	return out, nil
}

// promote moves key to the front of the recency list. Caller holds the lock.
func (c *InMemoryCache) promote(key string) {
	for i, k := range c.recent {
		if k == key {
			c.recent = append(c.recent[:i], c.recent[i+1:]...)
			break
		}
	}
	c.recent = append([]string{key}, c.recent...)
}
