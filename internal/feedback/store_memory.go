package feedback

import (
	"context"
	"sync"
)

// InMemoryStore is the development default when no Postgres DSN is set.
type InMemoryStore struct {
	mu      sync.RWMutex
	entries []Entry
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) Insert(_ context.Context, entry Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry)
	return nil
}

func (s *InMemoryStore) List(_ context.Context, limit int) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := len(s.entries)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]Entry, 0, n)
	for i := len(s.entries) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, s.entries[i])
	}
	return out, nil
}

func (s *InMemoryStore) Stats(_ context.Context) (Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := Stats{Total: len(s.entries)}
	var ratingSum int
	for _, e := range s.entries {
		ratingSum += e.Rating
		switch e.Accuracy {
		case AccuracyAccurate:
			stats.Accurate++
		case AccuracyPartial:
			stats.Partial++
		case AccuracyInaccurate:
			stats.Inaccurate++
		}
	}
	if stats.Total > 0 {
		stats.MeanRating = float64(ratingSum) / float64(stats.Total)
	}
	return stats, nil
}
