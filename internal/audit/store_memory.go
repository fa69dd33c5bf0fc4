package audit

import (
	"context"
	"sync"
)

// InMemoryStore keeps the newest events in a bounded ring. It is the default
// sink for single-process deployments and the test double for everything
// else.
type InMemoryStore struct {
	mu     sync.RWMutex
	events []Event
	limit  int
}

func NewInMemoryStore(limit int) *InMemoryStore {
	if limit <= 0 {
		limit = 1000
	}
	return &InMemoryStore{limit: limit}
}

func (s *InMemoryStore) Append(_ context.Context, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	if len(s.events) > s.limit {
		s.events = s.events[len(s.events)-s.limit:]
	}
	return nil
}

// List returns a copy of the retained events, oldest first.
func (s *InMemoryStore) List(_ context.Context) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Event, len(s.events))
	copy(out, s.events)
	return out, nil
}
