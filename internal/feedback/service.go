package feedback

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"ziwei/internal/audit"
	"ziwei/pkg/platform/sentinel"
	"ziwei/pkg/requestcontext"
)

// Service validates and records feedback submissions.
type Service struct {
	store     Store
	publisher *audit.Publisher
	logger    *slog.Logger
}

func NewService(store Store, publisher *audit.Publisher, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, publisher: publisher, logger: logger}
}

// Submit stores a new entry. ID, timestamp, and client IP are stamped here;
// submitted values for those fields are ignored.
func (s *Service) Submit(ctx context.Context, entry Entry) (Entry, error) {
	if err := entry.Validate(); err != nil {
		return Entry{}, fmt.Errorf("%w: %s", sentinel.ErrInvalidInput, err)
	}

	entry.ID = uuid.NewString()
	entry.CreatedAt = requestcontext.Now(ctx)
	entry.ClientIP = requestcontext.ClientIP(ctx)

	if err := s.store.Insert(ctx, entry); err != nil {
		return Entry{}, fmt.Errorf("submit feedback: %w", err)
	}

	if s.publisher != nil {
		s.publisher.Emit(ctx, audit.Event{
			Action:  audit.ActionFeedbackSubmitted,
			Subject: entry.ID,
			Detail:  entry.Category,
		})
	}
	return entry, nil
}

// List returns the latest entries for the admin view.
func (s *Service) List(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	entries, err := s.store.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list feedback: %w", err)
	}
	return entries, nil
}

// Summary returns aggregate accuracy counts.
func (s *Service) Summary(ctx context.Context) (Stats, error) {
	stats, err := s.store.Stats(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("feedback summary: %w", err)
	}
	return stats, nil
}
