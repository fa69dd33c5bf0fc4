package reading

import (
	"context"
	"fmt"
	"log/slog"

	"ziwei/internal/audit"
	"ziwei/internal/chart/service"
)

// Service composes the chart summary and relays it to the narrator.
type Service struct {
	narrator  Narrator
	publisher *audit.Publisher
	logger    *slog.Logger
}

func NewService(narrator Narrator, publisher *audit.Publisher, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{narrator: narrator, publisher: publisher, logger: logger}
}

// Read requests a narrative for an already computed chart.
func (s *Service) Read(ctx context.Context, result *service.Result) (*Narrative, error) {
	summary := Summarize(result)

	narrative, err := s.narrator.Narrate(ctx, summary)
	if err != nil {
		return nil, fmt.Errorf("reading: %w", err)
	}

	if s.publisher != nil {
		s.publisher.Emit(ctx, audit.Event{
			Action:  audit.ActionReadingRequested,
			Subject: result.ID,
		})
	}
	return narrative, nil
}
