package audit

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"ziwei/pkg/requestcontext"
)

// Publisher hands events to the worker without blocking the request path.
// A full inbox drops the event and logs; losing an audit record must never
// fail a chart computation.
type Publisher struct {
	inbox  chan<- Event
	logger *slog.Logger
}

func NewPublisher(inbox chan<- Event, logger *slog.Logger) *Publisher {
	return &Publisher{inbox: inbox, logger: logger}
}

// Emit stamps and enqueues an event. ID, timestamp, and request ID are
// filled from the context if the caller left them empty.
func (p *Publisher) Emit(ctx context.Context, event Event) {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = requestcontext.Now(ctx)
	}
	if event.RequestID == "" {
		event.RequestID = requestcontext.RequestID(ctx)
	}

	select {
	case p.inbox <- event:
	default:
		p.logger.WarnContext(ctx, "audit inbox full, dropping event",
			"action", event.Action,
			"subject", event.Subject,
		)
	}
}

// Worker consumes events from the inbox and appends them to the sink.
type Worker struct {
	store  Store
	inbox  <-chan Event
	logger *slog.Logger
}

func NewWorker(store Store, inbox <-chan Event, logger *slog.Logger) *Worker {
	return &Worker{store: store, inbox: inbox, logger: logger}
}

// Run processes events until the context is canceled. Append failures are
// logged and retried once after a short pause; the trail is best-effort.
func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event := <-w.inbox:
			if err := w.store.Append(ctx, event); err != nil {
				w.logger.ErrorContext(ctx, "audit append failed", "error", err, "action", event.Action)
				select {
				case <-ctx.Done():
					return ctx.Err()
				case <-time.After(time.Second):
				}
				if err := w.store.Append(ctx, event); err != nil {
					w.logger.ErrorContext(ctx, "audit append retry failed, dropping event", "error", err)
				}
			}
		}
	}
}
