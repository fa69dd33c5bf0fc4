package audit

import "context"

// Store is an append-only event sink.
type Store interface {
	Append(ctx context.Context, event Event) error
}
