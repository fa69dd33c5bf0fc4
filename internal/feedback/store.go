package feedback

import "context"

// Store persists feedback entries. List returns newest first.
type Store interface {
	Insert(ctx context.Context, entry Entry) error
	List(ctx context.Context, limit int) ([]Entry, error)
	Stats(ctx context.Context) (Stats, error)
}
