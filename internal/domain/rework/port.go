package rework

import "context"

// Repository port (persistence for the reworks collection).
// List returns newest-created first.
type Repository interface {
	List(ctx context.Context) ([]*Event, error)
	Get(ctx context.Context, id ID) (*Event, error)
	Insert(ctx context.Context, e *Event) (*Event, error)
	Update(ctx context.Context, id ID, p Patch) (*Event, error)
	Delete(ctx context.Context, id ID) (bool, error)
	Count(ctx context.Context) (int, error)
}
