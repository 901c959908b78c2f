package knowledge

import (
	"context"
	"io"
)

// Repository port for the knowledge collection.
type Repository interface {
	List(ctx context.Context) ([]*Entry, error)
	Get(ctx context.Context, id ID) (*Entry, error)
	Insert(ctx context.Context, e *Entry) (*Entry, error)
	Update(ctx context.Context, id ID, p Patch) (*Entry, error)
	Delete(ctx context.Context, id ID) (bool, error)
	Count(ctx context.Context) (int, error)
}

// ImageStore port (object storage for before/after photos). Put returns
// the URL stored on the entry; Remove takes that URL back.
type ImageStore interface {
	Put(ctx context.Context, key, contentType string, r io.Reader, size int64) (string, error)
	Remove(ctx context.Context, url string) error
}
