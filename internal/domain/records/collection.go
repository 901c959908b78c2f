package records

import (
	"context"
	"errors"
	"fmt"
)

// Collection names the three record collections held by the store.
type Collection string

const (
	Reworks   Collection = "reworks"
	Actions   Collection = "actions"
	Knowledge Collection = "knowledge"
)

// All returns every collection, in the order they are shown on the settings page.
func All() []Collection {
	return []Collection{Reworks, Actions, Knowledge}
}

// ParseCollection validates a collection name coming from a URL or flag.
func ParseCollection(s string) (Collection, error) {
	switch c := Collection(s); c {
	case Reworks, Actions, Knowledge:
		return c, nil
	}
	return "", Invalidf("unknown collection %q", s)
}

var (
	// ErrNotFound is returned when a record id does not exist in its collection.
	ErrNotFound = errors.New("record not found")
	// ErrInvalid marks input that failed validation; wrap it with the reason.
	ErrInvalid = errors.New("invalid record")
)

// Invalidf wraps ErrInvalid with a formatted reason.
func Invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

// Admin port used by the settings surface (counts, wipe).
type Admin interface {
	Count(ctx context.Context, c Collection) (int, error)
	Clear(ctx context.Context, c Collection) error
	Ping(ctx context.Context) error
}
