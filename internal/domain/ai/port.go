package ai

import "context"

// Client turns a plain-text digest of detected patterns into a short
// shift-handover narrative.
type Client interface {
	Narrate(ctx context.Context, digest string) (string, error)
}
