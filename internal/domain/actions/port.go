package actions

import "context"

// Repository port for the actions collection. Update stamps UpdatedAt.
type Repository interface {
	List(ctx context.Context) ([]*Action, error)
	Get(ctx context.Context, id ID) (*Action, error)
	Insert(ctx context.Context, a *Action) (*Action, error)
	Update(ctx context.Context, id ID, p Patch) (*Action, error)
	Delete(ctx context.Context, id ID) (bool, error)
	Count(ctx context.Context) (int, error)
}
