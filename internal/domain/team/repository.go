package team

import "context"

// Repository describes team persistence needs from use cases.
// Implementations hand out clones, never the stored aggregate.
type Repository interface {
	Create(ctx context.Context, item *Team) error
	GetByName(ctx context.Context, name string) (*Team, bool, error)
	List(ctx context.Context) ([]*Team, error)
	// Update loads the team, applies mutate and persists the result atomically.
	// It reports false when the team does not exist.
	Update(ctx context.Context, name string, mutate func(*Team) error) (bool, error)
}
