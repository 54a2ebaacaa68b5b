package cache

import (
	"context"

	"github.com/riskibarqy/tournament-registry/internal/domain/team"
	basecache "github.com/riskibarqy/tournament-registry/internal/platform/cache"
)

const (
	teamListKey      = "team:list"
	teamByNamePrefix = "team:name:"
)

// TeamRepository is a read-through cache in front of another team repository.
// Writes go to the wrapped repository first and then drop the cached views.
type TeamRepository struct {
	next  team.Repository
	cache *basecache.Store
}

func NewTeamRepository(next team.Repository, cache *basecache.Store) *TeamRepository {
	return &TeamRepository{next: next, cache: cache}
}

func (r *TeamRepository) Create(ctx context.Context, item *team.Team) error {
	if err := r.next.Create(ctx, item); err != nil {
		return err
	}
	r.invalidate(ctx, item.Name())
	return nil
}

func (r *TeamRepository) GetByName(ctx context.Context, name string) (*team.Team, bool, error) {
	v, err := r.cache.GetOrLoad(ctx, teamByNamePrefix+name, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByName(ctx, name)
		if err != nil {
			return nil, err
		}
		return cachedTeamByName{value: item, exists: exists}, nil
	})
	if err != nil {
		return nil, false, err
	}

	cached, _ := v.(cachedTeamByName)
	if !cached.exists || cached.value == nil {
		return nil, false, nil
	}
	return cached.value.Clone(), true, nil
}

func (r *TeamRepository) List(ctx context.Context) ([]*team.Team, error) {
	v, err := r.cache.GetOrLoad(ctx, teamListKey, func(ctx context.Context) (any, error) {
		return r.next.List(ctx)
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]*team.Team)
	return cloneTeams(items), nil
}

func (r *TeamRepository) Update(ctx context.Context, name string, mutate func(*team.Team) error) (bool, error) {
	exists, err := r.next.Update(ctx, name, mutate)
	if exists {
		r.invalidate(ctx, name)
	}
	return exists, err
}

func (r *TeamRepository) invalidate(ctx context.Context, name string) {
	r.cache.Delete(ctx, teamByNamePrefix+name)
	r.cache.Delete(ctx, teamListKey)
}

type cachedTeamByName struct {
	value  *team.Team
	exists bool
}

func cloneTeams(items []*team.Team) []*team.Team {
	out := make([]*team.Team, 0, len(items))
	for _, item := range items {
		out = append(out, item.Clone())
	}
	return out
}
