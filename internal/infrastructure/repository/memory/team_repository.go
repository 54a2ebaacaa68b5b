package memory

import (
	"context"
	"sort"
	"sync"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/tournament-registry/internal/domain/team"
)

// TeamRepository keeps teams in process memory keyed by team name.
type TeamRepository struct {
	mu    sync.RWMutex
	teams map[string]*team.Team
}

func NewTeamRepository(teams []*team.Team) *TeamRepository {
	byName := make(map[string]*team.Team, len(teams))
	for _, item := range teams {
		if item == nil {
			continue
		}
		byName[item.Name()] = item.Clone()
	}

	return &TeamRepository{teams: byName}
}

func (r *TeamRepository) Create(_ context.Context, item *team.Team) error {
	if item == nil {
		return crerr.Wrap(team.ErrInvalidArgument, "team is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.teams[item.Name()]; exists {
		return crerr.Wrapf(team.ErrTeamAlreadyExists, "team %q", item.Name())
	}
	r.teams[item.Name()] = item.Clone()

	return nil
}

func (r *TeamRepository) GetByName(_ context.Context, name string) (*team.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.teams[name]
	if !ok {
		return nil, false, nil
	}

	return item.Clone(), true, nil
}

func (r *TeamRepository) List(_ context.Context) ([]*team.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*team.Team, 0, len(r.teams))
	for _, item := range r.teams {
		out = append(out, item.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Name() < out[j].Name()
	})

	return out, nil
}

// Update applies mutate to a working copy and only stores it when mutate succeeds.
func (r *TeamRepository) Update(_ context.Context, name string, mutate func(*team.Team) error) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.teams[name]
	if !ok {
		return false, nil
	}

	working := current.Clone()
	if err := mutate(working); err != nil {
		return true, err
	}
	r.teams[name] = working

	return true, nil
}
