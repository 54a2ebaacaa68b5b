package team

import (
	"strings"
	"sync"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/tournament-registry/internal/domain/match"
	"github.com/riskibarqy/tournament-registry/internal/domain/person"
	"github.com/riskibarqy/tournament-registry/internal/domain/player"
)

// Team is a tournament entrant: a name, the person representing it, its roster
// and the matches it has played. The roster only grows through RegisterPlayer.
type Team struct {
	name           string
	representative person.Person
	matches        []match.Match

	mu      sync.RWMutex
	players []player.Player
}

// New builds a team with an empty roster and no matches.
func New(name string, representative *person.Person) (*Team, error) {
	return NewWithRoster(name, representative, nil, nil)
}

// NewWithRoster builds a team from an existing roster, e.g. when loading from storage.
// Players and matches are copied; the roster must already satisfy name uniqueness.
func NewWithRoster(name string, representative *person.Person, players []player.Player, matches []match.Match) (*Team, error) {
	if strings.TrimSpace(name) == "" {
		return nil, crerr.WithHint(crerr.Wrap(ErrInvalidArgument, "name is required"), "provide a non-blank team name")
	}
	if representative == nil {
		return nil, crerr.Wrap(ErrInvalidArgument, "representative is required")
	}

	t := &Team{
		name:           name,
		representative: *representative,
		players:        make([]player.Player, 0, len(players)),
		matches:        append([]match.Match(nil), matches...),
	}
	for i := range players {
		if err := t.RegisterPlayer(&players[i]); err != nil {
			return nil, crerr.Wrapf(err, "roster entry %d", i)
		}
	}

	return t, nil
}

func (t *Team) Name() string {
	return t.name
}

func (t *Team) Representative() person.Person {
	return t.representative
}

// RegisterPlayer appends p to the roster unless a player with the same first and
// last name is already registered. The roster is untouched on error.
func (t *Team) RegisterPlayer(p *player.Player) error {
	if p == nil {
		return crerr.Wrap(ErrInvalidArgument, "player is required")
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if _, found := t.findLocked(p); found {
		return crerr.Wrapf(ErrDuplicatePlayer, "player %q", p.FullName())
	}
	t.players = append(t.players, *p)

	return nil
}

// FindPlayer returns the first registered player whose first and last name equal
// the key's. Comparison is exact and case-sensitive.
func (t *Team) FindPlayer(key *player.Player) (player.Player, bool, error) {
	if key == nil {
		return player.Player{}, false, crerr.Wrap(ErrInvalidArgument, "player is required")
	}

	t.mu.RLock()
	defer t.mu.RUnlock()

	item, found := t.findLocked(key)
	return item, found, nil
}

func (t *Team) findLocked(key *player.Player) (player.Player, bool) {
	for _, item := range t.players {
		if item.FirstName == key.FirstName && item.LastName == key.LastName {
			return item, true
		}
	}

	return player.Player{}, false
}

// Players returns a snapshot of the roster in registration order.
func (t *Team) Players() []player.Player {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return append([]player.Player(nil), t.players...)
}

func (t *Team) PlayerCount() int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return len(t.players)
}

// Matches returns a snapshot of the recorded matches.
func (t *Team) Matches() []match.Match {
	return append([]match.Match(nil), t.matches...)
}

// Clone returns a deep copy that shares no mutable state with t.
func (t *Team) Clone() *Team {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return &Team{
		name:           t.name,
		representative: t.representative,
		matches:        append([]match.Match(nil), t.matches...),
		players:        append([]player.Player(nil), t.players...),
	}
}
