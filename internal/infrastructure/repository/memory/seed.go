package memory

import (
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/tournament-registry/internal/domain/match"
	"github.com/riskibarqy/tournament-registry/internal/domain/person"
	"github.com/riskibarqy/tournament-registry/internal/domain/player"
	"github.com/riskibarqy/tournament-registry/internal/domain/team"
)

const (
	TeamHalcones = "Halcones"
	TeamTigres   = "Tigres"
)

// SeedTeams returns the demo teams used when no seed file is configured.
func SeedTeams() []*team.Team {
	halcones, _ := team.NewWithRoster(
		TeamHalcones,
		&person.Person{FirstName: "Carlos", LastName: "Ruiz", Email: "carlos.ruiz@example.com"},
		[]player.Player{
			{FirstName: "Ana", LastName: "Diaz", Position: "FWD", Number: 9},
			{FirstName: "Luis", LastName: "Gomez", Position: "GK", Number: 1},
		},
		[]match.Match{
			{ID: "halcones-tigres-1", Opponent: TeamTigres, Venue: "Estadio Centenario", ScheduledAt: time.Date(2026, 3, 7, 18, 0, 0, 0, time.UTC)},
		},
	)
	tigres, _ := team.NewWithRoster(
		TeamTigres,
		&person.Person{FirstName: "Marta", LastName: "Lopez", Email: "marta.lopez@example.com"},
		[]player.Player{
			{FirstName: "Jorge", LastName: "Perez", Position: "MID", Number: 8},
		},
		nil,
	)

	return []*team.Team{halcones, tigres}
}

type seedDocument struct {
	Teams []seedTeam `toml:"teams"`
}

type seedTeam struct {
	Name           string       `toml:"name"`
	Representative *seedPerson  `toml:"representative"`
	Players        []seedPlayer `toml:"players"`
	Matches        []seedMatch  `toml:"matches"`
}

type seedPerson struct {
	FirstName string `toml:"first_name"`
	LastName  string `toml:"last_name"`
	Email     string `toml:"email"`
	Phone     string `toml:"phone"`
}

type seedPlayer struct {
	FirstName string `toml:"first_name"`
	LastName  string `toml:"last_name"`
	Position  string `toml:"position"`
	Number    int    `toml:"number"`
}

type seedMatch struct {
	ID          string    `toml:"id"`
	Opponent    string    `toml:"opponent"`
	Venue       string    `toml:"venue"`
	ScheduledAt time.Time `toml:"scheduled_at"`
	Result      string    `toml:"result"`
}

// LoadSeedFile reads teams from a TOML document. Every team goes through the
// domain constructor, so a seed with a duplicated player is rejected.
func LoadSeedFile(path string) ([]*team.Team, error) {
	var doc seedDocument
	md, err := toml.DecodeFile(path, &doc)
	if err != nil {
		return nil, crerr.Wrapf(err, "decode seed file %s", path)
	}

	return buildSeedTeams(doc, md)
}

// ParseSeed decodes teams from TOML text.
func ParseSeed(raw string) ([]*team.Team, error) {
	var doc seedDocument
	md, err := toml.Decode(raw, &doc)
	if err != nil {
		return nil, crerr.Wrap(err, "decode seed")
	}

	return buildSeedTeams(doc, md)
}

func buildSeedTeams(doc seedDocument, md toml.MetaData) ([]*team.Team, error) {
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, crerr.Newf("unknown seed keys: %v", undecoded)
	}

	out := make([]*team.Team, 0, len(doc.Teams))
	seen := make(map[string]struct{}, len(doc.Teams))
	for idx, item := range doc.Teams {
		var rep *person.Person
		if item.Representative != nil {
			rep = &person.Person{
				FirstName: item.Representative.FirstName,
				LastName:  item.Representative.LastName,
				Email:     item.Representative.Email,
				Phone:     item.Representative.Phone,
			}
		}

		players := make([]player.Player, 0, len(item.Players))
		for _, p := range item.Players {
			players = append(players, player.Player{
				FirstName: strings.TrimSpace(p.FirstName),
				LastName:  strings.TrimSpace(p.LastName),
				Position:  p.Position,
				Number:    p.Number,
			})
		}

		matches := make([]match.Match, 0, len(item.Matches))
		for _, m := range item.Matches {
			matches = append(matches, match.Match{
				ID:          m.ID,
				Opponent:    m.Opponent,
				Venue:       m.Venue,
				ScheduledAt: m.ScheduledAt,
				Result:      m.Result,
			})
		}

		built, err := team.NewWithRoster(strings.TrimSpace(item.Name), rep, players, matches)
		if err != nil {
			return nil, crerr.Wrapf(err, "seed team #%d", idx)
		}
		if _, dup := seen[built.Name()]; dup {
			return nil, crerr.Wrapf(team.ErrTeamAlreadyExists, "seed team %q", built.Name())
		}
		seen[built.Name()] = struct{}{}
		out = append(out, built)
	}

	return out, nil
}
