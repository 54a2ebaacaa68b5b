package httpapi

import (
	"context"
	"time"

	"github.com/riskibarqy/tournament-registry/internal/domain/match"
	"github.com/riskibarqy/tournament-registry/internal/domain/person"
	"github.com/riskibarqy/tournament-registry/internal/domain/player"
	"github.com/riskibarqy/tournament-registry/internal/domain/team"
	"github.com/riskibarqy/tournament-registry/internal/usecase"
)

type personRequest struct {
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"required,max=100"`
	Email     string `json:"email" validate:"omitempty,email"`
	Phone     string `json:"phone" validate:"omitempty,max=40"`
}

type playerRequest struct {
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"required,max=100"`
	Position  string `json:"position" validate:"omitempty,max=20"`
	Number    int    `json:"number" validate:"gte=0,lte=999"`
}

type matchRequest struct {
	ID          string     `json:"id" validate:"omitempty,max=100"`
	Opponent    string     `json:"opponent" validate:"omitempty,max=100"`
	Venue       string     `json:"venue" validate:"omitempty,max=200"`
	ScheduledAt *time.Time `json:"scheduled_at"`
	Result      string     `json:"result" validate:"omitempty,max=40"`
}

type createTeamRequest struct {
	Name           string          `json:"name" validate:"required,max=100"`
	Representative *personRequest  `json:"representative" validate:"required"`
	Players        []playerRequest `json:"players" validate:"omitempty,dive"`
	Matches        []matchRequest  `json:"matches" validate:"omitempty,dive"`
}

type rosterImportRequest struct {
	Rosters []rosterImportItemRequest `json:"rosters" validate:"required,min=1,max=200,dive"`
}

type rosterImportItemRequest struct {
	TeamName string          `json:"team_name" validate:"required,max=100"`
	Players  []playerRequest `json:"players" validate:"required,min=1,dive"`
}

type personDTO struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

type playerDTO struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	FullName  string `json:"full_name"`
	Position  string `json:"position,omitempty"`
	Number    int    `json:"number,omitempty"`
}

type matchDTO struct {
	ID          string     `json:"id,omitempty"`
	Opponent    string     `json:"opponent,omitempty"`
	Venue       string     `json:"venue,omitempty"`
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
	Result      string     `json:"result,omitempty"`
}

type teamSummaryDTO struct {
	Name           string    `json:"name"`
	Representative personDTO `json:"representative"`
	PlayerCount    int       `json:"player_count"`
	MatchCount     int       `json:"match_count"`
}

type teamDetailDTO struct {
	Name           string      `json:"name"`
	Representative personDTO   `json:"representative"`
	Players        []playerDTO `json:"players"`
	Matches        []matchDTO  `json:"matches"`
}

type rosterPlayerFailureDTO struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Reason    string `json:"reason"`
}

type rosterImportResultDTO struct {
	TeamName   string                   `json:"team_name"`
	Status     string                   `json:"status"`
	Registered int                      `json:"registered"`
	Failures   []rosterPlayerFailureDTO `json:"failures,omitempty"`
	DurationMs int64                    `json:"duration_ms"`
}

type rosterImportSummaryDTO struct {
	Registered int                     `json:"registered"`
	Failed     int                     `json:"failed"`
	Results    []rosterImportResultDTO `json:"results"`
}

func (r personRequest) toDomain() *person.Person {
	return &person.Person{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
		Phone:     r.Phone,
	}
}

func (r playerRequest) toInput() usecase.RegisterPlayerInput {
	return usecase.RegisterPlayerInput{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Position:  r.Position,
		Number:    r.Number,
	}
}

func (r playerRequest) toDomain() player.Player {
	return player.Player{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Position:  r.Position,
		Number:    r.Number,
	}
}

func (r matchRequest) toDomain() match.Match {
	out := match.Match{
		ID:       r.ID,
		Opponent: r.Opponent,
		Venue:    r.Venue,
		Result:   r.Result,
	}
	if r.ScheduledAt != nil {
		out.ScheduledAt = r.ScheduledAt.UTC()
	}
	return out
}

func (r createTeamRequest) toInput() usecase.CreateTeamInput {
	in := usecase.CreateTeamInput{
		Name:    r.Name,
		Players: make([]player.Player, 0, len(r.Players)),
		Matches: make([]match.Match, 0, len(r.Matches)),
	}
	if r.Representative != nil {
		in.Representative = r.Representative.toDomain()
	}
	for _, p := range r.Players {
		in.Players = append(in.Players, p.toDomain())
	}
	for _, m := range r.Matches {
		in.Matches = append(in.Matches, m.toDomain())
	}
	return in
}

func (r rosterImportRequest) toInput() []usecase.RosterImport {
	out := make([]usecase.RosterImport, 0, len(r.Rosters))
	for _, item := range r.Rosters {
		players := make([]usecase.RegisterPlayerInput, 0, len(item.Players))
		for _, p := range item.Players {
			players = append(players, p.toInput())
		}
		out = append(out, usecase.RosterImport{TeamName: item.TeamName, Players: players})
	}
	return out
}

func personToDTO(p person.Person) personDTO {
	return personDTO{
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Email:     p.Email,
		Phone:     p.Phone,
	}
}

func playerToDTO(p player.Player) playerDTO {
	return playerDTO{
		FirstName: p.FirstName,
		LastName:  p.LastName,
		FullName:  p.FullName(),
		Position:  p.Position,
		Number:    p.Number,
	}
}

func playersToDTO(items []player.Player) []playerDTO {
	out := make([]playerDTO, 0, len(items))
	for _, p := range items {
		out = append(out, playerToDTO(p))
	}
	return out
}

func matchToDTO(m match.Match) matchDTO {
	out := matchDTO{
		ID:       m.ID,
		Opponent: m.Opponent,
		Venue:    m.Venue,
		Result:   m.Result,
	}
	if !m.ScheduledAt.IsZero() {
		at := m.ScheduledAt
		out.ScheduledAt = &at
	}
	return out
}

func teamToSummaryDTO(ctx context.Context, t *team.Team) teamSummaryDTO {
	_, span := startSpan(ctx, "httpapi.teamToSummaryDTO")
	defer span.End()

	return teamSummaryDTO{
		Name:           t.Name(),
		Representative: personToDTO(t.Representative()),
		PlayerCount:    t.PlayerCount(),
		MatchCount:     len(t.Matches()),
	}
}

func teamToDetailDTO(ctx context.Context, t *team.Team) teamDetailDTO {
	_, span := startSpan(ctx, "httpapi.teamToDetailDTO")
	defer span.End()

	matches := t.Matches()
	matchItems := make([]matchDTO, 0, len(matches))
	for _, m := range matches {
		matchItems = append(matchItems, matchToDTO(m))
	}

	return teamDetailDTO{
		Name:           t.Name(),
		Representative: personToDTO(t.Representative()),
		Players:        playersToDTO(t.Players()),
		Matches:        matchItems,
	}
}

func rosterImportSummaryToDTO(summary usecase.RosterImportSummary) rosterImportSummaryDTO {
	out := rosterImportSummaryDTO{
		Registered: summary.Registered,
		Failed:     summary.Failed,
		Results:    make([]rosterImportResultDTO, 0, len(summary.Results)),
	}
	for _, row := range summary.Results {
		item := rosterImportResultDTO{
			TeamName:   row.TeamName,
			Status:     row.Status,
			Registered: row.Registered,
			DurationMs: row.DurationMs,
		}
		for _, f := range row.Failures {
			item.Failures = append(item.Failures, rosterPlayerFailureDTO{
				FirstName: f.FirstName,
				LastName:  f.LastName,
				Reason:    f.Reason,
			})
		}
		out.Results = append(out.Results, item)
	}
	return out
}
