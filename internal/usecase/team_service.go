package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/riskibarqy/tournament-registry/internal/domain/match"
	"github.com/riskibarqy/tournament-registry/internal/domain/person"
	"github.com/riskibarqy/tournament-registry/internal/domain/player"
	"github.com/riskibarqy/tournament-registry/internal/domain/team"
	"github.com/riskibarqy/tournament-registry/internal/platform/logging"
	"github.com/riskibarqy/tournament-registry/internal/platform/metrics"
)

type CreateTeamInput struct {
	Name           string
	Representative *person.Person
	Players        []player.Player
	Matches        []match.Match
}

type RegisterPlayerInput struct {
	FirstName string
	LastName  string
	Position  string
	Number    int
}

type TeamService struct {
	teamRepo team.Repository
	metrics  *metrics.TeamMetrics
	logger   *logging.Logger
}

func NewTeamService(teamRepo team.Repository, teamMetrics *metrics.TeamMetrics, logger *logging.Logger) *TeamService {
	if logger == nil {
		logger = logging.Default()
	}

	return &TeamService{
		teamRepo: teamRepo,
		metrics:  teamMetrics,
		logger:   logger,
	}
}

func (s *TeamService) CreateTeam(ctx context.Context, input CreateTeamInput) (*team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.CreateTeam")
	defer span.End()

	players := make([]player.Player, 0, len(input.Players))
	for _, item := range input.Players {
		normalized, err := normalizePlayer(RegisterPlayerInput{
			FirstName: item.FirstName,
			LastName:  item.LastName,
			Position:  item.Position,
			Number:    item.Number,
		})
		if err != nil {
			return nil, err
		}
		players = append(players, normalized)
	}

	item, err := team.NewWithRoster(strings.TrimSpace(input.Name), input.Representative, players, input.Matches)
	if err != nil {
		return nil, mapTeamError(err)
	}

	if err := s.teamRepo.Create(ctx, item); err != nil {
		if errors.Is(err, team.ErrTeamAlreadyExists) {
			return nil, fmt.Errorf("%w: team=%s: %w", ErrConflict, item.Name(), err)
		}
		return nil, fmt.Errorf("create team: %w", err)
	}

	s.metrics.ObserveTeamCreated()
	s.logger.InfoContext(ctx, "team created", "team", item.Name(), "players", item.PlayerCount())

	return item, nil
}

func (s *TeamService) GetTeam(ctx context.Context, name string) (*team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.GetTeam")
	defer span.End()

	return s.getTeam(ctx, name)
}

func (s *TeamService) ListTeams(ctx context.Context) ([]*team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.ListTeams")
	defer span.End()

	items, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}

	return items, nil
}

func (s *TeamService) ListPlayers(ctx context.Context, teamName string) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.ListPlayers")
	defer span.End()

	item, err := s.getTeam(ctx, teamName)
	if err != nil {
		return nil, err
	}

	return item.Players(), nil
}

// RegisterPlayer adds a player to the team roster. A player whose first and last
// name are already registered yields ErrConflict.
func (s *TeamService) RegisterPlayer(ctx context.Context, teamName string, input RegisterPlayerInput) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.RegisterPlayer")
	defer span.End()

	teamName = strings.TrimSpace(teamName)
	if teamName == "" {
		s.metrics.ObserveRegistration(metrics.ResultRejected)
		return player.Player{}, fmt.Errorf("%w: team name is required", ErrInvalidInput)
	}
	item, err := normalizePlayer(input)
	if err != nil {
		s.metrics.ObserveRegistration(metrics.ResultRejected)
		return player.Player{}, err
	}

	exists, err := s.teamRepo.Update(ctx, teamName, func(t *team.Team) error {
		return t.RegisterPlayer(&item)
	})
	if err != nil {
		if errors.Is(err, team.ErrDuplicatePlayer) {
			s.metrics.ObserveRegistration(metrics.ResultDuplicate)
			s.logger.WarnContext(ctx, "duplicate player registration rejected",
				"team", teamName,
				"player", item.FullName(),
			)
		} else {
			s.metrics.ObserveRegistration(metrics.ResultRejected)
		}
		return player.Player{}, mapTeamError(err)
	}
	if !exists {
		s.metrics.ObserveRegistration(metrics.ResultRejected)
		return player.Player{}, fmt.Errorf("%w: team=%s", ErrNotFound, teamName)
	}

	s.metrics.ObserveRegistration(metrics.ResultRegistered)
	s.logger.InfoContext(ctx, "player registered", "team", teamName, "player", item.FullName())

	return item, nil
}

// FindPlayer looks a player up by exact, case-sensitive first and last name.
func (s *TeamService) FindPlayer(ctx context.Context, teamName, firstName, lastName string) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.FindPlayer")
	defer span.End()

	key, err := normalizePlayer(RegisterPlayerInput{FirstName: firstName, LastName: lastName})
	if err != nil {
		return player.Player{}, err
	}

	item, err := s.getTeam(ctx, teamName)
	if err != nil {
		return player.Player{}, err
	}

	found, ok, err := item.FindPlayer(&key)
	if err != nil {
		return player.Player{}, mapTeamError(err)
	}
	s.metrics.ObserveLookup(ok)
	if !ok {
		return player.Player{}, fmt.Errorf("%w: player=%s team=%s", ErrNotFound, key.FullName(), item.Name())
	}

	return found, nil
}

func (s *TeamService) getTeam(ctx context.Context, name string) (*team.Team, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: team name is required", ErrInvalidInput)
	}

	item, exists, err := s.teamRepo.GetByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("get team by name: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: team=%s", ErrNotFound, name)
	}

	return item, nil
}

func normalizePlayer(input RegisterPlayerInput) (player.Player, error) {
	item := player.Player{
		FirstName: strings.TrimSpace(input.FirstName),
		LastName:  strings.TrimSpace(input.LastName),
		Position:  strings.TrimSpace(input.Position),
		Number:    input.Number,
	}
	if item.FirstName == "" {
		return player.Player{}, fmt.Errorf("%w: player first name is required", ErrInvalidInput)
	}
	if item.LastName == "" {
		return player.Player{}, fmt.Errorf("%w: player last name is required", ErrInvalidInput)
	}
	if item.Number < 0 {
		return player.Player{}, fmt.Errorf("%w: player number must be >= 0", ErrInvalidInput)
	}

	return item, nil
}

func mapTeamError(err error) error {
	switch {
	case errors.Is(err, team.ErrInvalidArgument):
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	case errors.Is(err, team.ErrDuplicatePlayer):
		return fmt.Errorf("%w: %w", ErrConflict, err)
	default:
		return fmt.Errorf("team operation: %w", err)
	}
}
