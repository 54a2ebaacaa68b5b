package postgres

import (
	"context"
	"fmt"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/riskibarqy/tournament-registry/internal/domain/match"
	"github.com/riskibarqy/tournament-registry/internal/domain/player"
	"github.com/riskibarqy/tournament-registry/internal/domain/team"
)

const (
	selectTeamColumns = `id, name, representative_first_name, representative_last_name,
    representative_email, representative_phone, created_at, updated_at`

	insertTeamSQL = `
INSERT INTO teams (name, representative_first_name, representative_last_name, representative_email, representative_phone)
VALUES (:name, :representative_first_name, :representative_last_name, :representative_email, :representative_phone)
RETURNING id`

	insertPlayersSQL = `
INSERT INTO team_players (team_id, roster_position, first_name, last_name, field_position, shirt_number)
VALUES (:team_id, :roster_position, :first_name, :last_name, :field_position, :shirt_number)`

	insertMatchesSQL = `
INSERT INTO team_matches (team_id, match_ref, opponent, venue, scheduled_at, result)
VALUES (:team_id, :match_ref, :opponent, :venue, :scheduled_at, :result)`

	selectPlayersByTeamsSQL = `
SELECT team_id, roster_position, first_name, last_name, field_position, shirt_number
FROM team_players
WHERE team_id = ANY($1)
ORDER BY team_id, roster_position`

	selectMatchesByTeamsSQL = `
SELECT team_id, match_ref, opponent, venue, scheduled_at, result
FROM team_matches
WHERE team_id = ANY($1)
ORDER BY team_id, id`
)

// TeamRepository stores teams across the teams, team_players and team_matches
// tables. Roster order is kept in team_players.roster_position.
type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) Create(ctx context.Context, item *team.Team) error {
	if item == nil {
		return crerr.Wrap(team.ErrInvalidArgument, "team is required")
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return storageError("begin tx create team", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query, args, err := sqlx.Named(insertTeamSQL, teamInsertFromRepresentative(item.Name(), item.Representative()))
	if err != nil {
		return storageError("bind insert team query", err)
	}
	var teamID int64
	if err := tx.QueryRowxContext(ctx, tx.Rebind(query), args...).Scan(&teamID); err != nil {
		return mapWriteError(item.Name(), storageError("insert team", err))
	}

	if err := insertPlayers(ctx, tx, appendedPlayerRows(teamID, 0, item.Players())); err != nil {
		return mapWriteError(item.Name(), err)
	}
	if err := insertMatches(ctx, tx, teamID, item.Matches()); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return storageError("commit create team", err)
	}
	return nil
}

func (r *TeamRepository) GetByName(ctx context.Context, name string) (*team.Team, bool, error) {
	var row teamTableModel
	query := `SELECT ` + selectTeamColumns + ` FROM teams WHERE name = $1`
	if err := r.db.GetContext(ctx, &row, query, name); err != nil {
		if isNotFound(err) {
			return nil, false, nil
		}
		return nil, false, storageError("get team by name", err)
	}

	items, err := hydrateTeams(ctx, r.db, []teamTableModel{row})
	if err != nil {
		return nil, false, err
	}
	return items[0], true, nil
}

func (r *TeamRepository) List(ctx context.Context) ([]*team.Team, error) {
	var rows []teamTableModel
	query := `SELECT ` + selectTeamColumns + ` FROM teams ORDER BY name`
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, storageError("list teams", err)
	}
	if len(rows) == 0 {
		return []*team.Team{}, nil
	}

	return hydrateTeams(ctx, r.db, rows)
}

// Update locks the team row, rebuilds the aggregate, runs mutate on it and
// persists the players appended by mutate. Matches are never rewritten.
func (r *TeamRepository) Update(ctx context.Context, name string, mutate func(*team.Team) error) (bool, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, storageError("begin tx update team", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var row teamTableModel
	query := `SELECT ` + selectTeamColumns + ` FROM teams WHERE name = $1 FOR UPDATE`
	if err := tx.GetContext(ctx, &row, query, name); err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, storageError("lock team for update", err)
	}

	items, err := hydrateTeams(ctx, tx, []teamTableModel{row})
	if err != nil {
		return true, err
	}
	item := items[0]
	before := item.PlayerCount()

	if err := mutate(item); err != nil {
		return true, err
	}

	appended := appendedPlayerRows(row.ID, before, item.Players())
	if len(appended) == 0 {
		return true, nil
	}
	if err := insertPlayers(ctx, tx, appended); err != nil {
		return true, mapWriteError(name, err)
	}
	if _, err := tx.ExecContext(ctx, `UPDATE teams SET updated_at = NOW() WHERE id = $1`, row.ID); err != nil {
		return true, storageError("touch team", err)
	}

	if err := tx.Commit(); err != nil {
		return true, storageError("commit update team", err)
	}
	return true, nil
}

// appendedPlayerRows returns rows for the roster entries after the first
// before players, with roster positions continuing from before.
func appendedPlayerRows(teamID int64, before int, roster []player.Player) []teamPlayerTableModel {
	if before < 0 {
		before = 0
	}
	if before >= len(roster) {
		return nil
	}

	rows := make([]teamPlayerTableModel, 0, len(roster)-before)
	for i, p := range roster[before:] {
		rows = append(rows, playerRow(teamID, before+i, p))
	}
	return rows
}

func insertPlayers(ctx context.Context, tx *sqlx.Tx, rows []teamPlayerTableModel) error {
	if len(rows) == 0 {
		return nil
	}

	if _, err := tx.NamedExecContext(ctx, insertPlayersSQL, rows); err != nil {
		return storageError("insert team players", err)
	}
	return nil
}

func insertMatches(ctx context.Context, tx *sqlx.Tx, teamID int64, matches []match.Match) error {
	if len(matches) == 0 {
		return nil
	}

	rows := make([]teamMatchTableModel, 0, len(matches))
	for _, m := range matches {
		rows = append(rows, matchRow(teamID, m))
	}
	if _, err := tx.NamedExecContext(ctx, insertMatchesSQL, rows); err != nil {
		return storageError("insert team matches", err)
	}
	return nil
}

// hydrateTeams loads players and matches for all rows with one query each and
// rebuilds the aggregates in the order of rows.
func hydrateTeams(ctx context.Context, q sqlx.QueryerContext, rows []teamTableModel) ([]*team.Team, error) {
	ids := make([]int64, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}

	var playerRows []teamPlayerTableModel
	if err := sqlx.SelectContext(ctx, q, &playerRows, selectPlayersByTeamsSQL, pq.Array(ids)); err != nil {
		return nil, storageError("select team players", err)
	}
	var matchRows []teamMatchTableModel
	if err := sqlx.SelectContext(ctx, q, &matchRows, selectMatchesByTeamsSQL, pq.Array(ids)); err != nil {
		return nil, storageError("select team matches", err)
	}

	playersByTeam := make(map[int64][]player.Player, len(rows))
	for _, p := range playerRows {
		playersByTeam[p.TeamID] = append(playersByTeam[p.TeamID], p.toDomain())
	}
	matchesByTeam := make(map[int64][]match.Match, len(rows))
	for _, m := range matchRows {
		matchesByTeam[m.TeamID] = append(matchesByTeam[m.TeamID], m.toDomain())
	}

	out := make([]*team.Team, 0, len(rows))
	for _, row := range rows {
		item, err := team.NewWithRoster(row.Name, row.representative(), playersByTeam[row.ID], matchesByTeam[row.ID])
		if err != nil {
			return nil, fmt.Errorf("rebuild team %q: %w", row.Name, err)
		}
		out = append(out, item)
	}
	return out, nil
}

func mapWriteError(teamName string, err error) error {
	constraint, ok := uniqueViolation(err)
	if !ok {
		return err
	}

	switch constraint {
	case constraintTeamName:
		return crerr.Wrapf(team.ErrTeamAlreadyExists, "team %q", teamName)
	case constraintPlayerName:
		return crerr.Wrapf(team.ErrDuplicatePlayer, "team %q", teamName)
	default:
		return err
	}
}
