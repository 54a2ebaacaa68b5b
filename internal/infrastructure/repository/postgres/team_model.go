package postgres

import (
	"database/sql"
	"time"

	"github.com/riskibarqy/tournament-registry/internal/domain/match"
	"github.com/riskibarqy/tournament-registry/internal/domain/person"
	"github.com/riskibarqy/tournament-registry/internal/domain/player"
)

type teamTableModel struct {
	ID                      int64     `db:"id"`
	Name                    string    `db:"name"`
	RepresentativeFirstName string    `db:"representative_first_name"`
	RepresentativeLastName  string    `db:"representative_last_name"`
	RepresentativeEmail     string    `db:"representative_email"`
	RepresentativePhone     string    `db:"representative_phone"`
	CreatedAt               time.Time `db:"created_at"`
	UpdatedAt               time.Time `db:"updated_at"`
}

type teamInsertModel struct {
	Name                    string `db:"name"`
	RepresentativeFirstName string `db:"representative_first_name"`
	RepresentativeLastName  string `db:"representative_last_name"`
	RepresentativeEmail     string `db:"representative_email"`
	RepresentativePhone     string `db:"representative_phone"`
}

type teamPlayerTableModel struct {
	TeamID         int64  `db:"team_id"`
	RosterPosition int    `db:"roster_position"`
	FirstName      string `db:"first_name"`
	LastName       string `db:"last_name"`
	FieldPosition  string `db:"field_position"`
	ShirtNumber    int    `db:"shirt_number"`
}

type teamMatchTableModel struct {
	TeamID      int64        `db:"team_id"`
	MatchRef    string       `db:"match_ref"`
	Opponent    string       `db:"opponent"`
	Venue       string       `db:"venue"`
	ScheduledAt sql.NullTime `db:"scheduled_at"`
	Result      string       `db:"result"`
}

func (m teamTableModel) representative() *person.Person {
	return &person.Person{
		FirstName: m.RepresentativeFirstName,
		LastName:  m.RepresentativeLastName,
		Email:     m.RepresentativeEmail,
		Phone:     m.RepresentativePhone,
	}
}

func teamInsertFromRepresentative(name string, rep person.Person) teamInsertModel {
	return teamInsertModel{
		Name:                    name,
		RepresentativeFirstName: rep.FirstName,
		RepresentativeLastName:  rep.LastName,
		RepresentativeEmail:     rep.Email,
		RepresentativePhone:     rep.Phone,
	}
}

func playerRow(teamID int64, rosterPosition int, p player.Player) teamPlayerTableModel {
	return teamPlayerTableModel{
		TeamID:         teamID,
		RosterPosition: rosterPosition,
		FirstName:      p.FirstName,
		LastName:       p.LastName,
		FieldPosition:  p.Position,
		ShirtNumber:    p.Number,
	}
}

func (m teamPlayerTableModel) toDomain() player.Player {
	return player.Player{
		FirstName: m.FirstName,
		LastName:  m.LastName,
		Position:  m.FieldPosition,
		Number:    m.ShirtNumber,
	}
}

func matchRow(teamID int64, m match.Match) teamMatchTableModel {
	return teamMatchTableModel{
		TeamID:      teamID,
		MatchRef:    m.ID,
		Opponent:    m.Opponent,
		Venue:       m.Venue,
		ScheduledAt: timeToNullTime(m.ScheduledAt),
		Result:      m.Result,
	}
}

func (m teamMatchTableModel) toDomain() match.Match {
	out := match.Match{
		ID:       m.MatchRef,
		Opponent: m.Opponent,
		Venue:    m.Venue,
		Result:   m.Result,
	}
	if m.ScheduledAt.Valid {
		out.ScheduledAt = m.ScheduledAt.Time.UTC()
	}
	return out
}
