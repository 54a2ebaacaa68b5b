package postgres

import (
	"errors"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/riskibarqy/tournament-registry/internal/domain/match"
	"github.com/riskibarqy/tournament-registry/internal/domain/player"
	"github.com/riskibarqy/tournament-registry/internal/domain/team"
)

func TestPlayerRowRoundTripKeepsRosterPosition(t *testing.T) {
	p := player.Player{FirstName: "Ana", LastName: "Diaz", Position: "FWD", Number: 9}

	row := playerRow(7, 3, p)
	if row.TeamID != 7 || row.RosterPosition != 3 {
		t.Fatalf("unexpected row keys: %+v", row)
	}
	if got := row.toDomain(); got != p {
		t.Fatalf("unexpected player: %+v", got)
	}
}

func TestMatchRowUnscheduled(t *testing.T) {
	row := matchRow(1, match.Match{ID: "m1", Opponent: "Tigres"})
	if row.ScheduledAt.Valid {
		t.Fatalf("expected null scheduled_at for zero time")
	}

	got := row.toDomain()
	if !got.ScheduledAt.IsZero() || got.Opponent != "Tigres" || got.ID != "m1" {
		t.Fatalf("unexpected match: %+v", got)
	}
}

func TestMatchRowScheduled(t *testing.T) {
	at := time.Date(2026, 5, 1, 20, 30, 0, 0, time.UTC)
	got := matchRow(1, match.Match{ID: "m2", ScheduledAt: at}).toDomain()
	if !got.ScheduledAt.Equal(at) {
		t.Fatalf("unexpected scheduled_at: %v", got.ScheduledAt)
	}
}

func TestMapWriteError(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		targetErr error
	}{
		{
			name:      "team name clash",
			err:       &pq.Error{Code: "23505", Constraint: constraintTeamName},
			targetErr: team.ErrTeamAlreadyExists,
		},
		{
			name:      "player name clash",
			err:       &pq.Error{Code: "23505", Constraint: constraintPlayerName},
			targetErr: team.ErrDuplicatePlayer,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := mapWriteError("Halcones", tc.err); !errors.Is(err, tc.targetErr) {
				t.Fatalf("expected %v, got %v", tc.targetErr, err)
			}
		})
	}

	t.Run("other errors pass through", func(t *testing.T) {
		in := &pq.Error{Code: "23505", Constraint: "team_players_roster_position_key"}
		if err := mapWriteError("Halcones", in); err != error(in) {
			t.Fatalf("expected original error, got %v", err)
		}
	})
}
