package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/tournament-registry/internal/domain/team"
)

// BootstrapSeed inserts the given teams when the teams table is empty.
func BootstrapSeed(ctx context.Context, db *sqlx.DB, teams []*team.Team) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM teams`); err != nil {
		return fmt.Errorf("count teams for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	repo := NewTeamRepository(db)
	for _, item := range teams {
		if err := repo.Create(ctx, item); err != nil {
			if errors.Is(err, team.ErrTeamAlreadyExists) {
				continue
			}
			return fmt.Errorf("seed team %s: %w", item.Name(), err)
		}
	}

	return nil
}
