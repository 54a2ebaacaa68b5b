package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/lib/pq"
	"github.com/riskibarqy/tournament-registry/internal/usecase"
)

const uniqueViolationCode pq.ErrorCode = "23505"

const (
	constraintTeamName   = "teams_name_key"
	constraintPlayerName = "team_players_name_key"
)

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// isConnectionFailure reports errors that mean the database could not be
// reached or did not answer in time.
func isConnectionFailure(err error) bool {
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var opErr *net.OpError
	return errors.As(err, &opErr)
}

func storageError(op string, err error) error {
	if isConnectionFailure(err) {
		return fmt.Errorf("%w: %s: %w", usecase.ErrDependencyUnavailable, op, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// uniqueViolation reports the violated constraint name when err is a
// postgres unique_violation.
func uniqueViolation(err error) (string, bool) {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return "", false
	}
	if pqErr.Code != uniqueViolationCode {
		return "", false
	}
	return pqErr.Constraint, true
}

func timeToNullTime(v time.Time) sql.NullTime {
	if v.IsZero() {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: v.UTC(), Valid: true}
}
