package team

import crerr "github.com/cockroachdb/errors"

var (
	ErrInvalidArgument   = crerr.New("invalid team argument")
	ErrDuplicatePlayer   = crerr.New("player already registered in team")
	ErrTeamAlreadyExists = crerr.New("team already exists")
)
