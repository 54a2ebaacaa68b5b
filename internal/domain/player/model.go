package player

import "strings"

// Player is an athlete that can be registered in a team roster.
type Player struct {
	FirstName string
	LastName  string
	Position  string
	Number    int
}

func (p Player) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}
