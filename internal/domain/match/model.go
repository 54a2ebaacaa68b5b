package match

import "time"

// Match is a fixture a team took part in. Teams store matches but never inspect them.
type Match struct {
	ID          string
	Opponent    string
	Venue       string
	ScheduledAt time.Time
	Result      string
}
