package person

import "strings"

// Person is a human identity referenced by teams, e.g. the team representative.
type Person struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
}

func (p Person) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}
