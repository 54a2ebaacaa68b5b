package team

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/riskibarqy/tournament-registry/internal/domain/match"
	"github.com/riskibarqy/tournament-registry/internal/domain/person"
	"github.com/riskibarqy/tournament-registry/internal/domain/player"
)

func representative() *person.Person {
	return &person.Person{FirstName: "Carlos", LastName: "Ruiz"}
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name           string
		teamName       string
		representative *person.Person
		targetErr      error
	}{
		{name: "valid", teamName: "Halcones", representative: representative()},
		{name: "empty name", teamName: "", representative: representative(), targetErr: ErrInvalidArgument},
		{name: "blank name", teamName: "   \t", representative: representative(), targetErr: ErrInvalidArgument},
		{name: "nil representative", teamName: "Halcones", representative: nil, targetErr: ErrInvalidArgument},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			item, err := New(tc.teamName, tc.representative)
			if tc.targetErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if item.Name() != tc.teamName {
					t.Fatalf("unexpected name: %q", item.Name())
				}
				if len(item.Players()) != 0 || len(item.Matches()) != 0 {
					t.Fatalf("expected empty roster and matches")
				}
				return
			}
			if !errors.Is(err, tc.targetErr) {
				t.Fatalf("expected %v, got %v", tc.targetErr, err)
			}
			if item != nil {
				t.Fatalf("expected nil team on error")
			}
		})
	}
}

func TestNewWithRoster_CopiesCollections(t *testing.T) {
	players := []player.Player{{FirstName: "Ana", LastName: "Diaz"}}
	matches := []match.Match{{ID: "m1", Opponent: "Tigres"}}

	item, err := NewWithRoster("Halcones", representative(), players, matches)
	if err != nil {
		t.Fatalf("new team: %v", err)
	}

	players[0].FirstName = "Mutated"
	matches[0].Opponent = "Mutated"

	if got := item.Players()[0].FirstName; got != "Ana" {
		t.Fatalf("roster shares caller slice: %q", got)
	}
	if got := item.Matches()[0].Opponent; got != "Tigres" {
		t.Fatalf("matches share caller slice: %q", got)
	}
}

func TestNewWithRoster_RejectsDuplicateRoster(t *testing.T) {
	players := []player.Player{
		{FirstName: "Ana", LastName: "Diaz"},
		{FirstName: "Ana", LastName: "Diaz"},
	}

	if _, err := NewWithRoster("Halcones", representative(), players, nil); !errors.Is(err, ErrDuplicatePlayer) {
		t.Fatalf("expected ErrDuplicatePlayer, got %v", err)
	}
}

func TestRegisterPlayer_PreservesInsertionOrder(t *testing.T) {
	item, err := New("Halcones", representative())
	if err != nil {
		t.Fatalf("new team: %v", err)
	}

	want := make([]player.Player, 0, 10)
	for i := 0; i < 10; i++ {
		p := player.Player{FirstName: fmt.Sprintf("First%d", i), LastName: fmt.Sprintf("Last%d", i)}
		if err := item.RegisterPlayer(&p); err != nil {
			t.Fatalf("register %d: %v", i, err)
		}
		want = append(want, p)
	}

	got := item.Players()
	if len(got) != len(want) {
		t.Fatalf("unexpected roster size: got=%d want=%d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("roster[%d]: got=%+v want=%+v", i, got[i], want[i])
		}
	}
}

func TestRegisterPlayer_SameFirstOrLastNameOnlyIsAllowed(t *testing.T) {
	item, _ := New("Halcones", representative())

	for _, p := range []player.Player{
		{FirstName: "Ana", LastName: "Diaz"},
		{FirstName: "Ana", LastName: "Gomez"},
		{FirstName: "Luis", LastName: "Diaz"},
		{FirstName: "ana", LastName: "diaz"},
	} {
		p := p
		if err := item.RegisterPlayer(&p); err != nil {
			t.Fatalf("register %s: %v", p.FullName(), err)
		}
	}

	if item.PlayerCount() != 4 {
		t.Fatalf("unexpected roster size: %d", item.PlayerCount())
	}
}

func TestRegisterPlayer_DuplicateLeavesRosterUnchanged(t *testing.T) {
	item, _ := New("Halcones", representative())
	ana := player.Player{FirstName: "Ana", LastName: "Diaz", Number: 9}
	if err := item.RegisterPlayer(&ana); err != nil {
		t.Fatalf("register: %v", err)
	}
	before := item.Players()

	dup := player.Player{FirstName: "Ana", LastName: "Diaz", Number: 10}
	err := item.RegisterPlayer(&dup)
	if !errors.Is(err, ErrDuplicatePlayer) {
		t.Fatalf("expected ErrDuplicatePlayer, got %v", err)
	}

	after := item.Players()
	if len(after) != len(before) || after[0] != before[0] {
		t.Fatalf("roster changed after rejected registration: %+v", after)
	}
}

func TestRegisterPlayer_NilPlayer(t *testing.T) {
	item, _ := New("Halcones", representative())
	if err := item.RegisterPlayer(nil); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestFindPlayer(t *testing.T) {
	item, _ := New("Halcones", representative())

	if _, found, err := item.FindPlayer(&player.Player{FirstName: "Ana", LastName: "Diaz"}); err != nil || found {
		t.Fatalf("expected not found on empty team, found=%v err=%v", found, err)
	}

	ana := player.Player{FirstName: "Ana", LastName: "Diaz", Position: "FWD"}
	if err := item.RegisterPlayer(&ana); err != nil {
		t.Fatalf("register: %v", err)
	}

	got, found, err := item.FindPlayer(&player.Player{FirstName: "Ana", LastName: "Diaz"})
	if err != nil || !found {
		t.Fatalf("expected player found, found=%v err=%v", found, err)
	}
	if got != ana {
		t.Fatalf("unexpected player: %+v", got)
	}

	if _, found, _ := item.FindPlayer(&player.Player{FirstName: "ana", LastName: "diaz"}); found {
		t.Fatalf("lookup must be case-sensitive")
	}
	if _, _, err := item.FindPlayer(nil); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for nil key, got %v", err)
	}
}

func TestPlayers_ReturnsSnapshot(t *testing.T) {
	item, _ := New("Halcones", representative())
	ana := player.Player{FirstName: "Ana", LastName: "Diaz"}
	_ = item.RegisterPlayer(&ana)

	snapshot := item.Players()
	snapshot[0].FirstName = "Changed"

	if item.PlayerCount() != 1 || item.Players()[0].FirstName != "Ana" {
		t.Fatalf("snapshot mutation leaked into team: %+v", item.Players())
	}
}

func TestClone_IsIndependent(t *testing.T) {
	item, _ := New("Halcones", representative())
	clone := item.Clone()

	luis := player.Player{FirstName: "Luis", LastName: "Gomez"}
	if err := clone.RegisterPlayer(&luis); err != nil {
		t.Fatalf("register on clone: %v", err)
	}
	if item.PlayerCount() != 0 {
		t.Fatalf("clone shares roster with original")
	}
}

func TestRegisterPlayer_ConcurrentDuplicates(t *testing.T) {
	item, _ := New("Halcones", representative())

	const workers = 16
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			errs <- item.RegisterPlayer(&player.Player{FirstName: "Ana", LastName: "Diaz"})
		}()
	}
	wg.Wait()
	close(errs)

	succeeded := 0
	for err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		if !errors.Is(err, ErrDuplicatePlayer) {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if succeeded != 1 || item.PlayerCount() != 1 {
		t.Fatalf("expected exactly one registration, got succeeded=%d roster=%d", succeeded, item.PlayerCount())
	}
}

func TestHalconesScenario(t *testing.T) {
	item, err := New("Halcones", &person.Person{FirstName: "Carlos", LastName: "Ruiz"})
	if err != nil {
		t.Fatalf("new team: %v", err)
	}

	ana := player.Player{FirstName: "Ana", LastName: "Diaz"}
	luis := player.Player{FirstName: "Luis", LastName: "Gomez"}
	if err := item.RegisterPlayer(&ana); err != nil {
		t.Fatalf("register ana: %v", err)
	}
	if err := item.RegisterPlayer(&luis); err != nil {
		t.Fatalf("register luis: %v", err)
	}
	again := player.Player{FirstName: "Ana", LastName: "Diaz"}
	if err := item.RegisterPlayer(&again); !errors.Is(err, ErrDuplicatePlayer) {
		t.Fatalf("expected ErrDuplicatePlayer, got %v", err)
	}

	got := item.Players()
	if len(got) != 2 || got[0] != ana || got[1] != luis {
		t.Fatalf("unexpected final roster: %+v", got)
	}
}
