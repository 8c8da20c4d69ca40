package game

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func boolPtr(v bool) *bool { return &v }

func validMatch() *Match {
	friendly := []Player{{ID: NewPlayerID(SideFriendly, 0), Side: SideFriendly, Slot: 0, Name: "alpha"}}
	enemy := []Player{{ID: NewPlayerID(SideEnemy, 0), Side: SideEnemy, Slot: 0, Name: "zulu"}}
	return &Match{
		Key:      "VALORANT/test",
		Duration: 60,
		Rounds: []Round{
			{Index: 0, Start: 0, End: 30, Won: boolPtr(true), Kills: []Kill{
				{RoundIndex: 0, Timestamp: 12, Killer: friendly[0].ID, Victim: enemy[0].ID},
			}},
			{Index: 1, Start: 30, End: 60},
		},
		Teams: Teams{Friendly: friendly, Enemy: enemy},
	}
}

func TestValidateAcceptsWellFormedMatch(t *testing.T) {
	if err := validMatch().Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
}

func TestValidateRejectsBrokenInvariants(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Match)
		want   string
	}{
		{"no rounds", func(m *Match) { m.Rounds = nil }, "no rounds"},
		{"sparse index", func(m *Match) { m.Rounds[1].Index = 2 }, "has index"},
		{"degenerate round", func(m *Match) { m.Rounds[1].Start = 60 }, "not before end"},
		{"overlap", func(m *Match) { m.Rounds[0].End = 40 }, "after round"},
		{"duration mismatch", func(m *Match) { m.Duration = 59 }, "duration"},
		{"kill outside round", func(m *Match) { m.Rounds[0].Kills[0].Timestamp = 30 }, "outside round"},
		{"unknown killer", func(m *Match) { m.Rounds[0].Kills[0].Killer = "friendly/4" }, "unknown killer"},
		{"unknown victim", func(m *Match) { m.Rounds[0].Kills[0].Victim = "enemy/4" }, "unknown victim"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := validMatch()
			tt.mutate(m)
			err := m.Validate()
			if !errors.Is(err, ErrInvalidMatch) {
				t.Fatalf("expected ErrInvalidMatch, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestTeamsUpdate(t *testing.T) {
	m := validMatch()
	ok := m.Teams.Update(NewPlayerID(SideEnemy, 0), func(p *Player) { p.Stats.Deaths++ })
	if !ok {
		t.Fatal("expected update to find player")
	}
	p, _ := m.Teams.Player("enemy/0")
	if p.Stats.Deaths != 1 {
		t.Fatalf("expected deaths to be updated, got %d", p.Stats.Deaths)
	}
	if m.Teams.Update("enemy/9", func(*Player) {}) {
		t.Fatal("expected update of unknown player to fail")
	}
}

func TestVersionAt(t *testing.T) {
	tests := []struct {
		name string
		at   time.Time
		want string
	}{
		{"before first release", time.Date(2019, 5, 1, 0, 0, 0, 0, time.UTC), "00.00.0-beta"},
		{"beta period", time.Date(2020, 4, 7, 0, 0, 0, 0, time.UTC), "00.00.0-beta"},
		{"launch", time.Date(2020, 6, 3, 0, 0, 0, 0, time.UTC), "01.00.0"},
		{"patch in nz time", time.Date(2020, 6, 9, 16, 12, 0, 0, time.UTC), "01.01.0"},
		{"just before patch", time.Date(2020, 6, 9, 16, 10, 0, 0, time.UTC), "01.00.0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := VersionAt(tt.at); got != tt.want {
				t.Fatalf("VersionAt(%s) = %q, want %q", tt.at, got, tt.want)
			}
		})
	}
}

func TestSeasonModeID(t *testing.T) {
	cases := map[string]int{"custom": -1, "unrated": 0, "competitive": 1, "spike rush": 1}
	for mode, want := range cases {
		if got := SeasonModeID(mode); got != want {
			t.Errorf("SeasonModeID(%q) = %d, want %d", mode, got, want)
		}
	}
}

func TestTimeFromSeconds(t *testing.T) {
	got := TimeFromSeconds(1591102800.5)
	want := time.Date(2020, 6, 2, 13, 0, 0, 500_000_000, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("TimeFromSeconds = %s, want %s", got, want)
	}
}
