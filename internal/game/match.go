package game

import "fmt"

// Version identifies the reconstruction logic that produced a Match.
const Version = "1.2.0"

// Side names which team a player is on.
type Side string

const (
	SideFriendly Side = "friendly"
	SideEnemy    Side = "enemy"
)

// PlayerID is a stable identity for a roster slot, e.g. "friendly/0".
type PlayerID string

// NewPlayerID builds the identity for slot on side.
func NewPlayerID(side Side, slot int) PlayerID {
	return PlayerID(fmt.Sprintf("%s/%d", side, slot))
}

// Match is one reconstructed game session.
type Match struct {
	Key          string   `json:"key"`
	Timestamp    float64  `json:"timestamp"`
	Duration     float64  `json:"duration"`
	Map          string   `json:"map"`
	GameMode     string   `json:"game_mode"`
	Rounds       []Round  `json:"rounds"`
	Teams        Teams    `json:"teams"`
	Won          *bool    `json:"won,omitempty"`
	Score        *Score   `json:"score,omitempty"`
	SeasonModeID int      `json:"season_mode_id"`
	GameVersion  string   `json:"game_version"`
	SampleCount  int      `json:"sample_count"`
	Version      string   `json:"version"`
	Warnings     []string `json:"warnings,omitempty"`
}

// Round is a contiguous interval of a match. Start and End are relative to
// the match timestamp.
type Round struct {
	Index int     `json:"index"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Won   *bool   `json:"won,omitempty"`
	Kills []Kill  `json:"kills"`
}

// Duration returns the round length.
func (r Round) Duration() float64 {
	return r.End - r.Start
}

// Kill is one attributed kill event.
type Kill struct {
	RoundIndex int      `json:"round_index"`
	Timestamp  float64  `json:"timestamp"`
	Killer     PlayerID `json:"killer"`
	Victim     PlayerID `json:"victim"`
	Weapon     string   `json:"weapon,omitempty"`
}

// Score counts rounds with a resolved outcome.
type Score struct {
	Won  int `json:"won"`
	Lost int `json:"lost"`
}

func (s Score) String() string {
	return fmt.Sprintf("%d-%d", s.Won, s.Lost)
}

// Teams holds both rosters in slot order.
type Teams struct {
	Friendly []Player `json:"friendly"`
	Enemy    []Player `json:"enemy"`
}

// Player is one roster slot.
type Player struct {
	ID           PlayerID `json:"id"`
	Side         Side     `json:"side"`
	Slot         int      `json:"slot"`
	Name         string   `json:"name,omitempty"`
	Observations int      `json:"observations"`
	Stats        Stats    `json:"stats"`
}

// Resolved reports whether the slot's name was recognized.
func (p Player) Resolved() bool {
	return p.Name != ""
}

// Stats are per-player performance totals.
type Stats struct {
	Kills       int `json:"kills"`
	Deaths      int `json:"deaths"`
	FirstKills  int `json:"first_kills"`
	FirstDeaths int `json:"first_deaths"`
}

// All returns friendly players followed by enemy players.
func (t Teams) All() []Player {
	out := make([]Player, 0, len(t.Friendly)+len(t.Enemy))
	out = append(out, t.Friendly...)
	return append(out, t.Enemy...)
}

// Player looks up a player by id.
func (t Teams) Player(id PlayerID) (Player, bool) {
	for _, p := range t.All() {
		if p.ID == id {
			return p, true
		}
	}
	return Player{}, false
}

// Update applies fn to the player with id in place. It reports whether the
// player exists.
func (t *Teams) Update(id PlayerID, fn func(*Player)) bool {
	for _, side := range [][]Player{t.Friendly, t.Enemy} {
		for i := range side {
			if side[i].ID == id {
				fn(&side[i])
				return true
			}
		}
	}
	return false
}

// Kills returns every kill in the match in round order.
func (m *Match) Kills() []Kill {
	var out []Kill
	for _, r := range m.Rounds {
		out = append(out, r.Kills...)
	}
	return out
}
