package resolve

import (
	"log/slog"
	"strings"

	"matchmill/internal/game"
	"matchmill/internal/logging"
	"matchmill/internal/sample"
	"matchmill/internal/textutil"
	"matchmill/internal/vote"
)

// resolveTeams votes a name for every roster slot. Slots nobody could read
// stay in the roster with an empty name.
func resolveTeams(window []sample.Sample, teamSize int, logger *slog.Logger) (game.Teams, error) {
	friendly := newSlotTallies(teamSize)
	enemy := newSlotTallies(teamSize)
	for _, s := range window {
		if s.Roster == nil {
			continue
		}
		friendly.observe(s.Roster.Friendly)
		enemy.observe(s.Roster.Enemy)
	}

	teams := game.Teams{
		Friendly: friendly.players(game.SideFriendly, logger),
		Enemy:    enemy.players(game.SideEnemy, logger),
	}
	for _, p := range teams.All() {
		if p.Resolved() {
			return teams, nil
		}
	}
	return teams, ErrNoRoster
}

type slotTallies []*vote.Tally[string]

func newSlotTallies(size int) slotTallies {
	slots := make(slotTallies, size)
	for i := range slots {
		slots[i] = vote.New[string]()
	}
	return slots
}

func (st slotTallies) observe(names []*string) {
	for i, name := range names {
		if i >= len(st) || name == nil {
			continue
		}
		if trimmed := strings.TrimSpace(*name); trimmed != "" {
			st[i].Add(trimmed)
		}
	}
}

func (st slotTallies) players(side game.Side, logger *slog.Logger) []game.Player {
	players := make([]game.Player, len(st))
	for slot, tally := range st {
		p := game.Player{
			ID:           game.NewPlayerID(side, slot),
			Side:         side,
			Slot:         slot,
			Observations: tally.Total(),
		}
		if winner, ok := tally.Winner(); ok {
			p.Name = winner.Value
		}
		logger.Debug("roster slot decision",
			logging.Args(append(logging.DecisionAttrs("roster_slot", p.Name, "majority vote"),
				logging.String("player_id", string(p.ID)),
				logging.Int("observations", p.Observations),
				logging.Int("candidates", tally.Len()),
			)...)...,
		)
		players[slot] = p
	}
	return players
}

// roster looks raw kill feed names up against resolved players.
type roster struct {
	players   []game.Player
	threshold float64
}

func newRoster(teams game.Teams, threshold float64) roster {
	var resolved []game.Player
	for _, p := range teams.All() {
		if p.Resolved() {
			resolved = append(resolved, p)
		}
	}
	return roster{players: resolved, threshold: threshold}
}

// Lookup returns the player whose name matches raw, preferring a case-folded
// exact match over the most similar name.
func (r roster) Lookup(raw string) (game.PlayerID, bool) {
	norm := textutil.Normalize(raw)
	if norm == "" {
		return "", false
	}
	for _, p := range r.players {
		if textutil.Normalize(p.Name) == norm {
			return p.ID, true
		}
	}
	var best game.PlayerID
	bestScore := 0.0
	for _, p := range r.players {
		if score := textutil.Ratio(raw, p.Name); score > bestScore {
			best = p.ID
			bestScore = score
		}
	}
	if best == "" || bestScore < r.threshold {
		return "", false
	}
	return best, true
}
