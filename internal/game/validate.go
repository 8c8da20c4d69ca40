package game

import (
	"errors"
	"fmt"
)

// ErrInvalidMatch is returned when a Match violates a structural invariant.
var ErrInvalidMatch = errors.New("invalid match")

// Validate checks the structural invariants every emitted match must satisfy.
func (m *Match) Validate() error {
	if m == nil {
		return fmt.Errorf("%w: nil match", ErrInvalidMatch)
	}
	if len(m.Rounds) == 0 {
		return fmt.Errorf("%w: no rounds", ErrInvalidMatch)
	}
	players := make(map[PlayerID]struct{})
	for _, p := range m.Teams.All() {
		players[p.ID] = struct{}{}
	}
	for i, r := range m.Rounds {
		if r.Index != i {
			return fmt.Errorf("%w: round %d has index %d", ErrInvalidMatch, i, r.Index)
		}
		if r.Start >= r.End {
			return fmt.Errorf("%w: round %d start %.2f not before end %.2f", ErrInvalidMatch, i, r.Start, r.End)
		}
		if i+1 < len(m.Rounds) && r.End > m.Rounds[i+1].Start {
			return fmt.Errorf("%w: round %d ends at %.2f after round %d starts at %.2f",
				ErrInvalidMatch, i, r.End, i+1, m.Rounds[i+1].Start)
		}
		for _, k := range r.Kills {
			if k.RoundIndex != r.Index {
				return fmt.Errorf("%w: kill in round %d references round %d", ErrInvalidMatch, r.Index, k.RoundIndex)
			}
			if k.Timestamp < r.Start || k.Timestamp >= r.End {
				return fmt.Errorf("%w: kill at %.2f outside round %d [%.2f, %.2f)",
					ErrInvalidMatch, k.Timestamp, r.Index, r.Start, r.End)
			}
			if _, ok := players[k.Killer]; !ok {
				return fmt.Errorf("%w: unknown killer %q", ErrInvalidMatch, k.Killer)
			}
			if _, ok := players[k.Victim]; !ok {
				return fmt.Errorf("%w: unknown victim %q", ErrInvalidMatch, k.Victim)
			}
		}
	}
	if last := m.Rounds[len(m.Rounds)-1].End; m.Duration != last {
		return fmt.Errorf("%w: duration %.2f does not match last round end %.2f", ErrInvalidMatch, m.Duration, last)
	}
	return nil
}
