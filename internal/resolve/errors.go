package resolve

import (
	"errors"
	"fmt"

	"matchmill/internal/game"
)

// ErrUnresolvable tags every failure that prevents a window from becoming a match.
var ErrUnresolvable = errors.New("unresolvable match")

var (
	ErrEmptyWindow = fmt.Errorf("%w: empty window", ErrUnresolvable)
	ErrNoMap       = fmt.Errorf("%w: no map", ErrUnresolvable)
	ErrNoMode      = fmt.Errorf("%w: no game mode", ErrUnresolvable)
	ErrNoRounds    = fmt.Errorf("%w: no rounds", ErrUnresolvable)
	ErrNoRoster    = fmt.Errorf("%w: no roster", ErrUnresolvable)
)

// Warning event types.
const (
	EventCategoricalAmbiguous = "categorical_ambiguous"
	EventUnattributableKill   = "unattributable_kill"
	// EventBoundaryKill tags debug records for kill feed rows first seen on
	// the sample that ends a round.
	EventBoundaryKill = "boundary_kill"
)

// Reason maps err to a short label suitable for metrics and notifications.
func Reason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrEmptyWindow):
		return "empty_window"
	case errors.Is(err, ErrNoMap):
		return "no_map"
	case errors.Is(err, ErrNoMode):
		return "no_mode"
	case errors.Is(err, ErrNoRounds):
		return "no_rounds"
	case errors.Is(err, ErrNoRoster):
		return "no_roster"
	case errors.Is(err, game.ErrInvalidMatch):
		return "invalid_match"
	default:
		return "internal"
	}
}
