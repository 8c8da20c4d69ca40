package sample

// FieldName identifies one of the closed set of detection fields.
type FieldName string

const (
	FieldMatchStart  FieldName = "match_start"
	FieldMatchEnd    FieldName = "match_end"
	FieldAgentSelect FieldName = "agent_select"
	FieldPostgame    FieldName = "postgame"
	FieldRoundStart  FieldName = "round_start"
	FieldRoundResult FieldName = "round_result"
	FieldRoster      FieldName = "roster"
	FieldKillFeed    FieldName = "kill_feed"
)

// AllFields lists every field name in a stable order.
var AllFields = []FieldName{
	FieldMatchStart,
	FieldMatchEnd,
	FieldAgentSelect,
	FieldPostgame,
	FieldRoundStart,
	FieldRoundResult,
	FieldRoster,
	FieldKillFeed,
}

// Sample is one timestamped observation bundle. Timestamps are seconds and
// must be non-decreasing across a stream.
type Sample struct {
	Timestamp float64 `json:"timestamp"`
	Fields
}

// Fields holds the optional detections for a sample.
type Fields struct {
	// MatchStart marks the screen shown when a match begins.
	MatchStart *MatchStart `json:"match_start,omitempty"`
	// MatchEnd marks the menu shown once a match is over.
	MatchEnd    *MatchEnd    `json:"match_end,omitempty"`
	AgentSelect *ScreenText  `json:"agent_select,omitempty"`
	Postgame    *ScreenText  `json:"postgame,omitempty"`
	RoundStart  *RoundStart  `json:"round_start,omitempty"`
	RoundResult *RoundResult `json:"round_result,omitempty"`
	Roster      *Roster      `json:"roster,omitempty"`
	KillFeed    *KillFeed    `json:"kill_feed,omitempty"`
}

type MatchStart struct{}

type MatchEnd struct{}

// ScreenText carries raw OCR text read from a pre-match or post-match screen.
// Either value may be empty when that region was unreadable.
type ScreenText struct {
	Map      string `json:"map,omitempty"`
	GameMode string `json:"game_mode,omitempty"`
}

type RoundStart struct{}

// RoundResult marks the round-end banner. Won is nil when the outcome could
// not be read.
type RoundResult struct {
	Won *bool `json:"won,omitempty"`
}

// Roster carries slot-ordered player names. A nil entry is a slot whose name
// could not be read in this sample.
type Roster struct {
	Friendly []*string `json:"friendly,omitempty"`
	Enemy    []*string `json:"enemy,omitempty"`
}

// KillFeed carries the kill feed rows visible in a sample.
type KillFeed struct {
	Entries []KillEntry `json:"entries"`
}

// KillEntry is one raw kill feed row.
type KillEntry struct {
	Killer string `json:"killer"`
	Victim string `json:"victim"`
	Weapon string `json:"weapon,omitempty"`
}

// Has reports whether the named field is present on the sample.
func (s Sample) Has(name FieldName) bool {
	switch name {
	case FieldMatchStart:
		return s.MatchStart != nil
	case FieldMatchEnd:
		return s.MatchEnd != nil
	case FieldAgentSelect:
		return s.AgentSelect != nil
	case FieldPostgame:
		return s.Postgame != nil
	case FieldRoundStart:
		return s.RoundStart != nil
	case FieldRoundResult:
		return s.RoundResult != nil
	case FieldRoster:
		return s.Roster != nil
	case FieldKillFeed:
		return s.KillFeed != nil
	default:
		return false
	}
}

// Present returns the names of the fields present on the sample.
func (s Sample) Present() []FieldName {
	var names []FieldName
	for _, name := range AllFields {
		if s.Has(name) {
			names = append(names, name)
		}
	}
	return names
}

// Makeup counts how many samples in window carry each field.
func Makeup(window []Sample) map[FieldName]int {
	counts := make(map[FieldName]int, len(AllFields))
	for _, s := range window {
		for _, name := range AllFields {
			if s.Has(name) {
				counts[name]++
			}
		}
	}
	return counts
}
