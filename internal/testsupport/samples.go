package testsupport

import (
	"matchmill/internal/sample"
)

// Roster names used by SyntheticMatch.
var (
	FriendlyNames = []string{"alpha", "bravo", "charlie", "delta", "echo"}
	EnemyNames    = []string{"kilo", "lima", "mike", "november", "oscar"}
)

// SampleOption sets one field on a sample built by At.
type SampleOption func(*sample.Sample)

// At builds a sample at ts with the given fields.
func At(ts float64, opts ...SampleOption) sample.Sample {
	s := sample.Sample{Timestamp: ts}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

func MatchStart() SampleOption {
	return func(s *sample.Sample) { s.MatchStart = &sample.MatchStart{} }
}

func MatchEnd() SampleOption {
	return func(s *sample.Sample) { s.MatchEnd = &sample.MatchEnd{} }
}

func AgentSelect(mapText, modeText string) SampleOption {
	return func(s *sample.Sample) {
		s.AgentSelect = &sample.ScreenText{Map: mapText, GameMode: modeText}
	}
}

func Postgame(mapText, modeText string) SampleOption {
	return func(s *sample.Sample) {
		s.Postgame = &sample.ScreenText{Map: mapText, GameMode: modeText}
	}
}

func RoundStart() SampleOption {
	return func(s *sample.Sample) { s.RoundStart = &sample.RoundStart{} }
}

// RoundResult marks a round end banner; pass nil for an unreadable outcome.
func RoundResult(won *bool) SampleOption {
	return func(s *sample.Sample) { s.RoundResult = &sample.RoundResult{Won: won} }
}

func RoundWon() SampleOption  { return RoundResult(Bool(true)) }
func RoundLost() SampleOption { return RoundResult(Bool(false)) }

// Roster sets slot names. Empty strings become unreadable slots.
func Roster(friendly, enemy []string) SampleOption {
	return func(s *sample.Sample) {
		s.Roster = &sample.Roster{Friendly: namePtrs(friendly), Enemy: namePtrs(enemy)}
	}
}

// Kill appends one kill feed row.
func Kill(killer, victim, weapon string) SampleOption {
	return func(s *sample.Sample) {
		if s.KillFeed == nil {
			s.KillFeed = &sample.KillFeed{}
		}
		s.KillFeed.Entries = append(s.KillFeed.Entries, sample.KillEntry{Killer: killer, Victim: victim, Weapon: weapon})
	}
}

// Bool returns a pointer to v.
func Bool(v bool) *bool { return &v }

func namePtrs(names []string) []*string {
	if names == nil {
		return nil
	}
	out := make([]*string, len(names))
	for i, name := range names {
		if name == "" {
			continue
		}
		n := name
		out[i] = &n
	}
	return out
}

// SyntheticMatch produces the samples of a complete, well-formed match that
// begins at start with the given number of rounds.
//
// Relative to start, round r opens at 10+40r (three start markers one second
// apart), shows a kill of FriendlyNames[r%5] on EnemyNames[r%5] at 20+40r
// that persists to 22+40r, and ends at 45+40r. Even rounds are won. The
// postgame screen follows the last round and a match end marker closes the
// stream one second later.
func SyntheticMatch(start float64, rounds int) []sample.Sample {
	const (
		mapText  = "MAP - ASCENT"
		modeText = "STANDARD - UNRATED"
	)
	out := []sample.Sample{At(start, MatchStart())}
	for i := 1; i <= 5; i++ {
		out = append(out, At(start+float64(i), AgentSelect(mapText, modeText)))
	}
	for r := 0; r < rounds; r++ {
		base := start + 10 + float64(r)*40
		for i := 0; i < 3; i++ {
			out = append(out, At(base+float64(i), RoundStart(), Roster(FriendlyNames, EnemyNames)))
		}
		killer, victim := FriendlyNames[r%5], EnemyNames[r%5]
		out = append(out,
			At(base+10, Roster(FriendlyNames, EnemyNames), Kill(killer, victim, "vandal")),
			At(base+12, Kill(killer, victim, "vandal")),
			At(base+35, RoundResult(Bool(r%2 == 0))),
		)
	}
	end := start + 10 + float64(rounds)*40
	out = append(out,
		At(end, Postgame(mapText, modeText)),
		At(end+1, MatchEnd()),
	)
	return out
}
