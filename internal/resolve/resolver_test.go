package resolve_test

import (
	"errors"
	"log/slog"
	"reflect"
	"testing"

	"matchmill/internal/game"
	"matchmill/internal/logging"
	"matchmill/internal/resolve"
	"matchmill/internal/sample"
	ts "matchmill/internal/testsupport"
)

// 2020-06-02 13:00:00 UTC
const matchEpoch = 1591102800.0

func newResolver(t *testing.T) *resolve.Resolver {
	t.Helper()
	return resolve.New(resolve.DefaultOptions(), logging.NewNop())
}

// windowOf strips the trailing end marker the segmenter never buffers.
func windowOf(samples []sample.Sample) []sample.Sample {
	return samples[:len(samples)-1]
}

func TestResolveSyntheticMatch(t *testing.T) {
	window := windowOf(ts.SyntheticMatch(matchEpoch, 3))
	match, err := newResolver(t).Resolve("VALORANT/test", window)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	if match.Key != "VALORANT/test" || match.Timestamp != matchEpoch {
		t.Fatalf("unexpected identity: key=%q ts=%v", match.Key, match.Timestamp)
	}
	if match.Map != "ascent" || match.GameMode != "unrated" {
		t.Fatalf("unexpected categorical values: map=%q mode=%q", match.Map, match.GameMode)
	}
	if len(match.Rounds) != 3 {
		t.Fatalf("expected 3 rounds, got %d", len(match.Rounds))
	}
	if match.Duration != 125 {
		t.Fatalf("expected duration 125, got %v", match.Duration)
	}
	for i, r := range match.Rounds {
		wantStart := 10 + 40*float64(i)
		if r.Start != wantStart || r.End != wantStart+35 {
			t.Fatalf("round %d = [%v, %v]", i, r.Start, r.End)
		}
		if len(r.Kills) != 1 {
			t.Fatalf("round %d expected 1 merged kill, got %d", i, len(r.Kills))
		}
		k := r.Kills[0]
		if k.Timestamp != wantStart+10 || k.Weapon != "vandal" {
			t.Fatalf("round %d kill = %+v", i, k)
		}
		if k.Killer != game.NewPlayerID(game.SideFriendly, i) || k.Victim != game.NewPlayerID(game.SideEnemy, i) {
			t.Fatalf("round %d kill attributed to %s -> %s", i, k.Killer, k.Victim)
		}
	}
	if match.Score == nil || *match.Score != (game.Score{Won: 2, Lost: 1}) {
		t.Fatalf("unexpected score %+v", match.Score)
	}
	if match.Won == nil || !*match.Won {
		t.Fatalf("expected match won, got %v", match.Won)
	}
	if match.SeasonModeID != 0 {
		t.Fatalf("expected unrated season mode 0, got %d", match.SeasonModeID)
	}
	if match.GameVersion != "01.00.0" {
		t.Fatalf("unexpected game version %q", match.GameVersion)
	}
	if match.SampleCount != len(window) || match.Version != game.Version {
		t.Fatalf("unexpected bookkeeping: samples=%d version=%q", match.SampleCount, match.Version)
	}

	alpha, _ := match.Teams.Player("friendly/0")
	if alpha.Name != "alpha" || alpha.Stats.Kills != 1 || alpha.Stats.FirstKills != 1 {
		t.Fatalf("unexpected alpha: %+v", alpha)
	}
	kilo, _ := match.Teams.Player("enemy/0")
	if kilo.Name != "kilo" || kilo.Stats.Deaths != 1 || kilo.Stats.FirstDeaths != 1 {
		t.Fatalf("unexpected kilo: %+v", kilo)
	}
	if len(match.Warnings) != 0 {
		t.Fatalf("expected no warnings, got %v", match.Warnings)
	}
}

func TestResolveIsDeterministic(t *testing.T) {
	window := windowOf(ts.SyntheticMatch(matchEpoch, 5))
	r := newResolver(t)
	first, err := r.Resolve("k", window)
	if err != nil {
		t.Fatalf("first Resolve failed: %v", err)
	}
	second, err := r.Resolve("k", window)
	if err != nil {
		t.Fatalf("second Resolve failed: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("resolving the same window twice produced different matches")
	}
}

func TestResolveFailures(t *testing.T) {
	roster := ts.Roster(ts.FriendlyNames, ts.EnemyNames)
	tests := []struct {
		name   string
		window []sample.Sample
		want   error
		reason string
	}{
		{
			name:   "empty window",
			window: nil,
			want:   resolve.ErrEmptyWindow,
			reason: "empty_window",
		},
		{
			name: "no map",
			window: []sample.Sample{
				ts.At(0, ts.MatchStart()),
				ts.At(5, ts.AgentSelect("", "STANDARD - UNRATED")),
				ts.At(10, ts.RoundStart(), roster),
				ts.At(40, ts.RoundWon()),
			},
			want:   resolve.ErrNoMap,
			reason: "no_map",
		},
		{
			name: "no mode",
			window: []sample.Sample{
				ts.At(0, ts.MatchStart()),
				ts.At(5, ts.AgentSelect("MAP - BIND", "")),
				ts.At(10, ts.RoundStart(), roster),
				ts.At(40, ts.RoundWon()),
			},
			want:   resolve.ErrNoMode,
			reason: "no_mode",
		},
		{
			name: "no rounds",
			window: []sample.Sample{
				ts.At(0, ts.MatchStart()),
				ts.At(5, ts.AgentSelect("MAP - BIND", "STANDARD - UNRATED")),
				ts.At(10, roster),
			},
			want:   resolve.ErrNoRounds,
			reason: "no_rounds",
		},
		{
			name: "no roster",
			window: []sample.Sample{
				ts.At(0, ts.MatchStart()),
				ts.At(5, ts.AgentSelect("MAP - BIND", "STANDARD - UNRATED")),
				ts.At(10, ts.RoundStart()),
				ts.At(40, ts.RoundWon()),
			},
			want:   resolve.ErrNoRoster,
			reason: "no_roster",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			match, err := newResolver(t).Resolve("k", tt.window)
			if match != nil {
				t.Fatalf("expected no match, got %+v", match)
			}
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			if !errors.Is(err, resolve.ErrUnresolvable) {
				t.Fatalf("expected error to classify as unresolvable: %v", err)
			}
			if got := resolve.Reason(err); got != tt.reason {
				t.Fatalf("Reason = %q, want %q", got, tt.reason)
			}
		})
	}
}

func TestResolveKillAttribution(t *testing.T) {
	friendly := []string{"alpha", "bravo", "", "", ""}
	enemy := []string{"kilo", "lima", "", "", ""}
	window := []sample.Sample{
		ts.At(0, ts.MatchStart(), ts.AgentSelect("MAP - SPLIT", "STANDARD - COMPETITIVE")),
		ts.At(5, ts.Kill("alpha", "kilo", "classic")),
		ts.At(10, ts.RoundStart(), ts.Roster(friendly, enemy)),
		ts.At(15, ts.Kill("ALPHA", "kilo", "vandal")),
		ts.At(16, ts.Kill("alpha", "kilo", "vandal")),
		ts.At(20, ts.Kill("bravoo", "zzzzzz", "phantom")),
		ts.At(21, ts.Kill("bravoo", "zzzzzz", "phantom"), ts.Kill("bravoo", "lima", "")),
		ts.At(40, ts.RoundWon(), ts.Kill("lima", "alpha", "sheriff")),
	}

	rec, logger := ts.NewLogRecorder()
	match, err := resolve.New(resolve.DefaultOptions(), logger).Resolve("k", window)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	round := match.Rounds[0]
	if round.Start != 10 || round.End != 40 {
		t.Fatalf("unexpected round bounds [%v, %v]", round.Start, round.End)
	}
	if len(round.Kills) != 2 {
		t.Fatalf("expected 2 kills, got %d: %+v", len(round.Kills), round.Kills)
	}
	first, second := round.Kills[0], round.Kills[1]
	if first.Timestamp != 15 || first.Killer != "friendly/0" || first.Victim != "enemy/0" || first.Weapon != "vandal" {
		t.Fatalf("unexpected first kill %+v", first)
	}
	if second.Timestamp != 21 || second.Killer != "friendly/1" || second.Victim != "enemy/1" || second.Weapon != "" {
		t.Fatalf("unexpected second kill %+v", second)
	}

	warnings := rec.WithEventType(resolve.EventUnattributableKill)
	if len(warnings) != 1 {
		t.Fatalf("expected 1 unattributable kill warning, got %d", len(warnings))
	}
	if warnings[0].Attrs["raw_victim"] != "zzzzzz" {
		t.Fatalf("unexpected warning attrs %v", warnings[0].Attrs)
	}
	if len(match.Warnings) != 1 {
		t.Fatalf("expected warning recorded on match, got %v", match.Warnings)
	}

	boundary := rec.WithEventType(resolve.EventBoundaryKill)
	if len(boundary) != 1 || boundary[0].Attrs["raw_killer"] != "lima" || boundary[0].Level != slog.LevelDebug {
		t.Fatalf("expected the round-end kill row to be logged, got %+v", boundary)
	}
	lima, _ := match.Teams.Player("enemy/1")
	if lima.Stats.Kills != 0 {
		t.Fatalf("expected round-end kill to stay out of stats, got %+v", lima.Stats)
	}

	bravo, _ := match.Teams.Player("friendly/1")
	if bravo.Stats.Kills != 1 || bravo.Stats.FirstKills != 0 {
		t.Fatalf("unexpected bravo stats %+v", bravo.Stats)
	}
	unresolved, _ := match.Teams.Player("friendly/4")
	if unresolved.Resolved() {
		t.Fatalf("expected slot 4 to stay unresolved, got %q", unresolved.Name)
	}
	if len(match.Teams.Friendly) != 5 || len(match.Teams.Enemy) != 5 {
		t.Fatalf("expected fixed roster size, got %d/%d", len(match.Teams.Friendly), len(match.Teams.Enemy))
	}
}

func TestResolveKeepsKillOnLastActiveSample(t *testing.T) {
	friendly := []string{"alpha", "bravo", "", "", ""}
	enemy := []string{"kilo", "lima", "", "", ""}
	base := []sample.Sample{
		ts.At(0, ts.MatchStart(), ts.AgentSelect("MAP - ASCENT", "STANDARD - UNRATED")),
		ts.At(10, ts.RoundStart(), ts.Roster(friendly, enemy)),
		ts.At(20, ts.Kill("alpha", "kilo", "vandal")),
		ts.At(25, ts.Kill("bravo", "lima", "spectre")),
	}
	gapClosed := append(append([]sample.Sample(nil), base...),
		ts.At(60, ts.RoundStart(), ts.Roster(friendly, enemy)),
		ts.At(70, ts.RoundWon()),
	)

	tests := []struct {
		name   string
		window []sample.Sample
		rounds int
		end    float64
	}{
		{"open at window end", base, 1, 26},
		{"closed by restart gap", gapClosed, 2, 60},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, logger := ts.NewLogRecorder()
			match, err := resolve.New(resolve.DefaultOptions(), logger).Resolve("k", tt.window)
			if err != nil {
				t.Fatalf("Resolve failed: %v", err)
			}
			if len(match.Rounds) != tt.rounds {
				t.Fatalf("expected %d rounds, got %d", tt.rounds, len(match.Rounds))
			}
			first := match.Rounds[0]
			if first.End != tt.end {
				t.Fatalf("expected first round to end at %v, got %v", tt.end, first.End)
			}
			if len(first.Kills) != 2 {
				t.Fatalf("expected both kills kept, got %+v", first.Kills)
			}
			last := first.Kills[1]
			if last.Timestamp != 25 || last.Killer != "friendly/1" || last.Victim != "enemy/1" || last.Weapon != "spectre" {
				t.Fatalf("unexpected last kill %+v", last)
			}
			if len(rec.WithEventType(resolve.EventUnattributableKill)) != 0 || len(match.Warnings) != 0 {
				t.Fatalf("expected no dropped kills, got %v", match.Warnings)
			}
		})
	}
}

func TestResolveAmbiguousMapWarns(t *testing.T) {
	window := windowOf(ts.SyntheticMatch(matchEpoch, 1))
	for i := 0; i < 3; i++ {
		window = append(window, ts.At(window[len(window)-1].Timestamp+1, ts.Postgame("MAP - BIND", "")))
	}

	rec, logger := ts.NewLogRecorder()
	match, err := resolve.New(resolve.DefaultOptions(), logger).Resolve("k", window)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if match.Map != "ascent" {
		t.Fatalf("expected ascent to win, got %q", match.Map)
	}
	if len(rec.WithEventType(resolve.EventCategoricalAmbiguous)) != 1 {
		t.Fatalf("expected one ambiguity warning")
	}
}
