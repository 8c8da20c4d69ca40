package sample

import (
	"errors"
	"io"
	"strings"
	"testing"
)

func TestDecoderReadsFields(t *testing.T) {
	input := strings.Join([]string{
		`{"timestamp": 1.5, "match_start": {}}`,
		``,
		`{"timestamp": 2, "agent_select": {"map": "MAP - ASCENT", "game_mode": "STANDARD - UNRATED"}}`,
		`{"timestamp": 3, "roster": {"friendly": ["alpha", null, "charlie"]}, "kill_feed": {"entries": [{"killer": "alpha", "victim": "zulu", "weapon": "vandal"}]}}`,
		`{"timestamp": 4, "round_result": {"won": true}}`,
	}, "\n")

	samples, err := ReadAll(NewDecoder(strings.NewReader(input)))
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if len(samples) != 4 {
		t.Fatalf("expected 4 samples, got %d", len(samples))
	}
	if !samples[0].Has(FieldMatchStart) || samples[0].Has(FieldMatchEnd) {
		t.Fatalf("unexpected presence on first sample: %v", samples[0].Present())
	}
	if samples[1].AgentSelect.Map != "MAP - ASCENT" {
		t.Fatalf("unexpected map text %q", samples[1].AgentSelect.Map)
	}
	roster := samples[2].Roster
	if len(roster.Friendly) != 3 || roster.Friendly[1] != nil || *roster.Friendly[2] != "charlie" {
		t.Fatalf("unexpected roster: %#v", roster)
	}
	if got := samples[2].KillFeed.Entries[0].Weapon; got != "vandal" {
		t.Fatalf("unexpected weapon %q", got)
	}
	if won := samples[3].RoundResult.Won; won == nil || !*won {
		t.Fatalf("expected round won, got %v", won)
	}
}

func TestDecoderReportsLineNumber(t *testing.T) {
	dec := NewDecoder(strings.NewReader("{\"timestamp\": 1}\n\n{not json}\n"))
	if _, err := dec.Next(); err != nil {
		t.Fatalf("first Next failed: %v", err)
	}
	_, err := dec.Next()
	if err == nil {
		t.Fatal("expected decode error")
	}
	if !strings.Contains(err.Error(), "line 3") {
		t.Fatalf("expected line number in error, got %v", err)
	}
}

func TestMakeupCountsFields(t *testing.T) {
	window := []Sample{
		{Timestamp: 0, Fields: Fields{MatchStart: &MatchStart{}}},
		{Timestamp: 1, Fields: Fields{RoundStart: &RoundStart{}, Roster: &Roster{}}},
		{Timestamp: 2, Fields: Fields{RoundStart: &RoundStart{}}},
	}
	counts := Makeup(window)
	if counts[FieldRoundStart] != 2 || counts[FieldMatchStart] != 1 || counts[FieldRoster] != 1 {
		t.Fatalf("unexpected makeup: %v", counts)
	}
	if counts[FieldKillFeed] != 0 {
		t.Fatalf("expected no kill feed samples, got %d", counts[FieldKillFeed])
	}
}

func TestMultiSourceConcatenates(t *testing.T) {
	a := NewSliceSource([]Sample{{Timestamp: 1}, {Timestamp: 2}})
	b := NewSliceSource(nil)
	c := NewSliceSource([]Sample{{Timestamp: 3}})

	src := NewMultiSource(a, b, c)
	var got []float64
	for {
		s, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		got = append(got, s.Timestamp)
	}
	if len(got) != 3 || got[0] != 1 || got[2] != 3 {
		t.Fatalf("unexpected order: %v", got)
	}
}
