package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"matchmill/internal/game"
	"matchmill/internal/sample"
	"matchmill/internal/testsupport"
)

func twoMatchStream() []sample.Sample {
	stream := testsupport.SyntheticMatch(1591102800, 2)
	return append(stream, testsupport.SyntheticMatch(1591110000, 3)...)
}

func TestProcessStoresMatchesAndManagesThem(t *testing.T) {
	env := setupCLITestEnv(t)
	path := env.writeSamples(t, "samples.jsonl", twoMatchStream())

	out, _, err := runCLI(t, []string{"process", path}, env.configPath)
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	requireContains(t, out, "2 matches, 0 failed, 0 discarded")
	requireContains(t, out, "ascent")

	out, _, err = runCLI(t, []string{"matches", "list", "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("matches list: %v", err)
	}
	var records []recordJSON
	if err := json.Unmarshal([]byte(out), &records); err != nil {
		t.Fatalf("decode list output: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 stored matches, got %d", len(records))
	}
	if records[0].StartedAt != 1591110000 || records[0].Rounds != 3 {
		t.Fatalf("expected newest match first, got %+v", records[0])
	}
	key := records[0].Key
	if !strings.HasPrefix(key, "VALORANT/2020-06-02-15-00-") {
		t.Fatalf("unexpected key %q", key)
	}

	out, _, err = runCLI(t, []string{"matches", "list"}, env.configPath)
	if err != nil {
		t.Fatalf("matches list table: %v", err)
	}
	requireContains(t, out, key)

	out, _, err = runCLI(t, []string{"matches", "show", key}, env.configPath)
	if err != nil {
		t.Fatalf("matches show: %v", err)
	}
	requireContains(t, out, "Match "+key)
	requireContains(t, out, "unrated")
	requireContains(t, out, "alpha")

	out, _, err = runCLI(t, []string{"matches", "show", key, "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("matches show --json: %v", err)
	}
	var m game.Match
	if err := json.Unmarshal([]byte(out), &m); err != nil {
		t.Fatalf("decode show output: %v", err)
	}
	if m.Key != key || len(m.Rounds) != 3 || m.Map != "ascent" {
		t.Fatalf("unexpected match document: key=%s rounds=%d map=%s", m.Key, len(m.Rounds), m.Map)
	}

	exportDir := filepath.Join(env.baseDir, "export")
	if _, _, err := runCLI(t, []string{"matches", "export", key, "--dir", exportDir}, env.configPath); err != nil {
		t.Fatalf("matches export: %v", err)
	}
	exported := filepath.Join(exportDir, strings.ReplaceAll(key, "/", "-")+".json")
	if _, err := os.Stat(exported); err != nil {
		t.Fatalf("expected export at %s: %v", exported, err)
	}

	out, _, err = runCLI(t, []string{"matches", "delete", key}, env.configPath)
	if err != nil {
		t.Fatalf("matches delete: %v", err)
	}
	requireContains(t, out, "deleted")
	if _, _, err := runCLI(t, []string{"matches", "delete", key}, env.configPath); err == nil {
		t.Fatal("expected deleting a missing match to fail")
	}
	if _, _, err := runCLI(t, []string{"matches", "show", key}, env.configPath); err == nil {
		t.Fatal("expected show of deleted match to fail")
	}
}

func TestProcessNoStoreReadsStdin(t *testing.T) {
	env := setupCLITestEnv(t)

	var input bytes.Buffer
	enc := json.NewEncoder(&input)
	for _, s := range testsupport.SyntheticMatch(1591102800, 2) {
		if err := enc.Encode(s); err != nil {
			t.Fatalf("encode sample: %v", err)
		}
	}

	out, _, err := runCLIWithInput(t, []string{"process", "--no-store", "--json", "-"}, env.configPath, &input)
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	var matches []game.Match
	if err := json.Unmarshal([]byte(out), &matches); err != nil {
		t.Fatalf("decode process output: %v", err)
	}
	if len(matches) != 1 || len(matches[0].Rounds) != 2 {
		t.Fatalf("unexpected matches: %+v", matches)
	}

	out, _, err = runCLI(t, []string{"matches", "list"}, env.configPath)
	if err != nil {
		t.Fatalf("matches list: %v", err)
	}
	requireContains(t, out, "No matches stored")
}

func TestProcessReportsFailedWindows(t *testing.T) {
	env := setupCLITestEnv(t)
	stream := []sample.Sample{
		testsupport.At(100, testsupport.MatchStart()),
		testsupport.At(101, testsupport.RoundStart()),
		testsupport.At(102, testsupport.Roster(testsupport.FriendlyNames, nil)),
		testsupport.At(103, testsupport.MatchEnd()),
	}
	path := env.writeSamples(t, "broken.jsonl", stream)

	out, _, err := runCLI(t, []string{"process", path}, env.configPath)
	if err != nil {
		t.Fatalf("process should not fail on an unresolvable window: %v", err)
	}
	requireContains(t, out, "0 matches, 1 failed")
	requireContains(t, out, "no map")
}

func TestProcessMissingFile(t *testing.T) {
	env := setupCLITestEnv(t)
	_, _, err := runCLI(t, []string{"process", filepath.Join(env.baseDir, "missing.jsonl")}, env.configPath)
	if err == nil || !strings.Contains(err.Error(), "open samples") {
		t.Fatalf("expected open error, got %v", err)
	}
}

func TestFormatSeconds(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0s"},
		{42.4, "42s"},
		{80, "1m20s"},
		{120, "2m"},
		{3725, "1h2m5s"},
	}
	for _, tt := range tests {
		if got := formatSeconds(tt.in); got != tt.want {
			t.Fatalf("formatSeconds(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
