package matchstore_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"matchmill/internal/game"
	"matchmill/internal/matchstore"
	"matchmill/internal/testsupport"
)

func sampleMatch(key string, ts float64, rounds int) *game.Match {
	won := true
	m := &game.Match{
		Key:         key,
		Timestamp:   ts,
		Map:         "ascent",
		GameMode:    "unrated",
		Won:         &won,
		Score:       &game.Score{Won: rounds, Lost: 0},
		GameVersion: "01.00.0",
		Version:     game.Version,
	}
	for i := 0; i < rounds; i++ {
		m.Rounds = append(m.Rounds, game.Round{Index: i, Start: float64(i * 40), End: float64(i*40 + 30), Kills: []game.Kill{}})
	}
	m.Duration = m.Rounds[len(m.Rounds)-1].End
	return m
}

func TestOpenCreatesSchema(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	if store.Path() != filepath.Join(cfg.Paths.DataDir, "matches.db") {
		t.Fatalf("unexpected database path %q", store.Path())
	}
	health, err := store.CheckHealth(context.Background())
	if err != nil {
		t.Fatalf("CheckHealth failed: %v", err)
	}
	if !health.Exists || !health.Readable || health.SchemaVersion != 1 || health.Matches != 0 {
		t.Fatalf("unexpected health %+v", health)
	}
}

func TestSaveGetRoundTrip(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	m := sampleMatch("VALORANT/2020-06-02-13-00-abc123", 1591102800, 3)
	testsupport.SaveMatch(t, store, m)

	got, err := store.Get(ctx, m.Key)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Key != m.Key || got.Map != "ascent" || len(got.Rounds) != 3 || got.Duration != 110 {
		t.Fatalf("unexpected match %+v", got)
	}
	if got.Won == nil || !*got.Won || got.Score == nil || got.Score.Won != 3 {
		t.Fatalf("unexpected outcome won=%v score=%v", got.Won, got.Score)
	}
}

func TestSaveReplacesExistingKey(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	testsupport.SaveMatch(t, store, sampleMatch("k", 100, 2))
	replacement := sampleMatch("k", 100, 4)
	replacement.Map = "bind"
	testsupport.SaveMatch(t, store, replacement)

	count, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected upsert to keep 1 row, got %d", count)
	}
	records, err := store.List(ctx, 0)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if records[0].Map != "bind" || records[0].Rounds != 4 {
		t.Fatalf("expected replacement to be stored, got %+v", records[0])
	}
}

func TestSaveRejectsEmptyKey(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	err := store.Save(context.Background(), sampleMatch("", 1, 1))
	if !errors.Is(err, matchstore.ErrEmptyKey) {
		t.Fatalf("expected ErrEmptyKey, got %v", err)
	}
}

func TestListNewestFirstWithLimit(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	testsupport.SaveMatch(t, store, sampleMatch("old", 100, 1))
	testsupport.SaveMatch(t, store, sampleMatch("new", 300, 1))
	mid := sampleMatch("mid", 200, 2)
	mid.Won = nil
	mid.Score = nil
	testsupport.SaveMatch(t, store, mid)

	records, err := store.List(ctx, 2)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(records) != 2 || records[0].Key != "new" || records[1].Key != "mid" {
		t.Fatalf("unexpected order: %+v", records)
	}
	if records[1].Won != nil || records[1].Score != nil {
		t.Fatalf("expected unresolved outcome to round-trip as nil, got %+v", records[1])
	}
	if records[0].CreatedAt.IsZero() {
		t.Fatal("expected created_at to be populated")
	}
}

func TestDeleteAndNotFound(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	testsupport.SaveMatch(t, store, sampleMatch("k", 1, 1))
	if err := store.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := store.Get(ctx, "k"); !errors.Is(err, matchstore.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := store.Delete(ctx, "k"); !errors.Is(err, matchstore.ErrNotFound) {
		t.Fatalf("expected ErrNotFound deleting missing key, got %v", err)
	}
}

func TestReopenKeepsData(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store, err := matchstore.Open(cfg)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	testsupport.SaveMatch(t, store, sampleMatch("k", 1, 1))
	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened := testsupport.MustOpenStore(t, cfg)
	count, err := reopened.Count(context.Background())
	if err != nil || count != 1 {
		t.Fatalf("expected 1 match after reopen, got %d (%v)", count, err)
	}
}
