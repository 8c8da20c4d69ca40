package testsupport

import (
	"context"
	"testing"

	"matchmill/internal/config"
	"matchmill/internal/game"
	"matchmill/internal/matchstore"
)

// MustOpenStore opens a matchstore.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *matchstore.Store {
	t.Helper()

	store, err := matchstore.Open(cfg)
	if err != nil {
		t.Fatalf("matchstore.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// SaveMatch persists m and fails the test on error.
func SaveMatch(t testing.TB, store *matchstore.Store, m *game.Match) {
	t.Helper()

	if err := store.Save(context.Background(), m); err != nil {
		t.Fatalf("store.Save: %v", err)
	}
}
