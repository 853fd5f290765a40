package testsupport

import (
	"context"
	"testing"

	"ripmap/internal/catalog"
	"ripmap/internal/config"
)

// MustOpenStore opens a catalog.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *catalog.Store {
	t.Helper()

	store, err := catalog.Open(cfg)
	if err != nil {
		t.Fatalf("catalog.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// SeedSeason creates program season with the named episodes.
func SeedSeason(t testing.TB, store *catalog.Store, program string, season int, names ...string) []catalog.Episode {
	t.Helper()

	ctx := context.Background()
	stored, err := store.EnsureSeason(ctx, program, season)
	if err != nil {
		t.Fatalf("store.EnsureSeason: %v", err)
	}
	episodes, err := store.AddEpisodes(ctx, stored, season, names...)
	if err != nil {
		t.Fatalf("store.AddEpisodes: %v", err)
	}
	return episodes
}
