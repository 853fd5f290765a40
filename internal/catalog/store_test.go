package catalog_test

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"testing"

	_ "modernc.org/sqlite"

	"ripmap/internal/catalog"
	"ripmap/internal/testsupport"
)

func TestOpenCreatesSchemaAndLocks(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	if _, err := os.Stat(store.Path()); err != nil {
		t.Fatalf("expected database file: %v", err)
	}
	if _, err := catalog.Open(cfg); !errors.Is(err, catalog.ErrLocked) {
		t.Fatalf("expected ErrLocked for second open, got %v", err)
	}

	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	reopened, err := catalog.Open(cfg)
	if err != nil {
		t.Fatalf("reopen after close failed: %v", err)
	}
	defer reopened.Close()

	programs, err := reopened.Programs(context.Background())
	if err != nil {
		t.Fatalf("Programs failed: %v", err)
	}
	if len(programs) != 0 {
		t.Fatalf("expected empty catalogue, got %#v", programs)
	}
}

func TestOpenRefusesNewerSchema(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	db, err := sql.Open("sqlite", cfg.Paths.Database)
	if err != nil {
		t.Fatalf("open raw db: %v", err)
	}
	if _, err := db.Exec("PRAGMA user_version = 9"); err != nil {
		t.Fatalf("bump user_version: %v", err)
	}
	_ = db.Close()

	if _, err := catalog.Open(cfg); !errors.Is(err, catalog.ErrSchemaMismatch) {
		t.Fatalf("expected ErrSchemaMismatch, got %v", err)
	}
	// A failed open releases its lock, so the next attempt sees the same error.
	if _, err := catalog.Open(cfg); !errors.Is(err, catalog.ErrSchemaMismatch) {
		t.Fatalf("expected ErrSchemaMismatch on retry, got %v", err)
	}
}

func TestProgramNamesResolveCaseInsensitively(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	stored, err := store.AddProgram(ctx, "  Foo   &  Bar ")
	if err != nil {
		t.Fatalf("AddProgram failed: %v", err)
	}
	if stored != "Foo & Bar" {
		t.Fatalf("expected normalized name, got %q", stored)
	}
	got, err := store.ResolveProgram(ctx, "FOO & bar")
	if err != nil {
		t.Fatalf("ResolveProgram failed: %v", err)
	}
	if got != "Foo & Bar" {
		t.Fatalf("expected stored spelling, got %q", got)
	}
	if _, err := store.AddProgram(ctx, "foo & bar"); !errors.Is(err, catalog.ErrExists) {
		t.Fatalf("expected ErrExists, got %v", err)
	}
	if _, err := store.AddProgram(ctx, "   "); !errors.Is(err, catalog.ErrInvalid) {
		t.Fatalf("expected ErrInvalid for blank name, got %v", err)
	}
	if _, err := store.ResolveProgram(ctx, "Baz"); !errors.Is(err, catalog.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSeasons(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	if _, err := store.EnsureSeason(ctx, "Foo & Bar", 2); err != nil {
		t.Fatalf("EnsureSeason failed: %v", err)
	}
	if _, err := store.EnsureSeason(ctx, "foo & bar", 2); err != nil {
		t.Fatalf("EnsureSeason should be idempotent: %v", err)
	}
	testsupport.SeedSeason(t, store, "Foo & Bar", 1, "Foo", "Bar")
	if err := store.AddSeason(ctx, "Foo & Bar", 1); !errors.Is(err, catalog.ErrExists) {
		t.Fatalf("expected ErrExists, got %v", err)
	}
	if err := store.AddSeason(ctx, "Foo & Bar", -1); !errors.Is(err, catalog.ErrInvalid) {
		t.Fatalf("expected ErrInvalid for negative season, got %v", err)
	}

	seasons, err := store.Seasons(ctx, "Foo & Bar")
	if err != nil {
		t.Fatalf("Seasons failed: %v", err)
	}
	if len(seasons) != 2 || seasons[0].Number != 1 || seasons[0].Episodes != 2 || seasons[1].Number != 2 || seasons[1].Episodes != 0 {
		t.Fatalf("unexpected seasons: %#v", seasons)
	}

	if err := store.RemoveSeason(ctx, "Foo & Bar", 1); err != nil {
		t.Fatalf("RemoveSeason failed: %v", err)
	}
	if _, err := store.Episodes(ctx, "Foo & Bar", 1); !errors.Is(err, catalog.ErrNotFound) {
		t.Fatalf("expected removed season to be missing, got %v", err)
	}

	programs, err := store.Programs(ctx)
	if err != nil {
		t.Fatalf("Programs failed: %v", err)
	}
	if len(programs) != 1 || programs[0].Seasons != 1 {
		t.Fatalf("unexpected programs: %#v", programs)
	}
	if err := store.RemoveProgram(ctx, "FOO & BAR"); err != nil {
		t.Fatalf("RemoveProgram failed: %v", err)
	}
	if programs, _ := store.Programs(ctx); len(programs) != 0 {
		t.Fatalf("expected no programs after removal, got %#v", programs)
	}
}

func episodeNames(t *testing.T, store *catalog.Store) []string {
	t.Helper()
	episodes, err := store.Episodes(context.Background(), "Foo & Bar", 1)
	if err != nil {
		t.Fatalf("Episodes failed: %v", err)
	}
	names := make([]string, len(episodes))
	for i, e := range episodes {
		if e.Number != i+1 {
			t.Fatalf("episode numbers not contiguous: %#v", episodes)
		}
		names[i] = e.Name
	}
	return names
}

func equalNames(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestInsertAndDeleteRenumberEpisodes(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	added := testsupport.SeedSeason(t, store, "Foo & Bar", 1, "Foo", "Bar", "Baz")
	if len(added) != 3 || added[2].Number != 3 {
		t.Fatalf("unexpected added episodes: %#v", added)
	}

	// A mapping on Baz must follow the episode as it is renumbered.
	baz := catalog.EpisodeKey{Program: "Foo & Bar", Season: 1, Number: 3}
	if err := store.SaveMappings(ctx, "disc-1", []catalog.MapEntry{{Episode: baz, Title: 4}}); err != nil {
		t.Fatalf("SaveMappings failed: %v", err)
	}

	if _, err := store.InsertEpisode(ctx, "Foo & Bar", 1, 2, "Inserted"); err != nil {
		t.Fatalf("InsertEpisode failed: %v", err)
	}
	if got := episodeNames(t, store); !equalNames(got, []string{"Foo", "Inserted", "Bar", "Baz"}) {
		t.Fatalf("unexpected order after insert: %v", got)
	}
	mappings, err := store.Mappings(ctx, "disc-1")
	if err != nil {
		t.Fatalf("Mappings failed: %v", err)
	}
	if len(mappings) != 1 || mappings[0].Episode.Number != 4 || mappings[0].Title != 4 {
		t.Fatalf("expected mapping to follow Baz to episode 4, got %#v", mappings)
	}

	if _, err := store.InsertEpisode(ctx, "Foo & Bar", 1, 5, "Appended"); err != nil {
		t.Fatalf("InsertEpisode at end failed: %v", err)
	}
	if _, err := store.InsertEpisode(ctx, "Foo & Bar", 1, 9, "Gap"); !errors.Is(err, catalog.ErrInvalid) {
		t.Fatalf("expected ErrInvalid for gap, got %v", err)
	}

	if err := store.DeleteEpisode(ctx, catalog.EpisodeKey{Program: "Foo & Bar", Season: 1, Number: 1}); err != nil {
		t.Fatalf("DeleteEpisode failed: %v", err)
	}
	if got := episodeNames(t, store); !equalNames(got, []string{"Inserted", "Bar", "Baz", "Appended"}) {
		t.Fatalf("unexpected order after delete: %v", got)
	}
	mappings, _ = store.Mappings(ctx, "disc-1")
	if len(mappings) != 1 || mappings[0].Episode.Number != 3 {
		t.Fatalf("expected mapping to follow Baz to episode 3, got %#v", mappings)
	}

	if err := store.DeleteEpisode(ctx, catalog.EpisodeKey{Program: "Foo & Bar", Season: 1, Number: 3}); err != nil {
		t.Fatalf("DeleteEpisode failed: %v", err)
	}
	if mappings, _ := store.Mappings(ctx, "disc-1"); len(mappings) != 0 {
		t.Fatalf("expected mapping removed with its episode, got %#v", mappings)
	}
	if err := store.DeleteEpisode(ctx, catalog.EpisodeKey{Program: "Foo & Bar", Season: 1, Number: 7}); !errors.Is(err, catalog.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRenameEpisode(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	testsupport.SeedSeason(t, store, "Foo & Bar", 1, "Foo")
	key := catalog.EpisodeKey{Program: "foo & bar", Season: 1, Number: 1}
	if err := store.RenameEpisode(ctx, key, "Renamed"); err != nil {
		t.Fatalf("RenameEpisode failed: %v", err)
	}
	e, err := store.Episode(ctx, key)
	if err != nil {
		t.Fatalf("Episode failed: %v", err)
	}
	if e.Name != "Renamed" || e.Program != "Foo & Bar" {
		t.Fatalf("unexpected episode: %#v", e)
	}
	if err := store.RenameEpisode(ctx, key, " "); !errors.Is(err, catalog.ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
}

func TestRipHistory(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	testsupport.SeedSeason(t, store, "Foo & Bar", 1, "Foo", "Bar", "Baz")
	foo := catalog.EpisodeKey{Program: "Foo & Bar", Season: 1, Number: 1}
	bar := catalog.EpisodeKey{Program: "Foo & Bar", Season: 1, Number: 2}

	if err := store.MarkRipped(ctx, foo, catalog.RipRecord{DiscID: "disc-1", DiscTitle: 2}); err != nil {
		t.Fatalf("MarkRipped failed: %v", err)
	}
	if err := store.MarkRipped(ctx, bar, catalog.RipRecord{DiscID: "disc-1", DiscTitle: 1, StartChapter: 6, EndChapter: 10}); err != nil {
		t.Fatalf("MarkRipped failed: %v", err)
	}

	invalid := []catalog.RipRecord{
		{DiscTitle: 1},
		{DiscID: "disc-1"},
		{DiscID: "disc-1", DiscTitle: 1, StartChapter: 3},
		{DiscID: "disc-1", DiscTitle: 1, StartChapter: 5, EndChapter: 3},
	}
	for _, rec := range invalid {
		if err := store.MarkRipped(ctx, bar, rec); !errors.Is(err, catalog.ErrInvalid) {
			t.Fatalf("expected ErrInvalid for %#v, got %v", rec, err)
		}
	}

	ripped, err := store.RippedOn(ctx, "disc-1")
	if err != nil {
		t.Fatalf("RippedOn failed: %v", err)
	}
	if len(ripped) != 2 || !ripped[0].Ripped() || ripped[0].ChapterRange() || !ripped[1].ChapterRange() || ripped[1].StartChapter != 6 {
		t.Fatalf("unexpected ripped episodes: %#v", ripped)
	}
	if other, _ := store.RippedOn(ctx, "disc-2"); len(other) != 0 {
		t.Fatalf("expected nothing ripped from disc-2, got %#v", other)
	}

	unripped, err := store.UnrippedEpisodes(ctx, "Foo & Bar", 1)
	if err != nil {
		t.Fatalf("UnrippedEpisodes failed: %v", err)
	}
	if len(unripped) != 1 || unripped[0].Name != "Baz" {
		t.Fatalf("unexpected unripped episodes: %#v", unripped)
	}

	if err := store.UnmarkRipped(ctx, foo); err != nil {
		t.Fatalf("UnmarkRipped failed: %v", err)
	}
	e, _ := store.Episode(ctx, foo)
	if e.Ripped() || e.DiscTitle != 0 {
		t.Fatalf("expected rip history cleared, got %#v", e)
	}
}

func TestSaveMappingsReplaces(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	testsupport.SeedSeason(t, store, "Foo & Bar", 1, "Foo", "Bar", "Baz")
	key := func(n int) catalog.EpisodeKey {
		return catalog.EpisodeKey{Program: "Foo & Bar", Season: 1, Number: n}
	}

	first := []catalog.MapEntry{
		{Episode: key(2), Title: 1, StartChapter: 6, EndChapter: 10},
		{Episode: key(1), Title: 1, StartChapter: 1, EndChapter: 5},
	}
	if err := store.SaveMappings(ctx, "disc-1", first); err != nil {
		t.Fatalf("SaveMappings failed: %v", err)
	}
	if err := store.SaveMappings(ctx, "disc-2", []catalog.MapEntry{{Episode: key(3), Title: 7}}); err != nil {
		t.Fatalf("SaveMappings failed: %v", err)
	}
	got, err := store.Mappings(ctx, "disc-1")
	if err != nil {
		t.Fatalf("Mappings failed: %v", err)
	}
	if len(got) != 2 || got[0].Episode.Number != 1 || got[1].StartChapter != 6 || got[1].EndChapter != 10 {
		t.Fatalf("unexpected mappings: %#v", got)
	}

	if err := store.SaveMappings(ctx, "disc-1", []catalog.MapEntry{{Episode: key(3), Title: 2}}); err != nil {
		t.Fatalf("SaveMappings failed: %v", err)
	}
	got, _ = store.Mappings(ctx, "disc-1")
	if len(got) != 1 || got[0].Episode.Number != 3 || got[0].Title != 2 || got[0].StartChapter != 0 {
		t.Fatalf("expected replacement mappings, got %#v", got)
	}
	if other, _ := store.Mappings(ctx, "disc-2"); len(other) != 1 {
		t.Fatalf("expected disc-2 mappings untouched, got %#v", other)
	}

	if err := store.SaveMappings(ctx, "disc-1", nil); err != nil {
		t.Fatalf("SaveMappings clear failed: %v", err)
	}
	if got, _ := store.Mappings(ctx, "disc-1"); len(got) != 0 {
		t.Fatalf("expected cleared mappings, got %#v", got)
	}

	if err := store.SaveMappings(ctx, "", nil); !errors.Is(err, catalog.ErrInvalid) {
		t.Fatalf("expected ErrInvalid for empty disc id, got %v", err)
	}
	if err := store.SaveMappings(ctx, "disc-1", []catalog.MapEntry{{Episode: key(1), Title: 1, StartChapter: 4}}); !errors.Is(err, catalog.ErrInvalid) {
		t.Fatalf("expected ErrInvalid for half chapter range, got %v", err)
	}
}
