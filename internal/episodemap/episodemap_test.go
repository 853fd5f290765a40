package episodemap_test

import (
	"errors"
	"testing"

	"ripmap/internal/catalog"
	"ripmap/internal/episodemap"
	"ripmap/internal/testsupport"
)

func TestEpisodeMapIteratesInEpisodeOrder(t *testing.T) {
	d := testsupport.FooDisc1()
	episodes := testsupport.FooEpisodes()

	m := episodemap.New()
	for _, idx := range []int{4, 0, 2} {
		if err := m.Set(episodes[idx], episodemap.TitleTarget(d.Titles[idx+1])); err != nil {
			t.Fatalf("Set(%s) returned error: %v", episodes[idx].Label(), err)
		}
	}

	items := m.Items()
	want := []int{1, 3, 5}
	if len(items) != len(want) {
		t.Fatalf("expected %d items, got %d", len(want), len(items))
	}
	for i, item := range items {
		if item.Episode.Number != want[i] {
			t.Fatalf("item %d: expected episode %d, got %d", i, want[i], item.Episode.Number)
		}
		if item.Target.Title != d.Titles[want[i]] {
			t.Fatalf("item %d: unexpected target %s", i, item.Target)
		}
	}

	keys := m.Keys()
	values := m.Values()
	for i := range want {
		if keys[i].Number != want[i] || values[i] != items[i].Target {
			t.Fatalf("projection %d disagrees with Items: %v %v", i, keys[i], values[i])
		}
	}

	var seen []int
	for episode := range m.All() {
		seen = append(seen, episode.Number)
	}
	if len(seen) != 3 || seen[0] != 1 || seen[1] != 3 || seen[2] != 5 {
		t.Fatalf("unexpected All order: %v", seen)
	}
}

func TestEpisodeMapGetContainsDelete(t *testing.T) {
	d := testsupport.FooDisc1()
	episodes := testsupport.FooEpisodes()

	m := episodemap.New()
	if err := m.Set(episodes[0], episodemap.TitleTarget(d.Titles[0])); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	if !m.Contains(episodes[0]) {
		t.Fatal("expected episode 1 to be mapped")
	}
	if m.Contains(episodes[1]) {
		t.Fatal("did not expect episode 2 to be mapped")
	}
	target, ok := m.Get(episodes[0])
	if !ok || target.Title != d.Titles[0] {
		t.Fatalf("unexpected Get result: %v %v", target, ok)
	}

	// Renamed episodes keep their identity.
	renamed := episodes[0]
	renamed.Name = "Renamed"
	if !m.Contains(renamed) {
		t.Fatal("expected identity to ignore episode name")
	}

	if err := m.Delete(episodes[0]); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if m.Len() != 0 {
		t.Fatalf("expected empty map, got %d entries", m.Len())
	}
	err := m.Delete(episodes[0])
	if !errors.Is(err, episodemap.ErrKeyNotFound) {
		t.Fatalf("expected ErrKeyNotFound, got %v", err)
	}
	if !errors.Is(err, episodemap.ErrMap) {
		t.Fatalf("expected error to match ErrMap, got %v", err)
	}

	chapters := d.Titles[0].Chapters
	if err := m.Set(episodes[0], episodemap.ChapterTarget(chapters[0], chapters[len(chapters)-2])); err != nil {
		t.Fatalf("Set chapter range returned error: %v", err)
	}
}

func TestEpisodeMapSetIsIdempotent(t *testing.T) {
	d := testsupport.FooDisc1()
	episodes := testsupport.FooEpisodes()
	chapters := d.Titles[0].Chapters

	m := episodemap.New()
	target := episodemap.ChapterTarget(chapters[0], chapters[4])
	for i := 0; i < 2; i++ {
		if err := m.Set(episodes[0], target); err != nil {
			t.Fatalf("Set attempt %d returned error: %v", i+1, err)
		}
	}
	// The same range constructed without the title field is the same value.
	if err := m.Set(episodes[0], episodemap.Target{Start: chapters[0], End: chapters[4]}); err != nil {
		t.Fatalf("Set with equivalent range returned error: %v", err)
	}
	if m.Len() != 1 {
		t.Fatalf("expected one entry, got %d", m.Len())
	}
}

func TestEpisodeMapRejectsDuplicateTargets(t *testing.T) {
	d := testsupport.FooDisc1()
	episodes := testsupport.FooEpisodes()
	chapters := d.Titles[0].Chapters

	m := episodemap.New()
	if err := m.Set(episodes[0], episodemap.TitleTarget(d.Titles[1])); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	if err := m.Set(episodes[1], episodemap.TitleTarget(d.Titles[1])); !errors.Is(err, episodemap.ErrDuplicateTarget) {
		t.Fatalf("expected ErrDuplicateTarget for title, got %v", err)
	}

	if err := m.Set(episodes[2], episodemap.ChapterTarget(chapters[5], chapters[9])); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	err := m.Set(episodes[3], episodemap.Target{Start: chapters[5], End: chapters[9]})
	if !errors.Is(err, episodemap.ErrDuplicateTarget) {
		t.Fatalf("expected ErrDuplicateTarget for chapter range, got %v", err)
	}

	// An overlapping but different range is a distinct value.
	if err := m.Set(episodes[3], episodemap.ChapterTarget(chapters[5], chapters[8])); err != nil {
		t.Fatalf("Set with distinct range returned error: %v", err)
	}
}

func TestEpisodeMapRejectsInvalidTargets(t *testing.T) {
	d := testsupport.FooDisc1()
	episode := testsupport.FooEpisodes()[0]
	first := d.Titles[0].Chapters
	second := d.Titles[1].Chapters

	cases := []struct {
		name   string
		target episodemap.Target
	}{
		{"empty", episodemap.Target{}},
		{"start only", episodemap.Target{Start: first[0]}},
		{"end only", episodemap.Target{End: first[0]}},
		{"different titles", episodemap.ChapterTarget(first[0], second[0])},
		{"reversed", episodemap.ChapterTarget(first[len(first)-1], first[1])},
		{"mismatched title", episodemap.Target{Title: d.Titles[1], Start: first[0], End: first[1]}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := episodemap.New()
			err := m.Set(episode, tc.target)
			if !errors.Is(err, episodemap.ErrInvalidTarget) {
				t.Fatalf("expected ErrInvalidTarget, got %v", err)
			}
			if m.Len() != 0 {
				t.Fatalf("expected map to stay empty, got %d entries", m.Len())
			}
		})
	}
}

func TestEpisodeMapUpdateIsAtomic(t *testing.T) {
	d := testsupport.FooDisc1()
	episodes := testsupport.FooEpisodes()

	m := episodemap.New()
	if err := m.Set(episodes[4], episodemap.TitleTarget(d.Titles[3])); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}

	proposed := episodemap.New()
	for i := 0; i < 3; i++ {
		if err := proposed.Set(episodes[i], episodemap.TitleTarget(d.Titles[i+1])); err != nil {
			t.Fatalf("Set returned error: %v", err)
		}
	}
	// episodes[2] -> title 4 collides with episodes[4] -> title 4
	err := m.Update(proposed)
	if !errors.Is(err, episodemap.ErrDuplicateTarget) {
		t.Fatalf("expected ErrDuplicateTarget, got %v", err)
	}
	if m.Len() != 1 {
		t.Fatalf("expected rejected update to leave 1 entry, got %d", m.Len())
	}

	if err := m.Delete(episodes[4]); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if err := m.Update(proposed); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if m.Len() != 3 {
		t.Fatalf("expected 3 entries, got %d", m.Len())
	}
	if owner, ok := m.EpisodeFor(episodemap.TitleTarget(d.Titles[3])); !ok || owner.Number != 3 {
		t.Fatalf("unexpected EpisodeFor result: %v %v", owner, ok)
	}
}

func TestEpisodeMapClearAndString(t *testing.T) {
	d := testsupport.FooDisc1()
	episodes := testsupport.FooEpisodes()
	chapters := d.Titles[0].Chapters

	var m episodemap.EpisodeMap
	if err := m.Set(episodes[1], episodemap.ChapterTarget(chapters[5], chapters[9])); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	if err := m.Set(episodes[0], episodemap.TitleTarget(d.Titles[1])); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	want := "EpisodeMap{\nS01E01: 2,\nS01E02: 1.06-10,\n}"
	if got := m.String(); got != want {
		t.Fatalf("unexpected String output:\n%s\nwant:\n%s", got, want)
	}
	m.Clear()
	if m.Len() != 0 {
		t.Fatalf("expected empty map after Clear, got %d", m.Len())
	}
	if m.Contains(catalog.Episode{Program: "Foo & Bar", Season: 1, Number: 1}) {
		t.Fatal("expected episode 1 to be gone after Clear")
	}
}
