package catalog

import (
	"fmt"
	"strings"
)

// EpisodeKey identifies an episode independently of its mutable fields.
type EpisodeKey struct {
	Program string
	Season  int
	Number  int
}

// Episode is one addressable episode of a program season together with its
// rip history. DiscID is empty until the episode has been ripped.
type Episode struct {
	Program      string
	Season       int
	Number       int
	Name         string
	DiscID       string
	DiscTitle    int
	StartChapter int
	EndChapter   int
}

// Key returns the identity used when episodes act as map keys.
func (e Episode) Key() EpisodeKey {
	return EpisodeKey{Program: e.Program, Season: e.Season, Number: e.Number}
}

// Ripped reports whether rip history has been recorded for the episode.
func (e Episode) Ripped() bool {
	return strings.TrimSpace(e.DiscID) != ""
}

// ChapterRange reports whether the recorded rip covered a chapter range rather
// than a whole title.
func (e Episode) ChapterRange() bool {
	return e.StartChapter > 0 && e.EndChapter > 0
}

// Label renders the conventional S01E02 form.
func (e Episode) Label() string {
	return fmt.Sprintf("S%02dE%02d", e.Season, e.Number)
}

func (e Episode) String() string {
	if e.Name == "" {
		return e.Label()
	}
	return fmt.Sprintf("%s %q", e.Label(), e.Name)
}

// Program summarises a program and how many seasons it has.
type Program struct {
	Name     string
	Seasons  int
	Episodes int
	Ripped   int
}

// Season summarises a single season of a program.
type Season struct {
	Program  string
	Number   int
	Episodes int
	Ripped   int
}

// RipRecord describes where an episode was ripped from. StartChapter and
// EndChapter are zero when the whole title was used.
type RipRecord struct {
	DiscID       string
	DiscTitle    int
	StartChapter int
	EndChapter   int
}

// MapEntry is a pending episode mapping saved between invocations. Title is
// the disc title number; StartChapter and EndChapter are zero for a whole
// title.
type MapEntry struct {
	Episode      EpisodeKey
	Title        int
	StartChapter int
	EndChapter   int
}
