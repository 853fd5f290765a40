package testsupport

import (
	"time"

	"ripmap/internal/catalog"
	"ripmap/internal/disc"
)

// Track describes a synthetic disc title: its total duration split across
// chapters in proportion to Weights.
type Track struct {
	Duration time.Duration
	Weights  []int
}

// NewDisc builds a disc from tracks, numbering titles from 1. When playAll is
// non-empty an aggregate "play all" title holding the chapters of those
// tracks (by index) is inserted as title 1, as many DVDs do.
func NewDisc(tracks []Track, playAll ...int) *disc.Disc {
	chapters := make([][]time.Duration, len(tracks))
	for i, track := range tracks {
		total := 0
		for _, w := range track.Weights {
			total += w
		}
		for _, w := range track.Weights {
			chapters[i] = append(chapters[i], track.Duration*time.Duration(w)/time.Duration(total))
		}
	}
	if len(playAll) > 0 {
		var aggregate []time.Duration
		for _, idx := range playAll {
			aggregate = append(aggregate, chapters[idx]...)
		}
		chapters = append([][]time.Duration{aggregate}, chapters...)
	}

	d := &disc.Disc{Name: "TEST_DISC", Serial: "0123456789", Type: disc.TypeDVD}
	for i, durations := range chapters {
		d.Titles = append(d.Titles, disc.NewTitle(i+1, durations...))
	}
	disc.MarkDuplicates(d.Titles)
	return d
}

// FooDisc1 carries five episodes as separate titles plus a play-all title
// (title 1) of 24 chapters splitting 5/5/5/4/5 into episodes.
func FooDisc1() *disc.Disc {
	return NewDisc([]Track{
		{Duration: MinSec(30, 0), Weights: []int{5, 5, 5, 5, 1}},
		{Duration: MinSec(30, 0), Weights: []int{8, 7, 4, 1, 1}},
		{Duration: MinSec(30, 0), Weights: []int{8, 7, 4, 1, 1}},
		{Duration: MinSec(30, 5), Weights: []int{6, 8, 4, 2, 1}},
		{Duration: MinSec(30, 1), Weights: []int{6, 6, 8, 1}},
		{Duration: MinSec(30, 1), Weights: []int{6, 6, 8, 1}},
		{Duration: MinSec(31, 20), Weights: []int{8, 2, 5, 5, 1}},
		{Duration: MinSec(5, 3), Weights: []int{1, 1}},
		{Duration: MinSec(7, 1), Weights: []int{1, 1}},
		{Duration: MinSec(31, 30), Weights: []int{8, 8, 1}},
	}, 0, 1, 3, 4, 6)
}

// FooDisc2 carries a double-length title followed by two episode titles,
// with a play-all title (title 1) whose short chapters admit two different
// four-episode partitions.
func FooDisc2() *disc.Disc {
	return NewDisc([]Track{
		{Duration: MinSec(61, 12), Weights: []int{5, 5, 5, 5, 5, 7, 4, 2, 1}},
		{Duration: MinSec(30, 5), Weights: []int{8, 8, 8, 8, 1}},
		{Duration: MinSec(30, 1), Weights: []int{6, 6, 8, 1}},
	}, 0, 1, 2)
}

// Episodes builds numbered episodes of one program season from names.
func Episodes(program string, season int, names ...string) []catalog.Episode {
	out := make([]catalog.Episode, len(names))
	for i, name := range names {
		out[i] = catalog.Episode{Program: program, Season: season, Number: i + 1, Name: name}
	}
	return out
}

// FooEpisodes returns the five-episode season used with FooDisc1.
func FooEpisodes() []catalog.Episode {
	return Episodes("Foo & Bar", 1, "Foo", "Bar", "Baz", "Quux", "Xyzzy")
}

// MinSec is shorthand for a duration of minutes and seconds.
func MinSec(minutes, seconds int) time.Duration {
	return time.Duration(minutes)*time.Minute + time.Duration(seconds)*time.Second
}
