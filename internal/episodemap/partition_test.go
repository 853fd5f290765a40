package episodemap_test

import (
	"slices"
	"testing"
	"time"

	"ripmap/internal/disc"
	"ripmap/internal/episodemap"
	"ripmap/internal/testsupport"
)

func TestSearchSingleTitle(t *testing.T) {
	d := testsupport.FooDisc1()
	chapters := d.Titles[0].Chapters

	solutions := episodemap.Search(chapters, 5, testsupport.MinSec(29, 0), testsupport.MinSec(32, 0))
	if len(solutions) != 1 {
		t.Fatalf("expected exactly one solution, got %d: %v", len(solutions), solutions)
	}
	if want := (episodemap.Partition{5, 5, 5, 4, 5}); !slices.Equal(solutions[0], want) {
		t.Fatalf("unexpected partition %v, want %v", solutions[0], want)
	}

	ends := solutions[0].Ends(chapters)
	if ends[3].String() != "1.16-19" {
		t.Fatalf("unexpected fourth group %s", ends[3])
	}
}

func TestSearchNoSolutions(t *testing.T) {
	d := testsupport.FooDisc1()
	solutions := episodemap.Search(d.Titles[0].Chapters, 5, testsupport.MinSec(29, 0), testsupport.MinSec(30, 0))
	if len(solutions) != 0 {
		t.Fatalf("expected no solutions, got %v", solutions)
	}
}

func TestSearchMultipleSolutions(t *testing.T) {
	d := testsupport.FooDisc2()
	solutions := episodemap.Search(d.Titles[0].Chapters, 4, testsupport.MinSec(29, 0), testsupport.MinSec(32, 0))
	want := []episodemap.Partition{{4, 5, 4, 5}, {4, 5, 5, 4}}
	if len(solutions) != len(want) {
		t.Fatalf("expected %d solutions, got %v", len(want), solutions)
	}
	for i := range want {
		if !slices.Equal(solutions[i], want[i]) {
			t.Fatalf("solution %d: got %v, want %v", i, solutions[i], want[i])
		}
	}
}

func TestSearchNeverCrossesTitles(t *testing.T) {
	a := disc.NewTitle(1, 10*time.Minute, 10*time.Minute, 10*time.Minute)
	b := disc.NewTitle(2, 10*time.Minute, 10*time.Minute, 10*time.Minute)
	chapters := append(slices.Clone(a.Chapters), b.Chapters...)

	solutions := episodemap.Search(chapters, 2, 20*time.Minute, 40*time.Minute)
	if len(solutions) != 1 || !slices.Equal(solutions[0], episodemap.Partition{3, 3}) {
		t.Fatalf("expected only [3 3], got %v", solutions)
	}
}

func TestSearchDegenerateInputs(t *testing.T) {
	d := testsupport.FooDisc1()
	chapters := d.Titles[0].Chapters
	if got := episodemap.Search(nil, 3, 0, time.Hour); got != nil {
		t.Fatalf("expected nil for no chapters, got %v", got)
	}
	if got := episodemap.Search(chapters, 0, 0, time.Hour); got != nil {
		t.Fatalf("expected nil for zero episodes, got %v", got)
	}
	if got := episodemap.Search(chapters[:2], 3, 0, time.Hour); len(got) != 0 {
		t.Fatalf("expected no solutions with fewer chapters than episodes, got %v", got)
	}
}

func TestPartitionValid(t *testing.T) {
	title := disc.NewTitle(1, 10*time.Minute, 10*time.Minute, 10*time.Minute, 10*time.Minute)
	chapters := title.Chapters
	min, max := 15*time.Minute, 25*time.Minute

	cases := []struct {
		name string
		p    episodemap.Partition
		want bool
	}{
		{"balanced", episodemap.Partition{2, 2}, true},
		{"wrong count", episodemap.Partition{2, 1, 1}, false},
		{"leftover chapters", episodemap.Partition{2, 1}, false},
		{"too long", episodemap.Partition{3, 1}, false},
		{"empty group", episodemap.Partition{4, 0}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.p.Valid(chapters, 2, min, max); got != tc.want {
				t.Fatalf("Valid(%v) = %v, want %v", tc.p, got, tc.want)
			}
		})
	}
}
