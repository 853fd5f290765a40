package episodemap

import (
	"time"

	"ripmap/internal/disc"
)

// Partition divides an ordered chapter sequence into consecutive groups, one
// per episode. Each element is the chapter count of one group, in chapter
// order; [2 3 4] means the first episode spans two chapters, the second the
// next three, and so on.
type Partition []int

// Groups slices chapters according to the partition.
func (p Partition) Groups(chapters []*disc.Chapter) [][]*disc.Chapter {
	groups := make([][]*disc.Chapter, 0, len(p))
	index := 0
	for _, count := range p {
		groups = append(groups, chapters[index:index+count])
		index += count
	}
	return groups
}

// Ends returns each group's first and last chapter as a target.
func (p Partition) Ends(chapters []*disc.Chapter) []Target {
	groups := p.Groups(chapters)
	ends := make([]Target, len(groups))
	for i, group := range groups {
		ends[i] = ChapterTarget(group[0], group[len(group)-1])
	}
	return ends
}

// Valid reports whether p consumes every chapter in exactly episodeCount
// groups, keeps every group within one title, and keeps every group's
// duration inside [min, max].
func (p Partition) Valid(chapters []*disc.Chapter, episodeCount int, min, max time.Duration) bool {
	if len(p) != episodeCount {
		return false
	}
	total := 0
	for _, count := range p {
		if count <= 0 {
			return false
		}
		total += count
	}
	if total != len(chapters) {
		return false
	}
	for _, group := range p.Groups(chapters) {
		if group[0].Title != group[len(group)-1].Title {
			return false
		}
		var d time.Duration
		for _, c := range group {
			d += c.Duration
		}
		if d < min || d > max {
			return false
		}
	}
	return true
}

// Search enumerates every valid partition of chapters into episodeCount
// groups whose durations fall within [min, max]. Results are returned in
// discovery order, which carries no ranking.
func Search(chapters []*disc.Chapter, episodeCount int, min, max time.Duration) []Partition {
	if len(chapters) == 0 || episodeCount <= 0 {
		return nil
	}
	s := &partitionSearch{
		chapters: chapters,
		count:    episodeCount,
		min:      min,
		max:      max,
	}
	s.extend(make(Partition, 0, episodeCount), 0)
	return s.solutions
}

type partitionSearch struct {
	chapters  []*disc.Chapter
	count     int
	min, max  time.Duration
	solutions []Partition
}

// extend tries every valid cut point for the group starting at chapter
// index consumed, recording complete partitions and recursing on the rest.
func (s *partitionSearch) extend(prefix Partition, consumed int) {
	if len(prefix) == s.count || consumed >= len(s.chapters) {
		return
	}
	var duration time.Duration
	first := s.chapters[consumed].Title
	for i, chapter := range s.chapters[consumed:] {
		if chapter.Title != first {
			// Groups never straddle a title boundary.
			break
		}
		duration += chapter.Duration
		if duration > s.max {
			// Chapter durations are non-negative, so no longer group can
			// come back into range.
			break
		}
		if duration < s.min {
			continue
		}
		candidate := append(prefix[:len(prefix):len(prefix)], i+1)
		if candidate.Valid(s.chapters, s.count, s.min, s.max) {
			s.solutions = append(s.solutions, candidate)
		}
		s.extend(candidate, consumed+i+1)
	}
}
