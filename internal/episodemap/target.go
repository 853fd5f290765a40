package episodemap

import (
	"fmt"
	"time"

	"ripmap/internal/disc"
)

// Target is what an episode maps to: a whole title, or the inclusive chapter
// range Start..End of one title. Targets compare equal with == when they
// refer to the same title or the same pair of chapters.
type Target struct {
	Title *disc.Title
	Start *disc.Chapter
	End   *disc.Chapter
}

// TitleTarget maps an episode to a whole title.
func TitleTarget(t *disc.Title) Target {
	return Target{Title: t}
}

// ChapterTarget maps an episode to an inclusive chapter range.
func ChapterTarget(start, end *disc.Chapter) Target {
	var title *disc.Title
	if start != nil {
		title = start.Title
	}
	return Target{Title: title, Start: start, End: end}
}

// IsChapters reports whether the target is a chapter range.
func (t Target) IsChapters() bool {
	return t.Start != nil || t.End != nil
}

// Validate checks that the target is exactly a title, or two chapters of one
// title in non-decreasing order.
func (t Target) Validate() error {
	if !t.IsChapters() {
		if t.Title == nil {
			return fmt.Errorf("%w: empty target", ErrInvalidTarget)
		}
		return nil
	}
	switch {
	case t.Start == nil || t.End == nil:
		return fmt.Errorf("%w: chapter range needs both ends", ErrInvalidTarget)
	case t.Start.Title == nil || t.Start.Title != t.End.Title:
		return fmt.Errorf("%w: start chapter is in a different title to end chapter", ErrInvalidTarget)
	case t.Title != nil && t.Title != t.Start.Title:
		return fmt.Errorf("%w: chapters do not belong to title %d", ErrInvalidTarget, t.Title.Number)
	case t.End.Number < t.Start.Number:
		return fmt.Errorf("%w: start chapter is later than end chapter", ErrInvalidTarget)
	}
	return nil
}

// normalized fills Title from the chapters so equal ranges compare equal.
func (t Target) normalized() Target {
	if t.IsChapters() && t.Start != nil {
		t.Title = t.Start.Title
	}
	return t
}

// Chapters returns the chapters covered by the target, in order.
func (t Target) Chapters() []*disc.Chapter {
	if !t.IsChapters() {
		if t.Title == nil {
			return nil
		}
		return t.Title.Chapters
	}
	var out []*disc.Chapter
	for _, c := range t.Start.Title.Chapters {
		if c.Number >= t.Start.Number && c.Number <= t.End.Number {
			out = append(out, c)
		}
	}
	return out
}

// Duration is the title duration or the summed chapter durations.
func (t Target) Duration() time.Duration {
	if !t.IsChapters() {
		if t.Title == nil {
			return 0
		}
		return t.Title.Duration
	}
	var total time.Duration
	for _, c := range t.Chapters() {
		total += c.Duration
	}
	return total
}

// String renders "3" for a title and "1.06-10" for a chapter range.
func (t Target) String() string {
	switch {
	case t.IsChapters() && t.Start != nil && t.End != nil && t.Start.Title != nil:
		return fmt.Sprintf("%d.%02d-%02d", t.Start.Title.Number, t.Start.Number, t.End.Number)
	case t.Title != nil:
		return fmt.Sprintf("%d", t.Title.Number)
	default:
		return "<invalid>"
	}
}
