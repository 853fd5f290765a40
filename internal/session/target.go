package session

import (
	"fmt"
	"strconv"
	"strings"

	"ripmap/internal/disc"
	"ripmap/internal/episodemap"
)

// ParseTarget reads a target written as a title number ("3"), a single
// chapter ("3.4") or an inclusive chapter range ("3.4-7").
func ParseTarget(d *disc.Disc, text string) (episodemap.Target, error) {
	text = strings.TrimSpace(text)
	titlePart, chapterPart, hasChapters := strings.Cut(text, ".")

	titleNumber, err := strconv.Atoi(titlePart)
	if err != nil {
		return episodemap.Target{}, fmt.Errorf("%w: %q is not a title number", episodemap.ErrInvalidTarget, titlePart)
	}
	title := d.Title(titleNumber)
	if title == nil {
		return episodemap.Target{}, fmt.Errorf("%w: no title %d on disc", episodemap.ErrInvalidTarget, titleNumber)
	}
	if !hasChapters {
		return episodemap.TitleTarget(title), nil
	}

	startPart, endPart, isRange := strings.Cut(chapterPart, "-")
	if !isRange {
		endPart = startPart
	}
	start, err := chapterOf(title, startPart)
	if err != nil {
		return episodemap.Target{}, err
	}
	end, err := chapterOf(title, endPart)
	if err != nil {
		return episodemap.Target{}, err
	}
	target := episodemap.ChapterTarget(start, end)
	if err := target.Validate(); err != nil {
		return episodemap.Target{}, err
	}
	return target, nil
}

func chapterOf(title *disc.Title, value string) (*disc.Chapter, error) {
	number, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return nil, fmt.Errorf("%w: %q is not a chapter number", episodemap.ErrInvalidTarget, value)
	}
	chapter := title.Chapter(number)
	if chapter == nil {
		return nil, fmt.Errorf("%w: title %d has no chapter %d", episodemap.ErrInvalidTarget, title.Number, number)
	}
	return chapter, nil
}
