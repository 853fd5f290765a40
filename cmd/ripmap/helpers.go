package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"ripmap/internal/catalog"
	"ripmap/internal/disc"
	"ripmap/internal/episodemap"
)

// parseNumberList reads comma-separated numbers and inclusive ranges such as
// "1-3,5". Numbers are returned in the order written.
func parseNumberList(value string) ([]int, error) {
	var numbers []int
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		lowText, highText, isRange := strings.Cut(part, "-")
		low, err := strconv.Atoi(strings.TrimSpace(lowText))
		if err != nil || low < 0 {
			return nil, fmt.Errorf("invalid number %q in %q", lowText, value)
		}
		if !isRange {
			numbers = append(numbers, low)
			continue
		}
		high, err := strconv.Atoi(strings.TrimSpace(highText))
		if err != nil || high < low {
			return nil, fmt.Errorf("invalid range %q in %q", part, value)
		}
		for n := low; n <= high; n++ {
			numbers = append(numbers, n)
		}
	}
	if len(numbers) == 0 {
		return nil, fmt.Errorf("no numbers in %q", value)
	}
	return numbers, nil
}

func parseEpisodeNumber(value string) (int, error) {
	number, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || number < 1 {
		return 0, fmt.Errorf("invalid episode number %q", value)
	}
	return number, nil
}

// rippedFrom renders an episode's rip history as a target string.
func rippedFrom(e catalog.Episode) string {
	if !e.Ripped() {
		return ""
	}
	if e.ChapterRange() {
		return fmt.Sprintf("%d.%02d-%02d", e.DiscTitle, e.StartChapter, e.EndChapter)
	}
	return strconv.Itoa(e.DiscTitle)
}

// episodesOn lists the labels of episodes whose targets use title.
func episodesOn(m *episodemap.EpisodeMap, title *disc.Title) string {
	if m == nil {
		return ""
	}
	labels := lo.FilterMap(m.Items(), func(entry episodemap.Entry, _ int) (string, bool) {
		return entry.Episode.Label(), entry.Target.Title == title
	})
	return strings.Join(labels, ", ")
}

// episodesCovering lists the labels of episodes whose targets include chapter.
func episodesCovering(m *episodemap.EpisodeMap, chapter *disc.Chapter) string {
	if m == nil {
		return ""
	}
	labels := lo.FilterMap(m.Items(), func(entry episodemap.Entry, _ int) (string, bool) {
		return entry.Episode.Label(), lo.Contains(entry.Target.Chapters(), chapter)
	})
	return strings.Join(labels, ", ")
}

func duplicateLabel(d disc.Duplicate) string {
	if d == disc.DuplicateNo {
		return ""
	}
	return string(d)
}

func discSummary(d *disc.Disc) string {
	name := d.Name
	if name == "" {
		name = "unnamed"
	}
	return fmt.Sprintf("%s %q, %d titles", d.Type, name, len(d.Titles))
}
