package disc

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

const jsonTitleSetMarker = "JSON Title Set:"

var (
	discTypePattern   = regexp.MustCompile(`scan: (BD|DVD) has \d+ title\(s\)`)
	discNamePattern   = regexp.MustCompile(`^libdvdnav: DVD Title: (.*)$`)
	discSerialPattern = regexp.MustCompile(`^libdvdnav: DVD Serial Number: (.*)$`)
	readErrorPatterns = []*regexp.Regexp{
		regexp.MustCompile(`libdvdread: Can't open .* for reading`),
		regexp.MustCompile(`libdvdnav: vm: failed to open/read the .*`),
	}
)

// ErrUnreadable indicates the scanner could not read the disc at all.
var ErrUnreadable = errors.New("unable to read disc")

type handBrakeDuration struct {
	Hours   int `json:"Hours"`
	Minutes int `json:"Minutes"`
	Seconds int `json:"Seconds"`
}

func (d handBrakeDuration) value() time.Duration {
	return time.Duration(d.Hours)*time.Hour +
		time.Duration(d.Minutes)*time.Minute +
		time.Duration(d.Seconds)*time.Second
}

type handBrakeChapter struct {
	Name     string            `json:"Name"`
	Duration handBrakeDuration `json:"Duration"`
}

type handBrakeTitle struct {
	Index       int                `json:"Index"`
	Duration    handBrakeDuration  `json:"Duration"`
	ChapterList []handBrakeChapter `json:"ChapterList"`
}

type handBrakeTitleSet struct {
	TitleList []handBrakeTitle `json:"TitleList"`
}

type handBrakeParser struct{}

// Parse builds a Disc from HandBrake --scan --json output. The JSON title set
// is read from stdout; disc type, name and serial come from the stderr log.
func (handBrakeParser) Parse(stdout, stderr []byte) (*Disc, error) {
	d := &Disc{}
	if err := parseScanLog(d, stderr); err != nil {
		return nil, err
	}
	titles, err := parseTitleSet(stdout)
	if err != nil {
		return nil, err
	}
	d.Titles = titles
	MarkDuplicates(d.Titles)
	return d, nil
}

func parseScanLog(d *Disc, stderr []byte) error {
	for _, line := range strings.Split(string(stderr), "\n") {
		line = strings.TrimRight(line, "\r")
		for _, pattern := range readErrorPatterns {
			if pattern.MatchString(line) {
				return ErrUnreadable
			}
		}
		if m := discNamePattern.FindStringSubmatch(line); m != nil {
			d.Name = strings.TrimSpace(m[1])
		} else if m := discSerialPattern.FindStringSubmatch(line); m != nil {
			d.Serial = strings.TrimSpace(m[1])
		} else if m := discTypePattern.FindStringSubmatch(line); m != nil {
			if m[1] == "BD" {
				d.Type = TypeBluRay
			} else {
				d.Type = TypeDVD
			}
		}
	}
	if d.Type == "" {
		return errors.New("failed to determine disc type")
	}
	return nil
}

func parseTitleSet(stdout []byte) ([]*Title, error) {
	text := string(stdout)
	idx := strings.LastIndex(text, jsonTitleSetMarker)
	if idx < 0 {
		return nil, errors.New("unable to find JSON data in HandBrake output")
	}
	var set handBrakeTitleSet
	decoder := json.NewDecoder(strings.NewReader(text[idx+len(jsonTitleSetMarker):]))
	if err := decoder.Decode(&set); err != nil {
		return nil, fmt.Errorf("decode title set: %w", err)
	}

	titles := make([]*Title, 0, len(set.TitleList))
	for _, raw := range set.TitleList {
		title := &Title{
			Number:    raw.Index,
			Duration:  raw.Duration.value(),
			Duplicate: DuplicateNo,
		}
		for i, rawChapter := range raw.ChapterList {
			number, err := chapterNumber(rawChapter.Name)
			if err != nil {
				number = i + 1
			}
			title.Chapters = append(title.Chapters, &Chapter{
				Title:    title,
				Number:   number,
				Duration: rawChapter.Duration.value(),
			})
		}
		sort.SliceStable(title.Chapters, func(i, j int) bool {
			return title.Chapters[i].Number < title.Chapters[j].Number
		})
		titles = append(titles, title)
	}
	return titles, nil
}

func chapterNumber(name string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(name, "Chapter ")))
}
