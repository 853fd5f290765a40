package disc

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"strconv"
	"time"
)

// Type identifies the physical format of a scanned disc.
type Type string

const (
	TypeDVD    Type = "DVD"
	TypeBluRay Type = "Blu-ray"
)

// Duplicate marks a title's position within a run of content-identical titles.
type Duplicate string

const (
	DuplicateNo    Duplicate = "no"
	DuplicateFirst Duplicate = "first"
	DuplicateYes   Duplicate = "yes"
	DuplicateLast  Duplicate = "last"
)

// Disc is the scanned representation of the media in the drive.
type Disc struct {
	Name   string
	Serial string
	Type   Type
	Titles []*Title
}

// Title is one complete video track on a disc.
type Title struct {
	Number    int
	Duration  time.Duration
	Chapters  []*Chapter
	Duplicate Duplicate
}

// Chapter is a subdivision of a Title. Number is 1-based and unique within
// the owning title.
type Chapter struct {
	Title    *Title
	Number   int
	Duration time.Duration
}

// NewTitle constructs a title whose chapters carry the supplied durations, in
// order, numbered from 1. The title duration is the sum of its chapters.
func NewTitle(number int, chapters ...time.Duration) *Title {
	title := &Title{Number: number, Duplicate: DuplicateNo}
	for _, d := range chapters {
		title.AddChapter(d)
	}
	return title
}

// AddChapter appends a chapter with the next number and extends the title
// duration accordingly.
func (t *Title) AddChapter(duration time.Duration) *Chapter {
	chapter := &Chapter{Title: t, Number: len(t.Chapters) + 1, Duration: duration}
	t.Chapters = append(t.Chapters, chapter)
	t.Duration += duration
	return chapter
}

// Chapter returns the chapter with the given number, or nil.
func (t *Title) Chapter(number int) *Chapter {
	for _, c := range t.Chapters {
		if c.Number == number {
			return c
		}
	}
	return nil
}

func (t *Title) String() string {
	return strconv.Itoa(t.Number)
}

// Start returns the offset of the chapter from the beginning of its title.
func (c *Chapter) Start() time.Duration {
	var offset time.Duration
	for _, other := range c.Title.Chapters {
		if other == c {
			break
		}
		offset += other.Duration
	}
	return offset
}

func (c *Chapter) String() string {
	return fmt.Sprintf("%d.%02d", c.Title.Number, c.Number)
}

// Title returns the title with the given number, or nil.
func (d *Disc) Title(number int) *Title {
	if d == nil {
		return nil
	}
	for _, t := range d.Titles {
		if t.Number == number {
			return t
		}
	}
	return nil
}

// Ident fingerprints the disc layout. Serial numbers are unreliable across
// pressings so rip history is keyed by this value instead.
func (d *Disc) Ident() string {
	hash := sha1.New()
	for _, title := range d.Titles {
		hash.Write([]byte(FormatDuration(title.Duration)))
		hash.Write([]byte(strconv.Itoa(len(title.Chapters))))
		for _, chapter := range title.Chapters {
			hash.Write([]byte(FormatDuration(chapter.Start())))
			hash.Write([]byte(FormatDuration(chapter.Duration)))
		}
	}
	return "$H1$" + hex.EncodeToString(hash.Sum(nil))
}

// FormatDuration renders a duration as H:MM:SS, truncating sub-second parts.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(d / time.Second)
	return fmt.Sprintf("%d:%02d:%02d", total/3600, (total/60)%60, total%60)
}
