package testsupport

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"ripmap/internal/config"
	"ripmap/internal/disc"
)

type hbDuration struct {
	Hours   int
	Minutes int
	Seconds int
}

func toHB(d time.Duration) hbDuration {
	total := int(d / time.Second)
	return hbDuration{Hours: total / 3600, Minutes: total / 60 % 60, Seconds: total % 60}
}

// HandBrakeScan renders d the way HandBrakeCLI --scan --json reports it, log
// lines first and the JSON title set last. Durations are truncated to whole
// seconds.
func HandBrakeScan(d *disc.Disc) string {
	type chapter struct {
		Name     string
		Duration hbDuration
	}
	type title struct {
		Index       int
		Duration    hbDuration
		ChapterList []chapter
	}
	set := struct{ TitleList []title }{}
	for _, t := range d.Titles {
		raw := title{Index: t.Number, Duration: toHB(t.Duration)}
		for _, c := range t.Chapters {
			raw.ChapterList = append(raw.ChapterList, chapter{Name: fmt.Sprintf("Chapter %d", c.Number), Duration: toHB(c.Duration)})
		}
		set.TitleList = append(set.TitleList, raw)
	}
	data, err := json.MarshalIndent(set, "", "    ")
	if err != nil {
		panic(err)
	}

	kind := "DVD"
	if d.Type == disc.TypeBluRay {
		kind = "BD"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "libdvdnav: DVD Title: %s\n", d.Name)
	fmt.Fprintf(&b, "libdvdnav: DVD Serial Number: %s\n", d.Serial)
	fmt.Fprintf(&b, "[00:00:01] scan: %s has %d title(s)\n", kind, len(d.Titles))
	b.WriteString("JSON Title Set: ")
	b.Write(data)
	b.WriteByte('\n')
	return b.String()
}

// WriteScanCache stores d as the cached scan named by cfg.
func WriteScanCache(t testing.TB, cfg *config.Config, d *disc.Disc) {
	t.Helper()

	path := cfg.Paths.ScanCache
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(HandBrakeScan(d)), 0o644); err != nil {
		t.Fatalf("write scan cache: %v", err)
	}
}
