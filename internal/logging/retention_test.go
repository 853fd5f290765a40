package logging_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"ripmap/internal/logging"
)

func TestCleanupOldLogsRemovesExpiredFiles(t *testing.T) {
	dir := t.TempDir()
	old := time.Now().AddDate(0, 0, -40)
	files := map[string]time.Time{
		"ripmap-2026-01-01.log": old,
		"ripmap-2026-01-02.log": old,
		"ripmap-today.log":      time.Now(),
		"notes.txt":             old,
	}
	for name, mod := range files {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
		if err := os.Chtimes(path, mod, mod); err != nil {
			t.Fatalf("chtimes %s: %v", name, err)
		}
	}

	removed := logging.CleanupOldLogs(logging.NewNop(), 30, logging.RetentionTarget{
		Dir:     dir,
		Pattern: "ripmap-*.log",
		Keep:    []string{filepath.Join(dir, "ripmap-2026-01-02.log")},
	})
	if removed != 1 {
		t.Fatalf("expected 1 removal, got %d", removed)
	}
	for name, wantExists := range map[string]bool{
		"ripmap-2026-01-01.log": false,
		"ripmap-2026-01-02.log": true,
		"ripmap-today.log":      true,
		"notes.txt":             true,
	} {
		_, err := os.Stat(filepath.Join(dir, name))
		if exists := err == nil; exists != wantExists {
			t.Fatalf("%s: exists=%v, want %v", name, exists, wantExists)
		}
	}
}

func TestCleanupOldLogsDisabled(t *testing.T) {
	if got := logging.CleanupOldLogs(nil, 0, logging.RetentionTarget{Dir: t.TempDir()}); got != 0 {
		t.Fatalf("expected no removals, got %d", got)
	}
}
