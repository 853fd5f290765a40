package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// RetentionTarget names a directory of dated logs and the glob selecting
// them. Keep lists files that survive regardless of age, such as the log
// currently being written.
type RetentionTarget struct {
	Dir     string
	Pattern string
	Keep    []string
}

// CleanupOldLogs removes log files last modified more than retentionDays ago
// and returns how many were removed. Zero keeps everything.
func CleanupOldLogs(logger *slog.Logger, retentionDays int, target RetentionTarget) int {
	dir := strings.TrimSpace(target.Dir)
	if retentionDays <= 0 || dir == "" {
		return 0
	}
	cutoff := time.Now().AddDate(0, 0, -retentionDays)
	pattern := target.Pattern
	if strings.TrimSpace(pattern) == "" {
		pattern = "*"
	}

	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return 0
	}
	keep := make(map[string]struct{}, len(target.Keep))
	for _, path := range target.Keep {
		keep[filepath.Clean(path)] = struct{}{}
	}

	removed := 0
	for _, path := range matches {
		if _, ok := keep[filepath.Clean(path)]; ok {
			continue
		}
		info, err := os.Stat(path)
		if err != nil || info.IsDir() || !info.ModTime().Before(cutoff) {
			continue
		}
		if err := os.Remove(path); err != nil {
			Warn(logger, "could not prune old log", "log_retention_failed",
				String("path", path),
				Error(err),
				String(FieldErrorHint, "check permissions on paths.log_dir"),
				String(FieldImpact, "old log file remains on disk"),
			)
			continue
		}
		removed++
		if logger != nil {
			logger.Debug("pruned old log", String("path", path))
		}
	}
	return removed
}
