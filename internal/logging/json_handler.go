package logging

import (
	"io"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

func newJSONHandler(w io.Writer, lvl *slog.LevelVar, addSource bool) slog.Handler {
	return slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:       lvl,
		AddSource:   addSource,
		ReplaceAttr: replaceJSONAttr,
	})
}

// replaceJSONAttr shortens the built-in keys and renders durations and
// sources as strings so log lines stay easy to grep.
func replaceJSONAttr(_ []string, attr slog.Attr) slog.Attr {
	value := attr.Value.Resolve()
	switch {
	case attr.Key == slog.TimeKey && value.Kind() == slog.KindTime:
		return slog.String("ts", value.Time().UTC().Format(time.RFC3339))
	case attr.Key == slog.LevelKey:
		return slog.String(attr.Key, strings.ToLower(value.String()))
	case attr.Key == slog.SourceKey:
		if src, ok := value.Any().(*slog.Source); ok && src != nil {
			return slog.String(attr.Key, filepath.Base(src.File)+":"+strconv.Itoa(src.Line))
		}
	case value.Kind() == slog.KindDuration:
		return slog.String(attr.Key, value.Duration().String())
	}
	return attr
}
