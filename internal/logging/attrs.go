package logging

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"
)

type Attr = slog.Attr

func Bool(key string, value bool) Attr { return slog.Bool(key, value) }

func Duration(key string, value time.Duration) Attr { return slog.Duration(key, value) }

func Int(key string, value int) Attr { return slog.Int(key, value) }

func String(key string, value string) Attr { return slog.String(key, value) }

func Error(err error) Attr {
	if err == nil {
		return slog.String("error", "<nil>")
	}
	return slog.Any("error", err)
}

// Episode tags a record with an episode label such as S01E02.
func Episode(label string) Attr { return slog.String(FieldEpisode, label) }

// Target tags a record with a rendered title or chapter range.
func Target(target fmt.Stringer) Attr { return slog.String(FieldTarget, target.String()) }

// Window groups the bounds of an episode duration window.
func Window(min, max time.Duration) Attr {
	return slog.Group("window", slog.Duration("min", min), slog.Duration("max", max))
}

func NewNop() *slog.Logger {
	return slog.New(NoopHandler{})
}

// NewComponentLogger creates a logger with a standardized component attribute.
// If logger is nil, a no-op logger is used as the base.
func NewComponentLogger(logger *slog.Logger, component string) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	return logger.With(String(FieldComponent, component))
}

// Warn logs a warning that always carries event_type, error_hint and impact.
// Keys the caller leaves out get generic values.
func Warn(logger *slog.Logger, msg, eventType string, attrs ...Attr) {
	if logger == nil {
		return
	}
	for _, fallback := range []Attr{
		String(FieldEventType, eventType),
		String(FieldErrorHint, "check logs for details"),
		String(FieldImpact, "operation completed with warnings"),
	} {
		if !slices.ContainsFunc(attrs, func(a Attr) bool { return a.Key == fallback.Key }) {
			attrs = append(attrs, fallback)
		}
	}
	logger.LogAttrs(context.Background(), slog.LevelWarn, msg, attrs...)
}

// NoopHandler discards all log output.
type NoopHandler struct{}

func (NoopHandler) Enabled(context.Context, slog.Level) bool { return false }

func (NoopHandler) Handle(context.Context, slog.Record) error { return nil }

func (NoopHandler) WithAttrs([]slog.Attr) slog.Handler { return NoopHandler{} }

func (NoopHandler) WithGroup(string) slog.Handler { return NoopHandler{} }
