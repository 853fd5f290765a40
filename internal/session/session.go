package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"ripmap/internal/catalog"
	"ripmap/internal/config"
	"ripmap/internal/disc"
	"ripmap/internal/episodemap"
	"ripmap/internal/logging"
)

// ErrNoProgram reports a session opened without a program to map.
var ErrNoProgram = errors.New("no program selected (set session.program or pass --program)")

// Session is the mapping state for one disc and one program season.
type Session struct {
	ID string

	cfg     *config.Config
	store   *catalog.Store
	logger  *slog.Logger
	disc    *disc.Disc
	ident   string
	program string
	season  int
	mapping *episodemap.EpisodeMap
}

// Option configures optional Session behavior.
type Option func(*Session)

// WithLogger sets the logger used for session events.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// WithID overrides the generated session identifier.
func WithID(id string) Option {
	return func(s *Session) {
		if strings.TrimSpace(id) != "" {
			s.ID = id
		}
	}
}

// Open starts a session for d against the configured program season,
// creating the season in the catalogue when it does not exist yet. The
// session ID is taken from ctx when it carries one, otherwise generated.
func Open(ctx context.Context, cfg *config.Config, store *catalog.Store, d *disc.Disc, opts ...Option) (*Session, error) {
	if strings.TrimSpace(cfg.Session.Program) == "" {
		return nil, ErrNoProgram
	}
	if d == nil {
		return nil, errors.New("session requires a scanned disc")
	}

	s := &Session{
		ID:      uuid.NewString(),
		cfg:     cfg,
		store:   store,
		disc:    d,
		ident:   d.Ident(),
		season:  cfg.Session.Season,
		mapping: episodemap.New(),
	}
	if id, ok := logging.SessionIDFromContext(ctx); ok {
		s.ID = id
	}
	for _, opt := range opts {
		opt(s)
	}
	logCtx := logging.ContextWithSessionID(ctx, s.ID)
	s.logger = logging.WithContext(logCtx, logging.NewComponentLogger(s.logger, "session")).
		With(logging.String(logging.FieldDiscID, s.ident))

	program, err := store.EnsureSeason(ctx, cfg.Session.Program, cfg.Session.Season)
	if err != nil {
		return nil, fmt.Errorf("open season: %w", err)
	}
	s.program = program

	if err := s.restore(ctx); err != nil {
		return nil, err
	}
	s.logger.Debug("session opened",
		logging.String("program", s.program),
		logging.Int("season", s.season),
		logging.Int("mapped", s.mapping.Len()))
	return s, nil
}

// Disc returns the disc the session maps.
func (s *Session) Disc() *disc.Disc { return s.disc }

// Ident returns the disc fingerprint rip history and pending mappings are
// keyed by.
func (s *Session) Ident() string { return s.ident }

// Program returns the stored program name.
func (s *Session) Program() string { return s.program }

// Season returns the season number.
func (s *Session) Season() int { return s.season }

// Mapping returns the session's episode map. Callers must not modify it
// directly; use the Session methods so changes are persisted.
func (s *Session) Mapping() *episodemap.EpisodeMap { return s.mapping }

// Episodes lists the episodes of the session's season.
func (s *Session) Episodes(ctx context.Context) ([]catalog.Episode, error) {
	return s.store.Episodes(ctx, s.program, s.season)
}

// restore maps episodes ripped from this disc back onto their content, then
// reloads the pending mappings.
func (s *Session) restore(ctx context.Context) error {
	ripped, err := s.store.RippedOn(ctx, s.ident)
	if err != nil {
		return fmt.Errorf("load rip history: %w", err)
	}
	for _, episode := range ripped {
		target, err := s.resolve(episode.DiscTitle, episode.StartChapter, episode.EndChapter)
		if err == nil {
			err = s.mapping.Set(episode, target)
		}
		if err != nil {
			logging.Warn(s.logger, "ripped episode could not be restored", "restore_ripped",
				logging.Episode(episode.Label()),
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "disc layout differs from the recorded rip"),
				logging.String(logging.FieldImpact, "episode left unmapped"))
		}
	}

	pending, err := s.store.Mappings(ctx, s.ident)
	if err != nil {
		return fmt.Errorf("load pending mappings: %w", err)
	}
	for _, entry := range pending {
		episode, err := s.store.Episode(ctx, entry.Episode)
		if err != nil {
			return fmt.Errorf("load mapped episode: %w", err)
		}
		target, err := s.resolve(entry.Title, entry.StartChapter, entry.EndChapter)
		if err == nil {
			err = s.mapping.Set(episode, target)
		}
		if err != nil {
			logging.Warn(s.logger, "pending mapping dropped", "restore_pending",
				logging.Episode(episode.Label()),
				logging.Error(err),
				logging.String(logging.FieldImpact, "episode left unmapped"))
		}
	}
	return nil
}

// resolve finds the disc content a stored title and chapter range refer to.
func (s *Session) resolve(titleNumber, start, end int) (episodemap.Target, error) {
	title := s.disc.Title(titleNumber)
	if title == nil {
		return episodemap.Target{}, fmt.Errorf("title %d is not on this disc", titleNumber)
	}
	if start <= 0 {
		return episodemap.TitleTarget(title), nil
	}
	first, last := title.Chapter(start), title.Chapter(end)
	if first == nil || last == nil {
		return episodemap.Target{}, fmt.Errorf("chapters %d-%d are not all in title %d", start, end, titleNumber)
	}
	return episodemap.ChapterTarget(first, last), nil
}

// save rewrites the pending mappings: every binding whose episode has not
// been ripped from this disc.
func (s *Session) save(ctx context.Context) error {
	entries := lo.FilterMap(s.mapping.Items(), func(entry episodemap.Entry, _ int) (catalog.MapEntry, bool) {
		if entry.Episode.DiscID == s.ident {
			return catalog.MapEntry{}, false
		}
		return toMapEntry(entry), true
	})
	if err := s.store.SaveMappings(ctx, s.ident, entries); err != nil {
		return fmt.Errorf("save mappings: %w", err)
	}
	return nil
}

func toMapEntry(entry episodemap.Entry) catalog.MapEntry {
	out := catalog.MapEntry{Episode: entry.Episode.Key(), Title: entry.Target.Title.Number}
	if entry.Target.IsChapters() {
		out.StartChapter = entry.Target.Start.Number
		out.EndChapter = entry.Target.End.Number
	}
	return out
}
