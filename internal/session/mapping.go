package session

import (
	"context"
	"fmt"

	"github.com/samber/lo"

	"ripmap/internal/catalog"
	"ripmap/internal/disc"
	"ripmap/internal/episodemap"
	"ripmap/internal/logging"
)

// AutomapRequest selects what an automap run considers.
type AutomapRequest struct {
	// Episodes names episode numbers to map. When empty every episode that
	// is neither mapped nor ripped is used, and strictness follows the
	// config; naming episodes always makes title mapping strict.
	Episodes []int
	// Titles names disc titles to map onto. When empty the candidate titles
	// are used.
	Titles        []int
	Disambiguator episodemap.Disambiguator
}

// CandidateTitles returns the titles no mapping touches yet, filtered by the
// configured duplicate policy.
func (s *Session) CandidateTitles() ([]*disc.Title, error) {
	policy, err := disc.ParsePolicy(s.cfg.Mapping.Duplicates)
	if err != nil {
		return nil, err
	}
	used := make(map[*disc.Title]bool)
	for _, target := range s.mapping.Values() {
		used[target.Title] = true
	}
	unused := lo.Reject(s.disc.Titles, func(t *disc.Title, _ int) bool {
		return used[t]
	})
	return disc.FilterDuplicates(unused, policy), nil
}

// Automap maps episodes onto disc content and persists the result. It
// returns the bindings it added.
func (s *Session) Automap(ctx context.Context, req AutomapRequest) ([]episodemap.Entry, error) {
	episodes, strict, err := s.automapEpisodes(ctx, req.Episodes)
	if err != nil {
		return nil, err
	}
	titles, err := s.automapTitles(req.Titles)
	if err != nil {
		return nil, err
	}
	minDuration, maxDuration := s.cfg.DurationWindow()

	s.logger.Info("automap started",
		logging.Int(logging.FieldEpisodeCount, len(episodes)),
		logging.Int("title_count", len(titles)),
		logging.Window(minDuration, maxDuration),
		logging.Bool("strict", strict))

	proposed, err := episodemap.Automap(ctx, episodes, titles, episodemap.Options{
		DurationMin:   minDuration,
		DurationMax:   maxDuration,
		Strict:        strict,
		Disambiguator: req.Disambiguator,
		Logger:        s.logger,
	})
	if err != nil {
		return nil, err
	}
	if err := s.mapping.Update(proposed); err != nil {
		return nil, err
	}
	if err := s.save(ctx); err != nil {
		return nil, err
	}

	added := proposed.Items()
	for _, entry := range added {
		s.logger.Info("episode mapped",
			logging.Episode(entry.Episode.Label()),
			logging.Target(entry.Target))
	}
	return added, nil
}

func (s *Session) automapEpisodes(ctx context.Context, numbers []int) ([]catalog.Episode, bool, error) {
	if len(numbers) == 0 {
		unripped, err := s.store.UnrippedEpisodes(ctx, s.program, s.season)
		if err != nil {
			return nil, false, err
		}
		return lo.Reject(unripped, func(e catalog.Episode, _ int) bool {
			return s.mapping.Contains(e)
		}), s.cfg.Mapping.Strict, nil
	}

	episodes := make([]catalog.Episode, 0, len(numbers))
	for _, number := range lo.Uniq(numbers) {
		episode, err := s.episode(ctx, number)
		if err != nil {
			return nil, false, err
		}
		if target, ok := s.mapping.Get(episode); ok {
			return nil, false, fmt.Errorf("%s is already mapped to %s", episode.Label(), target)
		}
		episodes = append(episodes, episode)
	}
	return episodes, true, nil
}

func (s *Session) automapTitles(numbers []int) ([]*disc.Title, error) {
	if len(numbers) == 0 {
		return s.CandidateTitles()
	}
	titles := make([]*disc.Title, 0, len(numbers))
	for _, number := range lo.Uniq(numbers) {
		title := s.disc.Title(number)
		if title == nil {
			return nil, fmt.Errorf("no title %d on disc", number)
		}
		titles = append(titles, title)
	}
	return titles, nil
}

func (s *Session) episode(ctx context.Context, number int) (catalog.Episode, error) {
	return s.store.Episode(ctx, catalog.EpisodeKey{Program: s.program, Season: s.season, Number: number})
}

// Map binds episode number to the target written as for ParseTarget.
func (s *Session) Map(ctx context.Context, number int, text string) (episodemap.Entry, error) {
	episode, err := s.episode(ctx, number)
	if err != nil {
		return episodemap.Entry{}, err
	}
	target, err := ParseTarget(s.disc, text)
	if err != nil {
		return episodemap.Entry{}, err
	}
	if err := s.mapping.Set(episode, target); err != nil {
		return episodemap.Entry{}, err
	}
	if err := s.save(ctx); err != nil {
		return episodemap.Entry{}, err
	}
	s.logger.Info("episode mapped",
		logging.Episode(episode.Label()),
		logging.Target(target))
	return episodemap.Entry{Episode: episode, Target: target}, nil
}

// Unmap removes the bindings of the numbered episodes, or every binding
// when no numbers are given. Nothing is removed unless every number is
// mapped.
func (s *Session) Unmap(ctx context.Context, numbers ...int) error {
	if len(numbers) == 0 {
		s.mapping.Clear()
		return s.save(ctx)
	}
	episodes := make([]catalog.Episode, 0, len(numbers))
	for _, number := range numbers {
		episode := catalog.Episode{Program: s.program, Season: s.season, Number: number}
		if !s.mapping.Contains(episode) {
			return fmt.Errorf("%w: %s", episodemap.ErrKeyNotFound, episode.Label())
		}
		episodes = append(episodes, episode)
	}
	for _, episode := range episodes {
		if err := s.mapping.Delete(episode); err != nil {
			return err
		}
	}
	return s.save(ctx)
}

// Record marks every mapped episode not yet ripped from this disc as ripped
// from its target, and returns those episodes.
func (s *Session) Record(ctx context.Context) ([]catalog.Episode, error) {
	var recorded []catalog.Episode
	for _, entry := range s.mapping.Items() {
		if entry.Episode.DiscID == s.ident {
			continue
		}
		stored := toMapEntry(entry)
		rec := catalog.RipRecord{
			DiscID:       s.ident,
			DiscTitle:    stored.Title,
			StartChapter: stored.StartChapter,
			EndChapter:   stored.EndChapter,
		}
		if err := s.store.MarkRipped(ctx, entry.Episode.Key(), rec); err != nil {
			return recorded, fmt.Errorf("record %s: %w", entry.Episode.Label(), err)
		}
		episode := entry.Episode
		episode.DiscID = rec.DiscID
		episode.DiscTitle = rec.DiscTitle
		episode.StartChapter = rec.StartChapter
		episode.EndChapter = rec.EndChapter
		if err := s.mapping.Set(episode, entry.Target); err != nil {
			return recorded, err
		}
		recorded = append(recorded, episode)
		s.logger.Info("episode recorded as ripped",
			logging.Episode(episode.Label()),
			logging.Target(entry.Target))
	}
	if err := s.save(ctx); err != nil {
		return recorded, err
	}
	return recorded, nil
}

// Reset discards the pending mappings for the disc and restores only what
// rip history records, as after a fresh scan.
func (s *Session) Reset(ctx context.Context) error {
	s.mapping.Clear()
	if err := s.store.SaveMappings(ctx, s.ident, nil); err != nil {
		return fmt.Errorf("clear mappings: %w", err)
	}
	return s.restore(ctx)
}
