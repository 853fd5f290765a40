package episodemap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"ripmap/internal/catalog"
	"ripmap/internal/disc"
	"ripmap/internal/logging"
)

// Options configures an automap run.
type Options struct {
	// DurationMin and DurationMax bound the length of a single episode.
	DurationMin time.Duration
	DurationMax time.Duration
	// Strict requires title-based mapping to cover every episode; otherwise
	// mapping only the leading episodes is accepted.
	Strict bool
	// Disambiguator resolves multiple chapter solutions. Without one,
	// ambiguity fails with ErrMultipleSolutions.
	Disambiguator Disambiguator
	Logger        *slog.Logger
}

// Automap populates m with a mapping of episodes onto titles. The proposed
// mapping is computed in full before any entry is written, so a failed call
// leaves m unchanged. See the package-level Automap for the strategy.
func (m *EpisodeMap) Automap(ctx context.Context, episodes []catalog.Episode, titles []*disc.Title, opts Options) error {
	proposed, err := Automap(ctx, episodes, titles, opts)
	if err != nil {
		return err
	}
	return m.Update(proposed)
}

// Automap computes a mapping of episodes onto the candidate titles, which
// must already exclude duplicates and previously ripped content.
//
// Strategies, in order:
//
//  1. Title-based: titles whose duration lies within the window are bound to
//     episodes in ascending order.
//  2. Chapter-based over the chapters of the longest title.
//  3. Chapter-based over the chapters of every title, in order.
//
// Chapter-based mapping searches for consecutive chapter runs fitting the
// window for every episode. Intro or credit chapters short enough to belong
// to either neighbour often yield several solutions; those are resolved by
// opts.Disambiguator.
func Automap(ctx context.Context, episodes []catalog.Episode, titles []*disc.Title, opts Options) (*EpisodeMap, error) {
	if len(episodes) == 0 {
		return nil, ErrNoEpisodes
	}
	if opts.DurationMax < opts.DurationMin {
		return nil, ErrInvalidDuration
	}
	logger := logging.NewComponentLogger(opts.Logger, "automap")
	episodes = sortedEpisodes(episodes)

	logger.Debug("trying title-based mapping",
		logging.Int(logging.FieldEpisodeCount, len(episodes)),
		logging.Int("title_count", len(titles)))
	result, err := mapTitles(episodes, titles, opts, logger)
	if err == nil {
		return result, nil
	}
	if !errors.Is(err, ErrNoMapping) {
		return nil, err
	}

	longest := longestTitle(titles)
	if longest != nil {
		logger.Debug("trying chapter-based mapping with longest title",
			logging.Int("title", longest.Number),
			logging.Duration("duration", longest.Duration),
			logging.Int("chapter_count", len(longest.Chapters)))
		result, err = mapChapters(ctx, episodes, longest.Chapters, opts, logger)
		if err == nil || !errors.Is(err, ErrNoSolutions) {
			return result, err
		}
	}

	var chapters []*disc.Chapter
	for _, t := range titles {
		chapters = append(chapters, t.Chapters...)
	}
	logger.Debug("trying chapter-based mapping with all titles",
		logging.Int("chapter_count", len(chapters)))
	return mapChapters(ctx, episodes, chapters, opts, logger)
}

func mapTitles(episodes []catalog.Episode, titles []*disc.Title, opts Options, logger *slog.Logger) (*EpisodeMap, error) {
	result := New()
	remaining := episodes
	for _, title := range titles {
		if len(remaining) == 0 {
			logger.Debug("out of episodes for title-based mapping")
			break
		}
		if title.Duration < opts.DurationMin || title.Duration > opts.DurationMax {
			logger.Debug("title is not an episode",
				logging.Int("title", title.Number),
				logging.Duration("duration", title.Duration))
			continue
		}
		if err := result.Set(remaining[0], TitleTarget(title)); err != nil {
			return nil, err
		}
		remaining = remaining[1:]
	}
	if result.Len() == 0 {
		return nil, ErrNoMapping
	}
	if opts.Strict && len(remaining) > 0 {
		return nil, fmt.Errorf("%w: %d of %d episodes left unmapped", ErrNoMapping, len(remaining), len(episodes))
	}
	return result, nil
}

func mapChapters(ctx context.Context, episodes []catalog.Episode, chapters []*disc.Chapter, opts Options, logger *slog.Logger) (*EpisodeMap, error) {
	solutions := Search(chapters, len(episodes), opts.DurationMin, opts.DurationMax)
	logger.Debug("chapter mapping solutions found", logging.Int("solution_count", len(solutions)))
	if len(solutions) == 0 {
		return nil, ErrNoSolutions
	}

	candidates := make([]*EpisodeMap, 0, len(solutions))
	for _, solution := range solutions {
		candidate := New()
		for i, target := range solution.Ends(chapters) {
			if err := candidate.Set(episodes[i], target); err != nil {
				return nil, err
			}
		}
		candidates = append(candidates, candidate)
	}
	if len(candidates) == 1 {
		return candidates[0], nil
	}
	if opts.Disambiguator == nil {
		return nil, fmt.Errorf("%w: %d candidates", ErrMultipleSolutions, len(candidates))
	}
	logger.Info("multiple chapter mappings found; asking for confirmation",
		logging.Int("solution_count", len(candidates)))
	return Disambiguate(ctx, episodes, candidates, opts.Disambiguator)
}

// longestTitle returns the title with the greatest duration. Ties go to the
// title appearing later in titles.
func longestTitle(titles []*disc.Title) *disc.Title {
	var longest *disc.Title
	for _, t := range titles {
		if longest == nil || t.Duration >= longest.Duration {
			longest = t
		}
	}
	return longest
}

func sortedEpisodes(episodes []catalog.Episode) []catalog.Episode {
	out := slices.Clone(episodes)
	slices.SortStableFunc(out, compareEpisodes)
	return out
}
