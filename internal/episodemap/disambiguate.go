package episodemap

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/samber/lo"

	"ripmap/internal/catalog"
	"ripmap/internal/disc"
)

// Response is a disambiguator's verdict on one candidate starting chapter.
type Response int

const (
	// ResponseYes accepts the chapter as the start of the episode.
	ResponseYes Response = iota + 1
	// ResponseNo rejects the chapter; the next candidate is presented.
	ResponseNo
	// ResponseRetry presents the same chapter again.
	ResponseRetry
	// ResponseQuit abandons the whole automap operation.
	ResponseQuit
)

func (r Response) String() string {
	switch r {
	case ResponseYes:
		return "yes"
	case ResponseNo:
		return "no"
	case ResponseRetry:
		return "retry"
	case ResponseQuit:
		return "quit"
	default:
		return fmt.Sprintf("Response(%d)", int(r))
	}
}

// Disambiguator resolves competing chapter mappings, typically by playing the
// candidate chapter to a user and asking whether the episode starts there.
// Confirm is called synchronously and may block on user input.
type Disambiguator interface {
	Confirm(ctx context.Context, episode catalog.Episode, chapter *disc.Chapter, candidates []*disc.Chapter) (Response, error)
}

// DisambiguatorFunc adapts a function to the Disambiguator interface.
type DisambiguatorFunc func(ctx context.Context, episode catalog.Episode, chapter *disc.Chapter, candidates []*disc.Chapter) (Response, error)

func (f DisambiguatorFunc) Confirm(ctx context.Context, episode catalog.Episode, chapter *disc.Chapter, candidates []*disc.Chapter) (Response, error) {
	return f(ctx, episode, chapter, candidates)
}

// Disambiguate narrows candidate mappings of episodes to exactly one. For
// each episode in ascending order it collects the distinct starting chapters
// still in play and asks d to confirm them one at a time, discarding every
// candidate that disagrees with the accepted start.
func Disambiguate(ctx context.Context, episodes []catalog.Episode, candidates []*EpisodeMap, d Disambiguator) (*EpisodeMap, error) {
	if len(candidates) == 0 {
		return nil, ErrNoSolutions
	}
	if len(candidates) > 1 && d == nil {
		return nil, fmt.Errorf("%w: %d candidates", ErrMultipleSolutions, len(candidates))
	}
	for _, episode := range sortedEpisodes(episodes) {
		starts := lo.Uniq(lo.FilterMap(candidates, func(m *EpisodeMap, _ int) (*disc.Chapter, bool) {
			target, ok := m.Get(episode)
			return target.Start, ok && target.Start != nil
		}))
		if len(starts) == 0 {
			continue
		}
		slices.SortStableFunc(starts, func(a, b *disc.Chapter) int {
			return cmp.Or(cmp.Compare(a.Title.Number, b.Title.Number), cmp.Compare(a.Number, b.Number))
		})
		chosen, err := confirmStart(ctx, d, episode, starts)
		if err != nil {
			return nil, err
		}
		candidates = lo.Filter(candidates, func(m *EpisodeMap, _ int) bool {
			target, ok := m.Get(episode)
			return ok && target.Start == chosen
		})
	}
	if len(candidates) != 1 {
		return nil, fmt.Errorf("%w: %d candidates remain after disambiguation", ErrMultipleSolutions, len(candidates))
	}
	return candidates[0], nil
}

func confirmStart(ctx context.Context, d Disambiguator, episode catalog.Episode, starts []*disc.Chapter) (*disc.Chapter, error) {
	remaining := slices.Clone(starts)
	for len(remaining) > 1 {
		chapter := remaining[0]
		response, err := d.Confirm(ctx, episode, chapter, slices.Clone(remaining))
		if err != nil {
			return nil, fmt.Errorf("confirm start of %s: %w", episode.Label(), err)
		}
		switch response {
		case ResponseYes:
			return chapter, nil
		case ResponseNo:
			remaining = remaining[1:]
		case ResponseRetry:
		case ResponseQuit:
			return nil, ErrAbandoned
		default:
			return nil, fmt.Errorf("confirm start of %s: unexpected response %s", episode.Label(), response)
		}
	}
	return remaining[0], nil
}
