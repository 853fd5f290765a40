package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/samber/lo"

	"ripmap/internal/catalog"
	"ripmap/internal/disc"
	"ripmap/internal/episodemap"
)

var promptAnswers = map[string]episodemap.Response{
	"yes":   episodemap.ResponseYes,
	"no":    episodemap.ResponseNo,
	"retry": episodemap.ResponseRetry,
	"quit":  episodemap.ResponseQuit,
}

// promptDisambiguator plays each candidate chapter in VLC and asks the user
// whether the episode starts there.
type promptDisambiguator struct {
	disc   *disc.Disc
	player *disc.Player
	out    io.Writer
	ask    func(prompt survey.Prompt, response any) error
}

func newPromptDisambiguator(d *disc.Disc, player *disc.Player, out io.Writer) *promptDisambiguator {
	return &promptDisambiguator{
		disc:   d,
		player: player,
		out:    out,
		ask: func(prompt survey.Prompt, response any) error {
			return survey.AskOne(prompt, response)
		},
	}
}

func (p *promptDisambiguator) Confirm(ctx context.Context, episode catalog.Episode, chapter *disc.Chapter, candidates []*disc.Chapter) (episodemap.Response, error) {
	names := lo.Map(candidates, func(c *disc.Chapter, _ int) string { return c.String() })
	fmt.Fprintf(p.out, "%s could start at any of %s\n", episode, strings.Join(names, ", "))

	// Playback runs while the question is open and stops once it is answered.
	playCtx, stop := context.WithCancel(ctx)
	played := make(chan error, 1)
	if p.player != nil {
		go func() { played <- p.player.Play(playCtx, p.disc, chapter) }()
	} else {
		played <- nil
	}

	var answer string
	err := p.ask(&survey.Select{
		Message: fmt.Sprintf("Does %s start at chapter %s (%s into title %d)?",
			episode.Label(), chapter, disc.FormatDuration(chapter.Start()), chapter.Title.Number),
		Options: []string{"yes", "no", "retry", "quit"},
		Default: "yes",
		Help:    "retry plays the chapter again; quit abandons automap without mapping anything",
	}, &answer)
	stop()
	if playErr := <-played; playErr != nil && !errors.Is(playErr, context.Canceled) {
		fmt.Fprintf(p.out, "Playback failed: %v\n", playErr)
	}

	if errors.Is(err, terminal.InterruptErr) {
		return episodemap.ResponseQuit, nil
	}
	if err != nil {
		return 0, fmt.Errorf("prompt: %w", err)
	}
	response, ok := promptAnswers[answer]
	if !ok {
		return 0, fmt.Errorf("unexpected answer %q", answer)
	}
	return response, nil
}
