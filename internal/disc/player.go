package disc

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Player starts playback of a disc, title or chapter in VLC so a user can
// confirm where an episode begins.
type Player struct {
	binary string
	source string
	exec   Executor
}

// NewPlayer constructs a Player for the VLC binary and disc source device.
func NewPlayer(binary, source string) *Player {
	return NewPlayerWithExecutor(binary, source, nil)
}

// NewPlayerWithExecutor allows injecting a custom executor for testing.
func NewPlayerWithExecutor(binary, source string, exec Executor) *Player {
	if exec == nil {
		exec = commandExecutor{}
	}
	return &Player{binary: strings.TrimSpace(binary), source: strings.TrimSpace(source), exec: exec}
}

// MRL returns the media locator for the disc, or for a title or chapter on it
// when target is a *Title or *Chapter.
func (p *Player) MRL(d *Disc, target any) (string, error) {
	scheme := "dvd"
	if d != nil && d.Type == TypeBluRay {
		scheme = "bluray"
	}
	base := fmt.Sprintf("%s://%s", scheme, p.source)
	switch t := target.(type) {
	case nil:
		return base, nil
	case *Title:
		return fmt.Sprintf("%s#%d", base, t.Number), nil
	case *Chapter:
		return fmt.Sprintf("%s#%d:%d", base, t.Title.Number, t.Number), nil
	default:
		return "", fmt.Errorf("cannot play %T", target)
	}
}

// Play blocks until VLC exits. Cancelling ctx stops playback and returns
// the context error.
func (p *Player) Play(ctx context.Context, d *Disc, target any) error {
	if p.binary == "" {
		return errors.New("vlc binary not configured")
	}
	mrl, err := p.MRL(d, target)
	if err != nil {
		return err
	}
	args := []string{"--quiet", "--avcodec-hw", "none", mrl}
	if _, stderr, err := p.exec.Run(ctx, p.binary, args); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("play %s: %w%s", mrl, err, stderrSuffix(stderr))
	}
	return nil
}
