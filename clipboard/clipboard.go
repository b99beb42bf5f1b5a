// Package clipboard writes text to the system clipboard. It prefers the
// native clipboard (pbcopy, xclip, xsel, wl-copy, clip.exe via
// atotto/clipboard) and falls back to an OSC 52 escape sequence, which
// reaches the local clipboard through SSH and tmux.
package clipboard

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/atotto/clipboard"
	"github.com/aymanbagabas/go-osc52/v2"
	"github.com/fwojciec/chatmsg"
)

var _ chatmsg.Clipboard = (*System)(nil)

// System is the clipboard of the machine running the program.
type System struct {
	// Terminal receives the OSC 52 sequence. When nil, /dev/tty is opened
	// for each write.
	Terminal io.Writer

	// Tmux wraps the OSC 52 sequence for tmux passthrough.
	Tmux bool

	// native overrides the native writer in tests.
	native func(string) error
}

// New returns a System clipboard that detects tmux from the environment.
func New() *System {
	return &System{Tmux: os.Getenv("TMUX") != ""}
}

// WriteText copies text to the clipboard.
func (s *System) WriteText(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	nativeErr := s.writeNative(text)
	if nativeErr == nil {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	oscErr := s.writeOSC52(text)
	if oscErr == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", chatmsg.ErrClipboardUnavailable, errors.Join(nativeErr, oscErr))
}

func (s *System) writeNative(text string) error {
	if s.native != nil {
		return s.native(text)
	}
	if clipboard.Unsupported {
		return errors.New("native clipboard: no clipboard utility found")
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("native clipboard: %w", err)
	}
	return nil
}

func (s *System) writeOSC52(text string) error {
	seq := osc52.New(text)
	if s.Tmux {
		seq = seq.Tmux()
	}
	w := s.Terminal
	if w == nil {
		tty, err := os.OpenFile("/dev/tty", os.O_WRONLY, 0)
		if err != nil {
			return fmt.Errorf("osc52: open terminal: %w", err)
		}
		defer tty.Close()
		w = tty
	}
	if _, err := seq.WriteTo(w); err != nil {
		return fmt.Errorf("osc52: %w", err)
	}
	return nil
}
