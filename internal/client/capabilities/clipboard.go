package capabilities

import (
	"context"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/aymanbagabas/go-osc52/v2"
)

// TerminalClipboard copies through the terminal with an OSC 52 escape
// sequence, which also works over SSH. Inside tmux or screen the sequence is
// wrapped so the multiplexer passes it through.
type TerminalClipboard struct {
	mu  sync.Mutex
	out io.Writer
	mux string
}

// NewTerminalClipboard writes sequences to out, detecting tmux/screen from
// the environment.
func NewTerminalClipboard(out io.Writer) *TerminalClipboard {
	mux := ""
	switch {
	case os.Getenv("TMUX") != "":
		mux = "tmux"
	case strings.HasPrefix(os.Getenv("TERM"), "screen"):
		mux = "screen"
	}
	return &TerminalClipboard{out: out, mux: mux}
}

func (c *TerminalClipboard) WriteText(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	seq := osc52.New(text)
	switch c.mux {
	case "tmux":
		seq = seq.Tmux()
	case "screen":
		seq = seq.Screen()
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	_, err := seq.WriteTo(c.out)
	return err
}
