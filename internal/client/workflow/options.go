package workflow

import (
	"context"
	"errors"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/dmitrijs2005/sharelink/internal/client/capabilities"
	"github.com/dmitrijs2005/sharelink/internal/logging"
)

const (
	// DefaultTextCopyAck is how long "copied" stays up after copying a snippet.
	DefaultTextCopyAck = 2500 * time.Millisecond
	// DefaultLinkCopyAck is how long "copied" stays up after copying a view link.
	DefaultLinkCopyAck = 2 * time.Second
)

var (
	ErrInvalidTransition = errors.New("not allowed in the current state")
	ErrModeMismatch      = errors.New("content does not match the selected mode")
	ErrNothingToCopy     = errors.New("nothing to copy")
	ErrNoCapability      = errors.New("capability not configured")
)

type options struct {
	clock       clock.Clock
	log         logging.Logger
	clipboard   capabilities.Clipboard
	navigator   capabilities.Navigator
	ackInterval time.Duration
}

type Option func(*options)

func WithClock(c clock.Clock) Option {
	return func(o *options) { o.clock = c }
}

func WithLogger(l logging.Logger) Option {
	return func(o *options) { o.log = l }
}

func WithClipboard(c capabilities.Clipboard) Option {
	return func(o *options) { o.clipboard = c }
}

func WithNavigator(n capabilities.Navigator) Option {
	return func(o *options) { o.navigator = n }
}

// WithAckInterval sets how long a "copied" acknowledgment stays visible.
func WithAckInterval(d time.Duration) Option {
	return func(o *options) { o.ackInterval = d }
}

func buildOptions(ack time.Duration, opts []Option) options {
	o := options{
		clock:       clock.New(),
		log:         logging.Nop(),
		clipboard:   missingClipboard{},
		navigator:   nil,
		ackInterval: ack,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.ackInterval <= 0 {
		o.ackInterval = ack
	}
	return o
}

type missingClipboard struct{}

func (missingClipboard) WriteText(context.Context, string) error {
	return ErrNoCapability
}
