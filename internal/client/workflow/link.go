package workflow

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/sharelink/internal/client/client"
	"github.com/dmitrijs2005/sharelink/internal/client/models"
	"github.com/dmitrijs2005/sharelink/internal/common"
)

// User-facing messages of the link workflow.
const (
	MsgExpired  = "This link has expired."
	MsgNotFound = "File not found or has expired."
)

type LinkState int

const (
	// LinkIdle means no identifier has been resolved yet.
	LinkIdle LinkState = iota
	LinkLoading
	LinkReady
	LinkExpired
	LinkNotFound
)

func (s LinkState) String() string {
	switch s {
	case LinkIdle:
		return "idle"
	case LinkLoading:
		return "loading"
	case LinkReady:
		return "ready"
	case LinkExpired:
		return "expired"
	case LinkNotFound:
		return "not found"
	}
	return fmt.Sprintf("LinkState(%d)", int(s))
}

// LinkSnapshot is what a view of the link shows at one instant.
type LinkSnapshot struct {
	State   LinkState
	ShortID string
	// Metadata is set only in LinkReady.
	Metadata *models.ContentMetadata
	// Message is the user-facing text for LinkExpired and LinkNotFound.
	Message string
	// TextCopied is the transient acknowledgment raised by CopyText.
	TextCopied bool
	// ExpiresIn is the time left in LinkReady.
	ExpiresIn time.Duration
}

// LinkWorkflow resolves a short identifier and exposes download and copy
// actions while the content is valid. Expiry is always checked against the
// clock at the moment of reading.
type LinkWorkflow struct {
	client client.Client
	opts   options
	ack    *acknowledgment

	mu      sync.Mutex
	gen     uint64
	state   LinkState
	shortID string
	meta    *models.ContentMetadata
}

// NewLinkWorkflow builds the workflow. The ack interval applies to CopyText
// and defaults to DefaultTextCopyAck.
func NewLinkWorkflow(c client.Client, opts ...Option) *LinkWorkflow {
	o := buildOptions(DefaultTextCopyAck, opts)
	return &LinkWorkflow{
		client: c,
		opts:   o,
		ack:    newAcknowledgment(o.clock, o.ackInterval),
	}
}

// Resolve enters the workflow for shortID: Loading, then Ready, Expired or
// NotFound. Calling it again with any identifier starts over; the outcome
// of a superseded call is dropped.
func (w *LinkWorkflow) Resolve(ctx context.Context, shortID string) LinkSnapshot {
	shortID = strings.TrimSpace(shortID)

	w.mu.Lock()
	w.gen++
	gen := w.gen
	w.state = LinkLoading
	w.shortID = shortID
	w.meta = nil
	w.ack.clear()
	w.mu.Unlock()

	log := w.opts.log.With("short_id", shortID)

	if shortID == "" {
		w.finish(gen, LinkNotFound, nil)
		return w.Snapshot()
	}

	md, err := w.client.FetchMetadata(ctx, shortID)
	switch {
	case err != nil:
		log.Info(ctx, "link not resolved", "error", err)
		w.finish(gen, LinkNotFound, nil)
	case md.ExpiredAt(w.opts.clock.Now()):
		log.Info(ctx, "link expired", "expires_at", md.ExpiresAt)
		w.finish(gen, LinkExpired, nil)
	default:
		log.Debug(ctx, "link resolved", "upload_type", md.UploadType, "expires_at", md.ExpiresAt)
		w.finish(gen, LinkReady, md)
	}

	return w.Snapshot()
}

func (w *LinkWorkflow) finish(gen uint64, state LinkState, md *models.ContentMetadata) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if gen != w.gen {
		return
	}
	w.state = state
	w.meta = md
}

// ready returns the metadata if the workflow is Ready and the content has not
// expired by now. Caller holds w.mu.
func (w *LinkWorkflow) ready() (*models.ContentMetadata, error) {
	if w.state != LinkReady || w.meta == nil {
		return nil, ErrInvalidTransition
	}
	if w.meta.ExpiredAt(w.opts.clock.Now()) {
		return nil, common.ErrExpired
	}
	return w.meta, nil
}

// TriggerDownload hands the download URL to the navigator and returns
// without waiting for anything.
func (w *LinkWorkflow) TriggerDownload() error {
	w.mu.Lock()
	md, err := w.ready()
	w.mu.Unlock()
	if err != nil {
		return err
	}

	nav := w.opts.navigator
	if nav == nil {
		return ErrNoCapability
	}

	nav.Navigate(w.client.DownloadURL(md.ShortID))
	return nil
}

// CopyText copies the snippet of a TEXT upload and raises an acknowledgment
// that clears itself after the configured interval.
func (w *LinkWorkflow) CopyText(ctx context.Context) error {
	w.mu.Lock()
	md, err := w.ready()
	gen := w.gen
	w.mu.Unlock()
	if err != nil {
		return err
	}

	text, ok := md.Text()
	if !ok {
		return ErrNothingToCopy
	}

	if err := w.opts.clipboard.WriteText(ctx, text); err != nil {
		return fmt.Errorf("copy text: %w", err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if gen == w.gen {
		w.ack.raise()
	}
	return nil
}

// Snapshot reads the current view. A Ready link whose expiry has passed
// reads as Expired with no content.
func (w *LinkWorkflow) Snapshot() LinkSnapshot {
	w.mu.Lock()
	defer w.mu.Unlock()

	s := LinkSnapshot{State: w.state, ShortID: w.shortID}

	switch w.state {
	case LinkReady:
		now := w.opts.clock.Now()
		if w.meta.ExpiredAt(now) {
			s.State = LinkExpired
			s.Message = MsgExpired
			return s
		}
		md := *w.meta
		s.Metadata = &md
		s.ExpiresIn = md.ExpiresAt.Sub(now)
		s.TextCopied = w.ack.isActive()
	case LinkExpired:
		s.Message = MsgExpired
	case LinkNotFound:
		s.Message = MsgNotFound
	}
	return s
}
