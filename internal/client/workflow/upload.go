package workflow

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/sharelink/internal/client/client"
	"github.com/dmitrijs2005/sharelink/internal/client/models"
	"github.com/dmitrijs2005/sharelink/internal/client/progress"
)

// User-facing messages of the upload workflow.
const (
	MsgNothingStaged   = "Please select a file or enter some text to upload."
	MsgUploadFailed    = "An unexpected error occurred."
	MsgUploadCancelled = "Upload cancelled."
)

type UploadState int

const (
	UploadIdle UploadState = iota
	UploadSubmitting
	UploadSucceeded
	UploadFailed
)

func (s UploadState) String() string {
	switch s {
	case UploadIdle:
		return "idle"
	case UploadSubmitting:
		return "submitting"
	case UploadSucceeded:
		return "succeeded"
	case UploadFailed:
		return "failed"
	}
	return fmt.Sprintf("UploadState(%d)", int(s))
}

// UploadSnapshot is a consistent copy of the workflow at one instant.
type UploadSnapshot struct {
	State    UploadState
	Mode     models.Mode
	File     *models.FileInput
	Text     string
	Progress int
	Result   *models.UploadResult
	Err      *models.WorkflowError
	// LinkCopied is the transient acknowledgment raised by CopyLink.
	LinkCopied bool
}

// UploadWorkflow owns submission of one piece of content at a time.
type UploadWorkflow struct {
	client client.Client
	opts   options
	feed   *progress.Feed
	ack    *acknowledgment

	mu       sync.Mutex
	state    UploadState
	mode     models.Mode
	file     *models.FileInput
	text     string
	progress int
	result   *models.UploadResult
	err      *models.WorkflowError
	attempt  uint64
	// abort cancels the request of the current attempt.
	abort context.CancelFunc
}

// NewUploadWorkflow starts in Idle with file mode selected. The ack interval
// applies to CopyLink and defaults to DefaultLinkCopyAck.
func NewUploadWorkflow(c client.Client, opts ...Option) *UploadWorkflow {
	o := buildOptions(DefaultLinkCopyAck, opts)
	return &UploadWorkflow{
		client: c,
		opts:   o,
		feed:   progress.NewFeed(),
		ack:    newAcknowledgment(o.clock, o.ackInterval),
		state:  UploadIdle,
		mode:   models.ModeFile,
	}
}

// Progress returns the feed that carries progress of every attempt.
func (w *UploadWorkflow) Progress() *progress.Feed {
	return w.feed
}

// editable reports whether staged content may change. A failed attempt
// drops back to Idle as soon as the user edits.
func (w *UploadWorkflow) editable() bool {
	if w.state == UploadFailed {
		w.state = UploadIdle
		w.err = nil
	}
	return w.state == UploadIdle
}

// SelectMode switches between file and text, discarding whatever was staged
// for the other mode.
func (w *UploadWorkflow) SelectMode(mode models.Mode) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state != UploadIdle && w.state != UploadFailed {
		return ErrInvalidTransition
	}
	if mode != models.ModeFile && mode != models.ModeText {
		return fmt.Errorf("%w: %q", ErrModeMismatch, mode)
	}
	w.editable()

	w.mode = mode
	switch mode {
	case models.ModeFile:
		w.text = ""
	case models.ModeText:
		w.file = nil
	}
	return nil
}

// StageFile replaces the staged file. File mode must be selected.
func (w *UploadWorkflow) StageFile(f models.FileInput) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state != UploadIdle && w.state != UploadFailed {
		return ErrInvalidTransition
	}
	if w.mode != models.ModeFile {
		return ErrModeMismatch
	}
	w.editable()

	w.file = &f
	return nil
}

// StageText replaces the staged text. Text longer than models.MaxTextLength
// is rejected and the previous text is kept.
func (w *UploadWorkflow) StageText(text string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state != UploadIdle && w.state != UploadFailed {
		return ErrInvalidTransition
	}
	if w.mode != models.ModeText {
		return ErrModeMismatch
	}

	in, err := models.NewTextInput(text)
	if err != nil {
		return err
	}
	w.editable()

	w.text = in.Text
	return nil
}

// activeInput returns the staged content of the selected mode, or nil.
func (w *UploadWorkflow) activeInput() models.SubmissionInput {
	var in models.SubmissionInput
	switch w.mode {
	case models.ModeFile:
		if w.file != nil {
			in = *w.file
		}
	case models.ModeText:
		in = models.TextInput{Text: w.text}
	}
	if in == nil || in.Empty() {
		return nil
	}
	return in
}

// Submit sends the staged content. It is allowed from Idle and Failed and
// blocks until the attempt resolves. With nothing staged it fails locally
// without touching the network.
func (w *UploadWorkflow) Submit(ctx context.Context) (UploadSnapshot, error) {
	w.mu.Lock()
	if w.state != UploadIdle && w.state != UploadFailed {
		w.mu.Unlock()
		return w.Snapshot(), ErrInvalidTransition
	}

	in := w.activeInput()
	if in == nil {
		w.state = UploadFailed
		w.err = &models.WorkflowError{Message: MsgNothingStaged}
		w.mu.Unlock()
		w.opts.log.Info(ctx, "upload rejected, nothing staged", "mode", w.mode)
		return w.Snapshot(), nil
	}

	ctx, abort := context.WithCancel(ctx)
	defer abort()

	w.attempt++
	attempt := w.attempt
	w.abort = abort
	w.state = UploadSubmitting
	w.progress = 0
	w.err = nil
	w.ack.clear()
	w.feed.Report(0)
	w.mu.Unlock()

	gate := progress.NewGate(progress.ReporterFunc(func(p int) {
		w.setProgress(attempt, p)
	}))
	res, err := w.client.Submit(ctx, in, gate)
	gate.Seal()

	w.mu.Lock()
	if attempt != w.attempt {
		// reset while in flight
		w.mu.Unlock()
		return w.Snapshot(), nil
	}
	w.abort = nil

	if err != nil {
		msg := client.UserMessage(err, MsgUploadFailed)
		if errors.Is(err, context.Canceled) {
			msg = MsgUploadCancelled
		}
		w.state = UploadFailed
		w.err = &models.WorkflowError{Message: msg}
		w.mu.Unlock()
		w.opts.log.Warn(ctx, "upload failed", "mode", in.Mode(), "error", err)
		return w.Snapshot(), nil
	}

	w.state = UploadSucceeded
	w.result = res
	w.file = nil
	w.text = ""
	w.mu.Unlock()
	w.opts.log.Info(ctx, "upload succeeded", "view_url", res.ViewURL, "expires_at", res.ExpiresAt)
	return w.Snapshot(), nil
}

// setProgress records p for attempt. Publishing happens under w.mu so a
// value of an abandoned attempt can never follow the first value of a newer one.
func (w *UploadWorkflow) setProgress(attempt uint64, p int) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if attempt != w.attempt || w.state != UploadSubmitting {
		return
	}
	w.progress = p
	w.feed.Report(p)
}

// CopyLink puts the view URL of a successful upload on the clipboard and
// raises a short-lived acknowledgment.
func (w *UploadWorkflow) CopyLink(ctx context.Context) error {
	w.mu.Lock()
	if w.state != UploadSucceeded {
		w.mu.Unlock()
		return ErrInvalidTransition
	}
	url := w.result.ViewURL
	attempt := w.attempt
	w.mu.Unlock()

	if err := w.opts.clipboard.WriteText(ctx, url); err != nil {
		return fmt.Errorf("copy link: %w", err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if attempt == w.attempt && w.state == UploadSucceeded {
		w.ack.raise()
	}
	return nil
}

// Reset returns to Idle with file mode selected and nothing staged. A
// submission still in flight is cancelled and its outcome ignored.
func (w *UploadWorkflow) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.abort != nil {
		w.abort()
		w.abort = nil
	}
	w.attempt++
	w.state = UploadIdle
	w.mode = models.ModeFile
	w.file = nil
	w.text = ""
	w.progress = 0
	w.result = nil
	w.err = nil
	w.ack.clear()
}

func (w *UploadWorkflow) Snapshot() UploadSnapshot {
	w.mu.Lock()
	defer w.mu.Unlock()

	s := UploadSnapshot{
		State:      w.state,
		Mode:       w.mode,
		Text:       w.text,
		Progress:   w.progress,
		LinkCopied: w.ack.isActive(),
	}
	if w.file != nil {
		f := *w.file
		s.File = &f
	}
	if w.result != nil {
		r := *w.result
		s.Result = &r
	}
	if w.err != nil {
		e := *w.err
		s.Err = &e
	}
	return s
}
