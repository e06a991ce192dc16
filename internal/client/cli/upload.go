package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"

	"github.com/dmitrijs2005/sharelink/internal/client/models"
	"github.com/dmitrijs2005/sharelink/internal/client/router"
	"github.com/dmitrijs2005/sharelink/internal/client/workflow"
)

var (
	errUploadFailed = errors.New("upload failed")
	errUsageMode    = errors.New("usage: mode file|text")
)

// explain turns workflow errors into something a user can act on.
func explain(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, workflow.ErrModeMismatch):
		return fmt.Errorf("that does not match the current mode, switch with 'mode file' or 'mode text' first")
	case errors.Is(err, workflow.ErrInvalidTransition):
		return fmt.Errorf("not available right now, type 'status' to see where you are")
	case errors.Is(err, models.ErrTextTooLong):
		return fmt.Errorf("text is longer than %d characters, nothing was changed", models.MaxTextLength)
	case errors.Is(err, models.ErrIsDirectory):
		return fmt.Errorf("that is a directory, pick a single file")
	case errors.Is(err, workflow.ErrNoCapability):
		return fmt.Errorf("not supported in this terminal")
	}
	return err
}

func (a *App) showUpload() {
	a.printf("%s", renderUpload(a.upload.Snapshot(), a.clock.Now(), terminalWidth(a.out)))
}

func (a *App) toSubmitScreen() {
	a.route = router.Route{Screen: router.ScreenSubmit}
}

// SelectMode switches the submission screen between file and text.
func (a *App) SelectMode(ctx context.Context, arg string) error {
	mode, err := models.ParseMode(arg)
	if err != nil {
		return errUsageMode
	}
	a.toSubmitScreen()

	if err := a.upload.SelectMode(mode); err != nil {
		return explain(err)
	}
	a.showUpload()
	return nil
}

// StageFile stages the file at path, prompting for it when path is empty.
func (a *App) StageFile(ctx context.Context, path string) error {
	a.toSubmitScreen()

	if path == "" {
		p, err := GetSimpleText(a.reader, "Enter file path", a.out)
		if err != nil {
			return err
		}
		path = p
	}

	f, err := models.FileFromPath(path)
	if err != nil {
		return explain(err)
	}
	if err := a.upload.StageFile(f); err != nil {
		return explain(err)
	}
	a.showUpload()
	return nil
}

// StageText stages inline text, or reads several lines when inline is empty.
func (a *App) StageText(ctx context.Context, inline string) error {
	a.toSubmitScreen()

	text := inline
	if text == "" {
		t, err := GetMultiline(a.reader, "Enter text", a.out)
		if err != nil {
			return err
		}
		text = t
	}
	return a.stageText(text)
}

func (a *App) stageText(text string) error {
	if err := a.upload.StageText(text); err != nil {
		return explain(err)
	}
	a.showUpload()
	return nil
}

// Submit uploads the staged content and draws progress while it runs.
// Ctrl-C cancels the upload without leaving the shell.
func (a *App) Submit(ctx context.Context) error {
	a.toSubmitScreen()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	updates, cancel := a.upload.Progress().Subscribe()
	width := terminalWidth(a.out)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		drawn := false
		for p := range updates {
			a.printf("\r%s", progressBar(p, width))
			drawn = true
		}
		if drawn {
			a.printf("\n")
		}
	}()

	s, err := a.upload.Submit(ctx)
	cancel()
	wg.Wait()

	if err != nil {
		return explain(err)
	}

	a.printf("%s", renderUpload(s, a.clock.Now(), width))
	if s.State == workflow.UploadFailed {
		return shown(fmt.Errorf("%w: %s", errUploadFailed, s.Err.Message))
	}
	return nil
}

// ShowStatus renders whichever screen is open.
func (a *App) ShowStatus(ctx context.Context) error {
	if a.route.Screen == router.ScreenView {
		a.printf("%s", renderLink(a.link.Snapshot()))
		return nil
	}
	a.showUpload()
	return nil
}

// CopyLink copies the view link of the last successful upload.
func (a *App) CopyLink(ctx context.Context) error {
	if err := a.upload.CopyLink(ctx); err != nil {
		if errors.Is(err, workflow.ErrInvalidTransition) {
			return errors.New("nothing uploaded yet")
		}
		return explain(err)
	}
	a.showUpload()
	return nil
}

// Reset starts over with an empty submission screen.
func (a *App) Reset(ctx context.Context) error {
	a.upload.Reset()
	a.toSubmitScreen()
	a.showUpload()
	return nil
}
