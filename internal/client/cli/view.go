package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"github.com/dmitrijs2005/sharelink/internal/client/router"
	"github.com/dmitrijs2005/sharelink/internal/client/workflow"
	"github.com/dmitrijs2005/sharelink/internal/common"
)

var errLinkUnavailable = errors.New("link unavailable")

// Open navigates to a route, a view URL or a bare short identifier.
func (a *App) Open(ctx context.Context, target string) error {
	r, err := router.Parse(target)
	if err != nil {
		return err
	}

	a.route = r
	if r.Screen == router.ScreenSubmit {
		a.showUpload()
		return nil
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	a.printf("Loading...\n")
	s := a.link.Resolve(ctx, r.ShortID)
	a.printf("%s", renderLink(s))

	if s.State != workflow.LinkReady {
		return shown(errors.Join(errLinkUnavailable, errors.New(s.Message)))
	}
	return nil
}

func (a *App) linkError(err error) error {
	switch {
	case errors.Is(err, common.ErrExpired):
		a.printf("%s", renderLink(a.link.Snapshot()))
		return shown(err)
	case errors.Is(err, workflow.ErrInvalidTransition):
		return errors.New("no shared item is open, use 'view <id|url>' first")
	case errors.Is(err, workflow.ErrNothingToCopy):
		return errors.New("this item has no text to copy")
	}
	return explain(err)
}

// CopyText copies the snippet of the open text item.
func (a *App) CopyText(ctx context.Context) error {
	if err := a.link.CopyText(ctx); err != nil {
		return a.linkError(err)
	}
	a.printf("%s", renderLink(a.link.Snapshot()))
	return nil
}

// Download starts saving the open item into the download directory. The
// result is reported when the transfer finishes.
func (a *App) Download(ctx context.Context) error {
	if err := a.link.TriggerDownload(); err != nil {
		return a.linkError(err)
	}
	a.printf("Downloading into %s...\n", a.downloadDir)
	return nil
}
