package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"sync"

	"github.com/benbjohnson/clock"

	"github.com/dmitrijs2005/sharelink/internal/client/capabilities"
	"github.com/dmitrijs2005/sharelink/internal/client/client"
	"github.com/dmitrijs2005/sharelink/internal/client/config"
	"github.com/dmitrijs2005/sharelink/internal/client/router"
	"github.com/dmitrijs2005/sharelink/internal/client/workflow"
	"github.com/dmitrijs2005/sharelink/internal/logging"
)

// App is the shell around the two workflows. It keeps track of which screen
// is open and renders workflow snapshots to out.
type App struct {
	log         logging.Logger
	clock       clock.Clock
	upload      *workflow.UploadWorkflow
	link        *workflow.LinkWorkflow
	downloader  *capabilities.Downloader
	downloadDir string
	route       router.Route
	reader      *bufio.Reader
	out         io.Writer

	mu          sync.Mutex
	downloadErr error
}

// NewApp wires the transport, the terminal capabilities and both workflows.
// Input is read from in and everything user-facing goes to out.
func NewApp(c *config.Config, log logging.Logger, in io.Reader, out io.Writer) (*App, error) {
	if log == nil {
		log = logging.Nop()
	}

	api, err := client.NewHTTPClient(c.ServerOrigin,
		client.WithLogger(log),
		client.WithMetadataTimeout(c.RequestTimeout),
	)
	if err != nil {
		return nil, err
	}

	// created by the downloader on first use
	dir, err := filepath.Abs(c.DownloadDir)
	if err != nil {
		return nil, fmt.Errorf("download dir: %w", err)
	}

	a := &App{
		log:         log,
		clock:       clock.New(),
		reader:      bufio.NewReader(in),
		out:         &lockedWriter{w: out},
		downloadDir: dir,
	}

	clip := capabilities.NewTerminalClipboard(a.out)
	a.downloader = capabilities.NewDownloader(dir, log, a.downloadFinished)

	a.upload = workflow.NewUploadWorkflow(api,
		workflow.WithClock(a.clock),
		workflow.WithLogger(log.With("workflow", "upload")),
		workflow.WithClipboard(clip),
		workflow.WithAckInterval(c.LinkCopyAckInterval),
	)
	a.link = workflow.NewLinkWorkflow(api,
		workflow.WithClock(a.clock),
		workflow.WithLogger(log.With("workflow", "link")),
		workflow.WithClipboard(clip),
		workflow.WithNavigator(a.downloader),
		workflow.WithAckInterval(c.CopyAckInterval),
	)

	return a, nil
}

func (a *App) downloadFinished(url, savedPath string, err error) {
	a.mu.Lock()
	a.downloadErr = err
	a.mu.Unlock()

	if err != nil {
		a.log.Warn(context.Background(), "download failed", "url", url, "error", err)
		a.printf("%s\n", errorStyle.Render("Download failed."))
		return
	}
	a.printf("Saved to %s\n", savedPath)
}

// lockedWriter lets background downloads report while the shell prints.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}

// lastDownloadErr returns the outcome of the most recent download.
func (a *App) lastDownloadErr() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.downloadErr
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

// Close stops background downloads.
func (a *App) Close() error {
	if a.downloader == nil {
		return nil
	}
	return a.downloader.Close()
}

// Run starts the interactive shell and blocks until the user exits or ctx
// is cancelled.
func (a *App) Run(ctx context.Context) {
	a.printf("sharecli (type 'help' for commands)\n")
	runREPL(ctx, a, a.status, a.reader)
}

func (a *App) status() string {
	if a.route.Screen == router.ScreenView {
		return fmt.Sprintf("(view %s)", a.route.ShortID)
	}
	s := a.upload.Snapshot()
	return fmt.Sprintf("(%s %s)", s.Mode, s.State)
}
