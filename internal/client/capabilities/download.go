package capabilities

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/url"
	"os"
	"path"
	"sync"

	"github.com/go-resty/resty/v2"

	"github.com/dmitrijs2005/sharelink/internal/filex"
	"github.com/dmitrijs2005/sharelink/internal/logging"
)

// DownloadFunc is told where a finished download was saved, or why it failed.
type DownloadFunc func(url, savedPath string, err error)

// Downloader is a Navigator for a terminal: instead of a browser it fetches
// the URL in the background and saves the body into a directory, using the
// name from Content-Disposition when the server sends one.
type Downloader struct {
	dir    string
	rc     *resty.Client
	log    logging.Logger
	notify DownloadFunc

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewDownloader(dir string, log logging.Logger, notify DownloadFunc) *Downloader {
	if log == nil {
		log = logging.Nop()
	}
	if notify == nil {
		notify = func(string, string, error) {}
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Downloader{
		dir:    dir,
		rc:     resty.New().SetLogger(logging.PrintfLogger{L: log}),
		log:    log,
		notify: notify,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Navigate starts the download and returns immediately.
func (d *Downloader) Navigate(rawURL string) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()

		saved, err := d.fetch(d.ctx, rawURL)
		if err != nil {
			d.log.Warn(d.ctx, "download failed", "url", rawURL, "error", err)
		} else {
			d.log.Info(d.ctx, "download saved", "url", rawURL, "path", saved)
		}
		d.notify(rawURL, saved, err)
	}()
}

// Wait blocks until every started download has finished.
func (d *Downloader) Wait() {
	d.wg.Wait()
}

// Close aborts running downloads and waits for them.
func (d *Downloader) Close() error {
	d.cancel()
	d.wg.Wait()
	return nil
}

func (d *Downloader) fetch(ctx context.Context, rawURL string) (string, error) {
	dir, err := filex.EnsureDir(d.dir)
	if err != nil {
		return "", err
	}

	resp, err := d.rc.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		Get(rawURL)
	if err != nil {
		return "", err
	}
	body := resp.RawBody()
	defer body.Close()

	if !resp.IsSuccess() {
		return "", fmt.Errorf("download: unexpected status %s", resp.Status())
	}

	f, err := filex.CreateUnique(dir, fileName(rawURL, resp.Header().Get("Content-Disposition")))
	if err != nil {
		return "", err
	}

	if _, err := io.Copy(f, body); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", err
	}

	return f.Name(), nil
}

// fileName prefers the server's Content-Disposition filename and falls back
// to the last segment of the URL path.
func fileName(rawURL, disposition string) string {
	fallback := "download"
	if u, err := url.Parse(rawURL); err == nil {
		fallback = filex.SafeName(path.Base(u.Path), fallback)
	}

	if disposition == "" {
		return fallback
	}
	_, params, err := mime.ParseMediaType(disposition)
	if err != nil {
		return fallback
	}
	return filex.SafeName(params["filename"], fallback)
}
