package client

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"github.com/dmitrijs2005/sharelink/internal/client/models"
	"github.com/dmitrijs2005/sharelink/internal/client/progress"
	"github.com/dmitrijs2005/sharelink/internal/logging"
)

const (
	apiPrefix       = "/api/v1"
	uploadPath      = apiPrefix + "/upload"
	metadataPath    = apiPrefix + "/meta/{shortId}"
	downloadPath    = apiPrefix + "/download/"
	requestIDHeader = "X-Request-ID"
)

var ErrInvalidOrigin = errors.New("origin must be an absolute http(s) URL")

// HTTPClient talks to the backend over HTTP. It is safe for concurrent use.
type HTTPClient struct {
	origin          string
	rc              *resty.Client
	log             logging.Logger
	metadataTimeout time.Duration
}

type Option func(*HTTPClient)

// WithLogger sets the logger for request diagnostics.
func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) { c.log = l }
}

// WithMetadataTimeout bounds FetchMetadata. Uploads are never bounded.
func WithMetadataTimeout(d time.Duration) Option {
	return func(c *HTTPClient) { c.metadataTimeout = d }
}

// NewHTTPClient builds a client for the backend reachable at origin, e.g.
// "https://share.example.com". A trailing slash is ignored.
func NewHTTPClient(origin string, opts ...Option) (*HTTPClient, error) {
	origin = strings.TrimRight(strings.TrimSpace(origin), "/")
	u, err := url.Parse(origin)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidOrigin, origin)
	}

	c := &HTTPClient{origin: origin, log: logging.Nop()}
	for _, opt := range opts {
		opt(c)
	}

	c.rc = resty.New().
		SetBaseURL(origin).
		SetLogger(logging.PrintfLogger{L: c.log}).
		OnBeforeRequest(func(_ *resty.Client, r *resty.Request) error {
			if r.Header.Get(requestIDHeader) == "" {
				r.SetHeader(requestIDHeader, uuid.NewString())
			}
			return nil
		}).
		OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
			c.log.Debug(resp.Request.Context(), "backend call",
				"method", resp.Request.Method,
				"url", resp.Request.URL,
				"status", resp.StatusCode(),
				"request_id", resp.Request.Header.Get(requestIDHeader),
				"took", resp.Time(),
			)
			return nil
		})

	return c, nil
}

// Origin returns the normalized backend origin.
func (c *HTTPClient) Origin() string {
	return c.origin
}

// Submit implements Client.
func (c *HTTPClient) Submit(ctx context.Context, in models.SubmissionInput, onProgress progress.Reporter) (*models.UploadResult, error) {
	gate := progress.NewGate(onProgress)
	defer gate.Seal()

	body, err := encodeSubmission(in)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer body.Close()

	resp, err := c.rc.R().
		SetContext(ctx).
		SetHeader("Content-Type", body.contentType).
		SetHeader("Accept", "application/json").
		SetBody(progress.NewReader(body, body.size, gate)).
		Post(uploadPath)
	if err != nil {
		c.log.Warn(ctx, "upload failed", "mode", in.Mode(), "error", err)
		return nil, networkError(err)
	}

	if !resp.IsSuccess() {
		msg := decodeErrorMessage(resp.Body())
		c.log.Warn(ctx, "upload rejected", "mode", in.Mode(), "status", resp.StatusCode(), "message", msg)
		return nil, statusError(resp.StatusCode(), msg)
	}

	result, err := decodeUploadResult(resp.StatusCode(), resp.Body())
	if err != nil {
		c.log.Warn(ctx, "upload response rejected", "error", err)
		return nil, err
	}

	c.log.Info(ctx, "upload finished", "mode", in.Mode(), "expires_at", result.ExpiresAt)
	return result, nil
}

// FetchMetadata implements Client.
func (c *HTTPClient) FetchMetadata(ctx context.Context, shortID string) (*models.ContentMetadata, error) {
	if c.metadataTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.metadataTimeout)
		defer cancel()
	}

	resp, err := c.rc.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		SetPathParam("shortId", shortID).
		Get(metadataPath)
	if err != nil {
		c.log.Warn(ctx, "metadata fetch failed", "short_id", shortID, "error", err)
		return nil, networkError(err)
	}

	if !resp.IsSuccess() {
		c.log.Info(ctx, "metadata unavailable", "short_id", shortID, "status", resp.StatusCode())
		return nil, statusError(resp.StatusCode(), decodeErrorMessage(resp.Body()))
	}

	return decodeMetadata(resp.StatusCode(), resp.Body())
}

// DownloadURL implements Client.
func (c *HTTPClient) DownloadURL(shortID string) string {
	return c.origin + downloadPath + url.PathEscape(shortID)
}
