package client

import (
	"context"

	"github.com/dmitrijs2005/sharelink/internal/client/models"
	"github.com/dmitrijs2005/sharelink/internal/client/progress"
)

// Client is the contract the workflows use to talk to the sharing backend.
type Client interface {
	// Submit uploads one file or text snippet. onProgress receives a
	// non-decreasing percentage while the body is sent and nothing after
	// Submit returns.
	Submit(ctx context.Context, in models.SubmissionInput, onProgress progress.Reporter) (*models.UploadResult, error)

	// FetchMetadata loads the description of a stored item. Any non-2xx
	// answer is a *TransportError.
	FetchMetadata(ctx context.Context, shortID string) (*models.ContentMetadata, error)

	// DownloadURL is the address a browser would be sent to for the raw content.
	DownloadURL(shortID string) string
}
