package workflow

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/sharelink/internal/client/models"
	"github.com/dmitrijs2005/sharelink/internal/client/progress"
)

type fakeClient struct {
	mu sync.Mutex

	submitFn func(ctx context.Context, in models.SubmissionInput, rep progress.Reporter) (*models.UploadResult, error)
	fetchFn  func(ctx context.Context, shortID string) (*models.ContentMetadata, error)

	submitted []models.SubmissionInput
	fetched   []string
}

func (f *fakeClient) Submit(ctx context.Context, in models.SubmissionInput, rep progress.Reporter) (*models.UploadResult, error) {
	f.mu.Lock()
	f.submitted = append(f.submitted, in)
	fn := f.submitFn
	f.mu.Unlock()
	if fn == nil {
		return &models.UploadResult{ViewURL: "http://share.local/view/abc"}, nil
	}
	return fn(ctx, in, rep)
}

func (f *fakeClient) FetchMetadata(ctx context.Context, shortID string) (*models.ContentMetadata, error) {
	f.mu.Lock()
	f.fetched = append(f.fetched, shortID)
	fn := f.fetchFn
	f.mu.Unlock()
	return fn(ctx, shortID)
}

func (f *fakeClient) DownloadURL(shortID string) string {
	return "http://share.local/api/v1/download/" + shortID
}

func (f *fakeClient) submitCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.submitted)
}

func (f *fakeClient) fetchCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.fetched)
}

type fakeClipboard struct {
	mu     sync.Mutex
	copied []string
	err    error
}

func (c *fakeClipboard) WriteText(_ context.Context, text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	c.copied = append(c.copied, text)
	return nil
}

type fakeNavigator struct {
	urls []string
}

func (n *fakeNavigator) Navigate(url string) {
	n.urls = append(n.urls, url)
}
