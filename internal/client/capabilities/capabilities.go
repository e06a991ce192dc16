// Package capabilities holds the host facilities the workflows use but do
// not own: a clipboard and a way to "navigate" to a download URL. Workflows
// receive them as interfaces so tests can substitute fakes.
package capabilities

import "context"

// Clipboard stores text for the user to paste elsewhere.
type Clipboard interface {
	WriteText(ctx context.Context, text string) error
}

// Navigator hands a URL off to whatever opens it. It does not report back;
// the caller never waits for the result.
type Navigator interface {
	Navigate(url string)
}
