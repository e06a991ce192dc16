package models

import "time"

// UploadType tells whether stored content came from a file or a text snippet.
type UploadType string

const (
	UploadTypeFile UploadType = "FILE"
	UploadTypeText UploadType = "TEXT"
)

func (t UploadType) Valid() bool {
	return t == UploadTypeFile || t == UploadTypeText
}

// UploadResult is produced once per successful submission.
type UploadResult struct {
	ViewURL   string
	ExpiresAt time.Time
}

// ContentMetadata describes one stored item. It is never modified by the client.
type ContentMetadata struct {
	ShortID          string
	OriginalFilename string
	UploadType       UploadType
	TextContent      *string
	ExpiresAt        time.Time
}

// ExpiredAt reports whether the content is past its expiry at now. An item
// expiring exactly at now is still valid.
func (m *ContentMetadata) ExpiredAt(now time.Time) bool {
	return m.ExpiresAt.Before(now)
}

// Text returns the snippet of a TEXT upload, or false when there is none.
func (m *ContentMetadata) Text() (string, bool) {
	if m.UploadType != UploadTypeText || m.TextContent == nil || *m.TextContent == "" {
		return "", false
	}
	return *m.TextContent, true
}

// WorkflowError is the short, user-facing message of a failed step.
type WorkflowError struct {
	Message string
}

func (e *WorkflowError) Error() string {
	return e.Message
}
