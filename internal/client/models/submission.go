// Package models defines the content types exchanged between the sharelink
// workflows and the transport.
package models

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/sharelink/internal/common"
)

// Mode selects which kind of content is being staged.
type Mode string

const (
	ModeFile Mode = "file"
	ModeText Mode = "text"
)

// ParseMode accepts "file" or "text" in any case.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeFile:
		return ModeFile, nil
	case ModeText:
		return ModeText, nil
	}
	return "", fmt.Errorf("unknown mode %q, want file or text", s)
}

// MaxTextLength is the ceiling for a text snippet, counted in Unicode code
// points. A browser textarea counts UTF-16 code units instead, so text with
// characters outside the Basic Multilingual Plane (most emoji) can pass this
// check and still be over a backend limit enforced in code units.
const MaxTextLength = 100_000

var (
	ErrTextTooLong = fmt.Errorf("%w: text exceeds %d characters", common.ErrValidation, MaxTextLength)
	ErrIsDirectory = fmt.Errorf("%w: path is a directory", common.ErrValidation)
)

// SubmissionInput is either a FileInput or a TextInput. The set of variants
// is closed.
type SubmissionInput interface {
	Mode() Mode
	// Empty reports whether there is nothing worth sending.
	Empty() bool

	isSubmission()
}

// FileInput is a binary payload with its original name. Open may be called
// more than once; each call must return a fresh reader positioned at the start.
type FileInput struct {
	Name string
	Size int64
	Open func() (io.ReadCloser, error)
}

func (FileInput) Mode() Mode    { return ModeFile }
func (FileInput) isSubmission() {}

// Empty reports whether no file was chosen. A chosen zero-byte file is
// still content and is uploaded.
func (f FileInput) Empty() bool {
	return f.Open == nil
}

// FileFromPath stages a file from disk. The file is opened lazily at submit time.
func FileFromPath(path string) (FileInput, error) {
	info, err := os.Stat(path)
	if err != nil {
		return FileInput{}, err
	}
	if info.IsDir() {
		return FileInput{}, fmt.Errorf("%s: %w", path, ErrIsDirectory)
	}

	return FileInput{
		Name: filepath.Base(path),
		Size: info.Size(),
		Open: func() (io.ReadCloser, error) { return os.Open(path) },
	}, nil
}

// FileFromBytes stages an in-memory payload.
func FileFromBytes(name string, data []byte) FileInput {
	return FileInput{
		Name: name,
		Size: int64(len(data)),
		Open: func() (io.ReadCloser, error) { return io.NopCloser(bytes.NewReader(data)), nil },
	}
}

// TextInput is a text snippet of at most MaxTextLength characters.
type TextInput struct {
	Text string
}

func (TextInput) Mode() Mode    { return ModeText }
func (TextInput) isSubmission() {}

// Empty treats whitespace-only text as empty. The text itself is sent untrimmed.
func (t TextInput) Empty() bool {
	return strings.TrimSpace(t.Text) == ""
}

// NewTextInput validates the length ceiling. Oversized text is rejected, never truncated.
func NewTextInput(text string) (TextInput, error) {
	if TextLength(text) > MaxTextLength {
		return TextInput{}, ErrTextTooLong
	}
	return TextInput{Text: text}, nil
}

// TextLength counts characters the way the ceiling does: one per code point.
func TextLength(s string) int {
	return utf8.RuneCountInString(s)
}
