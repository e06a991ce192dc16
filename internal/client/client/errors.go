package client

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/sharelink/internal/common"
)

// TransportError describes a failed backend call.
type TransportError struct {
	// Status is the HTTP status code, or 0 when no response was received.
	Status int
	// Message is the server-provided explanation, if any.
	Message string
	// Err is the underlying cause.
	Err error
}

func (e *TransportError) Error() string {
	s := "transport error"
	if e.Status != 0 {
		s = fmt.Sprintf("%s: status %d", s, e.Status)
	}
	if e.Message != "" {
		s = fmt.Sprintf("%s: %s", s, e.Message)
	}
	if e.Err != nil {
		s = fmt.Sprintf("%s: %v", s, e.Err)
	}
	return s
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// UserMessage returns the server message of a *TransportError found in err's
// chain, or fallback when there is none.
func UserMessage(err error, fallback string) string {
	var te *TransportError
	if errors.As(err, &te) && te.Message != "" {
		return te.Message
	}
	return fallback
}

func networkError(cause error) *TransportError {
	return &TransportError{Err: fmt.Errorf("%w: %w", common.ErrUnavailable, cause)}
}

func statusError(status int, message string) *TransportError {
	te := &TransportError{Status: status, Message: message}
	if status == http.StatusNotFound || status == http.StatusGone {
		te.Err = common.ErrorNotFound
	}
	return te
}

func malformedError(status int, format string, args ...any) *TransportError {
	return &TransportError{
		Status: status,
		Err:    fmt.Errorf("%w: %s", common.ErrMalformedResponse, fmt.Sprintf(format, args...)),
	}
}
