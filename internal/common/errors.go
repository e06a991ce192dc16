// Package common defines sentinel errors shared across the sharelink client
// layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Lookup errors.
	ErrorNotFound = errors.New("not found")

	// Input errors raised before anything reaches the network.
	ErrValidation = errors.New("validation error")

	// Transport-level errors.
	ErrUnavailable       = errors.New("server unavailable")
	ErrMalformedResponse = errors.New("malformed response")

	// Content lifecycle errors.
	ErrExpired = errors.New("content expired")
)
