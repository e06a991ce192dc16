// Package router maps client locations to the screen that handles them.
//
// Two routes exist: "/" opens the submission screen and "/view/:shortId"
// opens the view of one shared item. A full view URL or a bare short
// identifier is accepted wherever a route is.
package router

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

type Screen int

const (
	ScreenSubmit Screen = iota
	ScreenView
)

func (s Screen) String() string {
	switch s {
	case ScreenSubmit:
		return "submit"
	case ScreenView:
		return "view"
	}
	return fmt.Sprintf("Screen(%d)", int(s))
}

const viewPrefix = "/view/"

var ErrUnknownRoute = errors.New("unknown route")

// shortIDPattern matches what the backend hands out; anything else typed
// as a bare identifier is taken for a typo.
var shortIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// Route is a parsed location.
type Route struct {
	Screen  Screen
	ShortID string
}

// Path renders r back to its canonical path.
func (r Route) Path() string {
	if r.Screen == ScreenView {
		return viewPrefix + url.PathEscape(r.ShortID)
	}
	return "/"
}

// Parse resolves s into a Route.
func Parse(s string) (Route, error) {
	s = strings.TrimSpace(s)

	switch {
	case s == "" || s == "/":
		return Route{Screen: ScreenSubmit}, nil
	case strings.Contains(s, "://"):
		u, err := url.Parse(s)
		if err != nil || u.Host == "" {
			return Route{}, fmt.Errorf("%w: %q", ErrUnknownRoute, s)
		}
		return parsePath(u.EscapedPath(), s)
	case strings.HasPrefix(s, "/"):
		return parsePath(s, s)
	case shortIDPattern.MatchString(s):
		return Route{Screen: ScreenView, ShortID: s}, nil
	}
	return Route{}, fmt.Errorf("%w: %q", ErrUnknownRoute, s)
}

func parsePath(p, orig string) (Route, error) {
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	p = strings.TrimSuffix(p, "/")
	if p == "" {
		return Route{Screen: ScreenSubmit}, nil
	}

	rest, ok := strings.CutPrefix(p, viewPrefix)
	if !ok || rest == "" || strings.Contains(rest, "/") {
		return Route{}, fmt.Errorf("%w: %q", ErrUnknownRoute, orig)
	}

	id, err := url.PathUnescape(rest)
	if err != nil || id == "" {
		return Route{}, fmt.Errorf("%w: %q", ErrUnknownRoute, orig)
	}
	return Route{Screen: ScreenView, ShortID: id}, nil
}

// ShortID extracts the identifier from anything Parse accepts as a view
// route.
func ShortID(s string) (string, error) {
	r, err := Parse(s)
	if err != nil {
		return "", err
	}
	if r.Screen != ScreenView {
		return "", fmt.Errorf("%w: %q is not a view link", ErrUnknownRoute, s)
	}
	return r.ShortID, nil
}
