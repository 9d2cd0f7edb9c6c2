package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrParseFailure is returned when text decodes under no supported encoding.
	ErrParseFailure = errors.New("could not parse spec as JSON or YAML")
	// ErrEmptySource is returned for blank import values.
	ErrEmptySource = errors.New("nothing to import")
	// ErrSpecTooLarge is returned when a fetched body exceeds the configured cap.
	ErrSpecTooLarge = errors.New("spec too large")
	// ErrOverrideIgnored marks an override that is not an absolute URL.
	// It is only ever logged.
	ErrOverrideIgnored = errors.New("server override ignored")
	// ErrNoSession is returned by viewer operations when nothing is displayed.
	ErrNoSession = errors.New("no document is being viewed")
	// ErrSuperseded is returned to a load whose result arrived after a newer
	// load started or the viewer was closed.
	ErrSuperseded = errors.New("load superseded by a newer request")
	// ErrEntryNotFound is returned when a recall entry no longer exists.
	ErrEntryNotFound = errors.New("history entry not found")
)

// HTTPStatusError reports a non-2xx response from the network boundary.
type HTTPStatusError struct {
	URL        string
	StatusCode int
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("HTTP %d fetching %s", e.StatusCode, e.URL)
}

// NetworkError reports a transport-level failure.
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("failed to fetch %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// RenderError reports that the rendering widget rejected its configuration.
type RenderError struct {
	Err error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("failed to render spec: %v", e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }
