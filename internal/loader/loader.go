// Package loader resolves an import request into a parsed document or a
// location the rendering widget resolves on its own.
package loader

import (
	"context"
	"errors"
	"strings"

	"github.com/GabrielNunesIT/swagger-preview/internal/domain"
	"github.com/GabrielNunesIT/swagger-preview/internal/parser"
)

// Result is a loaded source. Exactly one of Document and Location is set.
type Result struct {
	Document *domain.ParsedDocument
	Location string
	Title    string
}

// Passthrough reports whether the widget has to resolve Location itself.
func (r *Result) Passthrough() bool {
	return r.Document == nil
}

// Loader turns import requests into documents.
type Loader struct {
	fetcher Fetcher
}

// New creates a loader that fetches URLs through fetcher.
func New(fetcher Fetcher) *Loader {
	return &Loader{fetcher: fetcher}
}

// Load resolves req. Text sources that cannot be parsed fail with
// domain.ErrParseFailure. URL sources fail on transport errors or non-2xx
// responses, and fall back to a location passthrough when the body is not
// parseable.
func (l *Loader) Load(ctx context.Context, req domain.ImportRequest) (*Result, error) {
	value := strings.TrimSpace(req.Value)
	if value == "" {
		return nil, domain.ErrEmptySource
	}

	switch req.Kind {
	case domain.SourceURL:
		return l.loadURL(ctx, value, req.Label)
	case domain.SourcePaste, domain.SourceSelection:
		doc, err := parser.Parse(value)
		if err != nil {
			return nil, err
		}
		return &Result{Document: doc, Title: textTitle(req, doc)}, nil
	default:
		return nil, errors.New("unknown source kind: " + string(req.Kind))
	}
}

func (l *Loader) loadURL(ctx context.Context, location, label string) (*Result, error) {
	title := location
	if label != "" {
		title = label
	}

	status, body, err := l.fetcher.Fetch(ctx, location)
	if err != nil {
		if errors.Is(err, domain.ErrSpecTooLarge) {
			return nil, err
		}
		return nil, &domain.NetworkError{URL: location, Err: err}
	}
	if status < 200 || status > 299 {
		return nil, &domain.HTTPStatusError{URL: location, StatusCode: status}
	}

	doc, err := parser.Parse(string(body))
	if err != nil {
		return &Result{Location: location, Title: title}, nil
	}

	return &Result{Document: doc, Title: title}, nil
}

func textTitle(req domain.ImportRequest, doc *domain.ParsedDocument) string {
	if req.Label != "" {
		return req.Label
	}
	if title := doc.Title(); title != "" {
		return title
	}
	return req.Kind.DefaultTitle()
}
