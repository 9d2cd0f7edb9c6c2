// Package swaggerui is the rendering widget adapter: it holds the widget
// configuration currently mounted and serves the page and config that the
// browser-side Swagger UI consumes.
package swaggerui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"sync"

	"github.com/GabrielNunesIT/swagger-preview/internal/domain"
)

// DefaultVersion is the swagger-ui-dist major version loaded from the CDN.
const DefaultVersion = "5"

// ErrNothingToRender is returned when a config carries neither a document
// nor a location.
var ErrNothingToRender = errors.New("nothing to render: no spec and no url")

// Surface implements domain.Renderer for a browser-hosted Swagger UI.
type Surface struct {
	version string
	page    *template.Template

	mu      sync.RWMutex
	current *domain.RenderConfig
	payload []byte
	mounts  uint64
}

// New creates an empty surface loading Swagger UI at the given version.
func New(version string) (*Surface, error) {
	if version == "" {
		version = DefaultVersion
	}

	page, err := template.New("page").Parse(pageTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse page template: %w", err)
	}

	return &Surface{version: version, page: page}, nil
}

// Render replaces the mounted widget with one built from cfg. The config
// is serialized up front so a document the widget cannot take is rejected
// here and later changes to cfg.Spec do not leak into the mounted view.
func (s *Surface) Render(ctx context.Context, cfg domain.RenderConfig) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if cfg.Spec == nil && cfg.URL == "" {
		return ErrNothingToRender
	}

	payload, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("spec cannot be handed to the widget: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = &cfg
	s.payload = payload
	s.mounts++

	return nil
}

// Clear unmounts the widget.
func (s *Surface) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = nil
	s.payload = nil
}

// Current returns the mounted config, if any.
func (s *Surface) Current() (domain.RenderConfig, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return domain.RenderConfig{}, false
	}
	return *s.current, true
}

// Mounts counts successful renders; the page uses it to notice remounts.
func (s *Surface) Mounts() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.mounts
}

// ServePage serves the viewer page.
func (s *Surface) ServePage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	data := struct{ Version string }{Version: s.version}
	if err := s.page.Execute(w, data); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// ServeConfig writes the mounted widget config as JSON, or 404 when
// nothing is mounted.
func (s *Surface) ServeConfig(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	payload, mounts := s.payload, s.mounts
	s.mu.RUnlock()

	w.Header().Set("Content-Type", "application/json")
	if payload == nil {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"no spec is mounted"}`))
		return
	}

	w.Header().Set("X-Mount", fmt.Sprint(mounts))
	_, _ = w.Write(payload)
}
