package swaggerui

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/GabrielNunesIT/swagger-preview/internal/domain"
)

func newSurface(t *testing.T) *Surface {
	t.Helper()

	s, err := New("")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return s
}

func TestRenderAndClear(t *testing.T) {
	s := newSurface(t)

	cfg := domain.RenderConfig{Spec: map[string]any{"openapi": "3.0.0"}, Title: "A"}
	if err := s.Render(context.Background(), cfg); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	got, ok := s.Current()
	if !ok || got.Title != "A" {
		t.Fatalf("Current() = %+v, %v", got, ok)
	}
	if s.Mounts() != 1 {
		t.Errorf("Mounts() = %d, want 1", s.Mounts())
	}

	s.Clear()
	if _, ok := s.Current(); ok {
		t.Error("Current() after Clear should be empty")
	}
}

func TestRenderRejects(t *testing.T) {
	s := newSurface(t)

	if err := s.Render(context.Background(), domain.RenderConfig{Title: "empty"}); !errors.Is(err, ErrNothingToRender) {
		t.Errorf("empty config error = %v", err)
	}

	bad := domain.RenderConfig{Spec: map[string]any{"x": func() {}}}
	if err := s.Render(context.Background(), bad); err == nil {
		t.Error("unserializable spec should fail")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := s.Render(ctx, domain.RenderConfig{URL: "https://x"}); !errors.Is(err, context.Canceled) {
		t.Errorf("canceled render error = %v", err)
	}

	if _, ok := s.Current(); ok {
		t.Error("failed renders must not mount anything")
	}
}

func TestServeConfig(t *testing.T) {
	s := newSurface(t)

	rec := httptest.NewRecorder()
	s.ServeConfig(rec, httptest.NewRequest(http.MethodGet, "/api/session/spec", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status without mount = %d", rec.Code)
	}

	cfg := domain.RenderConfig{URL: "https://x/openapi.json", Title: "X", ServerOverride: "https://staging"}
	if err := s.Render(context.Background(), cfg); err != nil {
		t.Fatal(err)
	}

	rec = httptest.NewRecorder()
	s.ServeConfig(rec, httptest.NewRequest(http.MethodGet, "/api/session/spec", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	want := `{"url":"https://x/openapi.json","title":"X","serverOverride":"https://staging"}`
	if rec.Body.String() != want {
		t.Errorf("body = %s, want %s", rec.Body.String(), want)
	}
	if rec.Header().Get("X-Mount") != "1" {
		t.Errorf("X-Mount = %q", rec.Header().Get("X-Mount"))
	}
}

func TestServePage(t *testing.T) {
	s, err := New("5.17.14")
	if err != nil {
		t.Fatal(err)
	}

	rec := httptest.NewRecorder()
	s.ServePage(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if !strings.Contains(rec.Body.String(), "swagger-ui-dist@5.17.14/swagger-ui-bundle.js") {
		t.Error("page does not load the configured Swagger UI version")
	}

	for _, kind := range []string{"kind: 'url'", "kind: 'paste'", "kind: 'selection'"} {
		if !strings.Contains(rec.Body.String(), kind) {
			t.Errorf("page has no %s import", kind)
		}
	}
	if !strings.Contains(rec.Body.String(), "$('selection-input').value = state.pendingSelection") {
		t.Error("pending selection should prefill the selection input")
	}
}
