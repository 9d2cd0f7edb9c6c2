package domain

import "context"

// RenderConfig is what the rendering widget receives: either a ready
// document or a location it resolves on its own.
type RenderConfig struct {
	Spec  map[string]any `json:"spec,omitempty"`
	URL   string         `json:"url,omitempty"`
	Title string         `json:"title"`
	// ServerOverride is applied by the widget itself, and only when it
	// resolves URL; Spec already carries the rewritten servers.
	ServerOverride string `json:"serverOverride,omitempty"`
}

// Renderer defines the rendering widget boundary.
type Renderer interface {
	// Render mounts a widget for cfg, replacing whatever was mounted.
	Render(ctx context.Context, cfg RenderConfig) error

	// Clear tears the mounted widget down.
	Clear()
}
