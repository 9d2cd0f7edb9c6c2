// Package override rewrites the server declaration of a parsed API
// description so the interactive preview targets another deployment.
package override

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/mitchellh/copystructure"

	"github.com/GabrielNunesIT/swagger-preview/internal/domain"
)

// Check reports whether override can be applied. A non-nil result wraps
// domain.ErrOverrideIgnored; callers log it and carry on.
func Check(override string) error {
	_, err := parseOrigin(override)
	return err
}

// Apply returns a copy of doc whose server declaration points at override.
// doc is never modified. An empty or non-absolute override, or a document
// of unknown schema, yields doc unchanged.
func Apply(doc *domain.ParsedDocument, override string) *domain.ParsedDocument {
	if doc == nil || doc.Version == domain.VersionUnknown {
		return doc
	}

	u, err := parseOrigin(override)
	if err != nil {
		return doc
	}

	copied, err := copystructure.Copy(doc.Root)
	if err != nil {
		return doc
	}
	root := copied.(map[string]any)

	switch doc.Version {
	case domain.VersionOpenAPI3:
		root["servers"] = []any{map[string]any{"url": strings.TrimSpace(override)}}
	case domain.VersionSwagger2:
		root["host"] = u.Host
		if u.Path != "" && u.Path != "/" {
			root["basePath"] = u.Path
		}
		root["schemes"] = []any{u.Scheme}
	}

	return &domain.ParsedDocument{Root: root, Version: doc.Version}
}

func parseOrigin(override string) (*url.URL, error) {
	override = strings.TrimSpace(override)
	if override == "" {
		return nil, fmt.Errorf("%w: empty", domain.ErrOverrideIgnored)
	}

	u, err := url.Parse(override)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrOverrideIgnored, err)
	}
	if !u.IsAbs() || u.Host == "" {
		return nil, fmt.Errorf("%w: %q is not an absolute URL", domain.ErrOverrideIgnored, override)
	}

	return u, nil
}
