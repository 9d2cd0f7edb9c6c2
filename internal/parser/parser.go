// Package parser decodes raw API description text into a canonical
// document and summarizes it for exports.
package parser

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/GabrielNunesIT/swagger-preview/internal/domain"
)

const byteOrderMark = "\uFEFF"

var errNotObject = errors.New("document is not an object")

// Parse decodes raw as JSON, then YAML, then JSON again with a leading
// byte-order mark and surrounding whitespace removed. The first decode
// yielding an object wins. Failures wrap domain.ErrParseFailure.
func Parse(raw string) (*domain.ParsedDocument, error) {
	root, jsonErr := decodeJSON(raw)
	if jsonErr == nil {
		return newDocument(root), nil
	}

	root, yamlErr := decodeYAML(raw)
	if yamlErr == nil {
		return newDocument(root), nil
	}

	cleaned := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(raw), byteOrderMark))
	root, err := decodeJSON(cleaned)
	if err == nil {
		return newDocument(root), nil
	}

	return nil, fmt.Errorf("%w (json: %v; yaml: %v)", domain.ErrParseFailure, jsonErr, yamlErr)
}

func newDocument(root map[string]any) *domain.ParsedDocument {
	return &domain.ParsedDocument{Root: root, Version: domain.DetectVersion(root)}
}

func decodeJSON(raw string) (map[string]any, error) {
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return nil, err
	}
	root, ok := v.(map[string]any)
	if !ok {
		return nil, errNotObject
	}
	return root, nil
}

func decodeYAML(raw string) (map[string]any, error) {
	var v any
	if err := yaml.Unmarshal([]byte(raw), &v); err != nil {
		return nil, err
	}
	root, ok := normalize(v).(map[string]any)
	if !ok {
		return nil, errNotObject
	}
	return root, nil
}

// normalize rewrites YAML mappings with non-string keys (status codes,
// booleans) into string-keyed maps and non-finite floats into their YAML
// spelling, so the tree has the same shape a JSON decode would produce.
func normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, val := range t {
			t[k] = normalize(val)
		}
		return t
	case map[any]any:
		m := make(map[string]any, len(t))
		for k, val := range t {
			m[fmt.Sprint(k)] = normalize(val)
		}
		return m
	case []any:
		for i, val := range t {
			t[i] = normalize(val)
		}
		return t
	case float64:
		return finite(t)
	default:
		return v
	}
}

// finite keeps .inf and .nan as strings; JSON has no encoding for them.
func finite(f float64) any {
	switch {
	case math.IsInf(f, 1):
		return ".inf"
	case math.IsInf(f, -1):
		return "-.inf"
	case math.IsNaN(f):
		return ".nan"
	default:
		return f
	}
}
