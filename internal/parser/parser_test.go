package parser

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"github.com/GabrielNunesIT/swagger-preview/internal/domain"
)

func TestParse_JSONMatchesStrictDecode(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		version domain.SchemaVersion
	}{
		{"openapi3", `{"openapi":"3.0.0","info":{"title":"Demo","version":"1"}}`, domain.VersionOpenAPI3},
		{"swagger2", `{"swagger":"2.0","host":"example.com","basePath":"/v1"}`, domain.VersionSwagger2},
		{"unknown", `{"info":{"title":"Nothing"}}`, domain.VersionUnknown},
		{"both keys", `{"openapi":"3.1.0","swagger":"2.0"}`, domain.VersionOpenAPI3},
		{"surrounding whitespace", "\n  {\"openapi\":\"3.0.3\",\"paths\":{}}\n", domain.VersionOpenAPI3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Parse(tt.raw)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}

			var want map[string]any
			if err := json.Unmarshal([]byte(tt.raw), &want); err != nil {
				t.Fatalf("json.Unmarshal: %v", err)
			}
			if !reflect.DeepEqual(doc.Root, want) {
				t.Errorf("Parse() root = %#v, want %#v", doc.Root, want)
			}
			if doc.Version != tt.version {
				t.Errorf("Parse() version = %v, want %v", doc.Version, tt.version)
			}
		})
	}
}

func TestParse_YAML(t *testing.T) {
	raw := `openapi: 3.0.0
info:
  title: YAML Demo
  version: "1.0"
paths:
  /pets:
    get:
      responses:
        200:
          description: ok
`
	doc, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if doc.Version != domain.VersionOpenAPI3 {
		t.Errorf("version = %v, want openapi3", doc.Version)
	}
	if got := doc.Title(); got != "YAML Demo" {
		t.Errorf("Title() = %q, want %q", got, "YAML Demo")
	}

	paths := doc.Root["paths"].(map[string]any)
	get := paths["/pets"].(map[string]any)["get"].(map[string]any)
	responses, ok := get["responses"].(map[string]any)
	if !ok {
		t.Fatalf("responses not normalized to string keys: %T", get["responses"])
	}
	if _, ok := responses["200"]; !ok {
		t.Errorf("expected response key \"200\", got %v", responses)
	}

	if _, err := json.Marshal(doc.Root); err != nil {
		t.Errorf("normalized YAML document must be JSON encodable: %v", err)
	}
}

func TestParse_YAMLNonFiniteFloats(t *testing.T) {
	raw := `openapi: 3.0.0
info:
  title: Limits
  version: "1.0"
x-max: .inf
x-min: -.inf
x-undefined: .nan
x-ratio: 0.5
paths: {}
`
	doc, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	want := map[string]any{"x-max": ".inf", "x-min": "-.inf", "x-undefined": ".nan", "x-ratio": 0.5}
	for key, value := range want {
		if got := doc.Root[key]; got != value {
			t.Errorf("%s = %#v, want %#v", key, got, value)
		}
	}

	if _, err := json.Marshal(doc.Root); err != nil {
		t.Errorf("document with non-finite floats must be JSON encodable: %v", err)
	}
}

func TestParse_ByteOrderMark(t *testing.T) {
	doc, err := Parse("\uFEFF{\"swagger\":\"2.0\"}")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if doc.Version != domain.VersionSwagger2 {
		t.Errorf("version = %v, want swagger2", doc.Version)
	}
}

func TestParse_Failure(t *testing.T) {
	inputs := []string{
		"",
		"{",
		`{"openapi": "3.0.0",`,
		"key: [unclosed",
		"just some words",
		"[1, 2, 3]",
		"42",
	}

	for _, raw := range inputs {
		doc, err := Parse(raw)
		if err == nil {
			t.Errorf("Parse(%q) = %v, want error", raw, doc)
			continue
		}
		if !errors.Is(err, domain.ErrParseFailure) {
			t.Errorf("Parse(%q) error = %v, want ErrParseFailure", raw, err)
		}
	}
}
