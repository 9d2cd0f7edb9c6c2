package override

import (
	"errors"
	"reflect"
	"testing"

	"github.com/GabrielNunesIT/swagger-preview/internal/domain"
	"github.com/GabrielNunesIT/swagger-preview/internal/parser"
)

func mustParse(t *testing.T, raw string) *domain.ParsedDocument {
	t.Helper()
	doc, err := parser.Parse(raw)
	if err != nil {
		t.Fatalf("parser.Parse: %v", err)
	}
	return doc
}

func TestApply_OpenAPI3ReplacesServers(t *testing.T) {
	originals := []string{
		`{"openapi":"3.0.0"}`,
		`{"openapi":"3.0.0","servers":[]}`,
		`{"openapi":"3.0.0","servers":[{"url":"https://a.example.com"},{"url":"/relative","description":"x"}]}`,
	}

	for _, raw := range originals {
		got := Apply(mustParse(t, raw), "https://api.example.com")

		want := []any{map[string]any{"url": "https://api.example.com"}}
		if !reflect.DeepEqual(got.Root["servers"], want) {
			t.Errorf("servers for %s = %#v, want %#v", raw, got.Root["servers"], want)
		}
	}
}

func TestApply_Swagger2(t *testing.T) {
	doc := mustParse(t, `{"swagger":"2.0","host":"old.example.com","basePath":"/v1","schemes":["http","https"]}`)

	got := Apply(doc, "https://api.example.com/v2")
	if got.Root["host"] != "api.example.com" {
		t.Errorf("host = %v", got.Root["host"])
	}
	if got.Root["basePath"] != "/v2" {
		t.Errorf("basePath = %v", got.Root["basePath"])
	}
	if !reflect.DeepEqual(got.Root["schemes"], []any{"https"}) {
		t.Errorf("schemes = %v", got.Root["schemes"])
	}

	for _, override := range []string{"https://api.example.com/", "http://api.example.com:8080"} {
		got := Apply(doc, override)
		if got.Root["basePath"] != "/v1" {
			t.Errorf("Apply(%q) basePath = %v, want unchanged /v1", override, got.Root["basePath"])
		}
	}

	withPort := Apply(doc, "http://localhost:8080/")
	if withPort.Root["host"] != "localhost:8080" {
		t.Errorf("host = %v, want authority with port", withPort.Root["host"])
	}
}

func TestApply_Idempotent(t *testing.T) {
	docs := []string{
		`{"openapi":"3.0.0","servers":[{"url":"https://a.example.com"}]}`,
		`{"swagger":"2.0","host":"old.example.com","basePath":"/v1"}`,
	}
	overrides := []string{"https://api.example.com/v2", "https://api.example.com/"}

	for _, raw := range docs {
		for _, o := range overrides {
			once := Apply(mustParse(t, raw), o)
			twice := Apply(once, o)
			if !reflect.DeepEqual(once.Root, twice.Root) {
				t.Errorf("Apply not idempotent for %s with %q: %#v vs %#v", raw, o, once.Root, twice.Root)
			}
		}
	}
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	doc := mustParse(t, `{"swagger":"2.0","host":"old.example.com","info":{"title":"T"}}`)

	_ = Apply(doc, "https://new.example.com/base")

	if doc.Root["host"] != "old.example.com" {
		t.Errorf("input host mutated to %v", doc.Root["host"])
	}
	if _, ok := doc.Root["schemes"]; ok {
		t.Error("input gained schemes")
	}
}

func TestApply_FailOpen(t *testing.T) {
	doc := mustParse(t, `{"swagger":"2.0","host":"old.example.com"}`)

	for _, o := range []string{"", "   ", "not a url", "/relative/path", "api.example.com", "://broken"} {
		got := Apply(doc, o)
		if got != doc {
			t.Errorf("Apply(%q) should return the document unchanged", o)
		}
		if err := Check(o); !errors.Is(err, domain.ErrOverrideIgnored) {
			t.Errorf("Check(%q) = %v, want ErrOverrideIgnored", o, err)
		}
	}
}

func TestApply_UnknownIsNoop(t *testing.T) {
	doc := mustParse(t, `{"info":{"title":"?"}}`)
	if got := Apply(doc, "https://api.example.com"); got != doc {
		t.Error("unknown schema documents must pass through")
	}
	if err := Check("https://api.example.com"); err != nil {
		t.Errorf("Check() = %v, want nil", err)
	}
}
