package parser

import (
	"errors"
	"testing"
)

func TestSummarize_OpenAPI3(t *testing.T) {
	doc, err := Parse(`{
		"openapi": "3.0.0",
		"info": {"title": "Pets", "version": "1.2.3", "description": "Pet store"},
		"servers": [{"url": "https://pets.example.com"}],
		"tags": [{"name": "pets"}],
		"paths": {
			"/pets/{id}": {
				"delete": {"responses": {"204": {"description": "gone"}}},
				"get": {
					"operationId": "getPet",
					"tags": ["pets"],
					"parameters": [{"name": "id", "in": "path", "required": true, "schema": {"type": "string"}}],
					"responses": {"200": {"description": "ok"}, "404": {"description": "missing"}}
				}
			},
			"/pets": {"post": {"requestBody": {"content": {}}, "responses": {"201": {"description": "created"}}}}
		},
		"components": {"schemas": {"Pet": {"type": "object"}, "Error": {"type": "object"}}}
	}`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	summary, err := Summarize(doc)
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}

	if summary.Title != "Pets" || summary.Version != "1.2.3" {
		t.Errorf("info = %q %q", summary.Title, summary.Version)
	}
	if summary.SchemaVersion != "openapi3" {
		t.Errorf("SchemaVersion = %q", summary.SchemaVersion)
	}
	if len(summary.Servers) != 1 || summary.Servers[0].URL != "https://pets.example.com" {
		t.Errorf("Servers = %+v", summary.Servers)
	}
	if len(summary.Paths) != 2 || summary.Paths[0].Path != "/pets" {
		t.Fatalf("Paths = %+v", summary.Paths)
	}
	if !summary.Paths[0].Operations[0].HasBody {
		t.Error("POST /pets should report a request body")
	}

	ops := summary.Paths[1].Operations
	if len(ops) != 2 || ops[0].Method != "GET" || ops[1].Method != "DELETE" {
		t.Fatalf("operations = %+v", ops)
	}
	if len(ops[0].Parameters) != 1 || !ops[0].Parameters[0].Required {
		t.Errorf("parameters = %+v", ops[0].Parameters)
	}
	if len(ops[0].Responses) != 2 || ops[0].Responses[1].Description != "missing" {
		t.Errorf("responses = %+v", ops[0].Responses)
	}
	if summary.OperationCount() != 3 {
		t.Errorf("OperationCount() = %d, want 3", summary.OperationCount())
	}
	if len(summary.Schemas) != 2 || summary.Schemas[0] != "Error" {
		t.Errorf("Schemas = %v", summary.Schemas)
	}
}

func TestSummarize_Swagger2(t *testing.T) {
	doc, err := Parse(`{
		"swagger": "2.0",
		"info": {"title": "Legacy", "version": "0.1"},
		"host": "legacy.example.com",
		"basePath": "/api",
		"schemes": ["https"],
		"paths": {"/items": {"get": {"responses": {"200": {"description": "list"}}}}}
	}`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	summary, err := Summarize(doc)
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	if summary.Title != "Legacy" || summary.SchemaVersion != "swagger2" {
		t.Errorf("summary = %+v", summary)
	}
	if len(summary.Servers) == 0 || summary.Servers[0].URL != "https://legacy.example.com/api" {
		t.Errorf("Servers = %+v", summary.Servers)
	}
	if len(summary.Paths) != 1 || summary.Paths[0].Operations[0].Method != "GET" {
		t.Errorf("Paths = %+v", summary.Paths)
	}
}

func TestSummarize_Unknown(t *testing.T) {
	doc, err := Parse(`{"info": {"title": "?"}}`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if _, err := Summarize(doc); !errors.Is(err, ErrUnknownSchema) {
		t.Errorf("Summarize() error = %v, want ErrUnknownSchema", err)
	}
}
