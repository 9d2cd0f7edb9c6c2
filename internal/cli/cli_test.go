package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/GabrielNunesIT/go-libs/logger"

	"github.com/GabrielNunesIT/swagger-preview/internal/domain"
)

const petSpec = `openapi: 3.0.0
info:
  title: Pets
  version: "1.0"
servers:
  - url: https://declared.example.com
paths:
  /pets:
    get:
      summary: List pets
      responses:
        "200":
          description: ok
`

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	c := New(logger.NewConsoleLogger(io.Discard))
	var out bytes.Buffer
	c.in = strings.NewReader(stdin)
	c.out = &out
	c.rootCmd.SetArgs(args)

	err := c.Execute()
	return out.String(), err
}

func TestRender_StdinToJSON(t *testing.T) {
	dataDir := t.TempDir()

	out, err := run(t, petSpec, "render", "-i", "-", "-o", "-", "-f", "json", "--server", "https://staging.example.com", "--data-dir", dataDir)
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	var summary domain.OpenAPIDocument
	if err := json.Unmarshal([]byte(out), &summary); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if summary.Title != "Pets" {
		t.Errorf("Title = %q", summary.Title)
	}
	if len(summary.Servers) != 1 || summary.Servers[0].URL != "https://staging.example.com" {
		t.Errorf("Servers = %+v", summary.Servers)
	}
	if _, err := os.Stat(filepath.Join(dataDir, "history.db")); err != nil {
		t.Errorf("history database not created: %v", err)
	}
}

func TestRender_FileToPDF(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "pets.yaml")
	output := filepath.Join(dir, "pets.pdf")
	if err := os.WriteFile(input, []byte(petSpec), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := run(t, "", "render", "-i", input, "-o", output, "--no-history", "--data-dir", dir); err != nil {
		t.Fatalf("render: %v", err)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Error("output is not a PDF")
	}
	if _, err := os.Stat(filepath.Join(dir, "history.db")); !errors.Is(err, os.ErrNotExist) {
		t.Error("--no-history should not touch the recall list")
	}
}

func TestRender_Errors(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "out.pdf")

	if _, err := run(t, "not a spec at all", "render", "-i", "-", "-o", output, "--data-dir", dir); !errors.Is(err, domain.ErrParseFailure) {
		t.Errorf("unparseable input error = %v", err)
	}
	if _, err := os.Stat(output); !errors.Is(err, os.ErrNotExist) {
		t.Error("failed render must not leave an output file")
	}

	if _, err := run(t, petSpec, "render", "-i", "-", "-o", output, "-f", "html", "--data-dir", dir); err == nil {
		t.Error("unknown format should fail")
	}

	if _, err := run(t, "", "render", "-i", filepath.Join(dir, "missing.yaml"), "-o", output, "--data-dir", dir); err == nil {
		t.Error("missing input file should fail")
	}
}

func TestHistoryCommands(t *testing.T) {
	dataDir := t.TempDir()

	out, err := run(t, "", "history", "list", "--data-dir", dataDir)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out, "No recent imports") {
		t.Errorf("empty list output = %q", out)
	}

	if _, err := run(t, petSpec, "render", "-i", "-", "-o", "-", "-f", "json", "--label", "Pet Store", "--data-dir", dataDir); err != nil {
		t.Fatalf("render: %v", err)
	}

	out, err = run(t, "", "history", "list", "--data-dir", dataDir)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out, "Pet Store") || !strings.Contains(out, "paste") {
		t.Errorf("list output = %q", out)
	}

	if _, err := run(t, "", "history", "remove", "123", "--data-dir", dataDir); !errors.Is(err, domain.ErrEntryNotFound) {
		t.Errorf("remove unknown error = %v", err)
	}
	if _, err := run(t, "", "history", "remove", "abc", "--data-dir", dataDir); err == nil {
		t.Error("remove with a bad id should fail")
	}

	if _, err := run(t, "", "history", "clear", "--data-dir", dataDir); err != nil {
		t.Fatalf("clear: %v", err)
	}
	out, _ = run(t, "", "history", "list", "--data-dir", dataDir)
	if !strings.Contains(out, "No recent imports") {
		t.Errorf("list after clear = %q", out)
	}
}
