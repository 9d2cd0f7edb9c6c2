package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/GabrielNunesIT/swagger-preview/internal/adapters/converters"
	"github.com/GabrielNunesIT/swagger-preview/internal/adapters/swaggerui"
	"github.com/GabrielNunesIT/swagger-preview/internal/domain"
	"github.com/GabrielNunesIT/swagger-preview/internal/history"
	"github.com/GabrielNunesIT/swagger-preview/internal/kv"
	"github.com/GabrielNunesIT/swagger-preview/internal/loader"
	"github.com/GabrielNunesIT/swagger-preview/internal/viewer"
)

func (c *CLI) renderCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Import a spec once and export it as a document",
		Long:  "Loads an OpenAPI or Swagger document from a URL, a local file or stdin (-), applies an optional server override and writes it as PDF, Word (DOCX), Confluence (ADF) or JSON.",
		Args:  cobra.NoArgs,
		RunE:  c.runRender,
	}

	cmd.Flags().StringVarP(&c.inputFile, "input", "i", "", "URL, file path or - for stdin (required)")
	cmd.Flags().StringVarP(&c.outputFile, "output", "o", "", "Path for the output file, - for stdout (required)")
	cmd.Flags().StringVarP(&c.format, "format", "f", "pdf", "Output format: "+strings.Join(converters.Formats(), ", "))
	cmd.Flags().StringVarP(&c.server, "server", "s", "", "Server URL replacing the ones the spec declares")
	cmd.Flags().StringVar(&c.label, "label", "", "Title to use instead of the spec's own")
	cmd.Flags().BoolVar(&c.noHistory, "no-history", false, "Do not record the import in the recall list")

	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, _ []string) error {
	cfg, err := c.loadConfig(cmd)
	if err != nil {
		return err
	}

	converter, err := converters.ForFormat(c.format)
	if err != nil {
		return err
	}

	req, err := c.renderRequest()
	if err != nil {
		return err
	}

	var store viewer.History
	if c.noHistory {
		mem := history.New(kv.NewMemory(), c.log)
		defer mem.Close()
		store = mem
	} else {
		hist, err := c.openHistory(cfg)
		if err != nil {
			return err
		}
		defer hist.Close()
		store = hist.store
	}

	surface, err := swaggerui.New(cfg.SwaggerUIVersion)
	if err != nil {
		return err
	}

	timeout, _ := cfg.Timeout()
	fetcher := loader.NewHTTPFetcher(timeout, cfg.MaxSpecBytes)
	fetcher.AllowFiles = true

	c.log.Infof("Loading OpenAPI specification from: %s", c.inputFile)

	coord := viewer.New(loader.New(fetcher), store, surface, nil, c.log)
	snap, err := coord.Submit(cmd.Context(), req, c.server)
	if err != nil {
		return fmt.Errorf("failed to load OpenAPI specification: %w", err)
	}

	c.log.Infof("Loaded API: %s (%s)", snap.Title, snap.SchemaVersion)
	c.log.Infof("Converting to %s format...", converter.Format())

	return c.writeOutput(func(w io.Writer) error {
		return coord.Export(converter, w)
	})
}

// renderRequest maps --input to an import: URLs are fetched, while local
// files and stdin are imported as pasted text.
func (c *CLI) renderRequest() (domain.ImportRequest, error) {
	input := strings.TrimSpace(c.inputFile)

	switch {
	case input == "-":
		data, err := io.ReadAll(c.in)
		if err != nil {
			return domain.ImportRequest{}, fmt.Errorf("failed to read stdin: %w", err)
		}
		return domain.ImportRequest{Kind: domain.SourcePaste, Value: string(data), Label: c.label}, nil
	case strings.Contains(input, "://"):
		return domain.ImportRequest{Kind: domain.SourceURL, Value: input, Label: c.label}, nil
	default:
		data, err := os.ReadFile(input)
		if err != nil {
			return domain.ImportRequest{}, fmt.Errorf("failed to read input file: %w", err)
		}
		return domain.ImportRequest{Kind: domain.SourcePaste, Value: string(data), Label: c.label}, nil
	}
}

// writeOutput renders into memory first so a failed export leaves no
// partial file behind.
func (c *CLI) writeOutput(write func(io.Writer) error) error {
	var buf bytes.Buffer
	if err := write(&buf); err != nil {
		return err
	}

	if c.outputFile == "-" {
		_, err := c.out.Write(buf.Bytes())
		return err
	}

	if err := os.WriteFile(c.outputFile, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	c.log.Infof("Successfully created: %s", c.outputFile)

	return nil
}
