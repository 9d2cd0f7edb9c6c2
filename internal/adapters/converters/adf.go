package converters

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/GabrielNunesIT/swagger-preview/internal/domain"
)

const adfFormat = "confluence"

// ADFConverter converts API summaries to Atlassian Document Format for Confluence.
type ADFConverter struct{}

// NewADFConverter creates a new ADF converter.
func NewADFConverter() *ADFConverter {
	return &ADFConverter{}
}

// Format returns the output format name.
func (c *ADFConverter) Format() string {
	return adfFormat
}

// ContentType returns the MIME type of the output.
func (c *ADFConverter) ContentType() string {
	return "application/json"
}

type adfDocument struct {
	Version int       `json:"version"`
	Type    string    `json:"type"`
	Content []adfNode `json:"content"`
}

type adfNode struct {
	Type    string    `json:"type"`
	Attrs   *adfAttrs `json:"attrs,omitempty"`
	Content []adfNode `json:"content,omitempty"`
	Text    string    `json:"text,omitempty"`
	Marks   []adfMark `json:"marks,omitempty"`
}

type adfAttrs struct {
	Level int `json:"level,omitempty"`
}

type adfMark struct {
	Type string `json:"type"`
}

// Convert writes doc as an ADF JSON document.
func (c *ADFConverter) Convert(doc *domain.OpenAPIDocument, output io.Writer) error {
	adf := &adfDocument{
		Version: 1,
		Type:    "doc",
		Content: []adfNode{
			heading(doc.Title, 1),
			paragraph(fmt.Sprintf("Version: %s (%s)", doc.Version, doc.SchemaVersion)),
		},
	}

	if doc.Description != "" {
		adf.Content = append(adf.Content, heading("Description", 2), paragraph(doc.Description))
	}

	if len(doc.Servers) > 0 {
		items := make([]string, 0, len(doc.Servers))
		for _, s := range doc.Servers {
			items = append(items, formatServer(s))
		}
		adf.Content = append(adf.Content, heading("Servers", 2), bulletList(items, false))
	}

	if len(doc.Paths) > 0 {
		adf.Content = append(adf.Content, heading("API Endpoints", 2))

		for _, path := range doc.Paths {
			for _, op := range path.Operations {
				adf.Content = append(adf.Content, operationNodes(path.Path, op)...)
			}
		}
	}

	encoder := json.NewEncoder(output)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(adf); err != nil {
		return fmt.Errorf("failed to encode ADF: %w", err)
	}

	return nil
}

func operationNodes(path string, op domain.Operation) []adfNode {
	nodes := []adfNode{heading(operationTitle(path, op), 3)}

	if op.Summary != "" {
		nodes = append(nodes, adfNode{
			Type:    "paragraph",
			Content: []adfNode{marked(op.Summary, "strong")},
		})
	}

	if op.Description != "" {
		nodes = append(nodes, paragraph(op.Description))
	}

	if len(op.Parameters) > 0 {
		items := make([]string, 0, len(op.Parameters))
		for _, p := range op.Parameters {
			items = append(items, formatParameter(p))
		}
		nodes = append(nodes, heading("Parameters", 4), bulletList(items, true))
	}

	if len(op.Responses) > 0 {
		items := make([]string, 0, len(op.Responses))
		for _, r := range op.Responses {
			items = append(items, fmt.Sprintf("%s: %s", r.StatusCode, r.Description))
		}
		nodes = append(nodes, heading("Responses", 4), bulletList(items, true))
	}

	return append(nodes, adfNode{Type: "rule"})
}

func heading(text string, level int) adfNode {
	return adfNode{
		Type:    "heading",
		Attrs:   &adfAttrs{Level: level},
		Content: []adfNode{{Type: "text", Text: text}},
	}
}

func paragraph(text string) adfNode {
	return adfNode{
		Type:    "paragraph",
		Content: []adfNode{{Type: "text", Text: text}},
	}
}

func marked(text, mark string) adfNode {
	return adfNode{Type: "text", Text: text, Marks: []adfMark{{Type: mark}}}
}

// bulletList renders items; with code set, the text up to the first
// space or colon is shown as inline code.
func bulletList(items []string, code bool) adfNode {
	list := adfNode{Type: "bulletList"}

	for _, item := range items {
		content := []adfNode{{Type: "text", Text: item}}
		if code {
			if i := strings.IndexAny(item, " :"); i > 0 {
				content = []adfNode{marked(item[:i], "code"), {Type: "text", Text: item[i:]}}
			}
		}

		list.Content = append(list.Content, adfNode{
			Type:    "listItem",
			Content: []adfNode{{Type: "paragraph", Content: content}},
		})
	}

	return list
}
