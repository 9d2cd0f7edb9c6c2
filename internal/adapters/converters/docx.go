package converters

import (
	"fmt"
	"io"

	"github.com/GabrielNunesIT/swagger-preview/internal/domain"
	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"
)

const docxFormat = "docx"

// DocxConverter converts API summaries to Word (DOCX) format.
type DocxConverter struct{}

// NewDocxConverter creates a new DOCX converter.
func NewDocxConverter() *DocxConverter {
	return &DocxConverter{}
}

// Format returns the output format name.
func (c *DocxConverter) Format() string {
	return docxFormat
}

// ContentType returns the MIME type of the output.
func (c *DocxConverter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
}

// Convert writes doc as a DOCX document.
func (c *DocxConverter) Convert(doc *domain.OpenAPIDocument, output io.Writer) error {
	document, err := godocx.NewDocument()
	if err != nil {
		return fmt.Errorf("failed to create document: %w", err)
	}

	_, _ = document.AddHeading(doc.Title, 0)
	document.AddParagraph(fmt.Sprintf("Version: %s (%s)", doc.Version, doc.SchemaVersion))
	document.AddEmptyParagraph()

	if doc.Description != "" {
		_, _ = document.AddHeading("Description", 1)
		document.AddParagraph(doc.Description)
	}

	if len(doc.Servers) > 0 {
		_, _ = document.AddHeading("Servers", 1)
		for _, server := range doc.Servers {
			document.AddParagraph("• " + formatServer(server))
		}
	}

	if len(doc.Paths) > 0 {
		_, _ = document.AddHeading("API Endpoints", 1)
		for _, path := range doc.Paths {
			for _, op := range path.Operations {
				c.addOperation(document, path.Path, op)
			}
		}
	}

	if err := document.Write(output); err != nil {
		return fmt.Errorf("failed to write document: %w", err)
	}

	return nil
}

func (c *DocxConverter) addOperation(document *docx.RootDoc, path string, op domain.Operation) {
	_, _ = document.AddHeading(operationTitle(path, op), 2)

	if op.Summary != "" {
		document.AddParagraph(op.Summary)
	}
	if op.Description != "" {
		document.AddParagraph(op.Description)
	}

	if len(op.Parameters) > 0 {
		_, _ = document.AddHeading("Parameters", 3)
		for _, param := range op.Parameters {
			document.AddParagraph("• " + formatParameter(param))
		}
	}

	if len(op.Responses) > 0 {
		_, _ = document.AddHeading("Responses", 3)
		for _, resp := range op.Responses {
			document.AddParagraph(fmt.Sprintf("• %s: %s", resp.StatusCode, resp.Description))
		}
	}

	document.AddEmptyParagraph()
}
