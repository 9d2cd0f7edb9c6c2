package domain

import "io"

// Converter defines the interface for exporting the viewed document.
type Converter interface {
	// Convert writes the summary of an API description in the target format.
	Convert(doc *OpenAPIDocument, output io.Writer) error

	// Format returns the output format name (e.g., "pdf", "docx").
	Format() string

	// ContentType returns the MIME type of the produced output.
	ContentType() string
}
