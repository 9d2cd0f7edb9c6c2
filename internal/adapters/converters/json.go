package converters

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/GabrielNunesIT/swagger-preview/internal/domain"
)

const jsonFormat = "json"

// JSONConverter writes the summary model itself.
type JSONConverter struct{}

// NewJSONConverter creates a new JSON converter.
func NewJSONConverter() *JSONConverter {
	return &JSONConverter{}
}

// Format returns the output format name.
func (c *JSONConverter) Format() string { return jsonFormat }

// ContentType returns the MIME type of the output.
func (c *JSONConverter) ContentType() string { return "application/json" }

// Convert encodes doc as indented JSON.
func (c *JSONConverter) Convert(doc *domain.OpenAPIDocument, output io.Writer) error {
	encoder := json.NewEncoder(output)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode summary: %w", err)
	}
	return nil
}
