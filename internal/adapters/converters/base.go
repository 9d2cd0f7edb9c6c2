// Package converters exports the viewed API description to document formats.
package converters

import (
	"fmt"
	"strings"

	"github.com/GabrielNunesIT/swagger-preview/internal/domain"
)

// ForFormat returns the converter registered for format.
func ForFormat(format string) (domain.Converter, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case pdfFormat:
		return NewPDFConverter(), nil
	case docxFormat, "word":
		return NewDocxConverter(), nil
	case adfFormat, "adf":
		return NewADFConverter(), nil
	case jsonFormat:
		return NewJSONConverter(), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s (supported: pdf, docx, confluence, json)", format)
	}
}

// Formats lists the canonical format names.
func Formats() []string {
	return []string{pdfFormat, docxFormat, adfFormat, jsonFormat}
}

// formatMethod returns a styled method string.
func formatMethod(method string) string {
	return strings.ToUpper(method)
}

func formatParameter(p domain.Parameter) string {
	required := ""
	if p.Required {
		required = " (required)"
	}

	return fmt.Sprintf("%s (%s): %s%s", p.Name, p.In, p.Description, required)
}

func formatServer(s domain.Server) string {
	if s.Description != "" {
		return fmt.Sprintf("%s - %s", s.URL, s.Description)
	}
	return s.URL
}

// operationTitle is the heading used for an endpoint in every format.
func operationTitle(path string, op domain.Operation) string {
	return fmt.Sprintf("%s %s", formatMethod(op.Method), path)
}
