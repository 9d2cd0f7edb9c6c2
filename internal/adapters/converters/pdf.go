package converters

import (
	"fmt"
	"io"
	"strings"

	"github.com/GabrielNunesIT/swagger-preview/internal/domain"
	"github.com/jung-kurt/gofpdf"
)

const (
	pdfFormat      = "pdf"
	pdfPageWidth   = 190.0
	pdfMarginLeft  = 10.0
	pdfMarginTop   = 10.0
	pdfMarginRight = 10.0
	pdfLineHeight  = 5.0
)

var methodColors = map[string][3]int{
	"GET":     {97, 175, 254},
	"POST":    {73, 204, 144},
	"PUT":     {252, 161, 48},
	"DELETE":  {249, 62, 62},
	"PATCH":   {80, 227, 194},
	"HEAD":    {144, 97, 249},
	"OPTIONS": {128, 128, 128},
}

// PDFConverter converts API summaries to PDF format.
type PDFConverter struct {
	pdf *gofpdf.Fpdf
}

// NewPDFConverter creates a new PDF converter.
func NewPDFConverter() *PDFConverter {
	return &PDFConverter{}
}

// Format returns the output format name.
func (c *PDFConverter) Format() string {
	return pdfFormat
}

// ContentType returns the MIME type of the output.
func (c *PDFConverter) ContentType() string {
	return "application/pdf"
}

// Convert writes doc as a PDF document.
func (c *PDFConverter) Convert(doc *domain.OpenAPIDocument, output io.Writer) error {
	c.pdf = gofpdf.New("P", "mm", "A4", "")
	c.pdf.SetMargins(pdfMarginLeft, pdfMarginTop, pdfMarginRight)
	c.pdf.SetDrawColor(180, 180, 180)
	tr := c.pdf.UnicodeTranslatorFromDescriptor("")

	c.pdf.AddPage()
	c.pdf.SetFont("Arial", "B", 24)
	c.pdf.CellFormat(pdfPageWidth, 12, tr(doc.Title), "", 1, "C", false, 0, "")
	c.pdf.SetFont("Arial", "", 12)
	c.pdf.SetTextColor(100, 100, 100)
	c.pdf.CellFormat(pdfPageWidth, 8, tr(fmt.Sprintf("Version %s (%s)", doc.Version, doc.SchemaVersion)), "", 1, "C", false, 0, "")
	c.pdf.SetTextColor(0, 0, 0)
	c.pdf.Ln(6)

	if doc.Description != "" {
		c.pdf.SetFont("Arial", "", 10)
		c.pdf.MultiCell(pdfPageWidth, pdfLineHeight, tr(stripHTML(doc.Description)), "", "", false)
		c.pdf.Ln(4)
	}

	if len(doc.Servers) > 0 {
		c.addSectionHeader("Servers")
		c.pdf.SetFont("Arial", "", 10)
		c.pdf.SetTextColor(0, 102, 204)
		for _, server := range doc.Servers {
			c.pdf.CellFormat(pdfPageWidth, 6, tr(formatServer(server)), "", 1, "", false, 0, "")
		}
		c.pdf.SetTextColor(0, 0, 0)
		c.pdf.Ln(4)
	}

	if len(doc.Paths) > 0 {
		c.addSectionHeader("API Endpoints")
		for _, path := range doc.Paths {
			for _, op := range path.Operations {
				c.addEndpoint(tr, path.Path, op)
			}
		}
	}

	return c.pdf.Output(output)
}

func (c *PDFConverter) addSectionHeader(title string) {
	c.checkPageBreak(20)
	c.pdf.SetFont("Arial", "B", 16)
	c.pdf.CellFormat(pdfPageWidth, 10, title, "", 1, "", false, 0, "")
	c.pdf.Ln(2)
}

func (c *PDFConverter) addEndpoint(tr func(string) string, path string, op domain.Operation) {
	c.checkPageBreak(30)

	color, ok := methodColors[op.Method]
	if !ok {
		color = [3]int{128, 128, 128}
	}

	c.pdf.SetFont("Arial", "B", 11)
	c.pdf.SetFillColor(color[0], color[1], color[2])
	c.pdf.SetTextColor(255, 255, 255)
	methodWidth := float64(len(op.Method)*3) + 8
	c.pdf.CellFormat(methodWidth, 7, op.Method, "", 0, "C", true, 0, "")
	c.pdf.SetTextColor(0, 0, 0)
	c.pdf.CellFormat(pdfPageWidth-methodWidth, 7, tr(" "+path), "", 1, "", false, 0, "")

	if op.Summary != "" {
		c.pdf.SetFont("Arial", "B", 10)
		c.pdf.MultiCell(pdfPageWidth, pdfLineHeight, tr(stripHTML(op.Summary)), "", "", false)
	}
	if op.Description != "" {
		c.pdf.SetFont("Arial", "", 9)
		c.pdf.MultiCell(pdfPageWidth, 4, tr(stripHTML(op.Description)), "", "", false)
	}

	c.pdf.SetFont("Arial", "", 9)
	for _, param := range op.Parameters {
		c.pdf.MultiCell(pdfPageWidth, 4, tr("- "+formatParameter(param)), "", "", false)
	}
	for _, resp := range op.Responses {
		c.pdf.MultiCell(pdfPageWidth, 4, tr(fmt.Sprintf("%s  %s", resp.StatusCode, stripHTML(resp.Description))), "", "", false)
	}

	c.pdf.Ln(2)
	c.pdf.SetDrawColor(220, 220, 220)
	c.pdf.Line(pdfMarginLeft, c.pdf.GetY(), pdfMarginLeft+pdfPageWidth, c.pdf.GetY())
	c.pdf.SetDrawColor(180, 180, 180)
	c.pdf.Ln(4)
}

func (c *PDFConverter) checkPageBreak(height float64) {
	_, pageHeight := c.pdf.GetPageSize()
	_, _, _, bottomMargin := c.pdf.GetMargins()

	if c.pdf.GetY()+height > pageHeight-bottomMargin-10 {
		c.pdf.AddPage()
	}
}

func stripHTML(s string) string {
	result := s
	for {
		start := strings.Index(result, "<")
		if start == -1 {
			break
		}
		end := strings.Index(result[start:], ">")
		if end == -1 {
			break
		}
		result = result[:start] + result[start+end+1:]
	}

	replacer := strings.NewReplacer("&amp;", "&", "&lt;", "<", "&gt;", ">", "&quot;", "\"", "&#39;", "'")
	return strings.TrimSpace(replacer.Replace(result))
}
