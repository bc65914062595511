package convert

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// PDFConverter extracts plain text from PDF documents, page by page.
// Pages that fail extraction are skipped rather than failing the file.
type PDFConverter struct{}

// NewPDFConverter creates a new PDFConverter.
func NewPDFConverter() *PDFConverter {
	return &PDFConverter{}
}

func (c *PDFConverter) AcceptedExtensions() []string {
	return []string{".pdf"}
}

func (c *PDFConverter) AcceptedMimeTypes() []string {
	return []string{"application/pdf"}
}

func (c *PDFConverter) Convert(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to read pdf: %w", err)
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		sb.WriteString(text)
		sb.WriteString("\n\n")
	}
	return sb.String(), nil
}

var _ Converter = (*PDFConverter)(nil)
