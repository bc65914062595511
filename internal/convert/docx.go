package convert

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/unidoc/unioffice/v2/document"
)

// DocxConverter extracts paragraph text from Word (.docx) documents.
type DocxConverter struct{}

// NewDocxConverter creates a new DocxConverter.
func NewDocxConverter() *DocxConverter {
	return &DocxConverter{}
}

func (c *DocxConverter) AcceptedExtensions() []string {
	return []string{".docx"}
}

func (c *DocxConverter) AcceptedMimeTypes() []string {
	return []string{"application/vnd.openxmlformats-officedocument.wordprocessingml.document"}
}

func (c *DocxConverter) Convert(data []byte) (string, error) {
	doc, err := document.Read(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to read docx: %w", err)
	}
	defer doc.Close()

	var sb strings.Builder
	for _, p := range doc.Paragraphs() {
		for _, r := range p.Runs() {
			sb.WriteString(r.Text())
		}
		sb.WriteString("\n\n")
	}
	return sb.String(), nil
}

var _ Converter = (*DocxConverter)(nil)
