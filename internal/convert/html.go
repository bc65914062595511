package convert

import (
	"fmt"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
)

// HTMLConverter converts HTML documents to Markdown.
type HTMLConverter struct{}

// NewHTMLConverter creates a new HTMLConverter.
func NewHTMLConverter() *HTMLConverter {
	return &HTMLConverter{}
}

func (c *HTMLConverter) AcceptedExtensions() []string {
	return []string{".html", ".htm"}
}

func (c *HTMLConverter) AcceptedMimeTypes() []string {
	return []string{"text/html", "application/xhtml+xml"}
}

func (c *HTMLConverter) Convert(data []byte) (string, error) {
	markdown, err := htmltomarkdown.ConvertString(string(data))
	if err != nil {
		return "", fmt.Errorf("failed to convert html: %w", err)
	}
	return markdown, nil
}

var _ Converter = (*HTMLConverter)(nil)
