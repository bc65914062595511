package convert

// MarkdownConverter passes Markdown and plain text through unchanged.
type MarkdownConverter struct{}

// NewMarkdownConverter creates a new MarkdownConverter.
func NewMarkdownConverter() *MarkdownConverter {
	return &MarkdownConverter{}
}

func (c *MarkdownConverter) AcceptedExtensions() []string {
	return []string{".md", ".markdown", ".txt"}
}

func (c *MarkdownConverter) AcceptedMimeTypes() []string {
	return []string{"text/markdown", "text/plain"}
}

func (c *MarkdownConverter) Convert(data []byte) (string, error) {
	return string(data), nil
}

var _ Converter = (*MarkdownConverter)(nil)
