// Package convert turns uploaded files into Markdown text for the
// ingestion pipeline. A registry of format converters is consulted in
// order; the MIME type is always sniffed from the content, never
// trusted from the upload.
package convert

import (
	"fmt"
	"slices"

	"github.com/gabriel-vasile/mimetype"
)

// Converter transforms one file format into Markdown.
type Converter interface {
	// AcceptedExtensions lists file extensions (with leading dot) this
	// converter handles.
	AcceptedExtensions() []string

	// AcceptedMimeTypes lists MIME types this converter handles.
	AcceptedMimeTypes() []string

	// Convert produces Markdown from raw file bytes.
	Convert(data []byte) (string, error)
}

// Registry routes file content to the right converter.
type Registry struct {
	converters []Converter
}

// NewRegistry creates a Registry with all built-in converters.
func NewRegistry() *Registry {
	r := &Registry{}
	r.Register(NewMarkdownConverter())
	r.Register(NewHTMLConverter())
	r.Register(NewPDFConverter())
	r.Register(NewDocxConverter())
	r.Register(NewXlsxConverter())
	return r
}

// Register adds a converter. Converters are consulted in registration
// order, first match wins.
func (r *Registry) Register(c Converter) {
	r.converters = append(r.converters, c)
}

// Convert sniffs the MIME type of data and converts it to Markdown.
func (r *Registry) Convert(data []byte) (string, error) {
	mtype := mimetype.Detect(data)

	for _, c := range r.converters {
		if accepts(mtype, c.AcceptedExtensions(), c.AcceptedMimeTypes()) {
			return c.Convert(data)
		}
	}
	return "", fmt.Errorf("unsupported file format: %s", mtype.String())
}

// Supported reports whether data is in a convertible format.
func (r *Registry) Supported(data []byte) bool {
	mtype := mimetype.Detect(data)
	for _, c := range r.converters {
		if accepts(mtype, c.AcceptedExtensions(), c.AcceptedMimeTypes()) {
			return true
		}
	}
	return false
}

func accepts(mtype *mimetype.MIME, extensions, mtypes []string) bool {
	if slices.Contains(extensions, mtype.Extension()) {
		return true
	}
	return slices.ContainsFunc(mtypes, mtype.Is)
}
