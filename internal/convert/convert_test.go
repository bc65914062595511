package convert

import (
	"strings"
	"testing"
)

func TestRegistryMarkdownPassthrough(t *testing.T) {
	r := NewRegistry()
	in := "# Title\n\nSome plain paragraph text for the sniffer to chew on.\n"
	out, err := r.Convert([]byte(in))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != in {
		t.Errorf("markdown must pass through unchanged, got %q", out)
	}
}

func TestRegistryHTML(t *testing.T) {
	r := NewRegistry()
	in := "<!DOCTYPE html><html><body><h1>Benefits</h1><p>Dental is <strong>covered</strong>.</p></body></html>"
	out, err := r.Convert([]byte(in))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "# Benefits") {
		t.Errorf("heading not converted: %q", out)
	}
	if !strings.Contains(out, "**covered**") {
		t.Errorf("bold not converted: %q", out)
	}
	if strings.Contains(out, "<p>") {
		t.Errorf("tags leaked into markdown: %q", out)
	}
}

func TestRegistryUnsupported(t *testing.T) {
	r := NewRegistry()
	// PNG magic bytes.
	if _, err := r.Convert([]byte("\x89PNG\r\n\x1a\n0000")); err == nil {
		t.Fatal("expected error for unsupported format")
	}
	if r.Supported([]byte("\x89PNG\r\n\x1a\n0000")) {
		t.Error("Supported must reject images")
	}
	if !r.Supported([]byte("plain text content here")) {
		t.Error("Supported must accept plain text")
	}
}

func TestSplitFrontmatter(t *testing.T) {
	content := "---\ntitle: Expense Policy\ntags:\n  - finance\n---\n\n# Expense Policy\n\nBody text.\n"
	meta, body, err := SplitFrontmatter(content)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if meta["title"] != "Expense Policy" {
		t.Errorf("title not parsed: %v", meta["title"])
	}
	tags, ok := meta["tags"].([]interface{})
	if !ok || len(tags) != 1 || tags[0] != "finance" {
		t.Errorf("tags not parsed: %v", meta["tags"])
	}
	if !strings.HasPrefix(body, "# Expense Policy") {
		t.Errorf("body not separated: %q", body)
	}
	if strings.Contains(body, "title:") {
		t.Errorf("frontmatter leaked into body: %q", body)
	}
}

func TestSplitFrontmatterAbsent(t *testing.T) {
	content := "# No Metadata\n\nJust text.\n"
	meta, body, err := SplitFrontmatter(content)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if meta != nil {
		t.Errorf("expected nil metadata, got %v", meta)
	}
	if body != content {
		t.Errorf("content must be unchanged, got %q", body)
	}
}

func TestSplitFrontmatterMalformed(t *testing.T) {
	content := "---\ntitle: [unclosed\n---\nbody\n"
	if _, _, err := SplitFrontmatter(content); err == nil {
		t.Fatal("expected error for malformed frontmatter")
	}
}
