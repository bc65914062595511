package convert

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// SplitFrontmatter separates a leading YAML frontmatter block from the
// document body. Content without a frontmatter block comes back
// unchanged with a nil map. A malformed block is an error so a typo in
// the metadata never silently becomes document text.
func SplitFrontmatter(content string) (map[string]interface{}, string, error) {
	if !strings.HasPrefix(content, "---\n") && !strings.HasPrefix(content, "---\r\n") {
		return nil, content, nil
	}

	rest := content[strings.Index(content, "\n")+1:]
	end := strings.Index(rest, "\n---")
	if end < 0 {
		return nil, content, nil
	}
	block := rest[:end]

	body := rest[end+len("\n---"):]
	if i := strings.Index(body, "\n"); i >= 0 {
		body = body[i+1:]
	} else {
		body = ""
	}

	var meta map[string]interface{}
	if err := yaml.Unmarshal([]byte(block), &meta); err != nil {
		return nil, "", fmt.Errorf("invalid frontmatter: %w", err)
	}
	return meta, strings.TrimPrefix(body, "\n"), nil
}
