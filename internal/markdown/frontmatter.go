package markdown

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const frontmatterDelimiter = "---"

// SplitFrontmatter separates a leading YAML frontmatter block from the
// markdown body. The block must start on the first line with "---" and end
// with a matching "---" line. Documents without a frontmatter block return
// a nil map and the content unchanged.
func SplitFrontmatter(content string) (map[string]any, string, error) {
	trimmed := strings.TrimPrefix(content, "\ufeff") // strip UTF-8 BOM
	if !strings.HasPrefix(trimmed, frontmatterDelimiter+"\n") &&
		trimmed != frontmatterDelimiter {
		return nil, content, nil
	}

	rest := trimmed[len(frontmatterDelimiter):]
	rest = strings.TrimPrefix(rest, "\n")

	end := strings.Index(rest, "\n"+frontmatterDelimiter)
	if end < 0 {
		// Unterminated block: treat the whole document as body.
		return nil, content, nil
	}

	block := rest[:end]
	body := rest[end+len("\n"+frontmatterDelimiter):]
	body = strings.TrimPrefix(body, "\n")

	var data map[string]any
	if err := yaml.Unmarshal([]byte(block), &data); err != nil {
		return nil, "", fmt.Errorf("parse frontmatter: %w", err)
	}
	if len(data) == 0 {
		data = nil
	}

	return data, body, nil
}
