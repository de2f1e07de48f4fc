// Package markdown parses raw markdown documents into an ordered list of
// sections, isolating fenced code blocks and splitting off any leading
// YAML frontmatter block.
package markdown
