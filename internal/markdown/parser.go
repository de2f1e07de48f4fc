package markdown

import (
	"regexp"
	"strings"

	"github.com/hackgrid/docindex/internal/core/domain"
)

// codeContextLines is how many trailing body lines are kept as the
// preceding context of a fenced code block.
const codeContextLines = 3

var headingPattern = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)

// Parser turns markdown text into a flat ordered list of sections.
type Parser struct{}

// NewParser creates a new structure parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse walks the document line by line and returns its sections in order.
//
// A line opening with a triple-backtick fence toggles code capture; inside a
// fence, lines accumulate into a pending code block instead of being scanned
// as headings. On fence close, the block is attached to the currently open
// section together with the last few body lines as context.
//
// Sections are emitted flat: the Children field is modelled but never
// populated. Lines appearing before the first heading have no open section
// to attach to and are dropped.
func (p *Parser) Parse(content string) []domain.Section {
	lines := strings.Split(content, "\n")

	var sections []domain.Section
	var current *domain.Section
	var body []string

	inCodeBlock := false
	var codeLang string
	var codeLines []string

	for _, line := range lines {
		if strings.HasPrefix(line, "```") {
			if !inCodeBlock {
				codeLang = strings.TrimSpace(line[3:])
				if codeLang == "" {
					codeLang = "text"
				}
				codeLines = nil
				inCodeBlock = true
			} else {
				if current != nil {
					current.CodeBlocks = append(current.CodeBlocks, domain.CodeBlock{
						Language: codeLang,
						Code:     strings.Join(codeLines, "\n"),
						Context:  trailingLines(body, codeContextLines),
					})
				}
				inCodeBlock = false
			}
			continue
		}

		if inCodeBlock {
			codeLines = append(codeLines, line)
			continue
		}

		if m := headingPattern.FindStringSubmatch(line); m != nil {
			if current != nil {
				current.Content = strings.TrimSpace(strings.Join(body, "\n"))
				sections = append(sections, *current)
			}
			current = &domain.Section{
				Level: len(m[1]),
				Title: strings.TrimSpace(m[2]),
			}
			body = nil
			continue
		}

		body = append(body, line)
	}

	if current != nil {
		current.Content = strings.TrimSpace(strings.Join(body, "\n"))
		sections = append(sections, *current)
	}

	return sections
}

// trailingLines returns the last n lines joined by newlines.
func trailingLines(lines []string, n int) string {
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}
