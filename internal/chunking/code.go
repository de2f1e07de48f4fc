package chunking

import (
	"fmt"
	"regexp"

	"github.com/hackgrid/docindex/internal/core/domain"
)

// minKeywordLength filters out short identifiers like loop variables.
const minKeywordLength = 3

// Declaration patterns across common languages. Each must capture the
// declared identifier in group 1.
var keywordPatterns = []*regexp.Regexp{
	regexp.MustCompile(`function\s+(\w+)`),          // JS/TS functions
	regexp.MustCompile(`class\s+(\w+)`),             // class declarations
	regexp.MustCompile(`const\s+(\w+)`),             // const declarations
	regexp.MustCompile(`let\s+(\w+)`),               // let declarations
	regexp.MustCompile(`import\s+.*?from\s+['"](.+?)['"]`), // ES imports
	regexp.MustCompile(`def\s+(\w+)`),               // Python functions
	regexp.MustCompile(`contract\s+(\w+)`),          // Solidity contracts
	regexp.MustCompile(`interface\s+(\w+)`),         // TS/Solidity interfaces
}

// ExtractCodeChunks converts every fenced code block in every section into a
// complete high-priority chunk: the preceding context, a blank line, and the
// re-fenced block. Code is never fragmented across chunks.
func ExtractCodeChunks(sections []domain.Section) []domain.Chunk {
	var chunks []domain.Chunk

	for _, section := range sections {
		hierarchy := []string{section.Title}

		for _, block := range section.CodeBlocks {
			content := fmt.Sprintf("%s\n\n```%s\n%s\n```", block.Context, block.Language, block.Code)

			chunks = append(chunks, domain.Chunk{
				Content:   content,
				Type:      domain.ChunkTypeCodeSnippet,
				Hierarchy: hierarchy,
				Language:  block.Language,
				Metadata: domain.ChunkMetadata{
					Title:        section.Title,
					HasCode:      true,
					CodeLanguage: block.Language,
					Keywords:     ExtractCodeKeywords(block.Code),
					Importance:   domain.ImportanceHigh,
				},
			})
		}
	}

	return chunks
}

// ExtractCodeKeywords captures declared symbols (function, class, const,
// import targets, ...) from code, deduplicated in first-seen order and
// filtered to identifiers longer than two characters.
func ExtractCodeKeywords(code string) []string {
	seen := make(map[string]struct{})
	var keywords []string

	for _, pattern := range keywordPatterns {
		for _, match := range pattern.FindAllStringSubmatch(code, -1) {
			name := match[1]
			if len(name) < minKeywordLength {
				continue
			}
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			keywords = append(keywords, name)
		}
	}

	return keywords
}
