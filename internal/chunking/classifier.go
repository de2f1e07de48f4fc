package chunking

import (
	"regexp"
	"strings"

	"github.com/hackgrid/docindex/internal/core/domain"
)

// Classification rules, first match wins. Order matters: procedure markers
// take precedence over warnings, which take precedence over API terms.
var (
	procedurePattern = regexp.MustCompile(`\d+\.\s|step\s+\d+|first|second|then|finally|next`)
	warningPattern   = regexp.MustCompile(`warning|caution|important|note|⚠️|danger`)
	apiPattern       = regexp.MustCompile(`function|method|parameter|returns|api|endpoint`)
	examplePattern   = regexp.MustCompile(`example|for instance|such as|e\.g\.|usage`)
)

// Classify assigns a chunk type to conceptual text.
// It is a pure function: identical input always yields the same type.
func Classify(text string) domain.ChunkType {
	lower := strings.ToLower(text)

	switch {
	case procedurePattern.MatchString(lower):
		return domain.ChunkTypeProcedure
	case warningPattern.MatchString(lower):
		return domain.ChunkTypeWarning
	case apiPattern.MatchString(lower):
		return domain.ChunkTypeAPIReference
	case examplePattern.MatchString(lower):
		return domain.ChunkTypeExample
	default:
		return domain.ChunkTypeConcept
	}
}
