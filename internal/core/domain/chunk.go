package domain

const unknownDescription = "Unknown"

// ChunkType classifies the semantic role of a chunk.
type ChunkType string

// Available chunk types.
const (
	// ChunkTypeTitle is a section heading with a short content preview.
	ChunkTypeTitle ChunkType = "title"

	// ChunkTypeCodeSnippet is a complete fenced code block with its context.
	ChunkTypeCodeSnippet ChunkType = "code"

	// ChunkTypeProcedure is step-by-step instructional text.
	ChunkTypeProcedure ChunkType = "procedure"

	// ChunkTypeConcept is explanatory prose (the default).
	ChunkTypeConcept ChunkType = "concept"

	// ChunkTypeAPIReference describes functions, parameters or endpoints.
	ChunkTypeAPIReference ChunkType = "api"

	// ChunkTypeWarning is a caution or important note.
	ChunkTypeWarning ChunkType = "warning"

	// ChunkTypeExample is a usage example.
	ChunkTypeExample ChunkType = "example"
)

// IsValid returns true if the chunk type is recognised.
func (t ChunkType) IsValid() bool {
	switch t {
	case ChunkTypeTitle, ChunkTypeCodeSnippet, ChunkTypeProcedure,
		ChunkTypeConcept, ChunkTypeAPIReference, ChunkTypeWarning, ChunkTypeExample:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (t ChunkType) String() string {
	return string(t)
}

// Description returns a human-readable description of the chunk type.
func (t ChunkType) Description() string {
	switch t {
	case ChunkTypeTitle:
		return "Title (section heading)"
	case ChunkTypeCodeSnippet:
		return "Code Snippet"
	case ChunkTypeProcedure:
		return "Procedure (step-by-step)"
	case ChunkTypeConcept:
		return "Concept (explanatory text)"
	case ChunkTypeAPIReference:
		return "API Reference"
	case ChunkTypeWarning:
		return "Warning"
	case ChunkTypeExample:
		return "Example"
	default:
		return unknownDescription
	}
}

// Importance is the coarse priority tag attached to a chunk.
// It is used for downstream biasing and filtering, never for ranking math.
type Importance string

// Available importance levels.
const (
	ImportanceHigh   Importance = "high"
	ImportanceMedium Importance = "medium"
	ImportanceLow    Importance = "low"
)

// IsValid returns true if the importance level is recognised.
func (i Importance) IsValid() bool {
	switch i {
	case ImportanceHigh, ImportanceMedium, ImportanceLow:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (i Importance) String() string {
	return string(i)
}

// ChunkMetadata carries the filterable attributes of a chunk.
type ChunkMetadata struct {
	// Title is the owning section title, when relevant.
	Title string

	// Section is the top-level section this chunk belongs to.
	Section string

	// Subsection is the second hierarchy element, if any.
	Subsection string

	// HasCode reports whether the chunk contains a code block.
	HasCode bool

	// CodeLanguage is the fence language tag for code chunks.
	CodeLanguage string

	// Keywords are symbols extracted from code (deduplicated).
	Keywords []string

	// Importance is the chunk priority tag.
	Importance Importance
}

// Chunk is a semantically coherent retrieval unit produced from one document.
// Chunks are transient: they exist only for the duration of one index call.
type Chunk struct {
	// Content is the chunk text. Never empty.
	Content string

	// Type classifies the semantic role of the chunk.
	Type ChunkType

	// Hierarchy is the ordered list of ancestor section titles. Never empty.
	Hierarchy []string

	// Language is the fence language tag for code chunks, empty otherwise.
	Language string

	// Metadata carries the filterable attributes.
	Metadata ChunkMetadata
}
