package domain

// SearchFilter restricts a similarity search to chunks matching every
// supplied predicate. Zero-valued fields are omitted from the filter.
type SearchFilter struct {
	// ChunkType matches the chunk type tag.
	ChunkType ChunkType

	// HasCode matches the hasCode flag when non-nil.
	HasCode *bool

	// CodeLanguage matches the code language tag.
	CodeLanguage string

	// Importance matches the importance tag.
	Importance Importance
}

// IsEmpty returns true when no predicate is set.
func (f SearchFilter) IsEmpty() bool {
	return f.ChunkType == "" && f.HasCode == nil && f.CodeLanguage == "" && f.Importance == ""
}

// SearchResult is a single ranked similarity hit.
type SearchResult struct {
	// Content is the matched chunk text.
	Content string

	// Type is the chunk type tag.
	Type ChunkType

	// Hierarchy is the ancestor section titles of the matched chunk.
	Hierarchy []string

	// Language is the code language tag, if any.
	Language string

	// Section is the owning section title.
	Section string

	// HasCode reports whether the chunk contains code.
	HasCode bool

	// Keywords are the code symbols attached to the chunk.
	Keywords []string

	// Importance is the chunk priority tag.
	Importance Importance

	// Score is the similarity score returned by the vector index, unmodified.
	Score float64

	// CollectionName identifies the collection the hit came from.
	CollectionName string

	// EntityID is the owner recorded in the point payload.
	EntityID string

	// FileName is the source file recorded in the point payload.
	FileName string

	// Frontmatter is the opaque serialized frontmatter blob, if any.
	Frontmatter string
}
