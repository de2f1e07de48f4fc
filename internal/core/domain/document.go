package domain

// Document is a markdown document submitted for indexing.
// It is transient: it exists only for the duration of one index call.
// The owning record store (projects, sponsors, ...) lives outside this core.
type Document struct {
	// OwnerID identifies the entity that owns the document
	// (a project ID, sponsor ID, etc).
	OwnerID string

	// FileName is the original file name of the document.
	FileName string

	// Content is the markdown body after the frontmatter block is removed.
	Content string

	// Frontmatter is the parsed frontmatter block, treated as an opaque
	// key-value map. Nil when the document carries no frontmatter.
	Frontmatter map[string]any
}

// Section is a span of a markdown document introduced by one heading line.
type Section struct {
	// Level is the heading level (H1=1 .. H6=6).
	Level int

	// Title is the heading text.
	Title string

	// Content is the section body, trimmed, excluding fenced code.
	Content string

	// CodeBlocks are the fenced code blocks found inside the section,
	// in document order.
	CodeBlocks []CodeBlock

	// Children models nested subsections. The parser currently emits a
	// flat ordered list and never populates this field.
	Children []Section
}

// CodeBlock is one fenced code block with its preceding context.
type CodeBlock struct {
	// Language is the fence language tag ("text" when absent).
	Language string

	// Code is the raw code between the fences.
	Code string

	// Context is the last few body lines preceding the opening fence.
	Context string
}
