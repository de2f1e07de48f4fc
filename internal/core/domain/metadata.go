package domain

// ExtractedMetadata is the document-level metadata returned after indexing.
// Callers persist it in their own record store; this core never stores it.
type ExtractedMetadata struct {
	// TechStack lists detected frameworks, libraries and tools.
	TechStack []string

	// Keywords lists relevant terms extracted from the document.
	Keywords []string

	// Domain is the inferred subject area (e.g. "DeFi"), empty when unknown.
	Domain string

	// Languages lists programming languages found in code blocks.
	Languages []string

	// Description is a short summary of the document.
	Description string
}
