// Package domain defines the core business entities for docindex.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: A markdown document submitted for indexing
//   - Section: A span of a document introduced by one heading line
//   - Chunk: A semantically coherent retrieval unit destined for embedding
//   - SearchResult: A ranked similarity hit
//   - ExtractedMetadata: Document-level metadata returned after indexing
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
