// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - EmbeddingService: Generates vector embeddings (OpenAI or compatible).
//   - VectorIndexGateway: Named-collection vector store with payload
//     filtering (Qdrant or compatible).
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - MetadataExtractionService: Remote document metadata extraction.
//     Without it, a local heuristic extractor is used instead.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
