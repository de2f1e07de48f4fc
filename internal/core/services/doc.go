// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// IndexingService runs the parse -> extract -> chunk -> embed ->
// batched-upsert pipeline for one document. SearchService embeds a query
// and serves ranked, optionally filtered similarity results across one or
// many collections.
package services
