// Package metadata is the local heuristic fallback for document metadata
// extraction. It scans markdown content with keyword tables to detect the
// tech stack, infer a domain, collect keywords and code languages, and
// derive a short description.
//
// A remote extraction service, when configured, takes precedence over this
// package.
package metadata
