// Package chunking turns parsed markdown sections into semantic chunks:
// complete code snippets with extracted symbol keywords, and token-budgeted
// conceptual chunks with a one-sentence continuity overlap, classified by a
// heuristic rule list.
package chunking
