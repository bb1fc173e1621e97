// Package domain defines the core business entities for logseq-searcher.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: a Markdown page or journal entry from the vault
//   - VaultStats: counts reported after a vault ingestion
//   - LexicalResult / SemanticResult / HybridResult: one typed record
//     per query shape
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
package domain
