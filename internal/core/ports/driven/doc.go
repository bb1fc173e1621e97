// Package driven provides interfaces for infrastructure adapters
// (secondary/outbound ports). The sqlite storage adapter implements
// DocumentStore and SearchIndex; the ollama adapter implements
// EmbeddingService.
package driven
