package driven

import (
	"context"

	"github.com/romilly/logseq-searcher/internal/core/domain"
)

// DocumentStore persists and retrieves documents.
//
// InsertDocuments commits once per call; on any error the batch's changes
// are rolled back and nothing is persisted. Ingestion is append-only and
// not idempotent: inserting the same documents twice duplicates rows.
type DocumentStore interface {
	// CreateSchema destructively replaces the documents table, its derived
	// lexical-search index and the maintenance triggers. Calling it on a
	// populated store loses all data; it is a one-time bootstrap, not a
	// migration.
	CreateSchema(ctx context.Context) error

	// InsertDocuments inserts a batch of documents in a single
	// transaction. Documents carrying a non-nil Embedding are stored with
	// it; the rest are stored with a NULL embedding.
	InsertDocuments(ctx context.Context, docs []domain.Document) error

	// GetDocument retrieves a full document by id.
	// Returns domain.ErrNotFound if no such row exists.
	GetDocument(ctx context.Context, id int64) (*domain.Document, error)

	// CountByType returns a mapping from doc type to row count for every
	// type present in the store.
	CountByType(ctx context.Context) (map[domain.DocType]int, error)

	// CountMissingEmbeddings returns how many documents have no embedding.
	CountMissingEmbeddings(ctx context.Context) (int, error)

	// ListMissingEmbeddings returns up to limit documents without an
	// embedding, ordered by id.
	ListMissingEmbeddings(ctx context.Context, limit int) ([]domain.Document, error)

	// SetEmbeddings writes the Embedding carried by each document back to
	// its row by id, in a single transaction: either the whole batch
	// becomes durable or none of it does.
	SetEmbeddings(ctx context.Context, docs []domain.Document) error
}

// SearchIndex exposes the relational engine's ranked retrieval surface.
// Ranking, tokenization, snippet extraction and vector distance are all
// computed inside the engine; implementations only shape queries and scan
// typed rows back out.
type SearchIndex interface {
	// Search matches an implicit AND of plain terms against the lexical
	// index, ranked by term-weighted relevance descending. docType is an
	// optional filter; empty means all types.
	Search(ctx context.Context, query string, limit int, docType domain.DocType) ([]domain.LexicalResult, error)

	// AdvancedSearch accepts a richer syntax: "quoted phrases", OR
	// alternation and -term exclusion. No doc type filter.
	AdvancedSearch(ctx context.Context, query string, limit int) ([]domain.LexicalResult, error)

	// SemanticSearch orders embedding-bearing documents by similarity to
	// the given query vector, descending.
	SemanticSearch(ctx context.Context, embedding []float32, limit int, docType domain.DocType) ([]domain.SemanticResult, error)

	// HybridSearch combines lexical rank and semantic similarity per the
	// options. A document is included if it has any lexical match or a
	// similarity above opts.SimilarityFloor.
	HybridSearch(ctx context.Context, query string, embedding []float32, opts domain.HybridOptions) ([]domain.HybridResult, error)
}
