package services

import (
	"context"
	"fmt"

	"github.com/romilly/logseq-searcher/internal/core/domain"
	"github.com/romilly/logseq-searcher/internal/core/ports/driven"
	"github.com/romilly/logseq-searcher/internal/core/ports/driving"
	"github.com/romilly/logseq-searcher/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// SearchService answers keyword, semantic and hybrid queries. Lexical
// ranking and vector distance are computed by the search index; this
// service only embeds queries and applies defaults.
type SearchService struct {
	index    driven.SearchIndex
	embedder driven.EmbeddingService
}

// NewSearchService creates a search service. The embedder may be nil, in
// which case semantic and hybrid search report ErrEmbeddingUnavailable.
func NewSearchService(index driven.SearchIndex, embedder driven.EmbeddingService) *SearchService {
	return &SearchService{
		index:    index,
		embedder: embedder,
	}
}

// Search performs plain keyword search: every term must match.
// An empty query is passed through; what it matches is engine-defined.
func (s *SearchService) Search(ctx context.Context, query string, limit int, docType domain.DocType) ([]domain.LexicalResult, error) {
	logger.Section("Keyword Search")
	logger.Debug("Query: %q, limit=%d, doc_type=%q", query, limit, docType)

	results, err := s.index.Search(ctx, query, limit, docType)
	if err != nil {
		return nil, fmt.Errorf("keyword search: %w", err)
	}
	logger.Info("Keyword search: %d results", len(results))
	return results, nil
}

// AdvancedSearch accepts "quoted phrases", OR alternation and -term
// exclusion.
func (s *SearchService) AdvancedSearch(ctx context.Context, query string, limit int) ([]domain.LexicalResult, error) {
	logger.Section("Advanced Search")
	logger.Debug("Query: %q, limit=%d", query, limit)

	results, err := s.index.AdvancedSearch(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("advanced search: %w", err)
	}
	logger.Info("Advanced search: %d results", len(results))
	return results, nil
}

// SemanticSearch embeds the query and ranks embedding-bearing documents by
// similarity descending.
func (s *SearchService) SemanticSearch(ctx context.Context, query string, limit int, docType domain.DocType) ([]domain.SemanticResult, error) {
	logger.Section("Semantic Search")
	logger.Debug("Query: %q, limit=%d, doc_type=%q", query, limit, docType)

	embedding, err := s.embedQuery(ctx, query)
	if err != nil {
		return nil, err
	}

	results, err := s.index.SemanticSearch(ctx, embedding, limit, docType)
	if err != nil {
		return nil, fmt.Errorf("semantic search: %w", err)
	}
	logger.Info("Semantic search: %d results", len(results))
	return results, nil
}

// HybridSearch combines lexical rank and semantic similarity. Zero-valued
// weights and floor in opts are replaced with the defaults; explicit
// non-zero values are taken as-is, unvalidated.
func (s *SearchService) HybridSearch(ctx context.Context, query string, opts domain.HybridOptions) ([]domain.HybridResult, error) {
	logger.Section("Hybrid Search")
	logger.Debug("Query: %q, opts=%+v", query, opts)

	if opts.FTSWeight == 0 && opts.SemanticWeight == 0 {
		opts.FTSWeight = domain.DefaultFTSWeight
		opts.SemanticWeight = domain.DefaultSemanticWeight
	}
	if opts.SimilarityFloor == 0 {
		opts.SimilarityFloor = domain.DefaultSimilarityFloor
	}

	embedding, err := s.embedQuery(ctx, query)
	if err != nil {
		return nil, err
	}

	results, err := s.index.HybridSearch(ctx, query, embedding, opts)
	if err != nil {
		return nil, fmt.Errorf("hybrid search: %w", err)
	}
	logger.Info("Hybrid search: %d results", len(results))
	return results, nil
}

func (s *SearchService) embedQuery(ctx context.Context, query string) ([]float32, error) {
	if s.embedder == nil {
		return nil, domain.ErrEmbeddingUnavailable
	}

	logger.Debug("Generating query embedding...")
	embedding, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}
	logger.Debug("Query embedding: %d dimensions", len(embedding))
	return embedding, nil
}
