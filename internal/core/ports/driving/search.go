package driving

import (
	"context"

	"github.com/romilly/logseq-searcher/internal/core/domain"
)

// SearchService provides keyword, semantic and hybrid search.
type SearchService interface {
	// Search performs plain keyword search: an implicit AND of terms.
	Search(ctx context.Context, query string, limit int, docType domain.DocType) ([]domain.LexicalResult, error)

	// AdvancedSearch supports "quoted phrases", OR and -term exclusion.
	AdvancedSearch(ctx context.Context, query string, limit int) ([]domain.LexicalResult, error)

	// SemanticSearch embeds the query and ranks documents by vector
	// similarity.
	SemanticSearch(ctx context.Context, query string, limit int, docType domain.DocType) ([]domain.SemanticResult, error)

	// HybridSearch combines lexical rank and semantic similarity into a
	// single weighted ranking.
	HybridSearch(ctx context.Context, query string, opts domain.HybridOptions) ([]domain.HybridResult, error)
}
