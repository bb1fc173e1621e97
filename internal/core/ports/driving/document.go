package driving

import (
	"context"

	"github.com/romilly/logseq-searcher/internal/core/domain"
)

// DocumentService provides direct document reads.
type DocumentService interface {
	// Get returns the full document by id, or domain.ErrNotFound.
	Get(ctx context.Context, id int64) (*domain.Document, error)

	// CountByType returns document counts keyed by doc type.
	CountByType(ctx context.Context) (map[domain.DocType]int, error)
}
