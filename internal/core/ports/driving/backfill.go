package driving

import (
	"context"

	"github.com/romilly/logseq-searcher/internal/core/domain"
)

// BackfillOperator retroactively computes embeddings for documents that
// were ingested without them.
type BackfillOperator interface {
	// AddEmbeddings embeds documents with a NULL embedding in batches of
	// batchSize, committing after each batch, and returns how many
	// documents were processed. A fully-embedded corpus is a no-op.
	// progress, if non-nil, receives cumulative counts after each batch.
	AddEmbeddings(ctx context.Context, batchSize int, progress domain.ProgressFunc) (int, error)
}
