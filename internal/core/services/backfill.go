package services

import (
	"context"
	"fmt"

	"github.com/romilly/logseq-searcher/internal/core/domain"
	"github.com/romilly/logseq-searcher/internal/core/ports/driven"
	"github.com/romilly/logseq-searcher/internal/core/ports/driving"
	"github.com/romilly/logseq-searcher/internal/logger"
)

// Ensure BackfillService implements the interface.
var _ driving.BackfillOperator = (*BackfillService)(nil)

// defaultBackfillBatch is used when callers pass a non-positive batch size.
const defaultBackfillBatch = 32

// BackfillService fills in embeddings for documents ingested before
// semantic search was enabled. Each batch commits independently, so a run
// killed part-way leaves earlier batches durable. There is no row-level
// claim: two concurrent runs can redundantly re-embed the same rows.
type BackfillService struct {
	store    driven.DocumentStore
	embedder driven.EmbeddingService
}

// NewBackfillService creates a backfill operator.
func NewBackfillService(store driven.DocumentStore, embedder driven.EmbeddingService) *BackfillService {
	return &BackfillService{
		store:    store,
		embedder: embedder,
	}
}

// AddEmbeddings embeds every document with a NULL embedding, batchSize at a
// time, and returns how many documents were processed. When the corpus is
// already fully embedded it returns immediately.
func (s *BackfillService) AddEmbeddings(ctx context.Context, batchSize int, progress domain.ProgressFunc) (int, error) {
	if s.store == nil {
		return 0, domain.ErrStoreUnavailable
	}
	if s.embedder == nil {
		return 0, domain.ErrEmbeddingUnavailable
	}
	if batchSize <= 0 {
		batchSize = defaultBackfillBatch
	}

	logger.Section("Embedding Backfill")

	total, err := s.store.CountMissingEmbeddings(ctx)
	if err != nil {
		return 0, fmt.Errorf("counting missing embeddings: %w", err)
	}
	if total == 0 {
		logger.Info("No documents missing embeddings")
		return 0, nil
	}
	logger.Info("Backfilling %d documents (batch size %d)", total, batchSize)

	processed := 0
	for {
		docs, err := s.store.ListMissingEmbeddings(ctx, batchSize)
		if err != nil {
			return processed, fmt.Errorf("fetching backfill batch: %w", err)
		}
		if len(docs) == 0 {
			break
		}

		texts := make([]string, len(docs))
		for i := range docs {
			texts[i] = docs[i].EmbeddingText()
		}

		embeddings, err := s.embedder.EmbedBatch(ctx, texts)
		if err != nil {
			return processed, fmt.Errorf("embedding backfill batch: %w", err)
		}
		if len(embeddings) != len(docs) {
			return processed, fmt.Errorf("%w: embedding service returned %d vectors for %d inputs",
				domain.ErrInvalidInput, len(embeddings), len(docs))
		}

		for i := range docs {
			docs[i].Embedding = embeddings[i]
		}
		if err := s.store.SetEmbeddings(ctx, docs); err != nil {
			return processed, fmt.Errorf("writing embeddings batch: %w", err)
		}

		processed += len(docs)
		logger.Debug("Backfilled %d/%d", processed, total)
		if progress != nil {
			progress(processed, total)
		}
	}

	logger.Info("Backfill complete: %d documents", processed)
	return processed, nil
}
