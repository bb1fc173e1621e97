package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/romilly/logseq-searcher/internal/core/domain"
	"github.com/romilly/logseq-searcher/internal/core/ports/driven"
	"github.com/romilly/logseq-searcher/internal/core/ports/driving"
	"github.com/romilly/logseq-searcher/internal/logger"
)

// Ensure VaultService implements the interface.
var _ driving.VaultLoader = (*VaultService)(nil)

const (
	// plainInsertBatch bounds plain inserts. Large because a plain insert
	// is just rows.
	plainInsertBatch = 500

	// defaultEmbedBatch bounds embedding-bearing inserts. Small to keep
	// each embedding request within what the model server handles well.
	defaultEmbedBatch = 32

	markdownExt = ".md"
)

// Vault subdirectories scanned during ingestion.
const (
	pagesDir    = "pages"
	journalsDir = "journals"
)

// VaultService ingests a Logseq vault into the document store.
type VaultService struct {
	store    driven.DocumentStore
	embedder driven.EmbeddingService
}

// NewVaultService creates a vault loader. The embedder may be nil when
// callers never request embeddings at load time.
func NewVaultService(store driven.DocumentStore, embedder driven.EmbeddingService) *VaultService {
	return &VaultService{
		store:    store,
		embedder: embedder,
	}
}

// LoadMarkdownFiles reads every *.md file directly under dir into document
// drafts tagged with docType. The scan is non-recursive. A file that cannot
// be read is logged and skipped; partial success is the policy.
func (s *VaultService) LoadMarkdownFiles(dir string, docType domain.DocType) ([]domain.Document, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading vault directory %s: %w", dir, err)
	}

	var docs []domain.Document //nolint:prealloc // size unknown until filtered
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), markdownExt) {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		raw, err := os.ReadFile(path)
		if err != nil {
			logger.Warn("Skipping unreadable file %s: %v", path, err)
			continue
		}

		// SQLite text columns reject NUL bytes.
		content := strings.ReplaceAll(string(raw), "\x00", "")

		docs = append(docs, domain.Document{
			Filename: entry.Name(),
			DocType:  docType,
			Title:    strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name())),
			Content:  content,
		})
	}

	return docs, nil
}

// InsertDocuments persists a slice of document drafts. When withEmbeddings
// is set, each document is embedded first and stored with its vector;
// otherwise embeddings are left NULL for a later backfill. The whole call
// commits once; any failure abandons the batch.
func (s *VaultService) InsertDocuments(ctx context.Context, docs []domain.Document, withEmbeddings bool) error {
	if s.store == nil {
		return domain.ErrStoreUnavailable
	}
	if len(docs) == 0 {
		return nil
	}

	if !withEmbeddings {
		return s.store.InsertDocuments(ctx, docs)
	}

	if s.embedder == nil {
		return domain.ErrEmbeddingUnavailable
	}

	texts := make([]string, len(docs))
	for i := range docs {
		texts[i] = docs[i].EmbeddingText()
	}

	embeddings, err := s.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return fmt.Errorf("embedding %d documents: %w", len(docs), err)
	}
	if len(embeddings) != len(docs) {
		return fmt.Errorf("%w: embedding service returned %d vectors for %d inputs",
			domain.ErrInvalidInput, len(embeddings), len(docs))
	}

	for i := range docs {
		docs[i].Embedding = embeddings[i]
	}

	return s.store.InsertDocuments(ctx, docs)
}

// LoadVault ingests the vault's pages/ and journals/ directories and
// returns per-type counts. With embeddings enabled, documents are inserted
// in chunks of opts.BatchSize to bound memory and embedding-request size,
// and opts.Progress (if non-nil) is invoked after each chunk.
func (s *VaultService) LoadVault(ctx context.Context, root string, opts driving.LoadOptions) (domain.VaultStats, error) {
	logger.Section("Vault Ingestion")
	logger.Info("Vault root: %s (embeddings=%t)", root, opts.WithEmbeddings)

	pages, err := s.LoadMarkdownFiles(filepath.Join(root, pagesDir), domain.DocTypePage)
	if err != nil {
		return domain.VaultStats{}, err
	}
	journals, err := s.LoadMarkdownFiles(filepath.Join(root, journalsDir), domain.DocTypeJournal)
	if err != nil {
		return domain.VaultStats{}, err
	}

	all := make([]domain.Document, 0, len(pages)+len(journals))
	all = append(all, pages...)
	all = append(all, journals...)

	stats := domain.VaultStats{
		Pages:    len(pages),
		Journals: len(journals),
		Total:    len(all),
	}
	logger.Debug("Loaded %d pages, %d journals", stats.Pages, stats.Journals)

	batchSize := opts.BatchSize
	if batchSize <= 0 {
		if opts.WithEmbeddings {
			batchSize = defaultEmbedBatch
		} else {
			batchSize = plainInsertBatch
		}
	}

	processed := 0
	for start := 0; start < len(all); start += batchSize {
		end := start + batchSize
		if end > len(all) {
			end = len(all)
		}

		if err := s.InsertDocuments(ctx, all[start:end], opts.WithEmbeddings); err != nil {
			return domain.VaultStats{}, fmt.Errorf("inserting batch at %d: %w", start, err)
		}

		processed = end
		logger.Debug("Inserted %d/%d documents", processed, stats.Total)
		if opts.Progress != nil {
			opts.Progress(processed, stats.Total)
		}
	}

	logger.Info("Ingestion complete: %d documents", stats.Total)
	return stats, nil
}
