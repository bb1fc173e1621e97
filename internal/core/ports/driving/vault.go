package driving

import (
	"context"

	"github.com/romilly/logseq-searcher/internal/core/domain"
)

// LoadOptions configures a vault ingestion run.
type LoadOptions struct {
	// WithEmbeddings computes an embedding for every document at insert
	// time. When false, embeddings are left NULL for a later backfill.
	WithEmbeddings bool

	// BatchSize bounds how many documents are embedded and inserted per
	// chunk when WithEmbeddings is set. Zero means the default.
	BatchSize int

	// Progress, if non-nil, is invoked after each committed chunk.
	Progress domain.ProgressFunc
}

// VaultLoader ingests a Logseq vault into the document store.
type VaultLoader interface {
	// LoadMarkdownFiles reads every Markdown file directly under dir
	// (non-recursive) into document drafts tagged with docType. Unreadable
	// files are logged and skipped; the rest of the batch proceeds.
	LoadMarkdownFiles(dir string, docType domain.DocType) ([]domain.Document, error)

	// LoadVault ingests the vault's pages/ and journals/ directories and
	// returns per-type counts. Ingestion is append-only: re-running over
	// the same vault inserts duplicates.
	LoadVault(ctx context.Context, root string, opts LoadOptions) (domain.VaultStats, error)
}
