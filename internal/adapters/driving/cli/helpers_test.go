package cli

import (
	"bytes"
	"context"
	"fmt"

	"github.com/romilly/logseq-searcher/internal/core/domain"
	"github.com/romilly/logseq-searcher/internal/core/ports/driving"
)

// stubVaultLoader satisfies driving.VaultLoader with canned stats.
type stubVaultLoader struct {
	stats    domain.VaultStats
	lastRoot string
	lastOpts driving.LoadOptions
	failWith error
}

func (s *stubVaultLoader) LoadMarkdownFiles(dir string, docType domain.DocType) ([]domain.Document, error) {
	return nil, nil
}

func (s *stubVaultLoader) LoadVault(ctx context.Context, root string, opts driving.LoadOptions) (domain.VaultStats, error) {
	s.lastRoot = root
	s.lastOpts = opts
	if s.failWith != nil {
		return domain.VaultStats{}, s.failWith
	}
	if opts.Progress != nil {
		opts.Progress(s.stats.Total, s.stats.Total)
	}
	return s.stats, nil
}

// stubBackfill satisfies driving.BackfillOperator.
type stubBackfill struct {
	processed int
	failWith  error
}

func (s *stubBackfill) AddEmbeddings(ctx context.Context, batchSize int, progress domain.ProgressFunc) (int, error) {
	if s.failWith != nil {
		return 0, s.failWith
	}
	if progress != nil && s.processed > 0 {
		progress(s.processed, s.processed)
	}
	return s.processed, nil
}

// stubSearch satisfies driving.SearchService with canned results and
// records which method ran last.
type stubSearch struct {
	lexical  []domain.LexicalResult
	semantic []domain.SemanticResult
	hybrid   []domain.HybridResult
	lastMode string
	lastOpts domain.HybridOptions
	failWith error
}

func (s *stubSearch) Search(ctx context.Context, query string, limit int, docType domain.DocType) ([]domain.LexicalResult, error) {
	s.lastMode = modeKeyword
	return s.lexical, s.failWith
}

func (s *stubSearch) AdvancedSearch(ctx context.Context, query string, limit int) ([]domain.LexicalResult, error) {
	s.lastMode = modeAdvanced
	return s.lexical, s.failWith
}

func (s *stubSearch) SemanticSearch(ctx context.Context, query string, limit int, docType domain.DocType) ([]domain.SemanticResult, error) {
	s.lastMode = modeSemantic
	return s.semantic, s.failWith
}

func (s *stubSearch) HybridSearch(ctx context.Context, query string, opts domain.HybridOptions) ([]domain.HybridResult, error) {
	s.lastMode = modeHybrid
	s.lastOpts = opts
	return s.hybrid, s.failWith
}

// stubDocuments satisfies driving.DocumentService.
type stubDocuments struct {
	docs   map[int64]domain.Document
	counts map[domain.DocType]int
}

func (s *stubDocuments) Get(ctx context.Context, id int64) (*domain.Document, error) {
	doc, ok := s.docs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &doc, nil
}

func (s *stubDocuments) CountByType(ctx context.Context) (map[domain.DocType]int, error) {
	return s.counts, nil
}

// setupTestServices injects fakes for every service and returns a
// cleanup that restores the unwired state.
func setupTestServices() func() {
	vaultService = &stubVaultLoader{stats: domain.VaultStats{Pages: 2, Journals: 1, Total: 3}}
	backfillService = &stubBackfill{processed: 3}
	searchService = &stubSearch{
		lexical: []domain.LexicalResult{
			{ID: 1, Filename: "alpha.md", DocType: domain.DocTypePage, Title: "alpha", Rank: 2.5,
				Snippet: "some >>>alpha<<< text"},
		},
		semantic: []domain.SemanticResult{
			{ID: 1, Filename: "alpha.md", DocType: domain.DocTypePage, Title: "alpha", Similarity: 0.91,
				Snippet: "some alpha text"},
		},
		hybrid: []domain.HybridResult{
			{ID: 1, Filename: "alpha.md", DocType: domain.DocTypePage, Title: "alpha",
				FTSRank: 2.5, Similarity: 0.91, Combined: 1.705, Snippet: "some >>>alpha<<< text"},
		},
	}
	documentService = &stubDocuments{
		docs: map[int64]domain.Document{
			1: {ID: 1, Filename: "alpha.md", DocType: domain.DocTypePage, Title: "alpha", Content: "alpha body"},
		},
		counts: map[domain.DocType]int{domain.DocTypePage: 2, domain.DocTypeJournal: 1},
	}
	schemaCreator = func(ctx context.Context) error { return nil }

	return func() {
		vaultService = nil
		backfillService = nil
		searchService = nil
		documentService = nil
		schemaCreator = nil
		cfg = nil
	}
}

// execute runs the root command with args and captures combined output.
func execute(args ...string) (string, error) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return buf.String(), err
}

var errStub = fmt.Errorf("stub failure")
