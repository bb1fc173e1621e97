// Package cli implements the command-line interface.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/romilly/logseq-searcher/internal/adapters/driven/config/file"
	"github.com/romilly/logseq-searcher/internal/adapters/driven/embedding/ollama"
	"github.com/romilly/logseq-searcher/internal/adapters/driven/storage/sqlite"
	"github.com/romilly/logseq-searcher/internal/core/ports/driving"
	"github.com/romilly/logseq-searcher/internal/core/services"
	"github.com/romilly/logseq-searcher/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Services are package-level so tests can inject fakes. ensureServices
// wires the real adapters only when nothing is injected.
var (
	cfg             *file.Config
	vaultService    driving.VaultLoader
	backfillService driving.BackfillOperator
	searchService   driving.SearchService
	documentService driving.DocumentService
	schemaCreator   func(ctx context.Context) error
)

var (
	verbose    bool
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "logseq-searcher",
	Short: "Search a Logseq vault with keyword, semantic and hybrid queries",
	Long: `logseq-searcher ingests a Logseq Markdown vault into a local SQLite
database and searches it three ways: keyword (BM25 full-text), semantic
(embedding similarity via Ollama), and a hybrid of both.

Typical workflow:

  logseq-searcher init                 # create the database schema
  logseq-searcher load ~/logseq        # ingest the vault
  logseq-searcher backfill             # add embeddings to existing rows
  logseq-searcher search "my query"    # search`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file (default ~/.logseq-searcher/config.toml)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ensureServices wires the real adapters from configuration. It is a
// no-op when services are already present, which is how tests inject
// fakes without touching config or disk.
func ensureServices() error {
	if searchService != nil {
		return nil
	}

	var err error
	cfg, err = file.Load(configPath)
	if err != nil {
		return err
	}

	store, err := sqlite.NewStore(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("opening document store: %w", err)
	}

	embedder, err := ollama.NewEmbeddingService(ollama.Config{
		BaseURL: cfg.Ollama.Host,
		Model:   cfg.Ollama.Model,
	})
	if err != nil {
		return fmt.Errorf("configuring embedding service: %w", err)
	}

	docs := store.DocumentStore()
	vaultService = services.NewVaultService(docs, embedder)
	backfillService = services.NewBackfillService(docs, embedder)
	searchService = services.NewSearchService(store.SearchIndex(), embedder)
	documentService = services.NewDocumentService(docs)
	schemaCreator = docs.CreateSchema
	return nil
}
