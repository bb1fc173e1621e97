package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/romilly/logseq-searcher/internal/core/ports/driving"
)

var (
	loadEmbeddings bool
	loadBatchSize  int
)

var loadCmd = &cobra.Command{
	Use:   "load [vault-path]",
	Short: "Ingest a Logseq vault",
	Long: `Reads every Markdown file under the vault's pages/ and journals/
directories and inserts them into the database.

Loading is append-only: running it twice against the same vault inserts
every document twice. With --embeddings, each document is embedded as it
is loaded; without it, embeddings can be added later with backfill.`,
	Args: cobra.ExactArgs(1),
	RunE: runLoad,
}

func init() {
	loadCmd.Flags().BoolVar(&loadEmbeddings, "embeddings", false, "generate embeddings while loading")
	loadCmd.Flags().IntVar(&loadBatchSize, "batch-size", 0, "documents per insert batch (0 for the default)")
	rootCmd.AddCommand(loadCmd)
}

func runLoad(cmd *cobra.Command, args []string) error {
	if err := ensureServices(); err != nil {
		return err
	}
	if vaultService == nil {
		return errors.New("vault service not configured")
	}

	cmd.Printf("Loading vault %s...\n", args[0])

	stats, err := vaultService.LoadVault(cmd.Context(), args[0], driving.LoadOptions{
		WithEmbeddings: loadEmbeddings,
		BatchSize:      loadBatchSize,
		Progress: func(processed, total int) {
			cmd.Printf("\rInserted %d/%d documents", processed, total)
		},
	})
	if err != nil {
		cmd.Println()
		return fmt.Errorf("load failed: %w", err)
	}

	cmd.Println()
	cmd.Printf("Loaded %d pages and %d journals (%d documents).\n",
		stats.Pages, stats.Journals, stats.Total)
	if !loadEmbeddings {
		cmd.Println("Run 'logseq-searcher backfill' to enable semantic search.")
	}
	return nil
}
