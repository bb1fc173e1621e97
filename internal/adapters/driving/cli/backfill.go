package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var backfillBatchSize int

var backfillCmd = &cobra.Command{
	Use:   "backfill",
	Short: "Add embeddings to documents that lack them",
	Long: `Embeds every document whose embedding column is still empty, one
batch at a time. Each batch commits independently, so an interrupted run
keeps the progress it made and can simply be re-run.`,
	Args: cobra.NoArgs,
	RunE: runBackfill,
}

func init() {
	backfillCmd.Flags().IntVar(&backfillBatchSize, "batch-size", 0, "documents per embedding batch (0 for the default)")
	rootCmd.AddCommand(backfillCmd)
}

func runBackfill(cmd *cobra.Command, _ []string) error {
	if err := ensureServices(); err != nil {
		return err
	}
	if backfillService == nil {
		return errors.New("backfill service not configured")
	}

	processed, err := backfillService.AddEmbeddings(cmd.Context(), backfillBatchSize,
		func(done, total int) {
			cmd.Printf("\rEmbedded %d/%d documents", done, total)
		})
	if err != nil {
		cmd.Println()
		return fmt.Errorf("backfill failed: %w", err)
	}

	if processed == 0 {
		cmd.Println("All documents already have embeddings.")
		return nil
	}
	cmd.Println()
	cmd.Printf("Backfill complete: %d documents embedded.\n", processed)
	return nil
}
