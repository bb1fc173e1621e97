package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/romilly/logseq-searcher/internal/core/domain"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show document counts by type",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, _ []string) error {
	if err := ensureServices(); err != nil {
		return err
	}
	if documentService == nil {
		return errors.New("document service not configured")
	}

	counts, err := documentService.CountByType(cmd.Context())
	if err != nil {
		return fmt.Errorf("fetching stats: %w", err)
	}

	total := 0
	for _, n := range counts {
		total += n
	}

	cmd.Printf("Pages:    %d\n", counts[domain.DocTypePage])
	cmd.Printf("Journals: %d\n", counts[domain.DocTypeJournal])
	cmd.Printf("Total:    %d\n", total)
	return nil
}
