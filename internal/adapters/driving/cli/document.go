package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/romilly/logseq-searcher/internal/core/domain"
)

var documentContent bool

var documentCmd = &cobra.Command{
	Use:   "document [id]",
	Short: "Show a document by id",
	Long: `Fetches one document by the id shown in search results. By default
prints the metadata and a content preview; --content prints the full
Markdown body instead.`,
	Args: cobra.ExactArgs(1),
	RunE: runDocument,
}

func init() {
	documentCmd.Flags().BoolVar(&documentContent, "content", false, "print the full content only")
	rootCmd.AddCommand(documentCmd)
}

func runDocument(cmd *cobra.Command, args []string) error {
	if err := ensureServices(); err != nil {
		return err
	}
	if documentService == nil {
		return errors.New("document service not configured")
	}

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid document id %q", args[0])
	}

	doc, err := documentService.Get(cmd.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("no document with id %d", id)
		}
		return fmt.Errorf("fetching document: %w", err)
	}

	if documentContent {
		cmd.Println(doc.Content)
		return nil
	}

	cmd.Printf("Id:       %d\n", doc.ID)
	cmd.Printf("Title:    %s\n", doc.Title)
	cmd.Printf("Type:     %s\n", doc.DocType)
	cmd.Printf("Filename: %s\n", doc.Filename)
	cmd.Printf("Created:  %s\n", doc.CreatedAt.Format("2006-01-02 15:04:05"))
	cmd.Printf("Embedded: %t\n", len(doc.Embedding) > 0)
	cmd.Println()

	preview := doc.Content
	if len(preview) > 500 {
		preview = preview[:500] + "..."
	}
	cmd.Println(preview)
	return nil
}
