package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the database schema",
	Long: `Creates the documents table, its full-text index and the triggers
that keep the index in sync.

This is destructive: running it against a populated database drops every
document. Pass --force to confirm on a database that already exists.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "recreate the schema even if the database already has one")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, _ []string) error {
	if err := ensureServices(); err != nil {
		return err
	}
	if schemaCreator == nil {
		return errors.New("document store not configured")
	}

	if documentService != nil && !initForce {
		// A readable count means a schema already exists.
		if counts, err := documentService.CountByType(cmd.Context()); err == nil {
			total := 0
			for _, n := range counts {
				total += n
			}
			if total > 0 {
				return fmt.Errorf("database already contains %d documents; pass --force to drop them", total)
			}
		}
	}

	if err := schemaCreator(cmd.Context()); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}

	cmd.Println("Database schema created.")
	return nil
}
