package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/romilly/logseq-searcher/internal/core/domain"
)

// Search modes accepted by --mode.
const (
	modeKeyword  = "keyword"
	modeAdvanced = "advanced"
	modeSemantic = "semantic"
	modeHybrid   = "hybrid"
)

var (
	searchMode      string
	searchLimit     int
	searchDocType   string
	searchJSON      bool
	searchFTSWeight float64
	searchSemWeight float64
	searchFloor     float64
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the vault",
	Long: `Searches the ingested vault. The mode selects how:

  keyword   every term must match, ranked by BM25 with titles weighted up
  advanced  keyword syntax plus "quoted phrases", OR and -exclusion
  semantic  embedding similarity to the query, highest first
  hybrid    weighted blend of keyword rank and semantic similarity`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVarP(&searchMode, "mode", "m", modeHybrid, "search mode: keyword, advanced, semantic or hybrid")
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 10, "maximum number of results")
	searchCmd.Flags().StringVarP(&searchDocType, "type", "t", "", "restrict to a doc type: page or journal")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	searchCmd.Flags().Float64Var(&searchFTSWeight, "fts-weight", 0, "hybrid: keyword rank weight (0 for the default)")
	searchCmd.Flags().Float64Var(&searchSemWeight, "semantic-weight", 0, "hybrid: similarity weight (0 for the default)")
	searchCmd.Flags().Float64Var(&searchFloor, "similarity-floor", 0, "hybrid: inclusion floor for non-keyword matches (0 for the default)")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if err := ensureServices(); err != nil {
		return err
	}
	if searchService == nil {
		return errors.New("search service not configured")
	}

	query := args[0]
	docType := domain.DocType(searchDocType)
	if searchDocType != "" && !docType.Valid() {
		return fmt.Errorf("unknown doc type %q (want page or journal)", searchDocType)
	}

	ctx := cmd.Context()
	switch searchMode {
	case modeKeyword:
		results, err := searchService.Search(ctx, query, searchLimit, docType)
		if err != nil {
			return fmt.Errorf("search failed: %w", err)
		}
		return outputLexical(cmd, results)

	case modeAdvanced:
		results, err := searchService.AdvancedSearch(ctx, query, searchLimit)
		if err != nil {
			return fmt.Errorf("search failed: %w", err)
		}
		return outputLexical(cmd, results)

	case modeSemantic:
		results, err := searchService.SemanticSearch(ctx, query, searchLimit, docType)
		if err != nil {
			return fmt.Errorf("search failed: %w", err)
		}
		return outputSemantic(cmd, results)

	case modeHybrid:
		opts := domain.HybridOptions{
			Limit:           searchLimit,
			DocType:         docType,
			FTSWeight:       searchFTSWeight,
			SemanticWeight:  searchSemWeight,
			SimilarityFloor: searchFloor,
		}
		if opts.FTSWeight == 0 && opts.SemanticWeight == 0 && cfg != nil {
			opts.FTSWeight = cfg.Search.FTSWeight
			opts.SemanticWeight = cfg.Search.SemanticWeight
		}
		if opts.SimilarityFloor == 0 && cfg != nil {
			opts.SimilarityFloor = cfg.Search.SimilarityFloor
		}
		results, err := searchService.HybridSearch(ctx, query, opts)
		if err != nil {
			return fmt.Errorf("search failed: %w", err)
		}
		return outputHybrid(cmd, results)

	default:
		return fmt.Errorf("unknown search mode %q", searchMode)
	}
}

func outputLexical(cmd *cobra.Command, results []domain.LexicalResult) error {
	if searchJSON {
		return outputJSON(cmd, results)
	}
	if len(results) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	cmd.Println("Results:")
	cmd.Println()
	for i, r := range results {
		cmd.Printf("  [%d] %s (%s, id %d, rank %.2f)\n", i+1, r.Title, r.DocType, r.ID, r.Rank)
		printSnippet(cmd, r.Snippet)
	}
	return nil
}

func outputSemantic(cmd *cobra.Command, results []domain.SemanticResult) error {
	if searchJSON {
		return outputJSON(cmd, results)
	}
	if len(results) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	cmd.Println("Results:")
	cmd.Println()
	for i, r := range results {
		cmd.Printf("  [%d] %s (%s, id %d, similarity %.3f)\n", i+1, r.Title, r.DocType, r.ID, r.Similarity)
		printSnippet(cmd, r.Snippet)
	}
	return nil
}

func outputHybrid(cmd *cobra.Command, results []domain.HybridResult) error {
	if searchJSON {
		return outputJSON(cmd, results)
	}
	if len(results) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	cmd.Println("Results:")
	cmd.Println()
	for i, r := range results {
		cmd.Printf("  [%d] %s (%s, id %d, score %.3f = rank %.2f + sim %.3f)\n",
			i+1, r.Title, r.DocType, r.ID, r.Combined, r.FTSRank, r.Similarity)
		printSnippet(cmd, r.Snippet)
	}
	return nil
}

func outputJSON(cmd *cobra.Command, results any) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

// printSnippet renders the engine's highlight sentinels as brackets so
// matches stand out in a plain terminal.
func printSnippet(cmd *cobra.Command, snippet string) {
	if snippet == "" {
		cmd.Println()
		return
	}
	snippet = strings.ReplaceAll(snippet, domain.SnippetStart, "[")
	snippet = strings.ReplaceAll(snippet, domain.SnippetEnd, "]")
	snippet = strings.ReplaceAll(snippet, "\n", " ")
	cmd.Printf("      %s\n\n", snippet)
}
