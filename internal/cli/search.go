package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"paperflow/config"
	"paperflow/internal/adapter/store"
	"paperflow/internal/usecase"
)

var (
	searchQuery string
	searchLimit int
	searchJSON  bool
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search indexed documents",
	Long: `Search the document store with a ranked full-text query. Terms are
combined with OR semantics; results are ordered by relevance.

Examples:
  search -q "Transformer OR Residual"
  search -q "attention" --limit 10 --json`,
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().StringVarP(&searchQuery, "query", "q", "", "search query (required)")
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "l", 0, "number of results (default from config)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output as JSON")
	searchCmd.MarkFlagRequired("query")
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	rootDir := GetRootDir()

	dbPath := config.DocStorePath(rootDir)
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		return fmt.Errorf("no document store found. Run 'ingest' or 'transfer' first")
	}

	docs, err := store.Connect(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open document store: %w", err)
	}
	defer store.CloseShared()

	limit := cfg.Search.Limit
	if searchLimit > 0 {
		limit = searchLimit
	}

	searchUC := usecase.NewSearchUseCase(docs)

	results, err := searchUC.Search(searchQuery, limit)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		output, _ := json.MarshalIndent(results, "", "  ")
		fmt.Println(string(output))
		return nil
	}

	if len(results) == 0 {
		fmt.Println("No results found.")
		return nil
	}

	fmt.Printf("Found %d results for: %s\n\n", len(results), searchQuery)
	for _, r := range results {
		fmt.Printf("- %s (score=%.3f)\n", r.Title, r.Score)
	}

	return nil
}
