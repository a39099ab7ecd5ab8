package cli

import (
	"fmt"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"paperflow/config"
	"paperflow/internal/adapter/embedding"
	"paperflow/internal/adapter/source"
	"paperflow/internal/adapter/store"
	"paperflow/internal/port"
	"paperflow/internal/usecase"
)

var (
	ingestQuery      string
	ingestMaxResults int
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Fetch articles from arXiv and write both stores",
	Long: `Fetch article metadata from the arXiv API, normalize it, and write the
batch into the relational store (one transaction) and the document store
(per-record inserts).

Examples:
  ingest -q "transformer"
  ingest -q "diffusion models" -n 25`,
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
	ingestCmd.Flags().StringVarP(&ingestQuery, "query", "q", "", "arXiv search query (required)")
	ingestCmd.Flags().IntVarP(&ingestMaxResults, "max-results", "n", 0, "number of results to fetch (default from config)")
	ingestCmd.MarkFlagRequired("query")
}

func runIngest(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	rootDir := GetRootDir()

	maxResults := cfg.Pipeline.MaxResults
	if ingestMaxResults > 0 {
		maxResults = ingestMaxResults
	}
	timeout := time.Duration(cfg.Arxiv.TimeoutSeconds) * time.Second

	src := source.NewArxivSource(cfg.Arxiv.APIURL, ingestQuery, maxResults, timeout)

	var fetcher port.ContentFetcher
	if cfg.Arxiv.FetchAbstracts {
		fetcher = source.NewAbstractFetcher(cfg.Arxiv.AbsURL, timeout)
	}

	if err := config.EnsureDataDir(rootDir); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	rel, err := store.OpenFromEnv(config.ArticleDBPath(rootDir))
	if err != nil {
		return fmt.Errorf("failed to open article store: %w", err)
	}
	defer rel.Close()

	docs, err := store.Connect(config.DocStorePath(rootDir))
	if err != nil {
		return fmt.Errorf("failed to open document store: %w", err)
	}
	defer store.CloseShared()

	emb := embedding.NewHashingEmbedder(cfg.Pipeline.Dimension)

	ingestUC := usecase.NewIngestUseCase(src, fetcher, rel, docs, emb)

	fmt.Printf("Fetching up to %d articles for: %s\n", maxResults, ingestQuery)

	var bar *progressbar.ProgressBar
	progress := func(done, total int) {
		if bar == nil {
			bar = progressbar.NewOptions(total,
				progressbar.OptionEnableColorCodes(true),
				progressbar.OptionShowBytes(false),
				progressbar.OptionSetWidth(40),
				progressbar.OptionShowCount(),
				progressbar.OptionSetDescription("[cyan]Indexing[reset]"),
				progressbar.OptionOnCompletion(func() {
					fmt.Println()
				}),
			)
		}
		bar.Set(done)
	}

	report, err := ingestUC.Run(progress)
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}

	fmt.Printf("Ingest complete: %d authors created, %d articles created, %d documents inserted\n",
		report.AuthorsCreated, report.ArticlesCreated, report.DocumentsInserted)
	for _, e := range report.Errors {
		fmt.Printf("  warning: %s\n", e)
	}

	return nil
}
