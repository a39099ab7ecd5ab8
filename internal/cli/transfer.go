package cli

import (
	"fmt"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"paperflow/config"
	"paperflow/internal/adapter/embedding"
	"paperflow/internal/adapter/extract"
	"paperflow/internal/adapter/fs"
	"paperflow/internal/adapter/store"
	"paperflow/internal/usecase"
)

var transferPapersDir string

var transferCmd = &cobra.Command{
	Use:   "transfer",
	Short: "Transfer relational rows into the document store",
	Long: `Read every article row back from the relational store, extract the text
of its paper file, and insert one searchable document per row. Rows whose
paper file cannot be found or read still produce a document, with
placeholder text.

Examples:
  transfer
  transfer --papers /data/papers`,
	RunE: runTransfer,
}

func init() {
	rootCmd.AddCommand(transferCmd)
	transferCmd.Flags().StringVar(&transferPapersDir, "papers", "", "directory holding the paper files (default from config)")
}

func runTransfer(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	rootDir := GetRootDir()

	papersDir := transferPapersDir
	if papersDir == "" {
		papersDir = cfg.Pipeline.PapersDir
	}
	if !filepath.IsAbs(papersDir) {
		papersDir = filepath.Join(rootDir, papersDir)
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

	transferUC := usecase.NewTransferUseCase(
		rel,
		docs,
		embedding.NewHashingEmbedder(cfg.Pipeline.Dimension),
		fs.NewResolver(papersDir),
		extract.NewMarkdownExtractor(),
	)

	fmt.Printf("Transferring articles from %s...\n", papersDir)

	var bar *progressbar.ProgressBar
	progress := func(done, total int) {
		if bar == nil {
			bar = progressbar.NewOptions(total,
				progressbar.OptionEnableColorCodes(true),
				progressbar.OptionShowBytes(false),
				progressbar.OptionSetWidth(40),
				progressbar.OptionShowCount(),
				progressbar.OptionSetDescription("[cyan]Transferring[reset]"),
				progressbar.OptionOnCompletion(func() {
					fmt.Println()
				}),
			)
		}
		bar.Set(done)
	}

	report, err := transferUC.Run(progress)
	if err != nil {
		return fmt.Errorf("transfer failed: %w", err)
	}

	fmt.Printf("Transfer complete: %d documents inserted\n", report.DocumentsInserted)
	for _, e := range report.Errors {
		fmt.Printf("  warning: %s\n", e)
	}

	return nil
}
