package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"paperflow/config"
	"paperflow/internal/adapter/source"
	"paperflow/internal/adapter/store"
	"paperflow/internal/usecase"
)

var loadCmd = &cobra.Command{
	Use:   "load [csv-file]",
	Short: "Load a CSV file into the relational store",
	Long: `Load article metadata from a CSV file into the relational store.
The file must carry a header row naming title, summary, file_path,
arxiv_id, author_full_name and author_title columns, in any order.

Example:
  load data/articles.csv`,
	Args: cobra.ExactArgs(1),
	RunE: runLoad,
}

func init() {
	rootCmd.AddCommand(loadCmd)
}

func runLoad(cmd *cobra.Command, args []string) error {
	rootDir := GetRootDir()

	csvPath, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("invalid path: %w", err)
	}

	if err := config.EnsureDataDir(rootDir); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	rel, err := store.OpenFromEnv(config.ArticleDBPath(rootDir))
	if err != nil {
		return fmt.Errorf("failed to open article store: %w", err)
	}
	defer rel.Close()

	loadUC := usecase.NewLoadUseCase(source.NewCSVSource(csvPath), rel)

	report, err := loadUC.Run()
	if err != nil {
		return fmt.Errorf("load failed: %w", err)
	}

	fmt.Printf("Load complete: %d authors created, %d articles created\n",
		report.AuthorsCreated, report.ArticlesCreated)

	return nil
}
