package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"paperflow/config"
)

var (
	cfgFile string
	cfg     *config.Config
	rootDir string
)

var rootCmd = &cobra.Command{
	Use:   "paperflow",
	Short: "Ingest scholarly article metadata into relational and document stores",
	Long: `paperflow ingests scholarly article metadata from the arXiv API or a CSV
file, enriches each record with extracted text and a deterministic
embedding, and writes the result into a normalized relational store and
a full-text-searchable document store.

Example usage:
  paperflow ingest -q "transformer"       # fetch from arXiv, dual-write
  paperflow load data/articles.csv        # CSV into the relational store
  paperflow transfer --papers ./papers    # relational rows into documents
  paperflow search -q "Transformer OR Residual"`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error

		if rootDir == "" {
			rootDir, err = os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get working directory: %w", err)
			}
		}

		if cfgFile != "" {
			cfg, err = config.Load(cfgFile)
		} else {
			cfg, err = config.LoadFromDir(rootDir)
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./paperflow.yaml)")
	rootCmd.PersistentFlags().StringVarP(&rootDir, "dir", "d", "", "root directory (default is current directory)")
}

func GetConfig() *config.Config {
	return cfg
}

func GetRootDir() string {
	return rootDir
}
