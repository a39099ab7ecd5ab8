package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the pipeline.
type Config struct {
	Pipeline PipelineConfig `yaml:"pipeline"`
	Arxiv    ArxivConfig    `yaml:"arxiv"`
	Search   SearchConfig   `yaml:"search"`
}

// PipelineConfig holds batch and embedding configuration.
type PipelineConfig struct {
	Dimension  int    `yaml:"dimension"`   // embedding length
	MaxResults int    `yaml:"max_results"` // batch size for API fetches
	PapersDir  string `yaml:"papers_dir"`  // local paper files for the transfer flow
}

// ArxivConfig holds the external article source endpoints.
type ArxivConfig struct {
	APIURL         string `yaml:"api_url"`
	AbsURL         string `yaml:"abs_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	FetchAbstracts bool   `yaml:"fetch_abstracts"`
}

// SearchConfig holds query defaults.
type SearchConfig struct {
	Limit int `yaml:"limit"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Pipeline: PipelineConfig{
			Dimension:  128,
			MaxResults: 10,
			PapersDir:  "papers",
		},
		Arxiv: ArxivConfig{
			APIURL:         "", // package default: export.arxiv.org
			AbsURL:         "", // package default: arxiv.org/abs
			TimeoutSeconds: 20,
			FetchAbstracts: true,
		},
		Search: SearchConfig{
			Limit: 5,
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromDir loads configuration from a directory (looks for
// paperflow.yaml).
func LoadFromDir(dir string) (*Config, error) {
	path := filepath.Join(dir, "paperflow.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}
	return DefaultConfig(), nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ArticleDBPath returns the fallback SQLite file for the relational
// store, used when no PAPERDB_* environment is configured.
func ArticleDBPath(dir string) string {
	return filepath.Join(dir, ".paperflow", "articles.db")
}

// DocStorePath returns the path to the document store file.
func DocStorePath(dir string) string {
	return filepath.Join(dir, ".paperflow", "documents.db")
}

// EnsureDataDir ensures the .paperflow directory exists.
func EnsureDataDir(dir string) error {
	return os.MkdirAll(filepath.Join(dir, ".paperflow"), 0755)
}
