package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Pipeline.Dimension != 128 {
		t.Errorf("expected Dimension=128, got %d", cfg.Pipeline.Dimension)
	}
	if cfg.Pipeline.MaxResults != 10 {
		t.Errorf("expected MaxResults=10, got %d", cfg.Pipeline.MaxResults)
	}
	if cfg.Search.Limit != 5 {
		t.Errorf("expected Limit=5, got %d", cfg.Search.Limit)
	}
	if !cfg.Arxiv.FetchAbstracts {
		t.Error("expected FetchAbstracts=true by default")
	}
}

func TestLoad_NonExistent(t *testing.T) {
	cfg, err := Load("/nonexistent/path/paperflow.yaml")
	if err != nil {
		t.Errorf("expected no error for non-existent file, got %v", err)
	}
	if cfg == nil {
		t.Error("expected default config, got nil")
	}
}

func TestLoad_ValidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "paperflow.yaml")

	content := `
pipeline:
  dimension: 64
  max_results: 3
arxiv:
  fetch_abstracts: false
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Pipeline.Dimension != 64 {
		t.Errorf("expected Dimension=64, got %d", cfg.Pipeline.Dimension)
	}
	if cfg.Pipeline.MaxResults != 3 {
		t.Errorf("expected MaxResults=3, got %d", cfg.Pipeline.MaxResults)
	}
	if cfg.Arxiv.FetchAbstracts {
		t.Error("expected FetchAbstracts=false")
	}
	if cfg.Search.Limit != 5 {
		t.Errorf("unset fields keep defaults, got Limit=%d", cfg.Search.Limit)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "paperflow.yaml")

	if err := os.WriteFile(configPath, []byte("pipeline: [not a map"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(configPath); err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestLoadFromDir(t *testing.T) {
	tmpDir := t.TempDir()

	cfg, err := LoadFromDir(tmpDir)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Pipeline.Dimension != 128 {
		t.Errorf("expected defaults from empty dir, got %d", cfg.Pipeline.Dimension)
	}

	content := "pipeline:\n  dimension: 32\n"
	if err := os.WriteFile(filepath.Join(tmpDir, "paperflow.yaml"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err = LoadFromDir(tmpDir)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Pipeline.Dimension != 32 {
		t.Errorf("expected Dimension=32 from file, got %d", cfg.Pipeline.Dimension)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "paperflow.yaml")

	cfg := DefaultConfig()
	cfg.Pipeline.Dimension = 256
	if err := cfg.Save(path); err != nil {
		t.Fatal(err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Pipeline.Dimension != 256 {
		t.Errorf("expected Dimension=256 after round trip, got %d", loaded.Pipeline.Dimension)
	}
}

func TestDataDirHelpers(t *testing.T) {
	tmpDir := t.TempDir()

	if err := EnsureDataDir(tmpDir); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(tmpDir, ".paperflow")); err != nil {
		t.Errorf("expected .paperflow dir, got %v", err)
	}

	if got := DocStorePath(tmpDir); got != filepath.Join(tmpDir, ".paperflow", "documents.db") {
		t.Errorf("unexpected doc store path %q", got)
	}
	if got := ArticleDBPath(tmpDir); got != filepath.Join(tmpDir, ".paperflow", "articles.db") {
		t.Errorf("unexpected article db path %q", got)
	}
}
