package source

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"paperflow/internal/domain"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "articles.csv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestCSVFetch(t *testing.T) {
	path := writeCSV(t, `title,summary,file_path,arxiv_id,author_full_name,author_title
Attention Is All You Need,Sequence transduction.,papers/attention.pdf,1706.03762,Ashish Vaswani,Dr.
Notes on Analytical Engines,Early computation.,papers/engines.pdf,0000.00001,Ada Lovelace,
`)

	records, err := NewCSVSource(path).Fetch()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}

	if records[0].ArxivID != "1706.03762" {
		t.Errorf("unexpected arxiv_id %q", records[0].ArxivID)
	}
	if records[1].AuthorFullName != "Ada Lovelace" {
		t.Errorf("unexpected author %q", records[1].AuthorFullName)
	}
	if records[1].AuthorTitle != "" {
		t.Errorf("expected empty author_title, got %q", records[1].AuthorTitle)
	}
}

func TestCSVFetchShuffledColumns(t *testing.T) {
	path := writeCSV(t, `arxiv_id,author_full_name,title,summary,file_path,author_title
1706.03762,Ashish Vaswani,Attention,Summary text,papers/a.pdf,Dr.
`)

	records, err := NewCSVSource(path).Fetch()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if records[0].Title != "Attention" || records[0].FilePath != "papers/a.pdf" {
		t.Errorf("columns mapped wrong: %+v", records[0])
	}
}

func TestCSVFetchMissingColumn(t *testing.T) {
	path := writeCSV(t, `title,summary,file_path,arxiv_id,author_full_name
Attention,Summary,papers/a.pdf,1706.03762,Ashish Vaswani
`)

	_, err := NewCSVSource(path).Fetch()
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for missing column, got %v", err)
	}
}

func TestCSVFetchMissingFile(t *testing.T) {
	_, err := NewCSVSource(filepath.Join(t.TempDir(), "nope.csv")).Fetch()
	if !errors.Is(err, domain.ErrFetch) {
		t.Fatalf("expected ErrFetch for missing file, got %v", err)
	}
}
