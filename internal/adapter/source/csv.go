package source

import (
	"encoding/csv"
	"fmt"
	"os"

	"paperflow/internal/domain"
)

// requiredColumns is the CSV header contract, in no particular order.
var requiredColumns = []string{
	"title", "summary", "file_path", "arxiv_id", "author_full_name", "author_title",
}

// CSVSource reads one batch of raw records from a CSV file with the six
// required logical columns.
type CSVSource struct {
	path string
}

// NewCSVSource creates a source for the given file path.
func NewCSVSource(path string) *CSVSource {
	return &CSVSource{path: path}
}

// Fetch reads and validates the whole file. A missing file is a fetch
// failure; a missing required column is a validation failure.
func (s *CSVSource) Fetch() ([]domain.RawRecord, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: open csv %s: %v", domain.ErrFetch, s.path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: read csv %s: %v", domain.ErrFetch, s.path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: csv %s has no header row", domain.ErrValidation, s.path)
	}

	cols := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		cols[name] = i
	}
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("%w: csv %s missing column %q", domain.ErrValidation, s.path, name)
		}
	}

	records := make([]domain.RawRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		records = append(records, domain.RawRecord{
			Title:          row[cols["title"]],
			Summary:        row[cols["summary"]],
			FilePath:       row[cols["file_path"]],
			ArxivID:        row[cols["arxiv_id"]],
			AuthorFullName: row[cols["author_full_name"]],
			AuthorTitle:    row[cols["author_title"]],
		})
	}
	return records, nil
}
