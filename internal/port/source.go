package port

import "paperflow/internal/domain"

// ArticleSource produces one bounded batch of raw records from an external
// source (arXiv API query or CSV file).
type ArticleSource interface {
	Fetch() ([]domain.RawRecord, error)
}

// ContentFetcher retrieves supplementary markup for a record, keyed by its
// external identifier. A failed fetch returns an empty string, not an
// error; the pipeline falls back to the record's summary.
type ContentFetcher interface {
	FetchContent(arxivID string) string
}
