package domain

// RawRecord is one normalized input record, regardless of whether it came
// from the arXiv API or a CSV file. HTMLContent is optional supplementary
// markup fetched per record; empty means "fall back to Summary".
type RawRecord struct {
	Title          string
	Summary        string
	FilePath       string
	ArxivID        string
	AuthorFullName string
	AuthorTitle    string
	HTMLContent    string
}

// Author is a row in the relational store. FullName is the dedup key,
// compared trimmed and case-insensitively. Rows are never mutated or
// deleted.
type Author struct {
	ID       int64
	FullName string
	Title    string
}

// Article is a row in the relational store. Insert-only: re-ingestion
// creates a new row, there is no upsert by arxiv_id.
type Article struct {
	ID       int64
	Title    string
	Summary  string
	FilePath string
	ArxivID  string
	AuthorID int64
}

// ArticleWithAuthor joins an article with its author row, as read back by
// the transfer flow.
type ArticleWithAuthor struct {
	Article Article
	Author  Author
}

// EmbeddedAuthor is the denormalized author copy carried inside a
// searchable document. It is a value, not a reference.
type EmbeddedAuthor struct {
	FullName string `json:"full_name"`
	Title    string `json:"title,omitempty"`
}

// SearchableDocument is the denormalized record persisted to the document
// store. Embedding always has the configured dimension and unit L2 norm,
// or is all zeros when Text had no tokens. AuthorID and ArticleID are
// correlation IDs copied from the relational store, not enforced keys.
type SearchableDocument struct {
	Title     string         `json:"title"`
	Summary   string         `json:"summary"`
	FilePath  string         `json:"file_path"`
	ArxivID   string         `json:"arxiv_id"`
	Author    EmbeddedAuthor `json:"author"`
	Text      string         `json:"text"`
	Embedding []float64      `json:"embedding"`
	AuthorID  int64          `json:"author_id,omitempty"`
	ArticleID int64          `json:"article_id,omitempty"`
}

// SearchResult is one full-text hit, most relevant first.
type SearchResult struct {
	Title string  `json:"title"`
	Score float64 `json:"score"`
}

// Posting records one document's term frequency in the text index.
type Posting struct {
	DocID string
	TF    int
}

// IngestReport aggregates the counts of one fetch-flow run. Errors holds
// per-document persistence failures that did not abort the batch.
type IngestReport struct {
	AuthorsCreated    int
	ArticlesCreated   int
	DocumentsInserted int
	Errors            []string
}

// LoadReport aggregates the counts of one CSV relational load.
type LoadReport struct {
	AuthorsCreated  int
	ArticlesCreated int
}

// TransferReport aggregates the counts of one transfer run. Errors holds
// per-document persistence failures that did not abort the batch.
type TransferReport struct {
	DocumentsInserted int
	Errors            []string
}
