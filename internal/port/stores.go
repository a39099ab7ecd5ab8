package port

import "paperflow/internal/domain"

// RelationalStore is the normalized authors/articles store. Identity
// generation for both tables lives here and nowhere else.
type RelationalStore interface {
	// InitSchema creates the authors and articles tables if absent.
	InitSchema() error

	// Begin opens one session for a batch. The orchestrator commits once
	// after the whole batch, or rolls back on the first error.
	Begin() (RelationalSession, error)

	// ListArticles reads all article rows joined with their authors.
	ListArticles() ([]domain.ArticleWithAuthor, error)

	Close() error
}

// RelationalSession is a single transaction scope over the relational
// store. Any failure mid-batch must still release the underlying
// connection via Rollback.
type RelationalSession interface {
	// FindAuthor looks up an author by full name, compared
	// case-insensitively. The second return reports whether a row was
	// found.
	FindAuthor(fullName string) (int64, bool, error)

	// InsertAuthor creates a new author row and returns its generated ID.
	InsertAuthor(fullName, title string) (int64, error)

	// InsertArticle creates a new article row unconditionally and returns
	// its generated ID.
	InsertArticle(a domain.Article) (int64, error)

	Commit() error
	Rollback() error
}

// DocumentStore persists denormalized searchable documents and answers
// full-text queries over their text field. Inserts are independent: a
// failed insert does not affect documents already written.
type DocumentStore interface {
	// Insert writes one document and indexes its text. Returns the
	// assigned document ID.
	Insert(doc domain.SearchableDocument) (string, error)

	// SearchText runs a full-text query (terms are OR-combined) and
	// returns up to limit results ordered by descending relevance.
	SearchText(query string, limit int) ([]domain.SearchResult, error)

	Close() error
}
