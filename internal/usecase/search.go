package usecase

import (
	"paperflow/internal/domain"
	"paperflow/internal/port"
)

// SearchUseCase answers full-text queries over the persisted documents.
type SearchUseCase struct {
	docs port.DocumentStore
}

// NewSearchUseCase creates the search service.
func NewSearchUseCase(docs port.DocumentStore) *SearchUseCase {
	return &SearchUseCase{docs: docs}
}

// Search runs the query against the text index and returns up to limit
// (title, score) pairs, most relevant first. An empty result set is a
// valid answer, not an error.
func (u *SearchUseCase) Search(query string, limit int) ([]domain.SearchResult, error) {
	if limit <= 0 {
		limit = 5
	}
	return u.docs.SearchText(query, limit)
}
