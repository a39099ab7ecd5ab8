package usecase

import (
	"fmt"

	"paperflow/internal/domain"
	"paperflow/internal/port"
)

// LoadUseCase drives the relational-only load: a batch of raw records
// (typically from CSV) inserted into authors and articles in a single
// transaction, with no document-store writes. Pairs with TransferUseCase
// to reproduce the two-step deployment.
type LoadUseCase struct {
	source port.ArticleSource
	rel    port.RelationalStore
}

// NewLoadUseCase creates the relational load orchestrator.
func NewLoadUseCase(source port.ArticleSource, rel port.RelationalStore) *LoadUseCase {
	return &LoadUseCase{source: source, rel: rel}
}

// Run loads the whole batch and returns (authorsCreated, articlesCreated).
// The article count equals the input row count on success; the author
// count is at most the number of distinct trimmed names in the batch.
func (u *LoadUseCase) Run() (*domain.LoadReport, error) {
	records, err := u.source.Fetch()
	if err != nil {
		return nil, err
	}

	if err := u.rel.InitSchema(); err != nil {
		return nil, err
	}

	sess, err := u.rel.Begin()
	if err != nil {
		return nil, err
	}
	defer sess.Rollback()

	resolver := NewAuthorResolver(sess)
	report := &domain.LoadReport{}

	for _, rec := range records {
		authorID, err := resolver.Resolve(rec.AuthorFullName, rec.AuthorTitle)
		if err != nil {
			return nil, fmt.Errorf("record %s: %w", rec.ArxivID, err)
		}
		if _, err := sess.InsertArticle(domain.Article{
			Title:    rec.Title,
			Summary:  rec.Summary,
			FilePath: rec.FilePath,
			ArxivID:  rec.ArxivID,
			AuthorID: authorID,
		}); err != nil {
			return nil, fmt.Errorf("record %s: %w", rec.ArxivID, err)
		}
		report.ArticlesCreated++
	}

	if err := sess.Commit(); err != nil {
		return nil, err
	}

	report.AuthorsCreated = resolver.Created()
	return report, nil
}
