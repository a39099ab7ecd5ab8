package usecase

import (
	"fmt"

	"paperflow/internal/domain"
	"paperflow/internal/port"
)

// TransferUseCase drives the transfer flow: existing article rows are
// read back with their authors, the recorded paper file is located and
// extracted, and one searchable document is written per row. No
// relational writes happen in this flow; the IDs already exist.
type TransferUseCase struct {
	rel       port.RelationalStore
	docs      port.DocumentStore
	embedder  port.Embedder
	resolver  port.FileResolver
	extractor port.Extractor
}

// NewTransferUseCase creates the transfer-flow orchestrator.
func NewTransferUseCase(
	rel port.RelationalStore,
	docs port.DocumentStore,
	embedder port.Embedder,
	resolver port.FileResolver,
	extractor port.Extractor,
) *TransferUseCase {
	return &TransferUseCase{
		rel:       rel,
		docs:      docs,
		embedder:  embedder,
		resolver:  resolver,
		extractor: extractor,
	}
}

// Run transfers every article row into the document store. A paper file
// that cannot be found or read still produces a document, with
// placeholder text from the extractor. A failed document insert is
// recorded in the report and the remaining rows still attempt to
// persist.
func (u *TransferUseCase) Run(progress ProgressFunc) (*domain.TransferReport, error) {
	articles, err := u.rel.ListArticles()
	if err != nil {
		return nil, err
	}

	report := &domain.TransferReport{}
	total := len(articles)
	for i, rec := range articles {
		path := rec.Article.FilePath
		if resolved, ok := u.resolver.Resolve(path); ok {
			path = resolved
		}
		text := u.extractor.Extract(path)

		doc := domain.SearchableDocument{
			Title:    rec.Article.Title,
			Summary:  rec.Article.Summary,
			FilePath: path,
			ArxivID:  rec.Article.ArxivID,
			Author: domain.EmbeddedAuthor{
				FullName: rec.Author.FullName,
				Title:    rec.Author.Title,
			},
			Text:      text,
			Embedding: u.embedder.Embed(text),
			AuthorID:  rec.Article.AuthorID,
			ArticleID: rec.Article.ID,
		}

		if _, err := u.docs.Insert(doc); err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("article %d: %v", rec.Article.ID, err))
		} else {
			report.DocumentsInserted++
		}
		if progress != nil {
			progress(i+1, total)
		}
	}

	return report, nil
}
