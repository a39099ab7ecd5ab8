package usecase

import (
	"fmt"

	"paperflow/internal/adapter/normalize"
	"paperflow/internal/domain"
	"paperflow/internal/port"
)

// ProgressFunc reports document-pass progress to the caller.
type ProgressFunc func(done, total int)

// IngestUseCase drives the fetch flow: one bounded batch of raw records
// through supplementary content fetch, a single relational transaction,
// and per-record document inserts.
type IngestUseCase struct {
	source   port.ArticleSource
	fetcher  port.ContentFetcher
	rel      port.RelationalStore
	docs     port.DocumentStore
	embedder port.Embedder
}

// NewIngestUseCase creates the fetch-flow orchestrator. fetcher may be
// nil when the source carries no external identifiers worth enriching.
func NewIngestUseCase(
	source port.ArticleSource,
	fetcher port.ContentFetcher,
	rel port.RelationalStore,
	docs port.DocumentStore,
	embedder port.Embedder,
) *IngestUseCase {
	return &IngestUseCase{
		source:   source,
		fetcher:  fetcher,
		rel:      rel,
		docs:     docs,
		embedder: embedder,
	}
}

// enrichedRecord carries a raw record together with the relational IDs
// assigned to it, for cross-store correlation.
type enrichedRecord struct {
	rec       domain.RawRecord
	authorID  int64
	articleID int64
}

// Run processes one batch. The relational pass is abort-on-first-error
// with full rollback; the document pass records per-document failures and
// keeps going. Re-running duplicates rows and documents: there is no
// upsert by natural key.
func (u *IngestUseCase) Run(progress ProgressFunc) (*domain.IngestReport, error) {
	records, err := u.source.Fetch()
	if err != nil {
		return nil, err
	}

	if u.fetcher != nil {
		for i := range records {
			records[i].HTMLContent = u.fetcher.FetchContent(records[i].ArxivID)
		}
	}

	report := &domain.IngestReport{}

	enriched, err := u.relationalPass(records, report)
	if err != nil {
		return nil, err
	}

	total := len(enriched)
	for i, e := range enriched {
		if _, err := u.docs.Insert(u.buildDocument(e)); err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("document %s: %v", e.rec.ArxivID, err))
		} else {
			report.DocumentsInserted++
		}
		if progress != nil {
			progress(i+1, total)
		}
	}

	return report, nil
}

// relationalPass writes all authors and articles in one transaction and
// assigns the generated IDs. Any failure rolls the whole batch back,
// since the document pass depends on the IDs.
func (u *IngestUseCase) relationalPass(records []domain.RawRecord, report *domain.IngestReport) ([]enrichedRecord, error) {
	if err := u.rel.InitSchema(); err != nil {
		return nil, err
	}

	sess, err := u.rel.Begin()
	if err != nil {
		return nil, err
	}
	defer sess.Rollback()

	resolver := NewAuthorResolver(sess)
	enriched := make([]enrichedRecord, 0, len(records))

	for _, rec := range records {
		authorID, err := resolver.Resolve(rec.AuthorFullName, rec.AuthorTitle)
		if err != nil {
			return nil, fmt.Errorf("record %s: %w", rec.ArxivID, err)
		}

		articleID, err := sess.InsertArticle(domain.Article{
			Title:    rec.Title,
			Summary:  rec.Summary,
			FilePath: rec.FilePath,
			ArxivID:  rec.ArxivID,
			AuthorID: authorID,
		})
		if err != nil {
			return nil, fmt.Errorf("record %s: %w", rec.ArxivID, err)
		}

		enriched = append(enriched, enrichedRecord{rec: rec, authorID: authorID, articleID: articleID})
		report.ArticlesCreated++
	}

	if err := sess.Commit(); err != nil {
		return nil, err
	}

	report.AuthorsCreated = resolver.Created()
	return enriched, nil
}

// buildDocument assembles the denormalized searchable document. Fetched
// markup is normalized to plain text; records without supplementary
// content fall back to their summary as-is.
func (u *IngestUseCase) buildDocument(e enrichedRecord) domain.SearchableDocument {
	text := e.rec.Summary
	if e.rec.HTMLContent != "" {
		text = normalize.Text(e.rec.HTMLContent)
	}

	return domain.SearchableDocument{
		Title:    e.rec.Title,
		Summary:  e.rec.Summary,
		FilePath: e.rec.FilePath,
		ArxivID:  e.rec.ArxivID,
		Author: domain.EmbeddedAuthor{
			FullName: e.rec.AuthorFullName,
			Title:    e.rec.AuthorTitle,
		},
		Text:      text,
		Embedding: u.embedder.Embed(text),
		AuthorID:  e.authorID,
		ArticleID: e.articleID,
	}
}
