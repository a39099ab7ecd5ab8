package usecase

import (
	"path/filepath"
	"strings"
	"testing"

	"paperflow/internal/adapter/embedding"
	"paperflow/internal/adapter/store"
	"paperflow/internal/domain"
	"paperflow/internal/port"
)

// fakeSource returns a canned batch.
type fakeSource struct {
	records []domain.RawRecord
	err     error
}

func (f *fakeSource) Fetch() ([]domain.RawRecord, error) {
	return f.records, f.err
}

// fakeFetcher returns canned supplementary markup per arxiv id.
type fakeFetcher struct {
	pages map[string]string
}

func (f *fakeFetcher) FetchContent(arxivID string) string {
	return f.pages[arxivID]
}

// flakyDocStore wraps a real document store but fails inserts for
// selected arxiv ids, counting every attempt.
type flakyDocStore struct {
	inner    port.DocumentStore
	failOn   map[string]bool
	attempts int
}

func (f *flakyDocStore) Insert(doc domain.SearchableDocument) (string, error) {
	f.attempts++
	if f.failOn[doc.ArxivID] {
		return "", domain.ErrPersistence
	}
	return f.inner.Insert(doc)
}

func (f *flakyDocStore) SearchText(query string, limit int) ([]domain.SearchResult, error) {
	return f.inner.SearchText(query, limit)
}

func (f *flakyDocStore) Close() error { return f.inner.Close() }

func newTestStores(t *testing.T) (*store.SQLStore, *store.DocStore) {
	t.Helper()
	dir := t.TempDir()

	rel, err := store.OpenSQLite(filepath.Join(dir, "articles.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { rel.Close() })

	docs, err := store.Open(filepath.Join(dir, "documents.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { docs.Close() })

	return rel, docs
}

func adaRecords() []domain.RawRecord {
	return []domain.RawRecord{
		{
			Title:          "Notes on the Analytical Engine",
			Summary:        "The engine computes bernoulli numbers.",
			FilePath:       "papers/notes.pdf",
			ArxivID:        "0000.00001",
			AuthorFullName: "Ada Lovelace",
		},
		{
			Title:          "Sketch of the Analytical Engine",
			Summary:        "A translation with extensive commentary.",
			FilePath:       "papers/sketch.pdf",
			ArxivID:        "0000.00002",
			AuthorFullName: "Ada Lovelace",
		},
	}
}

func TestIngestSharedAuthor(t *testing.T) {
	rel, docs := newTestStores(t)
	uc := NewIngestUseCase(
		&fakeSource{records: adaRecords()},
		nil,
		rel, docs,
		embedding.NewHashingEmbedder(128),
	)

	report, err := uc.Run(nil)
	if err != nil {
		t.Fatal(err)
	}

	if report.AuthorsCreated != 1 {
		t.Errorf("expected 1 author created, got %d", report.AuthorsCreated)
	}
	if report.ArticlesCreated != 2 {
		t.Errorf("expected 2 articles created, got %d", report.ArticlesCreated)
	}
	if report.DocumentsInserted != 2 {
		t.Errorf("expected 2 documents inserted, got %d", report.DocumentsInserted)
	}
	if len(report.Errors) != 0 {
		t.Errorf("unexpected document errors: %v", report.Errors)
	}

	articles, err := rel.ListArticles()
	if err != nil {
		t.Fatal(err)
	}
	if len(articles) != 2 {
		t.Fatalf("expected 2 article rows, got %d", len(articles))
	}
	if articles[0].Article.AuthorID != articles[1].Article.AuthorID {
		t.Error("both articles should reference the same author row")
	}

	n, err := docs.Count()
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("expected 2 documents, got %d", n)
	}
}

func TestIngestSummaryFallback(t *testing.T) {
	// The supplementary fetch fails (empty content) for one record, so
	// its document text falls back to the summary; the other gets its
	// fetched markup normalized.
	rel, docs := newTestStores(t)
	fetcher := &fakeFetcher{pages: map[string]string{
		"0000.00001": "<html><body><p>Full bernoulli derivation</p></body></html>",
	}}
	uc := NewIngestUseCase(
		&fakeSource{records: adaRecords()},
		fetcher,
		rel, docs,
		embedding.NewHashingEmbedder(128),
	)

	report, err := uc.Run(nil)
	if err != nil {
		t.Fatal(err)
	}
	if report.DocumentsInserted != 2 {
		t.Fatalf("expected 2 documents, got %d", report.DocumentsInserted)
	}

	results, err := docs.SearchText("derivation", 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 || results[0].Title != "Notes on the Analytical Engine" {
		t.Errorf("expected normalized markup to be indexed, got %v", results)
	}

	results, err = docs.SearchText("commentary", 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 || results[0].Title != "Sketch of the Analytical Engine" {
		t.Errorf("expected summary fallback to be indexed, got %v", results)
	}
}

func TestIngestDocumentFailureDoesNotStopBatch(t *testing.T) {
	// A document-side persistence failure is recorded per record; the
	// relational rows stay committed and the remaining documents still
	// attempt to persist.
	rel, docs := newTestStores(t)
	flaky := &flakyDocStore{inner: docs, failOn: map[string]bool{"0000.00001": true}}

	uc := NewIngestUseCase(
		&fakeSource{records: adaRecords()},
		nil,
		rel, flaky,
		embedding.NewHashingEmbedder(128),
	)

	report, err := uc.Run(nil)
	if err != nil {
		t.Fatal(err)
	}

	if flaky.attempts != 2 {
		t.Errorf("expected both documents attempted, got %d attempts", flaky.attempts)
	}
	if report.DocumentsInserted != 1 {
		t.Errorf("expected 1 document inserted, got %d", report.DocumentsInserted)
	}
	if len(report.Errors) != 1 || !strings.Contains(report.Errors[0], "0000.00001") {
		t.Errorf("expected one recorded error naming the record, got %v", report.Errors)
	}
	if report.ArticlesCreated != 2 {
		t.Errorf("relational pass should be unaffected, got %d articles", report.ArticlesCreated)
	}

	results, err := docs.SearchText("commentary", 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 || results[0].Title != "Sketch of the Analytical Engine" {
		t.Errorf("expected the surviving document to be searchable, got %v", results)
	}
}

func TestIngestEmptyAuthorAbortsBatch(t *testing.T) {
	rel, docs := newTestStores(t)
	records := adaRecords()
	records[1].AuthorFullName = "   "

	uc := NewIngestUseCase(&fakeSource{records: records}, nil, rel, docs, embedding.NewHashingEmbedder(128))

	if _, err := uc.Run(nil); err == nil {
		t.Fatal("expected validation error to abort the run")
	} else if !strings.Contains(err.Error(), "0000.00002") {
		t.Errorf("error should name the offending record, got %v", err)
	}

	// Full rollback: the valid first record must not persist either.
	if err := rel.InitSchema(); err != nil {
		t.Fatal(err)
	}
	articles, err := rel.ListArticles()
	if err != nil {
		t.Fatal(err)
	}
	if len(articles) != 0 {
		t.Errorf("expected rolled-back batch, found %d article rows", len(articles))
	}

	n, err := docs.Count()
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Errorf("expected no documents after aborted batch, got %d", n)
	}
}

func TestIngestSourceFailureIsFatal(t *testing.T) {
	rel, docs := newTestStores(t)
	uc := NewIngestUseCase(&fakeSource{err: domain.ErrFetch}, nil, rel, docs, embedding.NewHashingEmbedder(128))

	if _, err := uc.Run(nil); err == nil {
		t.Fatal("expected primary source failure to abort the run")
	}
}

func TestIngestProgressReported(t *testing.T) {
	rel, docs := newTestStores(t)
	uc := NewIngestUseCase(&fakeSource{records: adaRecords()}, nil, rel, docs, embedding.NewHashingEmbedder(128))

	var calls int
	var lastDone, lastTotal int
	_, err := uc.Run(func(done, total int) {
		calls++
		lastDone, lastTotal = done, total
	})
	if err != nil {
		t.Fatal(err)
	}
	if calls != 2 || lastDone != 2 || lastTotal != 2 {
		t.Errorf("progress calls=%d last=(%d/%d), want 2 and (2/2)", calls, lastDone, lastTotal)
	}
}

func TestLoadCSVCounts(t *testing.T) {
	rel, _ := newTestStores(t)

	uc := NewLoadUseCase(&fakeSource{records: adaRecords()}, rel)
	report, err := uc.Run()
	if err != nil {
		t.Fatal(err)
	}

	if report.ArticlesCreated != 2 {
		t.Errorf("articlesCreated should equal row count, got %d", report.ArticlesCreated)
	}
	if report.AuthorsCreated != 1 {
		t.Errorf("expected 1 distinct author, got %d", report.AuthorsCreated)
	}

	// A second run duplicates articles but reuses the author row.
	report, err = uc.Run()
	if err != nil {
		t.Fatal(err)
	}
	if report.AuthorsCreated != 0 {
		t.Errorf("expected no new authors on re-run, got %d", report.AuthorsCreated)
	}

	articles, err := rel.ListArticles()
	if err != nil {
		t.Fatal(err)
	}
	if len(articles) != 4 {
		t.Errorf("re-ingestion should duplicate article rows, got %d", len(articles))
	}
}
