package store

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/oklog/ulid/v2"
	"go.etcd.io/bbolt"

	"paperflow/internal/adapter/analyzer"
	"paperflow/internal/domain"
	"paperflow/internal/port"
)

var (
	bucketDocs  = []byte("documents")
	bucketTerms = []byte("terms")
	bucketStats = []byte("stats")
	keyStats    = []byte("corpus_stats")
)

// BM25 parameters for text relevance scoring.
const (
	scoreK1 = 1.2
	scoreB  = 0.75
)

var _ port.DocumentStore = (*DocStore)(nil)

// DocStore persists searchable documents in a bbolt file and maintains a
// full-text index over their text field. Each insert is one independent
// transaction: a failed insert leaves previously written documents in
// place.
type DocStore struct {
	db  *bbolt.DB
	tok *analyzer.Tokenizer
}

var (
	connMu   sync.Mutex
	connPath string
	conn     *DocStore
)

// Connect returns the process-wide document store connection, opening it
// on first use. Redundant calls with the same path return the existing
// connection; the store stays open until CloseShared.
func Connect(path string) (*DocStore, error) {
	connMu.Lock()
	defer connMu.Unlock()

	if conn != nil && connPath == path {
		return conn, nil
	}
	if conn != nil {
		conn.Close()
		conn = nil
	}

	st, err := Open(path)
	if err != nil {
		return nil, err
	}
	conn, connPath = st, path
	return st, nil
}

// CloseShared closes the process-wide connection if one is open.
func CloseShared() error {
	connMu.Lock()
	defer connMu.Unlock()
	if conn == nil {
		return nil
	}
	err := conn.Close()
	conn = nil
	return err
}

// Open opens a dedicated document store at path.
func Open(path string) (*DocStore, error) {
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: open document store: %v", domain.ErrStoreUnavailable, err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, b := range [][]byte{bucketDocs, bucketTerms, bucketStats} {
			if _, err := tx.CreateBucketIfNotExists(b); err != nil {
				return fmt.Errorf("create bucket %s: %w", b, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: init document store: %v", domain.ErrStoreUnavailable, err)
	}

	return &DocStore{db: db, tok: analyzer.NewTokenizer()}, nil
}

// storedDoc wraps a document with the index bookkeeping it was inserted
// with.
type storedDoc struct {
	Doc    domain.SearchableDocument `json:"doc"`
	Tokens int                       `json:"tokens"`
}

type statsRecord struct {
	Docs      int `json:"docs"`
	TotalToks int `json:"total_tokens"`
}

// Insert writes one document, indexes its text, and returns the assigned
// ULID. Documents are immutable after insert.
func (s *DocStore) Insert(doc domain.SearchableDocument) (string, error) {
	id := ulid.Make().String()
	tf := s.tok.TermFrequencies(doc.Text)

	tokens := 0
	for _, n := range tf {
		tokens += n
	}

	err := s.db.Update(func(tx *bbolt.Tx) error {
		data, err := json.Marshal(storedDoc{Doc: doc, Tokens: tokens})
		if err != nil {
			return err
		}
		if err := tx.Bucket(bucketDocs).Put([]byte(id), data); err != nil {
			return err
		}

		terms := tx.Bucket(bucketTerms)
		for term, count := range tf {
			var postings []domain.Posting
			if existing := terms.Get([]byte(term)); existing != nil {
				json.Unmarshal(existing, &postings)
			}
			postings = append(postings, domain.Posting{DocID: id, TF: count})
			data, err := json.Marshal(postings)
			if err != nil {
				return err
			}
			if err := terms.Put([]byte(term), data); err != nil {
				return err
			}
		}

		statsBucket := tx.Bucket(bucketStats)
		var rec statsRecord
		if existing := statsBucket.Get(keyStats); existing != nil {
			json.Unmarshal(existing, &rec)
		}
		rec.Docs++
		rec.TotalToks += tokens
		data, err = json.Marshal(rec)
		if err != nil {
			return err
		}
		return statsBucket.Put(keyStats, data)
	})
	if err != nil {
		return "", fmt.Errorf("%w: insert document %q: %v", domain.ErrPersistence, doc.ArxivID, err)
	}
	return id, nil
}

// Get reads one document by its ID.
func (s *DocStore) Get(id string) (domain.SearchableDocument, error) {
	var stored storedDoc
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketDocs).Get([]byte(id))
		if data == nil {
			return fmt.Errorf("document not found: %s", id)
		}
		return json.Unmarshal(data, &stored)
	})
	return stored.Doc, err
}

// Count returns the number of stored documents.
func (s *DocStore) Count() (int, error) {
	stats, err := s.stats()
	return stats.Docs, err
}

// SearchText tokenizes the query, OR-combines the terms, and scores
// matching documents with BM25 over the text index. Results are ordered
// by descending relevance and truncated to limit. No match is an empty
// result, not an error.
func (s *DocStore) SearchText(query string, limit int) ([]domain.SearchResult, error) {
	queryTerms := s.tok.Tokenize(query)
	if len(queryTerms) == 0 {
		return nil, nil
	}

	stats, err := s.stats()
	if err != nil {
		return nil, err
	}
	if stats.Docs == 0 {
		return nil, nil
	}
	avgLen := float64(stats.TotalToks) / float64(stats.Docs)

	scores := make(map[string]float64)
	lengths := make(map[string]int)

	err = s.db.View(func(tx *bbolt.Tx) error {
		terms := tx.Bucket(bucketTerms)
		docs := tx.Bucket(bucketDocs)

		for _, term := range queryTerms {
			data := terms.Get([]byte(term))
			if data == nil {
				continue
			}
			var postings []domain.Posting
			if err := json.Unmarshal(data, &postings); err != nil {
				continue
			}

			n := float64(len(postings))
			N := float64(stats.Docs)
			idf := math.Log((N-n+0.5)/(n+0.5) + 1)

			for _, p := range postings {
				if _, ok := lengths[p.DocID]; !ok {
					var stored storedDoc
					if raw := docs.Get([]byte(p.DocID)); raw != nil {
						json.Unmarshal(raw, &stored)
					}
					lengths[p.DocID] = stored.Tokens
				}

				dl := float64(lengths[p.DocID])
				tf := float64(p.TF)
				scores[p.DocID] += idf * (tf * (scoreK1 + 1)) / (tf + scoreK1*(1-scoreB+scoreB*dl/avgLen))
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: search: %v", domain.ErrStoreUnavailable, err)
	}

	results := make([]domain.SearchResult, 0, len(scores))
	for id, score := range scores {
		doc, err := s.Get(id)
		if err != nil {
			continue
		}
		results = append(results, domain.SearchResult{Title: doc.Title, Score: score})
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

func (s *DocStore) stats() (statsRecord, error) {
	var rec statsRecord
	err := s.db.View(func(tx *bbolt.Tx) error {
		if data := tx.Bucket(bucketStats).Get(keyStats); data != nil {
			return json.Unmarshal(data, &rec)
		}
		return nil
	})
	if err != nil {
		return rec, fmt.Errorf("%w: read stats: %v", domain.ErrStoreUnavailable, err)
	}
	return rec, nil
}

// Close closes the underlying bbolt file.
func (s *DocStore) Close() error {
	return s.db.Close()
}
