package source

import (
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"paperflow/internal/domain"
)

// DefaultAPIURL is the arXiv API query endpoint.
const DefaultAPIURL = "http://export.arxiv.org/api/query"

// atomFeed represents the XML response from the arXiv API.
type atomFeed struct {
	XMLName xml.Name    `xml:"feed"`
	Entries []atomEntry `xml:"entry"`
}

// atomEntry represents a single paper.
type atomEntry struct {
	ID      string       `xml:"id"`
	Title   string       `xml:"title"`
	Summary string       `xml:"summary"`
	Authors []atomAuthor `xml:"author"`
}

type atomAuthor struct {
	Name string `xml:"name"`
}

// ArxivSource fetches one bounded batch of article metadata from the
// arXiv API Atom feed.
type ArxivSource struct {
	apiURL     string
	query      string
	maxResults int
	client     *http.Client
}

// NewArxivSource creates a source for the given search query. apiURL
// empty means the public arXiv endpoint.
func NewArxivSource(apiURL, query string, maxResults int, timeout time.Duration) *ArxivSource {
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}
	if maxResults <= 0 {
		maxResults = 10
	}
	return &ArxivSource{
		apiURL:     apiURL,
		query:      query,
		maxResults: maxResults,
		client:     &http.Client{Timeout: timeout},
	}
}

// Fetch queries the API and returns the normalized batch. A network or
// decode failure is fatal for the run.
func (s *ArxivSource) Fetch() ([]domain.RawRecord, error) {
	params := url.Values{}
	params.Set("search_query", "all:"+s.query)
	params.Set("start", "0")
	params.Set("max_results", fmt.Sprintf("%d", s.maxResults))
	params.Set("sortBy", "relevance")

	resp, err := s.client.Get(s.apiURL + "?" + params.Encode())
	if err != nil {
		return nil, fmt.Errorf("%w: arxiv query: %v", domain.ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: arxiv query: HTTP %d", domain.ErrFetch, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: arxiv response: %v", domain.ErrFetch, err)
	}

	var feed atomFeed
	if err := xml.Unmarshal(body, &feed); err != nil {
		return nil, fmt.Errorf("%w: arxiv feed parse: %v", domain.ErrFetch, err)
	}

	records := make([]domain.RawRecord, 0, len(feed.Entries))
	for _, entry := range feed.Entries {
		rec := domain.RawRecord{
			Title:   cleanText(entry.Title),
			Summary: cleanText(entry.Summary),
			ArxivID: idSuffix(entry.ID),
		}
		if len(entry.Authors) > 0 {
			rec.AuthorFullName = strings.TrimSpace(entry.Authors[0].Name)
		}
		records = append(records, rec)
	}
	return records, nil
}

// idSuffix extracts the arXiv identifier from an entry ID URL such as
// "http://arxiv.org/abs/1706.03762v7".
func idSuffix(id string) string {
	if i := strings.LastIndex(id, "/"); i >= 0 {
		id = id[i+1:]
	}
	return strings.TrimSpace(id)
}

// cleanText collapses the whitespace the feed wraps long fields with.
func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
