package source

import (
	"io"
	"net/http"
	"time"
)

// DefaultAbsURL is the base URL for arXiv abstract pages.
const DefaultAbsURL = "https://arxiv.org/abs"

// AbstractFetcher retrieves the HTML abstract page for a paper. It is the
// supplementary content collaborator: any failure degrades to an empty
// string and the pipeline falls back to the record summary.
type AbstractFetcher struct {
	baseURL string
	client  *http.Client
}

// NewAbstractFetcher creates a fetcher. baseURL empty means arxiv.org.
func NewAbstractFetcher(baseURL string, timeout time.Duration) *AbstractFetcher {
	if baseURL == "" {
		baseURL = DefaultAbsURL
	}
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &AbstractFetcher{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// FetchContent returns the raw abstract page markup, or "" on any failure.
func (f *AbstractFetcher) FetchContent(arxivID string) string {
	if arxivID == "" {
		return ""
	}

	resp, err := f.client.Get(f.baseURL + "/" + arxivID)
	if err != nil {
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ""
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return ""
	}
	return string(body)
}
