package port

// Embedder generates a fixed-length vector fingerprint for text.
type Embedder interface {
	// Embed returns a vector of exactly Dimension() components. The same
	// text always yields the same vector.
	Embed(text string) []float64

	// Dimension returns the embedding vector dimension.
	Dimension() int
}

// Extractor turns a local file into text for indexing. Extraction never
// fails the batch: unreadable or missing files yield a placeholder body.
type Extractor interface {
	Extract(path string) string
}

// FileResolver maps an article's recorded file path to an actual file
// under the papers directory, if one exists.
type FileResolver interface {
	Resolve(filePath string) (string, bool)
}
