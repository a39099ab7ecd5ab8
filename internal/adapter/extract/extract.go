// Package extract turns local paper files into markdown-wrapped text.
// Extraction is best-effort: a missing, unreadable, or binary file yields
// a placeholder body instead of an error, so one bad file never aborts a
// transfer batch.
package extract

import (
	"bytes"
	"os"
	"strings"
	"unicode/utf8"
)

// Placeholder is the body substituted when no text can be extracted.
const Placeholder = "(extracted text unavailable)"

// MarkdownExtractor adapts Markdown to the pipeline's extractor port.
type MarkdownExtractor struct{}

// NewMarkdownExtractor creates the default file extractor.
func NewMarkdownExtractor() *MarkdownExtractor {
	return &MarkdownExtractor{}
}

// Extract implements the extraction contract for local paper files.
func (MarkdownExtractor) Extract(path string) string {
	return Markdown(path)
}

// maxFileSize caps how much of a paper file is read.
const maxFileSize = 8 << 20

// Markdown reads the file at path and wraps its extractable text under an
// "# Extracted Content" heading. On any failure the placeholder body is
// wrapped instead.
func Markdown(path string) string {
	return wrap(textFromFile(path))
}

func wrap(body string) string {
	return "# Extracted Content\n\n" + body + "\n"
}

func textFromFile(path string) string {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() || info.Size() > maxFileSize {
		return Placeholder
	}

	data, err := os.ReadFile(path)
	if err != nil || len(data) == 0 {
		return Placeholder
	}

	// PDF and other binary containers need a dedicated extractor; without
	// one the body degrades to the placeholder, matching the non-fatal
	// extraction contract.
	if bytes.HasPrefix(data, []byte("%PDF")) || !utf8.Valid(data) {
		return Placeholder
	}

	text := strings.TrimSpace(string(data))
	if text == "" {
		return Placeholder
	}
	return text
}
