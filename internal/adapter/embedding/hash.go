package embedding

import (
	"crypto/sha256"
	"encoding/binary"
	"math"
	"regexp"
	"strings"
)

// DefaultDimension is the embedding length used when none is configured.
const DefaultDimension = 128

var wordRE = regexp.MustCompile(`\w+`)

// HashingEmbedder is a deterministic bag-of-words vectorizer. Each token
// is hashed and its first four bytes select a bucket modulo the dimension;
// the vector is then L2-normalized. Hash collisions between distinct
// tokens accumulate into the same bucket, which is accepted lossy
// behavior. There is no model state and no randomness: identical text
// always yields an identical vector.
type HashingEmbedder struct {
	dim int
}

// NewHashingEmbedder creates an embedder with the given dimension.
// Non-positive dimensions fall back to DefaultDimension.
func NewHashingEmbedder(dim int) *HashingEmbedder {
	if dim <= 0 {
		dim = DefaultDimension
	}
	return &HashingEmbedder{dim: dim}
}

// Dimension returns the embedding vector dimension.
func (e *HashingEmbedder) Dimension() int {
	return e.dim
}

// Embed vectorizes text. The result has unit L2 norm when text contains
// at least one token, and is all zeros otherwise.
func (e *HashingEmbedder) Embed(text string) []float64 {
	vec := make([]float64, e.dim)
	for _, tok := range wordRE.FindAllString(strings.ToLower(text), -1) {
		sum := sha256.Sum256([]byte(tok))
		bucket := binary.BigEndian.Uint32(sum[:4]) % uint32(e.dim)
		vec[bucket] += 1.0
	}

	var norm float64
	for _, v := range vec {
		norm += v * v
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for i := range vec {
			vec[i] /= norm
		}
	}
	return vec
}
