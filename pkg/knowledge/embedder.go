package knowledge

import "math"

// Embedder turns text into a dense vector for similarity ranking
type Embedder interface {
	Embed(text string) []float64
}

const hashDimensions = 128

// HashEmbedder is a deterministic, dependency-free embedder. It is a
// stand-in with the same shape as a real embedding service; ranking
// quality comes mostly from the lexical component blended in by the index.
type HashEmbedder struct{}

// NewHashEmbedder creates the default embedder
func NewHashEmbedder() *HashEmbedder {
	return &HashEmbedder{}
}

// Embed produces a fixed 128-dimension vector derived from a rolling hash
// of the text. Identical input always yields an identical vector.
func (e *HashEmbedder) Embed(text string) []float64 {
	var hash int32
	for _, r := range text {
		hash = hash*31 + int32(r)
	}

	vec := make([]float64, hashDimensions)
	for i := range vec {
		vec[i] = float64(hash%int32(i+10)) / 100
	}
	return vec
}

// cosineSimilarity between two equal-length vectors; 0 for degenerate input
func cosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, magA, magB float64
	for i := range a {
		dot += a[i] * b[i]
		magA += a[i] * a[i]
		magB += b[i] * b[i]
	}
	if magA == 0 || magB == 0 {
		return 0
	}
	return dot / (math.Sqrt(magA) * math.Sqrt(magB))
}
