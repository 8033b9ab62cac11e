package knowledge

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"support-assistant-be/pkg/store"
)

// Document is an ingestible content unit (page, industry sheet, automation
// description, blog post, micro-snippet).
type Document struct {
	ID       string   `json:"id"`
	Content  string   `json:"content"`
	Title    string   `json:"title"`
	URL      string   `json:"url"`
	Type     string   `json:"type"`
	Priority string   `json:"priority"`
	Tags     []string `json:"tags,omitempty"`
	Snippet  bool     `json:"snippet,omitempty"`
}

// SearchContext carries conversation-derived hints and request filters
// into a search call.
type SearchContext struct {
	IndustryContext string // sticky industry from the conversation
	TopicContext    string // sticky topic from the conversation
	IndustryFilter  string // explicit tag filter from the request
	TypeFilter      string // explicit type filter from the request
}

// Searcher is the retrieval collaborator consumed by the chat service
type Searcher interface {
	Search(ctx context.Context, query string, topK int, sctx SearchContext) ([]store.RetrievedChunk, error)
}

// indexedChunk is a chunk plus its precomputed embedding
type indexedChunk struct {
	chunk     store.RetrievedChunk
	embedding []float64
}

// Index is an in-memory knowledge index: documents are word-chunked with
// overlap, embedded once at ingest, and ranked at query time by a blend of
// embedding similarity and lexical term overlap with metadata boosts.
type Index struct {
	mu       sync.RWMutex
	chunks   []indexedChunk
	embedder Embedder
}

const (
	chunkSize    = 500
	chunkOverlap = 50

	// relevance floor below which chunks are dropped
	scoreFloor = 0.1
)

// NewIndex creates an empty index
func NewIndex(embedder Embedder) *Index {
	if embedder == nil {
		embedder = NewHashEmbedder()
	}
	return &Index{embedder: embedder}
}

// Ingest chunks and embeds the documents, replacing any previous content
func (ix *Index) Ingest(docs []Document) int {
	var indexed []indexedChunk
	for _, doc := range docs {
		for i, text := range splitIntoChunks(doc.Content, chunkSize, chunkOverlap) {
			indexed = append(indexed, indexedChunk{
				chunk: store.RetrievedChunk{
					ID:   fmt.Sprintf("%s-chunk-%d", doc.ID, i),
					Text: text,
					Metadata: store.ChunkMetadata{
						DocID:      doc.ID,
						Title:      doc.Title,
						URL:        doc.URL,
						Type:       doc.Type,
						Priority:   doc.Priority,
						Tags:       doc.Tags,
						ChunkIndex: i,
						IsSnippet:  doc.Snippet,
					},
				},
				embedding: ix.embedder.Embed(text),
			})
		}
	}

	ix.mu.Lock()
	ix.chunks = indexed
	ix.mu.Unlock()
	return len(indexed)
}

// Len reports the number of indexed chunks
func (ix *Index) Len() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.chunks)
}

// Search ranks chunks against the query and returns the top K above the
// relevance floor. Conversation context boosts related material; request
// filters demote mismatches rather than excluding them outright.
func (ix *Index) Search(_ context.Context, query string, topK int, sctx SearchContext) ([]store.RetrievedChunk, error) {
	if topK <= 0 {
		topK = 5
	}
	queryEmbedding := ix.embedder.Embed(query)

	ix.mu.RLock()
	defer ix.mu.RUnlock()

	type scored struct {
		chunk store.RetrievedChunk
		score float64
	}
	results := make([]scored, 0, len(ix.chunks))

	for _, ic := range ix.chunks {
		score := 0.25*cosineSimilarity(queryEmbedding, ic.embedding) + 0.75*lexicalScore(query, ic)

		switch ic.chunk.Metadata.Priority {
		case "high":
			score *= 1.2
		case "medium":
			score *= 1.1
		}
		if ic.chunk.Metadata.IsSnippet {
			score *= 1.3
		}

		if sctx.IndustryFilter != "" && !hasTag(ic.chunk.Metadata.Tags, sctx.IndustryFilter) {
			score *= 0.5
		}
		if sctx.TypeFilter != "" && ic.chunk.Metadata.Type != sctx.TypeFilter {
			score *= 0.5
		}

		if sctx.IndustryContext != "" && hasTag(ic.chunk.Metadata.Tags, sctx.IndustryContext) {
			score *= 1.4
		}
		if sctx.TopicContext != "" && strings.Contains(strings.ToLower(ic.chunk.Text), strings.ToLower(sctx.TopicContext)) {
			score *= 1.2
		}

		if score > scoreFloor {
			results = append(results, scored{chunk: ic.chunk, score: score})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].score > results[j].score
	})
	if len(results) > topK {
		results = results[:topK]
	}

	chunks := make([]store.RetrievedChunk, len(results))
	for i, r := range results {
		chunks[i] = r.chunk
	}
	return chunks, nil
}

// LoadFile replaces the index content with documents from a JSON file
func (ix *Index) LoadFile(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	var docs []Document
	if err := json.Unmarshal(data, &docs); err != nil {
		return 0, fmt.Errorf("parse knowledge index %s: %w", path, err)
	}
	return ix.Ingest(docs), nil
}

// lexicalScore is the fraction of meaningful query terms found in the
// chunk text, title or tags.
func lexicalScore(query string, ic indexedChunk) float64 {
	haystack := strings.ToLower(ic.chunk.Text + " " + ic.chunk.Metadata.Title + " " + strings.Join(ic.chunk.Metadata.Tags, " "))
	terms := strings.Fields(strings.ToLower(query))

	total, hits := 0, 0
	for _, term := range terms {
		term = strings.Trim(term, ".,!?\"'")
		if len(term) <= 3 {
			continue
		}
		total++
		if strings.Contains(haystack, term) {
			hits++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(hits) / float64(total)
}

func hasTag(tags []string, want string) bool {
	for _, tag := range tags {
		if strings.EqualFold(tag, want) {
			return true
		}
	}
	return false
}

// splitIntoChunks breaks text into word chunks of roughly chunkSize
// characters, carrying a few trailing words over as overlap so sentence
// context survives the boundary.
func splitIntoChunks(text string, size, overlap int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var chunks []string
	var current []string
	currentLen := 0

	for _, word := range words {
		if currentLen+len(word)+1 > size && len(current) > 0 {
			chunks = append(chunks, strings.Join(current, " "))

			carry := overlap / 10
			if carry > len(current) {
				carry = len(current)
			}
			current = append(append([]string{}, current[len(current)-carry:]...), word)
			currentLen = len(strings.Join(current, " "))
		} else {
			current = append(current, word)
			currentLen += len(word) + 1
		}
	}
	if len(current) > 0 {
		chunks = append(chunks, strings.Join(current, " "))
	}
	return chunks
}
