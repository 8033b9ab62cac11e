package store

import "time"

// Message roles
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is a single turn inside a conversation context
type ChatMessage struct {
	Role      string    `json:"role"` // "user" | "assistant"
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// ConversationContext is the active per-session state kept in memory.
// The store keeps one live instance per session id and hands out copies.
type ConversationContext struct {
	SessionID string        `json:"session_id"`
	Messages  []ChatMessage `json:"messages"`

	// Sticky context inferred from recent turns. Overwritten (not merged)
	// whenever a newer keyword match is found.
	IndustryContext string `json:"industry_context,omitempty"`
	TopicContext    string `json:"topic_context,omitempty"`

	LastActivity time.Time `json:"last_activity"`
}

// ChunkMetadata describes where a retrieved chunk came from
type ChunkMetadata struct {
	DocID      string   `json:"doc_id"`
	Title      string   `json:"title"`
	URL        string   `json:"url"`
	Type       string   `json:"type"`     // "page" | "industry" | "app" | "automation" | "blog" | "case-study"
	Priority   string   `json:"priority"` // "high" | "medium" | "low"
	Tags       []string `json:"tags,omitempty"`
	ChunkIndex int      `json:"chunk_index"`
	IsSnippet  bool     `json:"is_snippet"`
}

// RetrievedChunk is one ranked result from the knowledge searcher.
// Treated as an immutable input; the engine never mutates it.
type RetrievedChunk struct {
	ID       string        `json:"id"`
	Text     string        `json:"text"`
	Metadata ChunkMetadata `json:"metadata"`
}

// Source is the public citation shape returned to clients
type Source struct {
	Title    string `json:"title"`
	URL      string `json:"url"`
	Type     string `json:"type"`
	Priority string `json:"priority"`
}

// ExtractSources maps retrieved chunks to their public citation form
func ExtractSources(chunks []RetrievedChunk) []Source {
	sources := make([]Source, 0, len(chunks))
	for _, c := range chunks {
		sources = append(sources, Source{
			Title:    c.Metadata.Title,
			URL:      c.Metadata.URL,
			Type:     c.Metadata.Type,
			Priority: c.Metadata.Priority,
		})
	}
	return sources
}
