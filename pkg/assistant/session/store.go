package session

import (
	"strings"
	"sync"
	"time"

	"support-assistant-be/pkg/store"
)

const (
	// DefaultTTL is how long an idle conversation survives before a sweep
	// removes it.
	DefaultTTL = 30 * time.Minute

	// maxMessages caps the retained history per session. Older turns are
	// dropped from the front; ordering of the survivors never changes.
	maxMessages = 10

	// inference only looks at the most recent turns
	contextWindow = 3
)

// Keyword lists used to infer sticky conversation context from message text.
var (
	industryKeywords = []string{"property", "real-estate", "contractor", "accounting", "cleaning", "healthcare"}
	topicKeywords    = []string{"automation", "crm", "documents", "leads", "billing", "scheduling"}
)

// Store keeps one ConversationContext per active session id.
// Expiry is cooperative: callers invoke SweepExpired at request start,
// there is no background janitor. All operations are mutex-guarded and the
// live context never escapes the lock: callers only ever see snapshots, so
// concurrent handlers cannot observe a context mid-mutation.
type Store struct {
	mu       sync.Mutex
	contexts map[string]*store.ConversationContext
	ttl      time.Duration
	now      func() time.Time
}

// Option configures a Store
type Option func(*Store)

// WithTTL overrides the idle expiry duration
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) { s.ttl = ttl }
}

// WithClock injects a clock, used by tests to drive TTL boundaries
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// NewStore creates an empty context store
func NewStore(opts ...Option) *Store {
	s := &Store{
		contexts: make(map[string]*store.ConversationContext),
		ttl:      DefaultTTL,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// snapshot copies a context under the lock. The messages slice is cloned
// so callers can read it while later appends mutate the live context.
func snapshot(ctx *store.ConversationContext) store.ConversationContext {
	messages := make([]store.ChatMessage, len(ctx.Messages))
	copy(messages, ctx.Messages)
	out := *ctx
	out.Messages = messages
	return out
}

// Get returns a snapshot of the context for sessionID. A context that
// outlived its TTL but has not been swept yet is still returned; expiry is
// lazy by design.
func (s *Store) Get(sessionID string) (store.ConversationContext, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, ok := s.contexts[sessionID]
	if !ok {
		return store.ConversationContext{}, false
	}
	return snapshot(ctx), true
}

// GetOrCreate returns a snapshot of the existing context for sessionID,
// creating the context first if none exists. Idempotent: two calls with the
// same id observe one shared context, never two racing copies.
func (s *Store) GetOrCreate(sessionID string) store.ConversationContext {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, ok := s.contexts[sessionID]
	if !ok {
		ctx = &store.ConversationContext{
			SessionID:    sessionID,
			Messages:     []store.ChatMessage{},
			LastActivity: s.now(),
		}
		s.contexts[sessionID] = ctx
	}
	return snapshot(ctx)
}

// Append adds a turn to the session, refreshes LastActivity and re-derives
// the sticky industry/topic context from the recent messages. The session
// is created if it does not exist yet. Returns a snapshot of the state
// right after the append.
func (s *Store) Append(sessionID string, role, content string) store.ConversationContext {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, ok := s.contexts[sessionID]
	if !ok {
		ctx = &store.ConversationContext{
			SessionID: sessionID,
			Messages:  []store.ChatMessage{},
		}
		s.contexts[sessionID] = ctx
	}

	now := s.now()
	ctx.Messages = append(ctx.Messages, store.ChatMessage{
		Role:      role,
		Content:   content,
		Timestamp: now,
	})
	if len(ctx.Messages) > maxMessages {
		ctx.Messages = ctx.Messages[len(ctx.Messages)-maxMessages:]
	}

	// LastActivity is monotonically non-decreasing per session
	if now.After(ctx.LastActivity) {
		ctx.LastActivity = now
	}

	s.inferContext(ctx)
	return snapshot(ctx)
}

// Clear removes the context for sessionID, if any
func (s *Store) Clear(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.contexts, sessionID)
}

// SweepExpired removes every context idle longer than the TTL at the given
// instant and reports how many were dropped.
func (s *Store) SweepExpired(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, ctx := range s.contexts {
		if now.Sub(ctx.LastActivity) > s.ttl {
			delete(s.contexts, id)
			removed++
		}
	}
	return removed
}

// Len reports the number of live contexts
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.contexts)
}

// inferContext re-derives IndustryContext/TopicContext from the last few
// messages. The longest matching keyword wins and overwrites any previous
// value; with no match the previous value stays (sticky). An unrelated
// later message can therefore repoint the context - observed behavior,
// kept deliberately.
func (s *Store) inferContext(ctx *store.ConversationContext) {
	recent := ctx.Messages
	if len(recent) > contextWindow {
		recent = recent[len(recent)-contextWindow:]
	}

	var sb strings.Builder
	for _, m := range recent {
		sb.WriteString(strings.ToLower(m.Content))
		sb.WriteByte(' ')
	}
	text := sb.String()

	if industry := longestMatch(text, industryKeywords); industry != "" {
		ctx.IndustryContext = industry
	}
	if topic := longestMatch(text, topicKeywords); topic != "" {
		ctx.TopicContext = topic
	}
}

func longestMatch(text string, keywords []string) string {
	best := ""
	for _, kw := range keywords {
		if strings.Contains(text, kw) && len(kw) > len(best) {
			best = kw
		}
	}
	return best
}
