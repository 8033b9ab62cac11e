package session

import (
	"sync"
	"testing"
	"time"

	"support-assistant-be/pkg/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock lets tests drive the store's notion of time
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestGetOrCreateIsIdempotent(t *testing.T) {
	s := NewStore()

	first := s.GetOrCreate("sess-1")
	second := s.GetOrCreate("sess-1")

	assert.Equal(t, first.SessionID, second.SessionID)
	assert.Equal(t, 1, s.Len(), "same session id must not create a second context")

	s.Append("sess-1", store.RoleUser, "hello")
	s.Append("sess-1", store.RoleAssistant, "hi there")

	again := s.GetOrCreate("sess-1")
	assert.Len(t, again.Messages, 2, "history must be combined, not forked")
}

func TestSnapshotsAreIsolatedFromLaterAppends(t *testing.T) {
	s := NewStore()

	snap := s.Append("sess-1", store.RoleUser, "first")
	require.Len(t, snap.Messages, 1)

	s.Append("sess-1", store.RoleAssistant, "second")
	s.Append("sess-1", store.RoleUser, "I run a healthcare practice")

	// The earlier snapshot is untouched by later mutation
	assert.Len(t, snap.Messages, 1)
	assert.Equal(t, "first", snap.Messages[0].Content)
	assert.Empty(t, snap.IndustryContext)

	current, ok := s.Get("sess-1")
	require.True(t, ok)
	assert.Len(t, current.Messages, 3)
	assert.Equal(t, "healthcare", current.IndustryContext)
}

func TestAppendKeepsOrderAndCapsHistory(t *testing.T) {
	s := NewStore()

	for i := 0; i < 15; i++ {
		role := store.RoleUser
		if i%2 == 1 {
			role = store.RoleAssistant
		}
		s.Append("sess-1", role, string(rune('a'+i)))
	}

	ctx, ok := s.Get("sess-1")
	require.True(t, ok)
	assert.Len(t, ctx.Messages, 10, "history capped at last 10 messages")
	// Oldest surviving message is the 6th appended one
	assert.Equal(t, "f", ctx.Messages[0].Content)
	assert.Equal(t, "o", ctx.Messages[9].Content)
}

func TestTTLSweep(t *testing.T) {
	clock := newFakeClock()
	ttl := 30 * time.Minute
	s := NewStore(WithTTL(ttl), WithClock(clock.Now))

	s.Append("sess-1", store.RoleUser, "hello")

	// Present just before the TTL elapses
	clock.Advance(ttl - time.Second)
	s.SweepExpired(clock.Now())
	_, ok := s.Get("sess-1")
	assert.True(t, ok, "context must survive until TTL")

	// Gone after a sweep past the TTL
	clock.Advance(2 * time.Second)
	removed := s.SweepExpired(clock.Now())
	assert.Equal(t, 1, removed)
	_, ok = s.Get("sess-1")
	assert.False(t, ok)
}

func TestExpiryIsLazy(t *testing.T) {
	clock := newFakeClock()
	s := NewStore(WithTTL(time.Minute), WithClock(clock.Now))

	s.Append("sess-1", store.RoleUser, "hello")
	clock.Advance(5 * time.Minute)

	// No sweep has run: the context logically still exists
	_, ok := s.Get("sess-1")
	assert.True(t, ok)

	s.SweepExpired(clock.Now())
	_, ok = s.Get("sess-1")
	assert.False(t, ok)
}

func TestActivityRefreshDefersExpiry(t *testing.T) {
	clock := newFakeClock()
	s := NewStore(WithTTL(10*time.Minute), WithClock(clock.Now))

	s.Append("sess-1", store.RoleUser, "hello")
	clock.Advance(8 * time.Minute)
	s.Append("sess-1", store.RoleAssistant, "answer")

	clock.Advance(8 * time.Minute)
	s.SweepExpired(clock.Now())
	_, ok := s.Get("sess-1")
	assert.True(t, ok, "append refreshes last activity")

	clock.Advance(3 * time.Minute)
	s.SweepExpired(clock.Now())
	_, ok = s.Get("sess-1")
	assert.False(t, ok)
}

func TestContextInference(t *testing.T) {
	s := NewStore()

	t.Run("industry and topic detected", func(t *testing.T) {
		ctx := s.Append("sess-a", store.RoleUser, "What automation do you have for healthcare clinics?")
		assert.Equal(t, "healthcare", ctx.IndustryContext)
		assert.Equal(t, "automation", ctx.TopicContext)
	})

	t.Run("sticky until overwritten", func(t *testing.T) {
		s.Append("sess-b", store.RoleUser, "Tell me about accounting")
		ctx := s.Append("sess-b", store.RoleAssistant, "Sure, here is an overview.")
		assert.Equal(t, "accounting", ctx.IndustryContext, "no new match keeps the old value")
	})

	t.Run("later match overwrites", func(t *testing.T) {
		s.Append("sess-c", store.RoleUser, "I manage a cleaning company")
		s.Append("sess-c", store.RoleAssistant, "Great, we support cleaning businesses.")
		// Three more turns push the cleaning mention out of the window
		s.Append("sess-c", store.RoleUser, "ok")
		ctx := s.Append("sess-c", store.RoleUser, "Actually I also do real-estate deals")
		assert.Equal(t, "real-estate", ctx.IndustryContext)
	})
}

func TestClear(t *testing.T) {
	s := NewStore()
	s.Append("sess-1", store.RoleUser, "hello")
	s.Clear("sess-1")
	_, ok := s.Get("sess-1")
	assert.False(t, ok)
	assert.Equal(t, 0, s.Len())
}

func TestConcurrentAppend(t *testing.T) {
	s := NewStore()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Append("shared", store.RoleUser, "ping")
		}()
	}
	wg.Wait()

	ctx, ok := s.Get("shared")
	require.True(t, ok)
	assert.Len(t, ctx.Messages, 10, "cap still holds under concurrent appends")
	assert.Equal(t, 1, s.Len(), "exactly one context per session id")
}
