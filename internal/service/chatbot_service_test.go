package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"support-assistant-be/internal/dto"
	"support-assistant-be/internal/pkg/logger"
	"support-assistant-be/pkg/assistant/confidence"
	"support-assistant-be/pkg/assistant/guardrail"
	"support-assistant-be/pkg/assistant/ratelimit"
	"support-assistant-be/pkg/assistant/response"
	"support-assistant-be/pkg/assistant/session"
	"support-assistant-be/pkg/knowledge"
	"support-assistant-be/pkg/store"
)

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }
func (nopLogger) GetLogs(string, string, int, int) ([]logger.LogEntry, error) {
	return nil, nil
}

type allowAllLimiter struct{}

func (allowAllLimiter) IsAllowed(context.Context, string) bool { return true }

type denyAllLimiter struct{}

func (denyAllLimiter) IsAllowed(context.Context, string) bool { return false }

// spySearcher records calls and returns canned results
type spySearcher struct {
	calls   int
	results []store.RetrievedChunk
	err     error
	panics  bool
}

func (s *spySearcher) Search(_ context.Context, _ string, _ int, _ knowledge.SearchContext) ([]store.RetrievedChunk, error) {
	s.calls++
	if s.panics {
		panic("searcher exploded")
	}
	return s.results, s.err
}

func newTestService(sessions *session.Store, limiter ratelimit.Limiter, searcher knowledge.Searcher) IChatbotService {
	return NewChatbotService(
		sessions,
		limiter,
		guardrail.NewEvaluator(),
		confidence.NewScorer(),
		response.NewComposer(),
		searcher,
		nil, // no publisher; emit is a no-op
		nopLogger{},
		5,
	)
}

func highPriorityChunk(id, text string) store.RetrievedChunk {
	return store.RetrievedChunk{
		ID:   id,
		Text: text,
		Metadata: store.ChunkMetadata{
			DocID:    id,
			Title:    "Workflow Automation",
			URL:      "/automations/" + id,
			Type:     "automation",
			Priority: "high",
		},
	}
}

func TestEnhancedChatAnswersFromRetrievedChunks(t *testing.T) {
	sessions := session.NewStore()
	searcher := &spySearcher{results: []store.RetrievedChunk{
		highPriorityChunk("wf-1", "Our lead intake automation routes every new inquiry to the right person within minutes."),
		highPriorityChunk("wf-2", "Scheduled follow-ups keep prospects warm without manual effort."),
	}}
	svc := newTestService(sessions, allowAllLimiter{}, searcher)

	res, err := svc.EnhancedChat(context.Background(), "203.0.113.7", &dto.EnhancedChatRequest{
		Message:   "How does your lead intake automation route new inquiries every day?",
		SessionID: "s1",
	})
	require.NoError(t, err)
	require.NotNil(t, res)

	assert.Equal(t, 1, searcher.calls)
	assert.Contains(t, res.Answer, "lead intake automation")
	assert.Len(t, res.Sources, 2)
	assert.Equal(t, "automation", res.Sources[0].Type)
	require.NotNil(t, res.Confidence)
	assert.GreaterOrEqual(t, *res.Confidence, 0.0)
	assert.LessOrEqual(t, *res.Confidence, 1.0)
	assert.NotEmpty(t, res.InteractionID)
	require.NotNil(t, res.Context)
	assert.Equal(t, 2, res.Context.ConversationLength)

	// Both turns landed in the conversation context
	conv, ok := sessions.Get("s1")
	require.True(t, ok)
	require.Len(t, conv.Messages, 2)
	assert.Equal(t, store.RoleUser, conv.Messages[0].Role)
	assert.Equal(t, store.RoleAssistant, conv.Messages[1].Role)

	// Answered without escalation: no fallback flag
	assert.False(t, res.ShouldEscalate)
	assert.False(t, res.Fallback)
}

func TestEnhancedChatEscalatedAnswerCarriesFallbackFlag(t *testing.T) {
	sessions := session.NewStore()
	searcher := &spySearcher{} // no results: low confidence, escalates
	svc := newTestService(sessions, allowAllLimiter{}, searcher)

	res, err := svc.EnhancedChat(context.Background(), "203.0.113.7", &dto.EnhancedChatRequest{
		Message:   "Describe the full onboarding workflow for new customers",
		SessionID: "s1",
	})
	require.NoError(t, err)
	require.NotNil(t, res)

	assert.True(t, res.ShouldEscalate)
	assert.Equal(t, res.ShouldEscalate, res.Fallback, "escalated answers carry the fallback flag")
}

func TestEnhancedChatConcurrentSameSession(t *testing.T) {
	sessions := session.NewStore()
	searcher := &spySearcher{results: []store.RetrievedChunk{
		highPriorityChunk("wf-1", "Our lead intake automation routes every new inquiry to the right person within minutes."),
	}}
	svc := newTestService(sessions, allowAllLimiter{}, searcher)

	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.EnhancedChat(context.Background(), "203.0.113.7", &dto.EnhancedChatRequest{
				Message:   "How does your lead intake automation route new inquiries every day?",
				SessionID: "shared",
			})
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		require.NoError(t, err, "request %d", i)
	}

	conv, ok := sessions.Get("shared")
	require.True(t, ok)
	assert.Len(t, conv.Messages, 10, "history cap holds under concurrent requests")
	assert.Equal(t, 1, sessions.Len())
}

func TestEnhancedChatRateLimitedMutatesNothing(t *testing.T) {
	sessions := session.NewStore()
	searcher := &spySearcher{}
	svc := newTestService(sessions, denyAllLimiter{}, searcher)

	res, err := svc.EnhancedChat(context.Background(), "203.0.113.7", &dto.EnhancedChatRequest{
		Message:   "Which industries do you serve?",
		SessionID: "s1",
	})
	assert.Nil(t, res)

	var rateErr *dto.RateLimitExceededError
	require.ErrorAs(t, err, &rateErr)
	assert.Equal(t, "s1", rateErr.Identity)

	assert.Zero(t, searcher.calls)
	assert.Zero(t, sessions.Len())
}

func TestEnhancedChatIdentityResolutionOrder(t *testing.T) {
	sessions := session.NewStore()
	svc := newTestService(sessions, denyAllLimiter{}, &spySearcher{})

	tests := []struct {
		name string
		req  dto.EnhancedChatRequest
		want string
	}{
		{"userId first", dto.EnhancedChatRequest{Message: "hello there friend", UserID: "u1", SessionID: "s1"}, "u1"},
		{"sessionId next", dto.EnhancedChatRequest{Message: "hello there friend", SessionID: "s1"}, "s1"},
		{"client IP last", dto.EnhancedChatRequest{Message: "hello there friend"}, "203.0.113.7"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.EnhancedChat(context.Background(), "203.0.113.7", &tc.req)
			var rateErr *dto.RateLimitExceededError
			require.ErrorAs(t, err, &rateErr)
			assert.Equal(t, tc.want, rateErr.Identity)
		})
	}
}

func TestEnhancedChatInvalidInputRejected(t *testing.T) {
	sessions := session.NewStore()
	searcher := &spySearcher{}
	svc := newTestService(sessions, allowAllLimiter{}, searcher)

	res, err := svc.EnhancedChat(context.Background(), "203.0.113.7", &dto.EnhancedChatRequest{
		Message:   "<script>alert('x')</script>",
		SessionID: "s1",
	})
	assert.Nil(t, res)

	var valErr *dto.ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Zero(t, searcher.calls)
	assert.Zero(t, sessions.Len())
}

func TestEnhancedChatRateLimitWinsOverValidation(t *testing.T) {
	sessions := session.NewStore()
	svc := newTestService(sessions, denyAllLimiter{}, &spySearcher{})

	// A throttled identity is throttled even for a malformed message
	res, err := svc.EnhancedChat(context.Background(), "203.0.113.7", &dto.EnhancedChatRequest{
		Message:   "",
		SessionID: "s1",
	})
	assert.Nil(t, res)

	var rateErr *dto.RateLimitExceededError
	require.ErrorAs(t, err, &rateErr)
}

func TestEnhancedChatEmptyMessageRejected(t *testing.T) {
	sessions := session.NewStore()
	svc := newTestService(sessions, allowAllLimiter{}, &spySearcher{})

	res, err := svc.EnhancedChat(context.Background(), "203.0.113.7", &dto.EnhancedChatRequest{
		Message:   "",
		SessionID: "s1",
	})
	assert.Nil(t, res)

	var valErr *dto.ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Zero(t, sessions.Len())
}

func TestEnhancedChatGuardrailShortCircuit(t *testing.T) {
	sessions := session.NewStore()
	searcher := &spySearcher{}
	svc := newTestService(sessions, allowAllLimiter{}, searcher)

	res, err := svc.EnhancedChat(context.Background(), "203.0.113.7", &dto.EnhancedChatRequest{
		Message:   "What is your pricing?",
		SessionID: "s1",
	})
	require.NoError(t, err)
	require.NotNil(t, res)

	// Blocked before retrieval and before any context mutation
	assert.Zero(t, searcher.calls)
	assert.Zero(t, sessions.Len())

	assert.True(t, res.Fallback)
	assert.True(t, res.ShouldEscalate)
	assert.Equal(t, guardrail.EscalationPricing, res.EscalationType)
	require.NotNil(t, res.Confidence)
	assert.Zero(t, *res.Confidence)
	require.NotNil(t, res.Context)
	assert.Equal(t, 0, res.Context.ConversationLength)
}

func TestEnhancedChatBlockedReportsExistingContextLength(t *testing.T) {
	sessions := session.NewStore()
	searcher := &spySearcher{results: []store.RetrievedChunk{highPriorityChunk("wf-1", "Document workflows handled end to end.")}}
	svc := newTestService(sessions, allowAllLimiter{}, searcher)

	_, err := svc.EnhancedChat(context.Background(), "203.0.113.7", &dto.EnhancedChatRequest{
		Message:   "Tell me about document workflows",
		SessionID: "s1",
	})
	require.NoError(t, err)
	before, ok := sessions.Get("s1")
	require.True(t, ok)
	require.Len(t, before.Messages, 2)

	res, err := svc.EnhancedChat(context.Background(), "203.0.113.7", &dto.EnhancedChatRequest{
		Message:   "What is your pricing?",
		SessionID: "s1",
	})
	require.NoError(t, err)

	require.NotNil(t, res.Context)
	assert.Equal(t, 2, res.Context.ConversationLength)
	// The blocked exchange itself was not appended
	after, ok := sessions.Get("s1")
	require.True(t, ok)
	assert.Len(t, after.Messages, 2)
}

func TestEnhancedChatSearchErrorBecomesFallback(t *testing.T) {
	sessions := session.NewStore()
	searcher := &spySearcher{err: errors.New("index unavailable")}
	svc := newTestService(sessions, allowAllLimiter{}, searcher)

	res, err := svc.EnhancedChat(context.Background(), "203.0.113.7", &dto.EnhancedChatRequest{
		Message:   "Which automations help with scheduling work?",
		SessionID: "s1",
	})
	assert.Nil(t, res)

	var fallbackErr *dto.FallbackError
	require.ErrorAs(t, err, &fallbackErr)
	require.NotNil(t, fallbackErr.Response)

	assert.True(t, fallbackErr.Response.Fallback)
	assert.True(t, fallbackErr.Response.ShouldEscalate)
	assert.Equal(t, guardrail.EscalationError, fallbackErr.Response.EscalationType)
	assert.NotEmpty(t, fallbackErr.Response.Answer)
	assert.NotEmpty(t, fallbackErr.Response.InteractionID)
}

func TestEnhancedChatPanicIsRecoveredIntoFallback(t *testing.T) {
	sessions := session.NewStore()
	searcher := &spySearcher{panics: true}
	svc := newTestService(sessions, allowAllLimiter{}, searcher)

	res, err := svc.EnhancedChat(context.Background(), "203.0.113.7", &dto.EnhancedChatRequest{
		Message:   "Which automations help with scheduling work?",
		SessionID: "s1",
	})
	assert.Nil(t, res)

	var fallbackErr *dto.FallbackError
	require.ErrorAs(t, err, &fallbackErr)
	require.NotNil(t, fallbackErr.Response)
	assert.Equal(t, guardrail.EscalationError, fallbackErr.Response.EscalationType)
}

func TestClearContextReportsExistence(t *testing.T) {
	sessions := session.NewStore()
	svc := newTestService(sessions, allowAllLimiter{}, &spySearcher{})

	assert.False(t, svc.ClearContext("missing"))

	_, err := svc.EnhancedChat(context.Background(), "203.0.113.7", &dto.EnhancedChatRequest{
		Message:   "Tell me about document workflows",
		SessionID: "s1",
	})
	require.NoError(t, err)

	assert.True(t, svc.ClearContext("s1"))
	_, ok := sessions.Get("s1")
	assert.False(t, ok)
}

func TestHealthDescriptor(t *testing.T) {
	svc := newTestService(session.NewStore(), allowAllLimiter{}, &spySearcher{})

	h := svc.Health()
	assert.Equal(t, "healthy", h.Status)
	assert.Equal(t, "enhanced-chatbot-api", h.Service)
	assert.NotEmpty(t, h.Timestamp)
	assert.Len(t, h.Features, 5)
}
