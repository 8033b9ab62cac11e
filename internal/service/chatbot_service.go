package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"support-assistant-be/internal/constant"
	"support-assistant-be/internal/dto"
	"support-assistant-be/internal/pkg/logger"
	"support-assistant-be/internal/pkg/serverutils"
	"support-assistant-be/pkg/assistant/confidence"
	"support-assistant-be/pkg/assistant/guardrail"
	"support-assistant-be/pkg/assistant/ratelimit"
	"support-assistant-be/pkg/assistant/response"
	"support-assistant-be/pkg/assistant/session"
	"support-assistant-be/pkg/interaction"
	"support-assistant-be/pkg/knowledge"
	"support-assistant-be/pkg/store"
)

// IChatbotService is the conversational engine behind the enhanced endpoint
type IChatbotService interface {
	EnhancedChat(ctx context.Context, clientIP string, req *dto.EnhancedChatRequest) (*dto.EnhancedChatResponse, error)
	Health() *dto.HealthResponse
	ClearContext(sessionID string) bool
}

type chatbotService struct {
	sessions   *session.Store
	limiter    ratelimit.Limiter
	guard      *guardrail.Evaluator
	scorer     *confidence.Scorer
	composer   *response.Composer
	searcher   knowledge.Searcher
	publisher  *interaction.Publisher
	logger     logger.ILogger
	searchTopK int
	now        func() time.Time
}

// NewChatbotService wires the engine's collaborators together. The searcher
// and limiter are interfaces so tests can substitute them.
func NewChatbotService(
	sessions *session.Store,
	limiter ratelimit.Limiter,
	guard *guardrail.Evaluator,
	scorer *confidence.Scorer,
	composer *response.Composer,
	searcher knowledge.Searcher,
	publisher *interaction.Publisher,
	log logger.ILogger,
	searchTopK int,
) IChatbotService {
	if searchTopK <= 0 {
		searchTopK = 5
	}
	return &chatbotService{
		sessions:   sessions,
		limiter:    limiter,
		guard:      guard,
		scorer:     scorer,
		composer:   composer,
		searcher:   searcher,
		publisher:  publisher,
		logger:     log,
		searchTopK: searchTopK,
		now:        time.Now,
	}
}

// EnhancedChat runs the full request lifecycle: rate limit, validation,
// pre-check, context update, retrieval, composition, scoring, post-check,
// interaction logging. Throttled and invalid requests mutate no state.
// Anything unexpected past the input checks becomes a FallbackError so the
// caller never sees a raw failure.
func (s *chatbotService) EnhancedChat(ctx context.Context, clientIP string, req *dto.EnhancedChatRequest) (resp *dto.EnhancedChatResponse, err error) {
	start := s.now()
	interactionID := uuid.NewString()

	identity := req.UserID
	if identity == "" {
		identity = req.SessionID
	}
	if identity == "" {
		identity = clientIP
	}

	defer func() {
		if r := recover(); r != nil {
			resp = nil
			err = s.fallback(ctx, identity, interactionID, req.Message, start, fmt.Errorf("panic: %v", r))
		}
	}()

	if !s.limiter.IsAllowed(ctx, identity) {
		s.logger.Warn(constant.LogModuleChatbot, "rate limit exceeded", map[string]interface{}{
			"identity":       identity,
			"interaction_id": interactionID,
		})
		return nil, &dto.RateLimitExceededError{Identity: identity}
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		s.logger.Warn(constant.LogModuleChatbot, "invalid request rejected", map[string]interface{}{
			"reason":         err.Error(),
			"interaction_id": interactionID,
		})
		return nil, &dto.ValidationError{Reason: err.Error()}
	}

	if reason := guardrail.ValidateInput(req.Message); reason != "" {
		s.logger.Warn(constant.LogModuleChatbot, "invalid input rejected", map[string]interface{}{
			"reason":         reason,
			"interaction_id": interactionID,
		})
		return nil, &dto.ValidationError{Reason: reason}
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = identity
	}

	if pre := s.guard.PreCheck(req.Message); pre.Blocked {
		return s.blockedResponse(ctx, identity, sessionID, interactionID, req.Message, pre, start), nil
	}

	s.sessions.SweepExpired(s.now())
	s.sessions.GetOrCreate(sessionID)
	convCtx := s.sessions.Append(sessionID, store.RoleUser, req.Message)

	sctx := knowledge.SearchContext{
		IndustryContext: convCtx.IndustryContext,
		TopicContext:    convCtx.TopicContext,
	}
	if req.Context != nil {
		sctx.IndustryFilter = req.Context.Industry
		sctx.TypeFilter = req.Context.Topic
	}

	chunks, searchErr := s.searcher.Search(ctx, req.Message, s.searchTopK, sctx)
	if searchErr != nil {
		return nil, s.fallback(ctx, identity, interactionID, req.Message, start, searchErr)
	}

	clarifying := s.guard.NeedsClarification(req.Message, chunks)
	if req.Context != nil && req.Context.Clarifying {
		clarifying = true
	}

	answer := s.composer.ComposeAnswer(chunks, &convCtx, clarifying)
	sources := store.ExtractSources(chunks)
	score := s.scorer.Score(chunks, req.Message, answer)
	post := s.guard.PostCheck(score, len(chunks), req.Message)

	convCtx = s.sessions.Append(sessionID, store.RoleAssistant, answer)

	var suggested []string
	if clarifying {
		suggested = s.composer.ClarifyingQuestions(req.Message)
	} else {
		suggested = s.composer.SuggestedQuestions(&convCtx, sources)
	}

	elapsed := s.now().Sub(start).Milliseconds()

	s.emit(ctx, interaction.LogEntry{
		Timestamp:      s.now(),
		InteractionID:  interactionID,
		Identity:       identity,
		Message:        guardrail.Sanitize(req.Message),
		Answer:         guardrail.Sanitize(answer),
		Confidence:     score,
		SourceCount:    len(sources),
		Clarifying:     clarifying,
		ShouldEscalate: post.ShouldEscalate,
		EscalationType: post.EscalationType,
		ResponseTimeMs: elapsed,
	})

	out := &dto.EnhancedChatResponse{
		Answer:             answer,
		Confidence:         &score,
		Fallback:           post.ShouldEscalate,
		ShouldEscalate:     post.ShouldEscalate,
		EscalationType:     post.EscalationType,
		ResponseTime:       elapsed,
		InteractionID:      interactionID,
		Clarifying:         clarifying,
		SuggestedQuestions: suggested,
		Context: &dto.ResponseContext{
			Industry:           convCtx.IndustryContext,
			Topic:              convCtx.TopicContext,
			ConversationLength: len(convCtx.Messages),
		},
	}
	for _, src := range sources {
		out.Sources = append(out.Sources, dto.SourceDTO{
			Title:    src.Title,
			URL:      src.URL,
			Type:     src.Type,
			Priority: src.Priority,
		})
	}
	return out, nil
}

// blockedResponse builds the canned refusal for a pre-check hit. No context
// is created or mutated; an existing context only contributes its length.
func (s *chatbotService) blockedResponse(ctx context.Context, identity, sessionID, interactionID, message string, pre guardrail.PreCheckResult, start time.Time) *dto.EnhancedChatResponse {
	zero := 0.0
	elapsed := s.now().Sub(start).Milliseconds()

	conversationLength := 0
	if existing, ok := s.sessions.Get(sessionID); ok {
		conversationLength = len(existing.Messages)
	}

	s.emit(ctx, interaction.LogEntry{
		Timestamp:      s.now(),
		InteractionID:  interactionID,
		Identity:       identity,
		Message:        guardrail.Sanitize(message),
		Answer:         pre.Response,
		Blocked:        true,
		ShouldEscalate: pre.ShouldEscalate,
		EscalationType: pre.EscalationType,
		ResponseTimeMs: elapsed,
	})

	return &dto.EnhancedChatResponse{
		Answer:         pre.Response,
		Confidence:     &zero,
		Fallback:       true,
		ShouldEscalate: pre.ShouldEscalate,
		EscalationType: pre.EscalationType,
		ResponseTime:   elapsed,
		InteractionID:  interactionID,
		Context: &dto.ResponseContext{
			ConversationLength: conversationLength,
		},
	}
}

// fallback converts an internal failure into the fixed technical-difficulties
// body, wrapped so the error handler returns it with HTTP 500.
func (s *chatbotService) fallback(ctx context.Context, identity, interactionID, message string, start time.Time, cause error) error {
	zero := 0.0
	elapsed := s.now().Sub(start).Milliseconds()

	s.logger.Error(constant.LogModuleChatbot, "chat pipeline failure", map[string]interface{}{
		"interaction_id": interactionID,
		"error":          cause.Error(),
	})

	s.emit(ctx, interaction.LogEntry{
		Timestamp:      s.now(),
		InteractionID:  interactionID,
		Identity:       identity,
		Message:        guardrail.Sanitize(message),
		Answer:         constant.FallbackAnswer,
		ShouldEscalate: true,
		EscalationType: guardrail.EscalationError,
		ResponseTimeMs: elapsed,
	})

	return &dto.FallbackError{
		Response: &dto.EnhancedChatResponse{
			Answer:         constant.FallbackAnswer,
			Confidence:     &zero,
			Fallback:       true,
			ShouldEscalate: true,
			EscalationType: guardrail.EscalationError,
			ResponseTime:   elapsed,
			InteractionID:  interactionID,
		},
		Cause: cause,
	}
}

// emit publishes an interaction entry; delivery problems are logged, never
// surfaced to the caller.
func (s *chatbotService) emit(ctx context.Context, entry interaction.LogEntry) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, entry); err != nil {
		s.logger.Warn(constant.LogModuleChatbot, "interaction publish failed", map[string]interface{}{
			"interaction_id": entry.InteractionID,
			"error":          err.Error(),
		})
	}
}

// Health reports the static capability descriptor for the GET endpoint
func (s *chatbotService) Health() *dto.HealthResponse {
	return &dto.HealthResponse{
		Status:    "healthy",
		Service:   constant.ServiceName,
		Timestamp: s.now().UTC().Format(time.RFC3339),
		Features:  constant.HealthFeatures,
	}
}

// ClearContext drops a session's conversation state. Reports whether a
// context existed.
func (s *chatbotService) ClearContext(sessionID string) bool {
	_, existed := s.sessions.Get(sessionID)
	s.sessions.Clear(sessionID)
	s.logger.Info(constant.LogModuleChatbot, "conversation context cleared", map[string]interface{}{
		"session_id": sessionID,
		"existed":    existed,
	})
	return existed
}
