package dto

// ChatMessageDTO is one prior turn supplied by the client
type ChatMessageDTO struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp,omitempty"`
}

// RequestContext carries optional client-side hints
type RequestContext struct {
	Industry   string `json:"industry,omitempty"`
	Topic      string `json:"topic,omitempty"`
	Clarifying bool   `json:"clarifying,omitempty"`
}

// EnhancedChatRequest is the POST body of the conversational endpoint
type EnhancedChatRequest struct {
	Message   string           `json:"message" validate:"required,min=1,max=1000"`
	History   []ChatMessageDTO `json:"history,omitempty"`
	SessionID string           `json:"sessionId,omitempty"`
	UserID    string           `json:"userId,omitempty"`
	Context   *RequestContext  `json:"context,omitempty"`
}

// SourceDTO is a public citation entry
type SourceDTO struct {
	Title    string `json:"title"`
	URL      string `json:"url"`
	Type     string `json:"type"`
	Priority string `json:"priority"`
}

// ResponseContext reports the conversation state back to the client
type ResponseContext struct {
	Industry           string `json:"industry,omitempty"`
	Topic              string `json:"topic,omitempty"`
	ConversationLength int    `json:"conversationLength"`
}

// EnhancedChatResponse is the wire contract of the conversational
// endpoint. Every response carries InteractionID and ResponseTime, even
// failures, so a failed request stays traceable.
type EnhancedChatResponse struct {
	Answer             string           `json:"answer"`
	Sources            []SourceDTO      `json:"sources,omitempty"`
	Confidence         *float64         `json:"confidence,omitempty"`
	Fallback           bool             `json:"fallback,omitempty"`
	ShouldEscalate     bool             `json:"shouldEscalate,omitempty"`
	EscalationType     string           `json:"escalationType,omitempty"`
	ResponseTime       int64            `json:"responseTime"`
	InteractionID      string           `json:"interactionId"`
	Clarifying         bool             `json:"clarifying,omitempty"`
	SuggestedQuestions []string         `json:"suggestedQuestions,omitempty"`
	Context            *ResponseContext `json:"context,omitempty"`
}

// HealthResponse is the static capability descriptor of the GET endpoint
type HealthResponse struct {
	Status    string   `json:"status"`
	Service   string   `json:"service"`
	Timestamp string   `json:"timestamp"`
	Features  []string `json:"features"`
}
