package dto

// ValidationError rejects bad chat input before any processing (HTTP 400)
type ValidationError struct {
	Reason string `json:"error"`
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// RateLimitExceededError signals a throttled identity (HTTP 429). No state
// is mutated for a throttled request.
type RateLimitExceededError struct {
	Identity string
}

func (e *RateLimitExceededError) Error() string {
	return "too many requests, please try again later"
}

// FallbackError wraps the fixed "technical difficulties" body produced
// when something unexpected broke mid-pipeline. The controller returns the
// body with HTTP 500; the client never sees the underlying cause.
type FallbackError struct {
	Response *EnhancedChatResponse
	Cause    error
}

func (e *FallbackError) Error() string {
	if e.Cause != nil {
		return "chat pipeline failure: " + e.Cause.Error()
	}
	return "chat pipeline failure"
}

func (e *FallbackError) Unwrap() error {
	return e.Cause
}
