package guardrail

import "regexp"

// DisallowedTopics the assistant must never discuss. Matching is
// case-insensitive substring.
var DisallowedTopics = []string{
	// Internal/Admin topics
	"internal pricing",
	"back office",
	"admin panel",
	"admin dashboard",
	"internal systems",
	"employee data",
	"staff information",
	"confidential",
	"proprietary",

	// Client-specific information
	"client-specific",
	"project details",
	"account status",
	"billing information",
	"payment details",
	"invoice details",
	"subscription details",

	// Technical/internal details
	"database schema",
	"api keys",
	"secrets",
	"credentials",
	"internal architecture",
	"server configuration",
	"deployment details",

	// Sensitive business information
	"revenue numbers",
	"profit margins",
	"financial details",
	"business strategy",
	"internal processes",
	"company secrets",
}

// DisallowedPatterns catch sensitive requests that the topic list misses
var DisallowedPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)password|passwd|pwd`),
	regexp.MustCompile(`(?i)token|key|secret`),
	regexp.MustCompile(`(?i)admin|administrator`),
	regexp.MustCompile(`(?i)internal|private|confidential`),
	regexp.MustCompile(`(?i)billing|payment|invoice|subscription`),
	regexp.MustCompile(`(?i)client.*specific|account.*status`),
	regexp.MustCompile(`(?i)database|schema|table|query`),
	regexp.MustCompile(`(?i)server|host|ip|port`),
	regexp.MustCompile(`(?i)deploy|deployment|ci/cd`),
}

// EscalationTriggers route a message to human support regardless of
// retrieval quality.
var EscalationTriggers = []string{
	"complaint",
	"refund",
	"cancel",
	"terminate",
	"legal",
	"lawsuit",
	"dispute",
	"problem",
	"issue",
	"bug",
	"error",
	"broken",
	"not working",
	"urgent",
	"emergency",
}

// Canned refusal responses, keyed by escalation type
const (
	responsePricing  = "I'm sorry, I don't have access to specific pricing information. But I'd be happy to connect you with our sales team who can provide a custom quote based on your needs. Would you like me to send you their contact info or a link to schedule a demo?"
	responseInternal = "I'm sorry, I don't have access to that internal information. But I can connect you with our support team who can help with account-specific details. Would you like me to provide contact information?"
	responseAdmin    = "I'm sorry, I don't have access to administrative information. For account management or admin-related questions, please contact our support team. Would you like me to connect you with them?"
	responseGeneral  = "I'm sorry, I don't have access to that information. But I'd be happy to connect you with our sales or support team for help. Would you like me to send you a link or contact form?"
	responseConcern  = "I understand you may have a concern or issue. Let me connect you with our support team who can provide personalized assistance. Would you like me to help you contact them?"
)
