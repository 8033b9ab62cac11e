package constant

// Service identity reported by the health endpoint
const (
	ServiceName = "enhanced-chatbot-api"

	LogModuleChatbot = "chatbot"
	LogModuleMonitor = "chatbot-monitor"
)

// FallbackAnswer is the fixed response used when the pipeline fails
// unexpectedly. The caller never sees a raw error.
const FallbackAnswer = "I'm experiencing some technical difficulties. Please try again in a moment, or contact our support team for immediate assistance."

// HealthFeatures advertises engine capabilities on the GET endpoint
var HealthFeatures = []string{
	"multi-turn-conversations",
	"context-awareness",
	"clarifying-questions",
	"enhanced-search",
	"priority-ranking",
}
