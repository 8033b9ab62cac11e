package response

import (
	"fmt"
	"strings"

	"support-assistant-be/pkg/store"
)

const (
	maxClarifyingQuestions = 3
	maxSuggestedQuestions  = 4
	maxSupplementaryChunks = 3
)

// Composer assembles the assistant's answer text from retrieved chunks and
// the conversation context. Stateless.
type Composer struct{}

// NewComposer creates an answer composer
func NewComposer() *Composer {
	return &Composer{}
}

// ComposeAnswer builds a best-effort answer: one leading chunk (snippets
// first - they are written as short direct answers), then up to three
// supplementary chunks, then context-aware follow-ups.
func (c *Composer) ComposeAnswer(chunks []store.RetrievedChunk, convCtx *store.ConversationContext, clarifying bool) string {
	if len(chunks) == 0 {
		if clarifying {
			return "I'm still not sure I understand what you're looking for. Could you provide more specific details about your needs?"
		}
		return "I don't have specific information about that topic. Could you rephrase your question or provide more context?"
	}

	var snippets, regular []store.RetrievedChunk
	for _, chunk := range chunks {
		if chunk.Metadata.IsSnippet {
			snippets = append(snippets, chunk)
		} else {
			regular = append(regular, chunk)
		}
	}

	var sb strings.Builder
	sb.WriteString("Based on our available information:\n\n")

	if len(snippets) > 0 {
		sb.WriteString(snippets[0].Text)
	} else {
		sb.WriteString(regular[0].Text)
	}
	sb.WriteString("\n\n")

	var supplements []store.RetrievedChunk
	if len(snippets) > 0 {
		supplements = append(supplements, snippets[1:]...)
		supplements = append(supplements, regular...)
	} else {
		supplements = append(supplements, regular[1:]...)
	}
	if len(supplements) > maxSupplementaryChunks {
		supplements = supplements[:maxSupplementaryChunks]
	}
	if len(supplements) > 0 {
		sb.WriteString("Additional information:\n")
		for _, chunk := range supplements {
			sb.WriteString("• ")
			sb.WriteString(chunk.Text)
			sb.WriteString("\n")
		}
	}

	if convCtx != nil && convCtx.IndustryContext != "" {
		fmt.Fprintf(&sb, "\nSince you're interested in %s, I can provide more specific information about our solutions for that industry.", convCtx.IndustryContext)
	}
	if convCtx != nil && convCtx.TopicContext != "" {
		fmt.Fprintf(&sb, "\nI can also share more details about %s features and benefits.", convCtx.TopicContext)
	}

	sb.WriteString("\n\nWould you like to know more about any specific aspect, or would you prefer to speak with our team directly?")
	return sb.String()
}

// ClarifyingQuestions returns up to three follow-up questions tailored to
// the ambiguous query.
func (c *Composer) ClarifyingQuestions(query string) []string {
	lower := strings.ToLower(query)
	var questions []string

	if strings.Contains(lower, "automation") || strings.Contains(lower, "solution") {
		questions = append(questions,
			"Which industry are you interested in? (Property Management, Real Estate, Contractors, Accounting, Cleaning, or Healthcare)",
			"Are you looking for specific automation workflows or general solutions?",
			"What's your main pain point that you'd like to automate?",
		)
	}
	if strings.Contains(lower, "app") || strings.Contains(lower, "software") {
		questions = append(questions,
			"Which application are you interested in? (CRM, SecureVault Docs, LeadFlow Engine, or IndustryIQ)",
			"Are you looking for features, pricing, or implementation details?",
			"What's your primary use case for this application?",
		)
	}

	if len(questions) == 0 {
		questions = append(questions,
			"Could you provide more details about what you're looking for?",
			"Which specific aspect would you like to know more about?",
			"Are you interested in a particular industry or solution?",
		)
	}

	if len(questions) > maxClarifyingQuestions {
		questions = questions[:maxClarifyingQuestions]
	}
	return questions
}

// SuggestedQuestions returns up to four follow-up prompts derived from the
// conversation context and the cited sources.
func (c *Composer) SuggestedQuestions(convCtx *store.ConversationContext, sources []store.Source) []string {
	var suggestions []string

	if convCtx != nil && convCtx.IndustryContext != "" {
		industry := convCtx.IndustryContext
		suggestions = append(suggestions,
			fmt.Sprintf("What automations do you offer for %s?", industry),
			fmt.Sprintf("How can %s businesses benefit from your solutions?", industry),
		)
	}
	if convCtx != nil && convCtx.TopicContext != "" {
		topic := convCtx.TopicContext
		suggestions = append(suggestions,
			fmt.Sprintf("Tell me more about %s features", topic),
			fmt.Sprintf("How does %s integration work?", topic),
		)
	}

	seen := make(map[string]bool)
	for _, src := range sources {
		if seen[src.Type] {
			continue
		}
		seen[src.Type] = true
		switch src.Type {
		case "automation":
			suggestions = append(suggestions, "What other automations do you offer?")
		case "app":
			suggestions = append(suggestions, "What other applications do you have?")
		case "industry":
			suggestions = append(suggestions, "What other industries do you serve?")
		}
	}

	if len(suggestions) == 0 {
		suggestions = append(suggestions,
			"What industries do you serve?",
			"What automations do you offer?",
			"How can I get started?",
			"Can I see a demo?",
		)
	}

	if len(suggestions) > maxSuggestedQuestions {
		suggestions = suggestions[:maxSuggestedQuestions]
	}
	return suggestions
}
