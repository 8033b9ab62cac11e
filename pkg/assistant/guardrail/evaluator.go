package guardrail

import (
	"strings"

	"support-assistant-be/pkg/store"
)

// Escalation types produced by the evaluator
const (
	EscalationPricing        = "pricing"
	EscalationInternal       = "internal"
	EscalationAdmin          = "admin"
	EscalationGeneral        = "general"
	EscalationConcern        = "concern"
	EscalationLowConfidence  = "low_confidence"
	EscalationNoResults      = "no_results"
	EscalationHumanRequested = "human_requested"
	EscalationError          = "error"
)

// ConfidenceFloor is the post-check escalation threshold
const ConfidenceFloor = 0.5

// PreCheckResult is the outcome of the input-side policy check
type PreCheckResult struct {
	Blocked        bool
	Response       string
	ShouldEscalate bool
	EscalationType string
}

// PostCheckResult is the outcome of the answer-side escalation decision
type PostCheckResult struct {
	ShouldEscalate bool
	EscalationType string
}

// Evaluator applies the content and escalation policy. Stateless; safe for
// concurrent use.
type Evaluator struct{}

// NewEvaluator creates a policy evaluator
func NewEvaluator() *Evaluator {
	return &Evaluator{}
}

// PreCheck matches the raw message against the disallowed-topic policy.
// A blocked result carries a canned refusal and short-circuits the rest of
// the pipeline: no knowledge search happens for blocked messages.
// Refusal selection runs in fixed priority order so the outcome is
// deterministic: pricing, internal, admin, general, concern.
func (e *Evaluator) PreCheck(message string) PreCheckResult {
	lower := strings.ToLower(message)

	if containsAny(lower, "pricing", "cost", "price") {
		return PreCheckResult{Blocked: true, Response: responsePricing, ShouldEscalate: true, EscalationType: EscalationPricing}
	}
	if containsAny(lower, "internal", "back office", "confidential") {
		return PreCheckResult{Blocked: true, Response: responseInternal, ShouldEscalate: true, EscalationType: EscalationInternal}
	}
	if containsAny(lower, "admin", "administrator", "account status") {
		return PreCheckResult{Blocked: true, Response: responseAdmin, ShouldEscalate: true, EscalationType: EscalationAdmin}
	}
	if e.ContainsDisallowedContent(message) {
		return PreCheckResult{Blocked: true, Response: responseGeneral, ShouldEscalate: true, EscalationType: EscalationGeneral}
	}
	if e.matchesEscalationTrigger(lower) {
		return PreCheckResult{Blocked: true, Response: responseConcern, ShouldEscalate: true, EscalationType: EscalationConcern}
	}

	return PreCheckResult{}
}

// postRule is one named entry in the ordered escalation rule list
type postRule struct {
	escalationType string
	matches        func(confidence float64, retrievedCount int, lowerMessage string) bool
}

// The rules are evaluated in order; the first match decides the
// escalation type. They are OR'd - any single trigger escalates.
var postRules = []postRule{
	{
		escalationType: EscalationLowConfidence,
		matches: func(confidence float64, _ int, _ string) bool {
			return confidence < ConfidenceFloor
		},
	},
	{
		escalationType: EscalationNoResults,
		matches: func(_ float64, retrievedCount int, _ string) bool {
			return retrievedCount == 0
		},
	},
	{
		escalationType: EscalationHumanRequested,
		matches: func(_ float64, _ int, lowerMessage string) bool {
			for _, trigger := range EscalationTriggers {
				if strings.Contains(lowerMessage, trigger) {
					return true
				}
			}
			return false
		},
	},
}

// PostCheck decides whether an already-composed answer should also be
// routed to a human.
func (e *Evaluator) PostCheck(confidence float64, retrievedCount int, message string) PostCheckResult {
	lower := strings.ToLower(message)
	for _, rule := range postRules {
		if rule.matches(confidence, retrievedCount, lower) {
			return PostCheckResult{ShouldEscalate: true, EscalationType: rule.escalationType}
		}
	}
	return PostCheckResult{}
}

// catalogTerms name the offering class without saying which offering.
// A question built around one of them ("What automation do you offer?")
// spans the whole catalog and cannot be answered specifically.
var catalogTerms = []string{"automation", "solution", "service"}

// catalogQualifiers anchor a catalog term to an industry, product or
// workflow, turning a catalog-wide question into a specific one.
var catalogQualifiers = []string{
	"property", "real-estate", "real estate", "contractor", "accounting",
	"cleaning", "healthcare",
	"crm", "securevault", "leadflow", "industryiq",
	"document", "lead", "billing", "scheduling",
}

// NeedsClarification reports whether the answer should be accompanied by
// clarifying follow-up questions: nothing retrieved, only low-priority
// material, an ambiguous short / pronoun-heavy message, or a catalog-wide
// question with no industry or product qualifier.
func (e *Evaluator) NeedsClarification(message string, chunks []store.RetrievedChunk) bool {
	lowQuality := len(chunks) == 0 || allLowPriority(chunks)

	lower := strings.ToLower(message)
	ambiguous := len(message) < 20 ||
		strings.Contains(lower, "that") ||
		strings.Contains(lower, "this") ||
		strings.Contains(lower, "it")

	catalogWide := containsAny(lower, catalogTerms...) &&
		!containsAny(lower, catalogQualifiers...)

	return lowQuality || ambiguous || catalogWide
}

// ContainsDisallowedContent checks the topic list and the regex patterns
func (e *Evaluator) ContainsDisallowedContent(message string) bool {
	lower := strings.ToLower(message)
	for _, topic := range DisallowedTopics {
		if strings.Contains(lower, topic) {
			return true
		}
	}
	for _, pattern := range DisallowedPatterns {
		if pattern.MatchString(message) {
			return true
		}
	}
	return false
}

func (e *Evaluator) matchesEscalationTrigger(lowerMessage string) bool {
	for _, trigger := range EscalationTriggers {
		if strings.Contains(lowerMessage, trigger) {
			return true
		}
	}
	return false
}

func containsAny(lower string, terms ...string) bool {
	for _, term := range terms {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}

func allLowPriority(chunks []store.RetrievedChunk) bool {
	for _, c := range chunks {
		if c.Metadata.Priority != "low" {
			return false
		}
	}
	return true
}
