package guardrail

import (
	"regexp"
	"strings"
)

// MaxMessageLength bounds the accepted chat input
const MaxMessageLength = 1000

var suspiciousPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)<script`),
	regexp.MustCompile(`(?i)javascript:`),
	regexp.MustCompile(`(?i)on\w+\s*=`),
	regexp.MustCompile(`(?i)eval\s*\(`),
	regexp.MustCompile(`(?i)function\s*\(`),
}

// ValidateInput checks the raw chat message before any processing.
// Returns an empty string when the input is acceptable, otherwise a
// client-facing reason.
func ValidateInput(input string) string {
	if input == "" {
		return "Input is required and must be a string"
	}
	if len(input) > MaxMessageLength {
		return "Input is too long (max 1000 characters)"
	}
	if strings.TrimSpace(input) == "" {
		return "Input cannot be empty"
	}
	for _, pattern := range suspiciousPatterns {
		if pattern.MatchString(input) {
			return "Input contains potentially malicious content"
		}
	}
	return ""
}
