package guardrail

import "regexp"

var (
	cardNumberRe = regexp.MustCompile(`\b\d{4}[-\s]?\d{4}[-\s]?\d{4}[-\s]?\d{4}\b`)
	ssnRe        = regexp.MustCompile(`\b\d{3}-\d{2}-\d{4}\b`)
	emailRe      = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	phoneRe      = regexp.MustCompile(`\b\d{3}-\d{3}-\d{4}\b`)
	passwordRe   = regexp.MustCompile(`(?i)\b(?:password|passwd|pwd)\s*[:=]\s*\S+`)
	tokenRe      = regexp.MustCompile(`(?i)\b(?:token|key|secret)\s*[:=]\s*\S+`)
)

// Sanitize masks sensitive data before a message or answer is logged.
// Interaction logs must never contain raw card numbers, credentials or
// contact details.
func Sanitize(content string) string {
	content = cardNumberRe.ReplaceAllString(content, "[CARD-NUMBER]")
	content = ssnRe.ReplaceAllString(content, "[SSN]")
	content = emailRe.ReplaceAllString(content, "[EMAIL]")
	content = phoneRe.ReplaceAllString(content, "[PHONE]")
	content = passwordRe.ReplaceAllString(content, "password=[REDACTED]")
	content = tokenRe.ReplaceAllString(content, "token=[REDACTED]")
	return content
}
