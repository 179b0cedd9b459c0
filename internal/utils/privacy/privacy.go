package privacy

import (
	"regexp"
)

var (
	emailPattern = regexp.MustCompile(`[\w.-]+@[\w.-]+\.\w+`)
	phonePattern = regexp.MustCompile(`(\+?1[-.\s]?)?\(?[0-9]{3}\)?[-.\s]?[0-9]{3}[-.\s]?[0-9]{4}`)
	cardPattern  = regexp.MustCompile(`\d{4}[\s-]?\d{4}[\s-]?\d{4}[\s-]?\d{4}`)
	ssnPattern   = regexp.MustCompile(`\d{3}-\d{2}-\d{4}`)
)

// RedactSensitiveData strips emails, phone numbers, card numbers and SSNs
// from text before it leaves the process for LLM analysis.
func RedactSensitiveData(text string) string {
	if text == "" {
		return ""
	}
	text = emailPattern.ReplaceAllString(text, "[REDACTED_EMAIL]")
	text = cardPattern.ReplaceAllString(text, "[REDACTED_CC]")
	text = ssnPattern.ReplaceAllString(text, "[REDACTED_SSN]")
	text = phonePattern.ReplaceAllString(text, "[REDACTED_PHONE]")
	return text
}
