// Package privacy scrubs secrets and personal data from text before it is logged.
package privacy

import (
	"regexp"
	"unicode/utf8"
)

const maxLogLength = 300

var (
	// Provider API keys: sk-..., sk-proj-..., sk-ant-api03-...; masked keys echoed
	// back in error bodies (sk-abc*****xyz) are covered too
	apiKeyRegex = regexp.MustCompile(`\bsk-[A-Za-z0-9_\-*]{8,}`)

	bearerRegex = regexp.MustCompile(`(?i)\bbearer\s+[A-Za-z0-9._\-~+/]+=*`)

	emailRegex = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
)

// Redact replaces API keys, bearer tokens and email addresses with placeholders
func Redact(text string) string {
	text = apiKeyRegex.ReplaceAllString(text, "[API_KEY]")
	text = bearerRegex.ReplaceAllString(text, "Bearer [TOKEN]")
	text = emailRegex.ReplaceAllString(text, "[EMAIL]")
	return text
}

// SanitizeForLogging redacts text and bounds its length
func SanitizeForLogging(text string) string {
	redacted := Redact(text)
	if len(redacted) > maxLogLength {
		cut := maxLogLength - 3
		for cut > 0 && !utf8.RuneStart(redacted[cut]) {
			cut--
		}
		return redacted[:cut] + "..."
	}
	return redacted
}
