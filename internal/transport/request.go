package transport

import (
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var sessionIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// validateSessionID enforces the opaque session id format: a restricted
// character set with bounded length.
func validateSessionID(id string) error {
	return validation.Validate(id,
		validation.Required,
		validation.Length(1, 200),
		validation.Match(sessionIDPattern),
	)
}

// sanitizeMessage trims whitespace, strips NUL bytes, and caps the length.
// The cap counts runes, not bytes, so truncation can never split a multi-byte
// character and hand invalid UTF-8 downstream. Runs before the orchestrator
// is ever invoked.
func sanitizeMessage(text string, maxLength int) string {
	text = strings.TrimSpace(text)
	text = strings.ReplaceAll(text, "\x00", "")
	if maxLength > 0 {
		if runes := []rune(text); len(runes) > maxLength {
			text = string(runes[:maxLength])
		}
	}
	return text
}
