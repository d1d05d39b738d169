package transport

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestValidateSessionID(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{"simple", "session_abc123", false},
		{"uuid style", "session_550e8400-e29b-41d4-a716-446655440000", false},
		{"max length", strings.Repeat("a", 200), false},
		{"empty", "", true},
		{"too long", strings.Repeat("a", 201), true},
		{"spaces", "session 123", true},
		{"path traversal", "../etc/passwd", true},
		{"unicode", "sessão", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateSessionID(tt.id)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSanitizeMessage(t *testing.T) {
	tests := []struct {
		name      string
		in        string
		maxLength int
		want      string
	}{
		{"trims whitespace", "  hello  ", 2000, "hello"},
		{"strips nul bytes", "he\x00llo", 2000, "hello"},
		{"caps length", strings.Repeat("a", 50), 10, strings.Repeat("a", 10)},
		{"whitespace only", "   \t\n  ", 2000, ""},
		{"zero max keeps everything", strings.Repeat("a", 50), 0, strings.Repeat("a", 50)},
		{"caps by rune not byte", strings.Repeat("₹", 5), 4, strings.Repeat("₹", 4)},
		{"multibyte under cap untouched", "₹₹", 4, "₹₹"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sanitizeMessage(tt.in, tt.maxLength)
			assert.Equal(t, tt.want, got)
			assert.True(t, utf8.ValidString(got))
		})
	}
}
