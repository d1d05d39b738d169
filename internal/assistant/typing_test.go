package assistant

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/crednest/server/internal/assistant/model"
)

func typingConfig() model.TypingConfig {
	return model.TypingConfig{Enabled: true, MinDelay: 0.5, MaxDelay: 3.0, WPM: 200}
}

func TestTypingDelay(t *testing.T) {
	cfg := typingConfig()

	tests := []struct {
		name string
		text string
		want float64
	}{
		{"empty text", "", 0.5},
		{"short text clamps to min", "ok", 0.5},
		// 100 words at 200 WPM is 30s of typing, clamped to the max.
		{"long text clamps to max", strings.Repeat("word ", 100), 3.0},
		// 5 words / 200 WPM * 60 = 1.5s, inside the window.
		{"mid-range text", "one two three four five", 1.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TypingDelay(tt.text, cfg))
		})
	}
}

func TestSimulateTyping_Disabled(t *testing.T) {
	cfg := typingConfig()
	cfg.Enabled = false

	start := time.Now()
	delay := SimulateTyping(context.Background(), strings.Repeat("word ", 100), cfg)

	assert.Equal(t, 0.0, delay)
	assert.Less(t, time.Since(start), 100*time.Millisecond)
}

func TestSimulateTyping_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	delay := SimulateTyping(ctx, strings.Repeat("word ", 100), typingConfig())

	// The computed delay is still reported, but the wait is cut short.
	assert.Equal(t, 3.0, delay)
	assert.Less(t, time.Since(start), time.Second)
}
