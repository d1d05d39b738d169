package assistant

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/crednest/server/internal/assistant/model"
)

// TypingDelay computes the human-paced delivery delay for a response: word
// count over the configured words-per-minute rate, clamped to [min, max].
func TypingDelay(text string, cfg model.TypingConfig) float64 {
	if text == "" {
		return cfg.MinDelay
	}

	words := len(strings.Fields(text))
	delay := float64(words) / float64(cfg.WPM) * 60

	delay = math.Max(cfg.MinDelay, math.Min(delay, cfg.MaxDelay))
	return math.Round(delay*100) / 100
}

// SimulateTyping blocks for the computed delay and returns the seconds
// actually configured to wait. Disabled configs and canceled contexts
// return immediately.
func SimulateTyping(ctx context.Context, text string, cfg model.TypingConfig) float64 {
	if !cfg.Enabled {
		return 0
	}

	delay := TypingDelay(text, cfg)
	timer := time.NewTimer(time.Duration(delay * float64(time.Second)))
	defer timer.Stop()

	select {
	case <-timer.C:
	case <-ctx.Done():
	}
	return delay
}
