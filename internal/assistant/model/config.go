package model

// ================ Config ================
type ChatModelConfig struct {
	Model       string  `envconfig:"CHAT_MODEL" default:"gemini-2.0-flash"`
	MaxTokens   int     `envconfig:"CHAT_MAX_TOKENS" default:"4096"`
	Temperature float32 `envconfig:"CHAT_TEMPERATURE" default:"0.8"`
	TopP        float32 `envconfig:"CHAT_TOP_P" default:"0.95"`
}

type ConversationConfig struct {
	HistoryLimit     int `envconfig:"CHAT_HISTORY_LIMIT" default:"8"`
	HistoryMaxLimit  int `envconfig:"CHAT_HISTORY_MAX_LIMIT" default:"50"`
	MaxMessageLength int `envconfig:"CHAT_MAX_MESSAGE_LENGTH" default:"2000"`
}

type TypingConfig struct {
	Enabled  bool    `envconfig:"TYPING_DELAY_ENABLED" default:"true"`
	MinDelay float64 `envconfig:"TYPING_DELAY_MIN" default:"0.5"`
	MaxDelay float64 `envconfig:"TYPING_DELAY_MAX" default:"3.0"`
	WPM      int     `envconfig:"TYPING_WPM" default:"200"`
}

// HistoryTurns clamps the configured history window to the hard maximum.
func (c ConversationConfig) HistoryTurns() int {
	limit := c.HistoryLimit
	if limit <= 0 {
		limit = 8
	}
	if c.HistoryMaxLimit > 0 && limit > c.HistoryMaxLimit {
		limit = c.HistoryMaxLimit
	}
	return limit
}
