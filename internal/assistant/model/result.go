package model

import "encoding/json"

type Status string

const (
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Reserved tool_used markers for the triage and plain-completion paths.
// Responses produced by an actual tool carry the tool's own name instead.
const (
	ToolGreetingHandler = "greeting_handler"
	ToolTopicFilter     = "topic_filter"
	ToolAIChat          = "ai_chat"
)

// ChatResult is the uniform outcome of processing one message. Every terminal
// state of the orchestrator produces this shape, including backend failures:
// the caller always receives a user-facing message, and Status tells it apart.
type ChatResult struct {
	Message        string          `json:"message"`
	ToolUsed       string          `json:"tool_used,omitempty"`
	ToolParameters map[string]any  `json:"tool_parameters,omitempty"`
	Data           json.RawMessage `json:"data,omitempty"`
	Status         Status          `json:"status"`

	// Err carries backend failure detail for logging only; it is never
	// serialized to the caller.
	Err string `json:"-"`
}
