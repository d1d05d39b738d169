// Package backend constructs the generative-model client. One client is built
// at process start and injected into the orchestrator; construction failures
// surface as errors rather than nil globals.
package backend

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino-ext/components/model/gemini"
	"github.com/cloudwego/eino/schema"
	"google.golang.org/genai"

	"github.com/crednest/server/internal/assistant/model"
	logx "github.com/crednest/server/pkg/logger"
)

// Config holds everything needed to build the chat model.
type Config struct {
	APIKey  string
	BaseURL string
	Chat    model.ChatModelConfig
}

// New creates the Gemini chat model with fixed sampling parameters and binds
// the given tool schemas for model-driven function calling. Each Generate call
// on the returned model makes exactly one outbound request; no retries.
func New(ctx context.Context, cfg Config, tools []*schema.ToolInfo) (*gemini.ChatModel, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API key required")
	}

	clientCfg := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions.BaseURL = cfg.BaseURL
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		logx.Error().Err(err).Msg("Error creating Gemini client")
		return nil, fmt.Errorf("error creating Gemini client: %w", err)
	}

	chatModel, err := gemini.NewChatModel(ctx, &gemini.Config{
		Client:      client,
		Model:       cfg.Chat.Model,
		Temperature: &cfg.Chat.Temperature,
		TopP:        &cfg.Chat.TopP,
		MaxTokens:   &cfg.Chat.MaxTokens,
	})
	if err != nil {
		logx.Error().Err(err).Msg("Error creating chat model")
		return nil, fmt.Errorf("error creating chat model: %w", err)
	}

	if len(tools) > 0 {
		if err := chatModel.BindTools(tools); err != nil {
			logx.Error().Err(err).Msg("Failed to bind tools")
			return nil, fmt.Errorf("failed to bind tools: %w", err)
		}
		logx.Debug().Int("tools", len(tools)).Msg("Bound tools to chat model")
	}

	logx.Info().Str("model", cfg.Chat.Model).Msg("Chat model initialized")
	return chatModel, nil
}
