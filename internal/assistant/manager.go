// Package assistant hosts the conversation orchestrator: the per-message
// state machine that triages incoming text, consults the history store and
// the generative backend when needed, and always produces a uniform result.
package assistant

import (
	"context"
	"encoding/json"
	"fmt"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/crednest/server/internal/assistant/model"
	"github.com/crednest/server/internal/assistant/prompt"
	"github.com/crednest/server/internal/assistant/tools"
	"github.com/crednest/server/internal/assistant/triage"
	logx "github.com/crednest/server/pkg/logger"
)

// apologyMessage is returned verbatim whenever the backend call fails.
const apologyMessage = "I apologize, but I'm experiencing technical difficulties right now. " +
	"Could you please try asking your question again in a moment?\n\n" +
	"In the meantime, you can try our EMI calculator or eligibility checker!"

// ChatBackend is the generative backend boundary: one completion per call,
// errors propagate as a single failure signal. *gemini.ChatModel satisfies it.
type ChatBackend interface {
	Generate(ctx context.Context, input []*schema.Message, opts ...einomodel.Option) (*schema.Message, error)
}

// Manager orchestrates one message at a time. It never persists turns itself;
// persistence belongs to the transport layer, after it receives the result.
type Manager struct {
	backend  ChatBackend
	history  model.ConversationRepository
	registry *tools.Registry
	conv     model.ConversationConfig
	system   string
}

func NewManager(backend ChatBackend, history model.ConversationRepository, registry *tools.Registry, conv model.ConversationConfig) (*Manager, error) {
	if backend == nil {
		return nil, fmt.Errorf("chat backend is nil")
	}
	if history == nil {
		return nil, fmt.Errorf("conversation repository is nil")
	}
	if registry == nil {
		return nil, fmt.Errorf("tool registry is nil")
	}
	return &Manager{
		backend:  backend,
		history:  history,
		registry: registry,
		conv:     conv,
		system:   prompt.SystemPrompt(),
	}, nil
}

// Process runs the triage state machine for one message. Every branch,
// including backend failure, returns a coherent user-facing result; the
// method never returns an error and never panics on backend misbehavior.
func (m *Manager) Process(ctx context.Context, userID, sessionID, message string) *model.ChatResult {
	if triage.IsCasual(message) {
		return &model.ChatResult{
			Message:  triage.FriendlyReply(message),
			ToolUsed: model.ToolGreetingHandler,
			Status:   model.StatusSuccess,
		}
	}

	if !triage.IsFinanceRelated(message) {
		return &model.ChatResult{
			Message:  triage.OffTopicReply(),
			ToolUsed: model.ToolTopicFilter,
			Status:   model.StatusSuccess,
		}
	}

	history := m.recentHistory(ctx, userID, sessionID)
	messages := prompt.BuildMessages(m.system, history, message, m.conv.HistoryTurns())

	logx.Debug().
		Str("sessionID", sessionID).
		Int("messages", len(messages)).
		Msg("calling generative backend")

	out, err := m.backend.Generate(ctx, messages)
	if err != nil {
		logx.Error().Err(err).Str("sessionID", sessionID).Msg("backend generation failed")
		return &model.ChatResult{
			Message: apologyMessage,
			Status:  model.StatusError,
			Err:     err.Error(),
		}
	}

	if out != nil && len(out.ToolCalls) > 0 {
		return m.runToolCall(ctx, sessionID, out.ToolCalls[0])
	}

	var content string
	if out != nil {
		content = out.Content
	}
	return &model.ChatResult{
		Message:        content,
		ToolUsed:       model.ToolAIChat,
		ToolParameters: map[string]any{"history_length": len(messages) - 2},
		Status:         model.StatusSuccess,
	}
}

// runToolCall executes a single model-requested tool invocation and returns
// its rendered result directly. One shot only: the tool output is never fed
// back into the model for another round.
func (m *Manager) runToolCall(ctx context.Context, sessionID string, call schema.ToolCall) *model.ChatResult {
	name := call.Function.Name
	args := call.Function.Arguments

	data, text, err := m.registry.Execute(ctx, name, args)
	if err != nil {
		logx.Error().Err(err).Str("sessionID", sessionID).Str("tool", name).Msg("tool execution failed")
		return &model.ChatResult{
			Message: apologyMessage,
			Status:  model.StatusError,
			Err:     err.Error(),
		}
	}

	params := map[string]any{}
	if err := json.Unmarshal([]byte(args), &params); err != nil {
		logx.Warn().Err(err).Str("tool", name).Msg("could not decode tool arguments")
		params = nil
	}

	logx.Info().Str("sessionID", sessionID).Str("tool", name).Msg("tool call completed")
	return &model.ChatResult{
		Message:        text,
		ToolUsed:       name,
		ToolParameters: params,
		Data:           data,
		Status:         model.StatusSuccess,
	}
}

// recentHistory reads the bounded conversation window. History is a
// best-effort enhancement: read failures degrade to an empty window.
func (m *Manager) recentHistory(ctx context.Context, userID, sessionID string) []*model.Turn {
	if userID == "" || sessionID == "" {
		return nil
	}
	turns, err := m.history.Recent(ctx, userID, sessionID, m.conv.HistoryTurns())
	if err != nil {
		logx.Warn().Err(err).Str("sessionID", sessionID).Msg("could not retrieve history")
		return nil
	}
	logx.Debug().Int("turns", len(turns)).Str("sessionID", sessionID).Msg("retrieved session history")
	return turns
}
