package transport

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/crednest/server/internal/assistant"
	"github.com/crednest/server/internal/assistant/model"
	logx "github.com/crednest/server/pkg/logger"
)

// ChatHandler exposes the conversation orchestrator over HTTP and owns the
// persistence of completed turns. Auth is an upstream concern: the opaque
// user id arrives in the X-User-ID header.
type ChatHandler struct {
	manager *assistant.Manager
	history model.ConversationRepository
	conv    model.ConversationConfig
	typing  model.TypingConfig
}

func NewChatHandler(manager *assistant.Manager, history model.ConversationRepository, conv model.ConversationConfig, typing model.TypingConfig) *ChatHandler {
	return &ChatHandler{
		manager: manager,
		history: history,
		conv:    conv,
		typing:  typing,
	}
}

type chatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id,omitempty"`
}

type chatResponse struct {
	*model.ChatResult
	ResponseTime float64 `json:"response_time"`
	TypingDelay  float64 `json:"typing_delay"`
	SessionID    string  `json:"session_id"`
}

// handleMessage processes one chat message. Orchestrator failures still map
// to HTTP 200: the result's status field carries the error semantics, and the
// user always gets a coherent message.
func (h *ChatHandler) handleMessage(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req chatRequest
	if err := parseJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	message := sanitizeMessage(req.Message, h.conv.MaxMessageLength)
	if message == "" {
		respondError(w, http.StatusBadRequest, "message is required")
		return
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = fmt.Sprintf("session_%s", uuid.NewString())
	} else if err := validateSessionID(sessionID); err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid session_id: %v", err))
		return
	}

	start := time.Now()
	result := h.manager.Process(r.Context(), userID, sessionID, message)

	typingDelay := assistant.SimulateTyping(r.Context(), result.Message, h.typing)
	responseTime := math.Round(time.Since(start).Seconds()*100) / 100

	// Persist only completed exchanges; a failed model call leaves no turn
	// behind. Persistence failures never alter the computed response.
	if result.Status == model.StatusSuccess {
		turn := &model.Turn{
			UserID:       userID,
			SessionID:    sessionID,
			Message:      message,
			Response:     result.Message,
			ToolUsed:     result.ToolUsed,
			ResponseTime: responseTime,
		}
		if err := h.history.Append(r.Context(), turn); err != nil {
			logx.Error().Err(err).Str("sessionID", sessionID).Msg("failed to save chat turn")
		} else {
			logx.Info().
				Str("sessionID", sessionID).
				Str("tool", result.ToolUsed).
				Float64("responseTime", responseTime).
				Float64("typingDelay", typingDelay).
				Msg("chat turn saved")
		}
	} else if result.Err != "" {
		logx.Error().Str("sessionID", sessionID).Str("detail", result.Err).Msg("chat processing error")
	}

	respondJSON(w, http.StatusOK, chatResponse{
		ChatResult:   result,
		ResponseTime: responseTime,
		TypingDelay:  typingDelay,
		SessionID:    sessionID,
	})
}

func (h *ChatHandler) handleHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	sessionID := r.URL.Query().Get("session_id")
	if sessionID != "" {
		if err := validateSessionID(sessionID); err != nil {
			respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid session_id: %v", err))
			return
		}
	}

	page := queryInt(r, "page", 1)
	perPage := queryInt(r, "per_page", 20)

	history, err := h.history.History(r.Context(), userID, sessionID, page, perPage)
	if err != nil {
		logx.Error().Err(err).Str("userID", userID).Msg("chat history error")
		respondError(w, http.StatusInternalServerError, "Failed to load chat history")
		return
	}
	respondJSON(w, http.StatusOK, history)
}

func (h *ChatHandler) handleSessions(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	sessions, err := h.history.Sessions(r.Context(), userID)
	if err != nil {
		logx.Error().Err(err).Str("userID", userID).Msg("session listing error")
		respondError(w, http.StatusInternalServerError, "Failed to load sessions")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"sessions": sessions,
		"count":    len(sessions),
	})
}

type contextEntry struct {
	User      string    `json:"user"`
	Assistant string    `json:"assistant"`
	Timestamp time.Time `json:"timestamp"`
}

// handleSessionContext returns the bounded conversation window the
// orchestrator would see for the session, plus its derived metadata.
func (h *ChatHandler) handleSessionContext(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	sessionID := r.PathValue("session_id")
	if err := validateSessionID(sessionID); err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid session_id: %v", err))
		return
	}

	limit := queryInt(r, "limit", h.conv.HistoryLimit)
	if limit < 1 {
		limit = h.conv.HistoryLimit
	}
	if h.conv.HistoryMaxLimit > 0 && limit > h.conv.HistoryMaxLimit {
		limit = h.conv.HistoryMaxLimit
	}

	turns, err := h.history.Recent(r.Context(), userID, sessionID, limit)
	if err != nil {
		logx.Error().Err(err).Str("sessionID", sessionID).Msg("session context error")
		respondError(w, http.StatusInternalServerError, "Failed to load session context")
		return
	}

	metadata, err := h.sessionSummary(r.Context(), userID, sessionID)
	if err != nil {
		logx.Error().Err(err).Str("sessionID", sessionID).Msg("session metadata error")
		respondError(w, http.StatusInternalServerError, "Failed to load session context")
		return
	}

	entries := make([]contextEntry, 0, len(turns))
	for _, t := range turns {
		entries = append(entries, contextEntry{
			User:      t.Message,
			Assistant: t.Response,
			Timestamp: t.CreatedAt,
		})
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"session_id":     sessionID,
		"metadata":       metadata,
		"context":        entries,
		"context_length": len(entries),
	})
}

// sessionSummary finds the derived metadata for one session; nil when the
// session has no turns.
func (h *ChatHandler) sessionSummary(ctx context.Context, userID, sessionID string) (*model.SessionSummary, error) {
	sessions, err := h.history.Sessions(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, s := range sessions {
		if s.SessionID == sessionID {
			return s, nil
		}
	}
	return nil, nil
}

func (h *ChatHandler) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	sessionID := r.PathValue("session_id")
	if err := validateSessionID(sessionID); err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid session_id: %v", err))
		return
	}

	deleted, err := h.history.DeleteSession(r.Context(), userID, sessionID)
	if err != nil {
		logx.Error().Err(err).Str("sessionID", sessionID).Msg("session delete error")
		respondError(w, http.StatusInternalServerError, "Failed to delete session")
		return
	}

	logx.Info().Str("sessionID", sessionID).Int64("deleted", deleted).Msg("session deleted")
	respondJSON(w, http.StatusOK, map[string]any{
		"message": "Session deleted successfully",
		"deleted": deleted,
	})
}

func (h *ChatHandler) handleClearHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	deleted, err := h.history.ClearAll(r.Context(), userID)
	if err != nil {
		logx.Error().Err(err).Str("userID", userID).Msg("clear history error")
		respondError(w, http.StatusInternalServerError, "Failed to clear history")
		return
	}

	logx.Info().Str("userID", userID).Int64("deleted", deleted).Msg("chat history cleared")
	respondJSON(w, http.StatusOK, map[string]any{
		"message": "All chat history cleared successfully",
		"deleted": deleted,
	})
}

func requireUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID := r.Header.Get("X-User-ID")
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "missing X-User-ID header")
		return "", false
	}
	return userID, true
}

func queryInt(r *http.Request, key string, fallback int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
