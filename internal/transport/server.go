// Package transport wires the conversation orchestrator and history store to
// HTTP. It owns input sanitization, session-id validation and generation,
// turn persistence, and the typing-delay simulation.
package transport

import (
	"net/http"
	"time"

	logx "github.com/crednest/server/pkg/logger"
)

// NewServer builds the HTTP server with all chat routes registered.
func NewServer(addr string, chat *ChatHandler) *http.Server {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/chat/message", chat.handleMessage)
	mux.HandleFunc("GET /api/chat/history", chat.handleHistory)
	mux.HandleFunc("GET /api/chat/sessions", chat.handleSessions)
	mux.HandleFunc("GET /api/chat/session/{session_id}/context", chat.handleSessionContext)
	mux.HandleFunc("DELETE /api/chat/sessions/{session_id}", chat.handleDeleteSession)
	mux.HandleFunc("POST /api/chat/history/clear", chat.handleClearHistory)
	mux.HandleFunc("GET /healthz", handleHealth)

	return &http.Server{
		Addr:              addr,
		Handler:           requestLogger(mux),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(status int) {
	rec.status = status
	rec.ResponseWriter.WriteHeader(status)
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		logx.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}
