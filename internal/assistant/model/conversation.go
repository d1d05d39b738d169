package model

import (
	"context"
	"time"
)

// Turn is one user-message/assistant-response exchange. Turns are append-only:
// once written they are never mutated, only bulk-deleted by their owner.
type Turn struct {
	ID           int64     `json:"id,omitempty"`
	UserID       string    `json:"user_id"`
	SessionID    string    `json:"session_id"`
	Message      string    `json:"message"`
	Response     string    `json:"response"`
	ToolUsed     string    `json:"tool_used,omitempty"`
	ResponseTime float64   `json:"response_time"`
	CreatedAt    time.Time `json:"created_at"`
}

// SessionSummary is derived metadata for one conversation thread. It is
// computed from the turn set on read, never persisted on its own.
type SessionSummary struct {
	SessionID     string    `json:"session_id"`
	Title         string    `json:"title"`
	MessageCount  int       `json:"message_count"`
	CreatedAt     time.Time `json:"created_at"`
	LastMessageAt time.Time `json:"last_message_at"`
	Preview       string    `json:"preview"`
}

type Pagination struct {
	Page       int  `json:"page"`
	PerPage    int  `json:"per_page"`
	Total      int  `json:"total"`
	TotalPages int  `json:"total_pages"`
	HasPrev    bool `json:"has_prev"`
	HasNext    bool `json:"has_next"`
}

type HistoryPage struct {
	Turns      []*Turn    `json:"turns"`
	Pagination Pagination `json:"pagination"`
}

type ConversationRepository interface {
	// Append stores a completed turn for the given user and session.
	Append(ctx context.Context, turn *Turn) error

	// Recent returns at most limit turns for the session in chronological
	// (oldest-first) order. The newest turns win when more than limit exist.
	Recent(ctx context.Context, userID, sessionID string, limit int) ([]*Turn, error)

	// History returns a page of the user's turns, optionally filtered by session.
	History(ctx context.Context, userID, sessionID string, page, perPage int) (*HistoryPage, error)

	// Sessions lists derived summaries of the user's conversation threads,
	// most recently active first.
	Sessions(ctx context.Context, userID string) ([]*SessionSummary, error)

	// DeleteSession removes all turns of one session and returns the count.
	// Deleting a session that does not exist returns zero, not an error.
	DeleteSession(ctx context.Context, userID, sessionID string) (int64, error)

	// ClearAll removes every turn owned by the user and returns the count.
	ClearAll(ctx context.Context, userID string) (int64, error)
}
