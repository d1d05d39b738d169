// Package repo provides the conversation history stores. Turns are an
// append-only log keyed by (user, session); sessions are a derived grouping
// whose metadata is computed on read.
package repo

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/crednest/server/internal/assistant/model"
	errx "github.com/crednest/server/internal/core/error"
	logx "github.com/crednest/server/pkg/logger"
)

const (
	previewLength  = 100
	titleMaxLength = 50
)

const chatTurnsSchema = `
CREATE TABLE IF NOT EXISTS chat_turns (
	id            BIGSERIAL PRIMARY KEY,
	user_id       TEXT NOT NULL,
	session_id    TEXT NOT NULL,
	message       TEXT NOT NULL,
	response      TEXT NOT NULL,
	tool_used     TEXT NOT NULL DEFAULT '',
	response_time DOUBLE PRECISION NOT NULL DEFAULT 0,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_chat_turns_user_session
	ON chat_turns (user_id, session_id, created_at);
`

type PostgresConversationRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresConversationRepository(pool *pgxpool.Pool) *PostgresConversationRepository {
	return &PostgresConversationRepository{pool: pool}
}

// EnsureSchema creates the chat_turns table and its index if missing.
func (r *PostgresConversationRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, chatTurnsSchema); err != nil {
		return errx.WrapPostgres(err)
	}
	return nil
}

func (r *PostgresConversationRepository) Append(ctx context.Context, turn *model.Turn) error {
	query := `
		INSERT INTO chat_turns (user_id, session_id, message, response, tool_used, response_time)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`
	err := r.pool.QueryRow(ctx, query,
		turn.UserID, turn.SessionID, turn.Message, turn.Response, turn.ToolUsed, turn.ResponseTime,
	).Scan(&turn.ID, &turn.CreatedAt)
	if err != nil {
		logx.Error().Err(err).Str("sessionID", turn.SessionID).Msg("failed to append turn")
		return errx.WrapPostgres(err)
	}
	return nil
}

func (r *PostgresConversationRepository) Recent(ctx context.Context, userID, sessionID string, limit int) ([]*model.Turn, error) {
	query := `
		SELECT id, user_id, session_id, message, response, tool_used, response_time, created_at
		FROM chat_turns
		WHERE user_id = $1 AND session_id = $2
		ORDER BY created_at DESC, id DESC
		LIMIT $3
	`
	rows, err := r.pool.Query(ctx, query, userID, sessionID, limit)
	if err != nil {
		return nil, errx.WrapPostgres(err)
	}
	defer rows.Close()

	turns, err := scanTurns(rows)
	if err != nil {
		return nil, errx.WrapPostgres(err)
	}

	// Read newest-first for the LIMIT, then reverse so callers get
	// chronological order; the prompt assembler depends on oldest-first.
	reverse(turns)
	return turns, nil
}

func (r *PostgresConversationRepository) History(ctx context.Context, userID, sessionID string, page, perPage int) (*model.HistoryPage, error) {
	page, perPage = normalizePage(page, perPage)

	var total int
	countQuery := `SELECT COUNT(*) FROM chat_turns WHERE user_id = $1 AND ($2 = '' OR session_id = $2)`
	if err := r.pool.QueryRow(ctx, countQuery, userID, sessionID).Scan(&total); err != nil {
		return nil, errx.WrapPostgres(err)
	}

	query := `
		SELECT id, user_id, session_id, message, response, tool_used, response_time, created_at
		FROM chat_turns
		WHERE user_id = $1 AND ($2 = '' OR session_id = $2)
		ORDER BY created_at DESC, id DESC
		LIMIT $3 OFFSET $4
	`
	rows, err := r.pool.Query(ctx, query, userID, sessionID, perPage, (page-1)*perPage)
	if err != nil {
		return nil, errx.WrapPostgres(err)
	}
	defer rows.Close()

	turns, err := scanTurns(rows)
	if err != nil {
		return nil, errx.WrapPostgres(err)
	}

	return &model.HistoryPage{
		Turns:      turns,
		Pagination: paginate(page, perPage, total),
	}, nil
}

func (r *PostgresConversationRepository) Sessions(ctx context.Context, userID string) ([]*model.SessionSummary, error) {
	query := `
		SELECT t.session_id,
		       COUNT(*),
		       MIN(t.created_at),
		       MAX(t.created_at),
		       (SELECT message FROM chat_turns f
		        WHERE f.user_id = t.user_id AND f.session_id = t.session_id
		        ORDER BY f.created_at ASC, f.id ASC LIMIT 1)
		FROM chat_turns t
		WHERE t.user_id = $1
		GROUP BY t.user_id, t.session_id
		ORDER BY MAX(t.created_at) DESC
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, errx.WrapPostgres(err)
	}
	defer rows.Close()

	var sessions []*model.SessionSummary
	for rows.Next() {
		s := &model.SessionSummary{}
		if err := rows.Scan(&s.SessionID, &s.MessageCount, &s.CreatedAt, &s.LastMessageAt, &s.Preview); err != nil {
			return nil, errx.WrapPostgres(err)
		}
		s.Title = sessionTitle(s.Preview)
		s.Preview = truncate(s.Preview, previewLength)
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, errx.WrapPostgres(err)
	}
	return sessions, nil
}

func (r *PostgresConversationRepository) DeleteSession(ctx context.Context, userID, sessionID string) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM chat_turns WHERE user_id = $1 AND session_id = $2`, userID, sessionID)
	if err != nil {
		return 0, errx.WrapPostgres(err)
	}
	return tag.RowsAffected(), nil
}

func (r *PostgresConversationRepository) ClearAll(ctx context.Context, userID string) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM chat_turns WHERE user_id = $1`, userID)
	if err != nil {
		return 0, errx.WrapPostgres(err)
	}
	return tag.RowsAffected(), nil
}

type pgxRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanTurns(rows pgxRows) ([]*model.Turn, error) {
	var turns []*model.Turn
	for rows.Next() {
		t := &model.Turn{}
		if err := rows.Scan(&t.ID, &t.UserID, &t.SessionID, &t.Message, &t.Response, &t.ToolUsed, &t.ResponseTime, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan turn: %w", err)
		}
		turns = append(turns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return turns, nil
}

func reverse(turns []*model.Turn) {
	for i, j := 0, len(turns)-1; i < j; i, j = i+1, j-1 {
		turns[i], turns[j] = turns[j], turns[i]
	}
}

func normalizePage(page, perPage int) (int, int) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 20
	}
	if perPage > 100 {
		perPage = 100
	}
	return page, perPage
}

func paginate(page, perPage, total int) model.Pagination {
	totalPages := (total + perPage - 1) / perPage
	return model.Pagination{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
		HasPrev:    page > 1,
		HasNext:    page < totalPages,
	}
}

// sessionTitle derives a display title from the session's first message:
// whitespace collapsed, truncated with an ellipsis, "New Conversation" when
// there is nothing to derive it from.
func sessionTitle(firstMessage string) string {
	title := strings.Join(strings.Fields(firstMessage), " ")
	if title == "" {
		return "New Conversation"
	}
	runes := []rune(title)
	if len(runes) > titleMaxLength {
		title = string(runes[:titleMaxLength-3]) + "..."
	}
	return title
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

var _ model.ConversationRepository = (*PostgresConversationRepository)(nil)
