package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/crednest/server/internal/assistant/model"
	errx "github.com/crednest/server/internal/core/error"
	logx "github.com/crednest/server/pkg/logger"
)

// RedisConversationRepository keeps each session's turns in a list and tracks
// the user's session ids in a set. It is the lighter alternative to the
// Postgres store for deployments that already run Redis.
type RedisConversationRepository struct {
	rdb redis.Cmdable
	ttl time.Duration
}

func NewRedisConversationRepository(rdb redis.Cmdable, ttl time.Duration) *RedisConversationRepository {
	return &RedisConversationRepository{rdb: rdb, ttl: ttl}
}

func (r *RedisConversationRepository) turnsKey(userID, sessionID string) string {
	return fmt.Sprintf("chat:%s:%s:turns", userID, sessionID)
}

func (r *RedisConversationRepository) sessionsKey(userID string) string {
	return fmt.Sprintf("chat:%s:sessions", userID)
}

func (r *RedisConversationRepository) Append(ctx context.Context, turn *model.Turn) error {
	if turn.CreatedAt.IsZero() {
		turn.CreatedAt = time.Now().UTC()
	}
	b, err := json.Marshal(turn)
	if err != nil {
		logx.Error().Err(err).Str("sessionID", turn.SessionID).Msg("failed to marshal turn")
		return fmt.Errorf("marshal turn: %w", err)
	}

	key := r.turnsKey(turn.UserID, turn.SessionID)
	pipe := r.rdb.TxPipeline()
	pipe.RPush(ctx, key, b)
	pipe.SAdd(ctx, r.sessionsKey(turn.UserID), turn.SessionID)
	if r.ttl > 0 {
		pipe.Expire(ctx, key, r.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to push turn to redis")
		return errx.WrapRedis(err)
	}
	return nil
}

func (r *RedisConversationRepository) Recent(ctx context.Context, userID, sessionID string, limit int) ([]*model.Turn, error) {
	if limit < 1 {
		return nil, nil
	}
	key := r.turnsKey(userID, sessionID)

	// Negative range picks the list tail: the newest turns, already in
	// chronological order.
	rows, err := r.rdb.LRange(ctx, key, int64(-limit), -1).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		logx.Error().Err(err).Str("key", key).Msg("failed to load turns from redis")
		return nil, errx.WrapRedis(err)
	}
	return decodeTurns(rows)
}

func (r *RedisConversationRepository) History(ctx context.Context, userID, sessionID string, page, perPage int) (*model.HistoryPage, error) {
	page, perPage = normalizePage(page, perPage)

	var turns []*model.Turn
	if sessionID != "" {
		rows, err := r.rdb.LRange(ctx, r.turnsKey(userID, sessionID), 0, -1).Result()
		if err != nil && err != redis.Nil {
			return nil, errx.WrapRedis(err)
		}
		turns, err = decodeTurns(rows)
		if err != nil {
			return nil, err
		}
	} else {
		ids, err := r.sessionIDs(ctx, userID)
		if err != nil {
			return nil, err
		}
		for _, id := range ids {
			rows, err := r.rdb.LRange(ctx, r.turnsKey(userID, id), 0, -1).Result()
			if err != nil && err != redis.Nil {
				return nil, errx.WrapRedis(err)
			}
			decoded, err := decodeTurns(rows)
			if err != nil {
				return nil, err
			}
			turns = append(turns, decoded...)
		}
	}

	// Newest first, matching the Postgres store's history ordering.
	sort.SliceStable(turns, func(i, j int) bool {
		return turns[i].CreatedAt.After(turns[j].CreatedAt)
	})

	total := len(turns)
	start := (page - 1) * perPage
	if start > total {
		start = total
	}
	end := start + perPage
	if end > total {
		end = total
	}

	return &model.HistoryPage{
		Turns:      turns[start:end],
		Pagination: paginate(page, perPage, total),
	}, nil
}

func (r *RedisConversationRepository) Sessions(ctx context.Context, userID string) ([]*model.SessionSummary, error) {
	ids, err := r.sessionIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	var sessions []*model.SessionSummary
	for _, id := range ids {
		key := r.turnsKey(userID, id)
		count, err := r.rdb.LLen(ctx, key).Result()
		if err != nil && err != redis.Nil {
			return nil, errx.WrapRedis(err)
		}
		if count == 0 {
			continue
		}

		first, err := r.turnAt(ctx, key, 0)
		if err != nil {
			return nil, err
		}
		last, err := r.turnAt(ctx, key, -1)
		if err != nil {
			return nil, err
		}

		sessions = append(sessions, &model.SessionSummary{
			SessionID:     id,
			Title:         sessionTitle(first.Message),
			MessageCount:  int(count),
			CreatedAt:     first.CreatedAt,
			LastMessageAt: last.CreatedAt,
			Preview:       truncate(first.Message, previewLength),
		})
	}

	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].LastMessageAt.After(sessions[j].LastMessageAt)
	})
	return sessions, nil
}

func (r *RedisConversationRepository) DeleteSession(ctx context.Context, userID, sessionID string) (int64, error) {
	key := r.turnsKey(userID, sessionID)

	count, err := r.rdb.LLen(ctx, key).Result()
	if err != nil && err != redis.Nil {
		return 0, errx.WrapRedis(err)
	}

	pipe := r.rdb.TxPipeline()
	pipe.Del(ctx, key)
	pipe.SRem(ctx, r.sessionsKey(userID), sessionID)
	if _, err := pipe.Exec(ctx); err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to delete session from redis")
		return 0, errx.WrapRedis(err)
	}
	return count, nil
}

func (r *RedisConversationRepository) ClearAll(ctx context.Context, userID string) (int64, error) {
	ids, err := r.sessionIDs(ctx, userID)
	if err != nil {
		return 0, err
	}

	var total int64
	for _, id := range ids {
		n, err := r.DeleteSession(ctx, userID, id)
		if err != nil {
			return total, err
		}
		total += n
	}
	if err := r.rdb.Del(ctx, r.sessionsKey(userID)).Err(); err != nil && err != redis.Nil {
		return total, errx.WrapRedis(err)
	}
	return total, nil
}

func (r *RedisConversationRepository) sessionIDs(ctx context.Context, userID string) ([]string, error) {
	ids, err := r.rdb.SMembers(ctx, r.sessionsKey(userID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, errx.WrapRedis(err)
	}
	return ids, nil
}

func (r *RedisConversationRepository) turnAt(ctx context.Context, key string, index int64) (*model.Turn, error) {
	raw, err := r.rdb.LIndex(ctx, key, index).Result()
	if err != nil {
		return nil, errx.WrapRedis(err)
	}
	var t model.Turn
	if err := json.Unmarshal([]byte(raw), &t); err != nil {
		return nil, fmt.Errorf("unmarshal turn: %w", err)
	}
	return &t, nil
}

func decodeTurns(rows []string) ([]*model.Turn, error) {
	turns := make([]*model.Turn, 0, len(rows))
	for i, s := range rows {
		var t model.Turn
		if err := json.Unmarshal([]byte(s), &t); err != nil {
			return nil, fmt.Errorf("unmarshal turn at index %d: %w", i, err)
		}
		turns = append(turns, &t)
	}
	return turns, nil
}

var _ model.ConversationRepository = (*RedisConversationRepository)(nil)
