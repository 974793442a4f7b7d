package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"AdmissionOfficer/internal/models"

	"github.com/go-redis/redis/v8"
)

// sessionKeyPrefix namespaces the conversation lists in Redis.
const sessionKeyPrefix = "qa:session:"

// RedisStore keeps conversation memories in Redis so sessions survive process
// restarts and can be shared between replicas. Each session is a Redis list
// trimmed to the window after every append; the session TTL is refreshed on
// each mutation. Redis executes commands for one key serially, which gives the
// per-session ordering guarantee without extra locking.
type RedisStore struct {
	client *redis.Client
	window int
	ttl    time.Duration
}

// NewRedisStore creates a Redis-backed session store. ttl <= 0 disables
// session expiry.
func NewRedisStore(client *redis.Client, window int, ttl time.Duration) *RedisStore {
	if window <= 0 {
		window = DefaultWindowSize
	}
	return &RedisStore{client: client, window: window, ttl: ttl}
}

func sessionKey(sessionID string) string {
	return sessionKeyPrefix + sessionID
}

func (s *RedisStore) Append(ctx context.Context, sessionID string, interaction models.Interaction) error {
	data, err := json.Marshal(interaction)
	if err != nil {
		return fmt.Errorf("failed to marshal interaction: %w", err)
	}

	key := sessionKey(sessionID)
	pipe := s.client.TxPipeline()
	pipe.RPush(ctx, key, data)
	pipe.LTrim(ctx, key, int64(-s.window), -1)
	if s.ttl > 0 {
		pipe.Expire(ctx, key, s.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to append interaction to redis: %w", err)
	}
	return nil
}

func (s *RedisStore) History(ctx context.Context, sessionID string) ([]models.Interaction, error) {
	raw, err := s.client.LRange(ctx, sessionKey(sessionID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read session history from redis: %w", err)
	}

	history := make([]models.Interaction, 0, len(raw))
	for _, item := range raw {
		var interaction models.Interaction
		if err := json.Unmarshal([]byte(item), &interaction); err != nil {
			return nil, fmt.Errorf("failed to unmarshal interaction: %w", err)
		}
		history = append(history, interaction)
	}
	return history, nil
}

func (s *RedisStore) Size(ctx context.Context, sessionID string) (int, error) {
	n, err := s.client.LLen(ctx, sessionKey(sessionID)).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to read session size from redis: %w", err)
	}
	return int(n), nil
}

func (s *RedisStore) Clear(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, sessionKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to clear session in redis: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	return s.Clear(ctx, sessionID)
}

func (s *RedisStore) Sessions(ctx context.Context) ([]SessionStats, error) {
	keys, err := s.client.Keys(ctx, sessionKeyPrefix+"*").Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions in redis: %w", err)
	}

	stats := make([]SessionStats, 0, len(keys))
	for _, key := range keys {
		n, err := s.client.LLen(ctx, key).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to read session size from redis: %w", err)
		}
		stats = append(stats, SessionStats{
			SessionID:    strings.TrimPrefix(key, sessionKeyPrefix),
			Interactions: int(n),
			MaxSize:      s.window,
		})
	}
	return stats, nil
}
