package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/vladimiradmaev/babycare-helper/internal/domain"
)

const conversationTTL = 24 * time.Hour

// RedisManager manages user states using Redis
type RedisManager struct {
	client *redis.Client
}

var _ StateManager = (*RedisManager)(nil)

// NewRedisManager creates a new Redis-based state manager
func NewRedisManager(addr string) (*RedisManager, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		DB:           0,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisManager{
		client: client,
	}, nil
}

func stateKey(userID int64) string { return fmt.Sprintf("user:%d:state", userID) }
func tempKey(userID int64) string  { return fmt.Sprintf("user:%d:temp", userID) }
func undoKey(userID int64) string  { return fmt.Sprintf("user:%d:undo", userID) }
func sentKey(tag string) string    { return "notify:" + tag }

// SetUserState sets the state for a user with TTL
func (m *RedisManager) SetUserState(userID int64, state string) {
	m.client.Set(context.Background(), stateKey(userID), state, conversationTTL)
}

// GetUserState gets the state for a user
func (m *RedisManager) GetUserState(userID int64) string {
	result, err := m.client.Get(context.Background(), stateKey(userID)).Result()
	if err != nil {
		return None
	}
	return result
}

func (m *RedisManager) ClearUserState(userID int64) {
	m.client.Del(context.Background(), stateKey(userID))
}

// SetTempData sets temporary data for a user
func (m *RedisManager) SetTempData(userID int64, key, value string) {
	ctx := context.Background()
	pipe := m.client.TxPipeline()
	pipe.HSet(ctx, tempKey(userID), key, value)
	pipe.Expire(ctx, tempKey(userID), conversationTTL)
	_, _ = pipe.Exec(ctx)
}

// GetTempData gets temporary data for a user
func (m *RedisManager) GetTempData(userID int64, key string) (string, bool) {
	value, err := m.client.HGet(context.Background(), tempKey(userID), key).Result()
	if err != nil {
		return "", false
	}
	return value, true
}

// ClearTempData clears all temporary data for a user
func (m *RedisManager) ClearTempData(userID int64) {
	m.client.Del(context.Background(), tempKey(userID))
}

func (m *RedisManager) MarkSent(ctx context.Context, tag string, at time.Time, ttl time.Duration) error {
	return m.client.Set(ctx, sentKey(tag), at.UnixNano(), ttl).Err()
}

func (m *RedisManager) LastSent(ctx context.Context, tag string) (time.Time, error) {
	raw, err := m.client.Get(ctx, sentKey(tag)).Result()
	if errors.Is(err, redis.Nil) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, err
	}
	nanos, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("corrupt cooldown for %s: %w", tag, err)
	}
	return time.Unix(0, nanos), nil
}

func (m *RedisManager) PutUndo(ctx context.Context, userID int64, entry domain.LogEntry, ttl time.Duration) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	return m.client.Set(ctx, undoKey(userID), data, ttl).Err()
}

func (m *RedisManager) TakeUndo(ctx context.Context, userID int64) (*domain.LogEntry, error) {
	raw, err := m.client.GetDel(ctx, undoKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var entry domain.LogEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return nil, fmt.Errorf("corrupt undo buffer: %w", err)
	}
	return &entry, nil
}

// Close closes the Redis connection
func (m *RedisManager) Close() error {
	return m.client.Close()
}
