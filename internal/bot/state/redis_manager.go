package state

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Chuk2022/VKBot-GDM/internal/domain"
)

// pendingTTL bounds how long an abandoned entry survives. The state machine
// itself has no expiry; this only keeps the keyspace from accumulating
// entries of users who never came back.
const pendingTTL = 24 * time.Hour

// RedisManager keeps pending-input entries in Redis so they survive bot
// restarts.
type RedisManager struct {
	client *redis.Client
}

type pendingEntry struct {
	Period string `json:"period"`
}

// NewRedisManager creates a Redis-backed pending-input tracker
func NewRedisManager(redisHost, redisPort string) (*RedisManager, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%s", redisHost, redisPort),
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisManager{client: client}, nil
}

func pendingKey(userID int64) string {
	return fmt.Sprintf("user:%d:pending", userID)
}

// SetPending records the awaited period for userID, overwriting any entry.
func (m *RedisManager) SetPending(userID int64, period domain.Period) {
	data, err := json.Marshal(pendingEntry{Period: string(period)})
	if err != nil {
		return
	}
	m.client.Set(context.Background(), pendingKey(userID), data, pendingTTL)
}

// GetPending returns the pending entry for userID, if any.
func (m *RedisManager) GetPending(userID int64) (domain.PendingInput, bool) {
	result := m.client.Get(context.Background(), pendingKey(userID))
	if result.Err() != nil {
		// redis.Nil and transport errors both read as "no pending entry".
		return domain.PendingInput{}, false
	}

	var entry pendingEntry
	if err := json.Unmarshal([]byte(result.Val()), &entry); err != nil {
		return domain.PendingInput{}, false
	}
	return domain.PendingInput{Period: domain.Period(entry.Period)}, true
}

// ClearPending removes the entry for userID; no-op when absent.
func (m *RedisManager) ClearPending(userID int64) {
	m.client.Del(context.Background(), pendingKey(userID))
}

// Close closes the Redis connection
func (m *RedisManager) Close() error {
	return m.client.Close()
}
