// README: Redis-backed run lock; only one global scan at a time.
package scan

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	runLockKey = "scan:global:running"
	// runLockTTL caps how long a crashed scan can block the next one.
	runLockTTL = 30 * time.Minute
)

// RedisLock guards the global scan with a SETNX lock so two dashboards
// cannot launch overlapping runs.
type RedisLock struct {
	client *redis.Client
}

func NewRedisLock(client *redis.Client) *RedisLock {
	return &RedisLock{client: client}
}

// Acquire returns false when another run currently holds the lock.
func (l *RedisLock) Acquire(ctx context.Context) (bool, error) {
	return l.client.SetNX(ctx, runLockKey, "1", runLockTTL).Result()
}

func (l *RedisLock) Release(ctx context.Context) error {
	return l.client.Del(ctx, runLockKey).Err()
}
