package lock_service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/joy095/propertyops/logger"
	"github.com/redis/go-redis/v9"
)

const (
	redisLockPrefix = "propertyops:lock:"
	redisLockTTL    = 30 * time.Second
	redisRetryDelay = 25 * time.Millisecond
)

// Deletes the key only while it still holds our token.
var redisUnlockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLocker shares locks between replicas through Redis SET NX.
type RedisLocker struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisLocker(client *redis.Client) *RedisLocker {
	return &RedisLocker{client: client, ttl: redisLockTTL}
}

func (l *RedisLocker) Lock(ctx context.Context, key string) (func(), error) {
	token := uuid.NewString()
	redisKey := redisLockPrefix + key

	for {
		ok, err := l.client.SetNX(ctx, redisKey, token, l.ttl).Result()
		if err != nil {
			if ctx.Err() != nil {
				return nil, lockTimeout(key, ctx.Err())
			}
			return nil, fmt.Errorf("redis lock %s: %w", key, err)
		}
		if ok {
			break
		}

		timer := time.NewTimer(redisRetryDelay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, lockTimeout(key, ctx.Err())
		case <-timer.C:
		}
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			// The caller's context may already be cancelled.
			releaseCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			if err := redisUnlockScript.Run(releaseCtx, l.client, []string{redisKey}, token).Err(); err != nil {
				logger.WarnLogger.Warnf("Failed to release redis lock %s: %v", key, err)
			}
		})
	}, nil
}
