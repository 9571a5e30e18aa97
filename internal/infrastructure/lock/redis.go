package lock

import (
	"context"
	"fmt"
	"strings"
	"time"

	"eventplanner-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	keyPrefix    = "lock:event:"
	defaultTTL   = 10 * time.Second
	pollInterval = 25 * time.Millisecond
)

// releaseScript deletes the key only while it still holds our token, so an expired
// lock taken over by another holder is never released by us.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Connect initializes a Redis client from a redis:// URL or host:port.
func Connect(_ context.Context, redisURL string) (*redis.Client, error) {
	if strings.HasPrefix(redisURL, "redis://") || strings.HasPrefix(redisURL, "rediss://") {
		opt, err := redis.ParseURL(redisURL)
		if err != nil {
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
		return redis.NewClient(opt), nil
	}
	return redis.NewClient(&redis.Options{Addr: redisURL}), nil
}

// RedisLocker is a cross-process lock (SET NX PX with a random token). It is used
// whenever REDIS_URL is set so several API instances share one lock per event.
type RedisLocker struct {
	Rdb  *redis.Client
	TTL  time.Duration
	Wait time.Duration
}

func NewRedisLocker(rdb *redis.Client) *RedisLocker {
	return &RedisLocker{Rdb: rdb, TTL: defaultTTL, Wait: DefaultWait}
}

func (l *RedisLocker) Acquire(ctx context.Context, key string) (func(), error) {
	ttl := l.TTL
	if ttl <= 0 {
		ttl = defaultTTL
	}
	wait := l.Wait
	if wait <= 0 {
		wait = DefaultWait
	}
	redisKey := keyPrefix + key
	token := uuid.New().String()
	deadline := time.Now().Add(wait)

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()
	for {
		ok, err := l.Rdb.SetNX(ctx, redisKey, token, ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("acquire lock %s: %w", key, err)
		}
		if ok {
			return func() {
				if err := releaseScript.Run(context.Background(), l.Rdb, []string{redisKey}, token).Err(); err != nil {
					log.Warn().Err(err).Str("key", redisKey).Msg("Releasing lock failed")
				}
			}, nil
		}
		if time.Now().After(deadline) {
			return nil, domain.ErrLockTimeout
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}
