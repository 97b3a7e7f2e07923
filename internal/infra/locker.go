package infra

import (
	"context"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Locker serializes caja open/close across terminals using Redis locks.
// A nil *Locker is valid and turns Acquire into a no-op, which is what the
// unit tests use.
type Locker struct {
	client *redislock.Client
}

func NewLocker(rdb *redis.Client) *Locker {
	return &Locker{client: redislock.New(rdb)}
}

// Acquire takes the named lock and returns its release func. The error is
// redislock.ErrNotObtained when somebody else holds the lock.
func (l *Locker) Acquire(ctx context.Context, key string, ttl time.Duration) (func(), error) {
	if l == nil || l.client == nil {
		return func() {}, nil
	}
	lock, err := l.client.Obtain(ctx, key, ttl, &redislock.Options{
		RetryStrategy: redislock.LimitRetry(redislock.LinearBackoff(100*time.Millisecond), 3),
	})
	if err != nil {
		return nil, err
	}
	return func() {
		if err := lock.Release(context.Background()); err != nil {
			log.Debug().Err(err).Str("key", key).Msg("lock release fallido")
		}
	}, nil
}
