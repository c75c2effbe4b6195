package lock

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"charity-fund-backend/internal/domain/lock"
	"charity-fund-backend/pkg/id"
)

const retryEvery = 25 * time.Millisecond

// Only the holder of the token may delete the key.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLocker is a single-instance SET NX PX lock. The TTL bounds how long a
// crashed holder can block other allocation runs.
type RedisLocker struct {
	rdb *redis.Client
	ttl time.Duration
}

var _ lock.Locker = (*RedisLocker)(nil)

func NewRedisLocker(rdb *redis.Client, ttl time.Duration) *RedisLocker {
	return &RedisLocker{rdb: rdb, ttl: ttl}
}

func (l *RedisLocker) Acquire(ctx context.Context, key string) (func(), error) {
	token := id.NewID32()
	t := time.NewTicker(retryEvery)
	defer t.Stop()
	for {
		ok, err := l.rdb.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return nil, err
		}
		if ok {
			return func() {
				ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
				defer cancel()
				_ = releaseScript.Run(ctx, l.rdb, []string{key}, token).Err()
			}, nil
		}
		select {
		case <-ctx.Done():
			return nil, lock.ErrNotAcquired
		case <-t.C:
		}
	}
}
