package locker

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sethvargo/go-retry"
)

const keyPrefix = "lock:"

// releaseScript deletes the key only while it still holds our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
  return redis.call("DEL", KEYS[1])
end
return 0
`)

// Redis is a single instance SET NX PX lock.
type Redis struct {
	client   redis.UniversalClient
	interval time.Duration
}

func NewRedis(client redis.UniversalClient, retryInterval time.Duration) *Redis {
	if retryInterval <= 0 {
		retryInterval = 25 * time.Millisecond
	}
	return &Redis{client: client, interval: retryInterval}
}

func (r *Redis) Lock(ctx context.Context, key string, ttl time.Duration) (Unlock, error) {
	token, err := newToken()
	if err != nil {
		return nil, err
	}

	k := keyPrefix + key
	backoff := retry.WithJitterPercent(20, retry.NewConstant(r.interval))

	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		ok, err := r.client.SetNX(ctx, k, token, ttl).Result()
		if err != nil {
			return err
		}
		if !ok {
			return retry.RetryableError(ErrNotAcquired)
		}
		return nil
	})
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil, fmt.Errorf("lock %q: %w: %w", key, ErrNotAcquired, err)
	}
	if err != nil {
		return nil, fmt.Errorf("lock %q: %w", key, err)
	}

	return func(ctx context.Context) error {
		return releaseScript.Run(context.WithoutCancel(ctx), r.client, []string{k}, token).Err()
	}, nil
}

func newToken() (string, error) {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", err
	}
	return hex.EncodeToString(b[:]), nil
}
