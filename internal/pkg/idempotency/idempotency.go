// Package idempotency deduplicates client retries keyed by an
// Idempotency-Key header.
package idempotency

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	ErrInProgress = errors.New("idempotency: operation already in progress")
	ErrCompleted  = errors.New("idempotency: operation already completed")
)

const (
	stateInProgress = "in_progress"
	stateCompleted  = "completed"

	keyPrefix = "idempotency:"

	defaultLockTTL  = time.Minute
	defaultStateTTL = 24 * time.Hour
)

// Idempotency runs fn at most once per key. A failed fn releases the key
// so the client can retry.
type Idempotency interface {
	Exec(ctx context.Context, key string, fn func(context.Context) error) error
}

type Redis struct {
	client   redis.UniversalClient
	lockTTL  time.Duration
	stateTTL time.Duration
}

type Option func(*Redis)

// WithLockTTL bounds how long an unfinished operation holds its key.
func WithLockTTL(d time.Duration) Option {
	return func(r *Redis) {
		if d > 0 {
			r.lockTTL = d
		}
	}
}

// WithStateTTL sets how long a completed key is remembered.
func WithStateTTL(d time.Duration) Option {
	return func(r *Redis) {
		if d > 0 {
			r.stateTTL = d
		}
	}
}

func NewRedis(client redis.UniversalClient, opts ...Option) *Redis {
	r := &Redis{client: client, lockTTL: defaultLockTTL, stateTTL: defaultStateTTL}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Redis) Exec(ctx context.Context, key string, fn func(context.Context) error) error {
	k := keyPrefix + key

	ok, err := r.client.SetNX(ctx, k, stateInProgress, r.lockTTL).Result()
	if err != nil {
		return err
	}
	if !ok {
		return contended(r.client.Get(ctx, k).Result())
	}

	if err := fn(ctx); err != nil {
		if delErr := r.client.Del(context.WithoutCancel(ctx), k).Err(); delErr != nil {
			return errors.Join(err, delErr)
		}
		return err
	}

	return r.client.Set(context.WithoutCancel(ctx), k, stateCompleted, r.stateTTL).Err()
}

// contended maps the state of a key another caller holds. A key that expired
// between SETNX and GET is still reported as in progress.
func contended(state string, err error) error {
	switch {
	case errors.Is(err, redis.Nil):
		return ErrInProgress
	case err != nil:
		return err
	case state == stateCompleted:
		return ErrCompleted
	default:
		return ErrInProgress
	}
}
