// Package ratelimit counts requests in fixed windows stored in Redis.
package ratelimit

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

var fixedWindowScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
local ttl = redis.call("PTTL", KEYS[1])
if ttl < 0 then
  ttl = tonumber(ARGV[1])
end
return {current, ttl}
`)

// Rule allows Limit hits per Window.
type Rule struct {
	Limit  int
	Window time.Duration
}

// ParseRule reads "<limit>/<window>", for example "20/1m".
func ParseRule(s string) (Rule, error) {
	limit, window, ok := strings.Cut(strings.TrimSpace(s), "/")
	if !ok {
		return Rule{}, fmt.Errorf("ratelimit: rule %q must be <limit>/<window>", s)
	}

	var r Rule
	if _, err := fmt.Sscanf(limit, "%d", &r.Limit); err != nil || r.Limit <= 0 {
		return Rule{}, fmt.Errorf("ratelimit: invalid limit in %q", s)
	}
	d, err := time.ParseDuration(window)
	if err != nil || d <= 0 {
		return Rule{}, fmt.Errorf("ratelimit: invalid window in %q", s)
	}
	r.Window = d

	return r, nil
}

type Result struct {
	Allowed    bool
	Count      int
	RetryAfter time.Duration
}

// RetryAfterSeconds rounds the wait up to whole seconds, minimum 1.
func (r Result) RetryAfterSeconds() int {
	return max(1, int(math.Ceil(r.RetryAfter.Seconds())))
}

type Limiter interface {
	Allow(ctx context.Context, scope, subject string, rule Rule) (Result, error)
}

type Redis struct {
	client redis.UniversalClient
	prefix string
}

func NewRedis(client redis.UniversalClient, prefix string) *Redis {
	prefix = strings.TrimSuffix(strings.TrimSpace(prefix), ":")
	if prefix == "" {
		prefix = "floorease:rate_limit"
	}
	return &Redis{client: client, prefix: prefix}
}

func (r *Redis) Allow(ctx context.Context, scope, subject string, rule Rule) (Result, error) {
	if rule.Limit <= 0 || rule.Window <= 0 {
		return Result{Allowed: true}, nil
	}

	windowMs := max(rule.Window.Milliseconds(), 1000)
	key := r.prefix + ":" + scope + ":" + subject

	raw, err := fixedWindowScript.Run(ctx, r.client, []string{key}, windowMs).Int64Slice()
	if err != nil {
		return Result{}, err
	}
	if len(raw) != 2 {
		return Result{}, fmt.Errorf("ratelimit: unexpected script reply of %d values", len(raw))
	}

	count, ttl := int(raw[0]), raw[1]
	if ttl < 0 {
		ttl = windowMs
	}

	return Result{
		Allowed:    count <= rule.Limit,
		Count:      count,
		RetryAfter: time.Duration(ttl) * time.Millisecond,
	}, nil
}
