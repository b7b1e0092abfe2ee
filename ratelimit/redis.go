package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// slidingWindowScript keeps one sorted-set member per accepted request, scored in milliseconds.
// Returns {allowed, remaining, retry_after_ms}.
var slidingWindowScript = redis.NewScript(`
local key = KEYS[1]
local now = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local limit = tonumber(ARGV[3])
local member = ARGV[4]

redis.call('ZREMRANGEBYSCORE', key, '-inf', now - window)
local count = redis.call('ZCARD', key)
if count >= limit then
	local retry = window
	local oldest = redis.call('ZRANGE', key, 0, 0, 'WITHSCORES')
	if oldest[2] then
		retry = tonumber(oldest[2]) + window - now
	end
	return {0, 0, retry}
end

redis.call('ZADD', key, now, member)
redis.call('PEXPIRE', key, window)
return {1, limit - count - 1, 0}
`)

// RedisLimiter shares the sliding window across server instances through Redis.
type RedisLimiter struct {
	client *redis.Client
	prefix string
	now    func() time.Time
}

// NewRedisLimiter connects to redisURL (redis:// or rediss://).
func NewRedisLimiter(redisURL string) (*RedisLimiter, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return NewRedisLimiterFromClient(redis.NewClient(opts)), nil
}

// NewRedisLimiterFromClient wraps an existing client.
func NewRedisLimiterFromClient(client *redis.Client) *RedisLimiter {
	return &RedisLimiter{client: client, prefix: "ratelimit:", now: time.Now}
}

func (l *RedisLimiter) Ping(ctx context.Context) error {
	return l.client.Ping(ctx).Err()
}

func (l *RedisLimiter) Close() error {
	return l.client.Close()
}

func (l *RedisLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (Result, error) {
	if limit <= 0 {
		return denyAll(window), nil
	}
	now := l.now().UnixMilli()
	member := fmt.Sprintf("%d-%s", now, uuid.NewString())

	values, err := slidingWindowScript.Run(ctx, l.client,
		[]string{l.prefix + key},
		now, window.Milliseconds(), limit, member,
	).Int64Slice()
	if err != nil {
		return Result{}, fmt.Errorf("redis sliding window: %w", err)
	}
	if len(values) != 3 {
		return Result{}, fmt.Errorf("redis sliding window: unexpected reply %v", values)
	}

	res := Result{
		Allowed:   values[0] == 1,
		Limit:     limit,
		Remaining: int(values[1]),
	}
	if !res.Allowed {
		res.RetryAfter = time.Duration(values[2]) * time.Millisecond
		if res.RetryAfter <= 0 {
			res.RetryAfter = time.Millisecond
		}
	}
	return res, nil
}
