package pacing

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Gate is the subset of *redis.Client used by RedisGate.
type Gate interface {
	SetNX(ctx context.Context, key string, value any, expiration time.Duration) *redis.BoolCmd
}

// RedisGate admits at most one caller per Interval across every process
// sharing the same Redis key.
type RedisGate struct {
	client   Gate
	key      string
	interval time.Duration
	poll     time.Duration
	sleep    func(ctx context.Context, d time.Duration) error
}

func NewRedisGate(client Gate, key string, interval time.Duration) *RedisGate {
	poll := interval / 4
	if poll < 100*time.Millisecond {
		poll = 100 * time.Millisecond
	}
	return &RedisGate{client: client, key: key, interval: interval, poll: poll, sleep: Sleep}
}

func (g *RedisGate) Wait(ctx context.Context) error {
	if g == nil || g.client == nil || g.interval <= 0 {
		return ctx.Err()
	}
	for {
		ok, err := g.client.SetNX(ctx, g.key, time.Now().UnixMilli(), g.interval).Result()
		if err != nil {
			return fmt.Errorf("acquire pacing gate %s: %w", g.key, err)
		}
		if ok {
			return nil
		}
		if err := g.sleep(ctx, g.poll); err != nil {
			return err
		}
	}
}

// OpenRedis parses a redis:// URL and verifies connectivity.
func OpenRedis(ctx context.Context, rawURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}
