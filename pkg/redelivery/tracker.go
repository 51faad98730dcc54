package redelivery

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix  = "redelivery:"
	DefaultTTL = 24 * time.Hour
)

// Tracker counts delivery attempts per message in Redis so that every consumer
// instance sharing a queue sees the same count.
type Tracker struct {
	client *redis.Client
	ttl    time.Duration
}

func New(ctx context.Context, redisURL string) (*Tracker, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis URL: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("pinging redis: %w", err)
	}

	return NewWithClient(client, DefaultTTL), nil
}

func NewWithClient(client *redis.Client, ttl time.Duration) *Tracker {
	return &Tracker{client: client, ttl: ttl}
}

// Attempt records one more delivery of key and returns the total so far.
func (t *Tracker) Attempt(ctx context.Context, key string) (int64, error) {
	var incr *redis.IntCmd
	_, err := t.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, keyPrefix+key)
		pipe.Expire(ctx, keyPrefix+key, t.ttl)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("count delivery attempt: %w", err)
	}
	return incr.Val(), nil
}

// Forget drops the counter once a message has been settled.
func (t *Tracker) Forget(ctx context.Context, key string) error {
	if err := t.client.Del(ctx, keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("forget delivery attempts: %w", err)
	}
	return nil
}

func (t *Tracker) Close() error {
	return t.client.Close()
}
