// Package publish forwards completed matches to downstream consumers.
//
// The Redis implementation appends one entry per match to a capped Redis
// stream so other services can follow new matches with XREAD. When stream
// publishing is disabled the pipeline uses Noop.
package publish

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"matchmill/internal/config"
	"matchmill/internal/game"
)

// Publisher delivers completed matches.
type Publisher interface {
	Publish(ctx context.Context, m *game.Match) error
	Close() error
}

// New returns a Redis publisher when cfg enables it, otherwise Noop.
func New(cfg *config.Config) Publisher {
	if !cfg.Redis.Enabled {
		return Noop{}
	}
	return NewRedis(cfg.Redis)
}

type streamClient interface {
	XAdd(ctx context.Context, a *redis.XAddArgs) *redis.StringCmd
	Ping(ctx context.Context) *redis.StatusCmd
	Close() error
}

// Redis appends matches to a Redis stream.
type Redis struct {
	client streamClient
	stream string
	maxLen int64
}

// NewRedis connects lazily to the configured Redis server.
func NewRedis(cfg config.Redis) *Redis {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
	return &Redis{client: client, stream: cfg.Stream, maxLen: cfg.MaxLen}
}

// Publish appends m to the stream, trimming it to roughly maxLen entries.
func (r *Redis) Publish(ctx context.Context, m *game.Match) error {
	args, err := r.entry(m)
	if err != nil {
		return err
	}
	if err := r.client.XAdd(ctx, args).Err(); err != nil {
		return fmt.Errorf("publish match %s to %s: %w", m.Key, r.stream, err)
	}
	return nil
}

func (r *Redis) entry(m *game.Match) (*redis.XAddArgs, error) {
	payload, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("encode match %s: %w", m.Key, err)
	}
	args := &redis.XAddArgs{
		Stream: r.stream,
		Values: map[string]any{
			"key":     m.Key,
			"map":     m.Map,
			"mode":    m.GameMode,
			"rounds":  strconv.Itoa(len(m.Rounds)),
			"payload": string(payload),
		},
	}
	if r.maxLen > 0 {
		args.MaxLen = r.maxLen
		args.Approx = true
	}
	return args, nil
}

// Ping checks connectivity to the Redis server.
func (r *Redis) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("ping redis: %w", err)
	}
	return nil
}

func (r *Redis) Close() error {
	return r.client.Close()
}

// Noop discards matches.
type Noop struct{}

func (Noop) Publish(context.Context, *game.Match) error { return nil }

func (Noop) Close() error { return nil }
