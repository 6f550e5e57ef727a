package kv

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// Redis is a Store backed by a Redis server.
type Redis struct {
	client *redis.Client
}

var _ Store = (*Redis)(nil)

// NewRedis connects to addr, either host:port or a redis:// URL.
func NewRedis(addr string) (*Redis, error) {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return nil, errors.New("kv: redis address is required")
	}
	opts := &redis.Options{Addr: addr}
	if strings.Contains(addr, "://") {
		parsed, err := redis.ParseURL(addr)
		if err != nil {
			return nil, errors.Wrap(err, "kv: parse redis url")
		}
		opts = parsed
	}
	return &Redis{client: redis.NewClient(opts)}, nil
}

// Ping checks the server is reachable.
func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "kv: redis get")
	}
	return val, nil
}

func (r *Redis) Set(ctx context.Context, key string, value []byte) error {
	return errors.Wrap(r.client.Set(ctx, key, value, 0).Err(), "kv: redis set")
}

func (r *Redis) Delete(ctx context.Context, key string) error {
	return errors.Wrap(r.client.Del(ctx, key).Err(), "kv: redis delete")
}

func (r *Redis) Close() error {
	return r.client.Close()
}
