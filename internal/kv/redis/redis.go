package redis

import (
	"context"

	"wallcraft/internal/kv"

	"github.com/go-faster/errors"
	"github.com/redis/go-redis/v9"
)

type Storage struct {
	client *redis.Client
}

// New connects to addr and verifies the connection with a PING.
func New(ctx context.Context, addr, password string) (*Storage, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.Wrap(err, "ping redis")
	}

	return &Storage{client: client}, nil
}

// NewFromClient wraps an existing client.
func NewFromClient(client *redis.Client) *Storage {
	return &Storage{client: client}
}

func (s *Storage) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, kv.ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "get %q", key)
	}
	return b, nil
}

func (s *Storage) Set(ctx context.Context, key string, value []byte) error {
	return errors.Wrapf(s.client.Set(ctx, key, value, 0).Err(), "set %q", key)
}

func (s *Storage) Close() error {
	return s.client.Close()
}
