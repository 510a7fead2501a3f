// Package redis implements domain.Store on Redis string keys, one key per
// collection.
package redis

import (
	"context"
	"errors"

	"bloodbank/internal/domain"

	goredis "github.com/go-redis/redis/v8"
)

// DefaultPrefix matches the key names the browser demo used in localStorage.
const DefaultPrefix = "bd_"

var _ domain.Store = (*Store)(nil)

// Store is a Redis-backed key-value store.
type Store struct {
	c      *goredis.Client
	prefix string
}

// Options configures the Redis connection.
type Options struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

// Open creates a client and pings the server.
func Open(ctx context.Context, opts Options) (*Store, error) {
	c := goredis.NewClient(&goredis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	if err := c.Ping(ctx).Err(); err != nil {
		_ = c.Close()
		return nil, err
	}
	return New(c, opts.Prefix), nil
}

// New wraps an existing client. An empty prefix selects DefaultPrefix.
func New(c *goredis.Client, prefix string) *Store {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Store{c: c, prefix: prefix}
}

// Key returns the Redis key for a collection name.
func (s *Store) Key(name string) string {
	return s.prefix + name
}

// Load returns the payload stored under name, or nil on a miss.
func (s *Store) Load(ctx context.Context, name string) ([]byte, error) {
	val, err := s.c.Get(ctx, s.Key(name)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	return val, nil
}

// Save replaces the payload under name. Keys never expire.
func (s *Store) Save(ctx context.Context, name string, payload []byte) error {
	return s.c.Set(ctx, s.Key(name), payload, 0).Err()
}

// Delete removes name.
func (s *Store) Delete(ctx context.Context, name string) error {
	return s.c.Del(ctx, s.Key(name)).Err()
}

// Close closes the client.
func (s *Store) Close() error {
	return s.c.Close()
}
