// Package redisstore keeps replayable HTTP responses in Redis, keyed by the
// caller's Idempotency-Key.
package redisstore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	keyNamespace      = "logistics"
	idempotencyPrefix = "idempotency"
)

type cmdable interface {
	Ping(ctx context.Context) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
	SetNX(ctx context.Context, key string, value any, ttl time.Duration) *redis.BoolCmd
}

type IdempotencyStore struct {
	store cmdable
}

func NewIdempotencyStore(client cmdable) *IdempotencyStore {
	return &IdempotencyStore{store: client}
}

// NewClient connects to Redis and verifies the connection.
func NewClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	if addr == "" {
		return nil, errors.New("redis address is required")
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// Key namespaces an idempotency key by its scope, normally caller plus route.
func (s *IdempotencyStore) Key(scope, id string) string {
	return strings.Join([]string{keyNamespace, idempotencyPrefix, scope, id}, ":")
}

// Get returns the stored record, or found == false when there is none.
func (s *IdempotencyStore) Get(ctx context.Context, key string) (record string, found bool, err error) {
	record, err = s.store.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return record, true, nil
}

// Save stores record unless the key is already taken. The first writer wins.
func (s *IdempotencyStore) Save(ctx context.Context, key, record string, ttl time.Duration) (bool, error) {
	return s.store.SetNX(ctx, key, record, ttl).Result()
}

func (s *IdempotencyStore) Ping(ctx context.Context) error {
	return s.store.Ping(ctx).Err()
}
