// Package redis provides a trigger store backed by Redis, for hosts where a
// delivered notification must survive an app restart before being resumed.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	backend "github.com/redis/go-redis/v9"

	"github.com/effective-digital/flowkit/pkg/domain"
)

// Store implements ports.TriggerStore using Redis.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

// Option configures the Store.
type Option func(*Store)

// WithTTL sets the expiration for stored triggers. Zero means no expiration.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix for stored triggers.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New creates a new Redis trigger store with its own client.
func New(address, password string, db int, opts ...Option) *Store {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis trigger store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: "flowkit:trigger:",
		ttl:    0,
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

func (s *Store) key(k string) string {
	return s.prefix + k
}

// Save persists the trigger to Redis.
func (s *Store) Save(ctx context.Context, key string, trigger domain.PendingTrigger) error {
	data, err := json.Marshal(trigger)
	if err != nil {
		return fmt.Errorf("failed to marshal trigger: %w", err)
	}

	if err := s.client.Set(ctx, s.key(key), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save trigger: %w", err)
	}
	return nil
}

// Load retrieves the trigger from Redis.
func (s *Store) Load(ctx context.Context, key string) (domain.PendingTrigger, error) {
	data, err := s.client.Get(ctx, s.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return domain.PendingTrigger{}, domain.ErrTriggerNotFound
		}
		return domain.PendingTrigger{}, fmt.Errorf("failed to load trigger: %w", err)
	}

	var trigger domain.PendingTrigger
	if err := json.Unmarshal(data, &trigger); err != nil {
		return domain.PendingTrigger{}, fmt.Errorf("failed to unmarshal trigger: %w", err)
	}
	return trigger, nil
}

// Delete removes the trigger from Redis.
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("failed to delete trigger: %w", err)
	}
	return nil
}
