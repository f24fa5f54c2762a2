// Package sessionstore provides the pluggable persistence backends for the
// student collection. Each backend serializes the entire collection as one
// JSON document: the repository loads it on startup and saves it after every
// mutation.
package sessionstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/campusgate/admission_service/internal/domain"
	backend "github.com/redis/go-redis/v9"
)

// RedisStore keeps the collection under a single namespaced key, optionally
// with a TTL (session-scoped persistence).
type RedisStore struct {
	client *backend.Client
	key    string
	ttl    time.Duration
}

type RedisOption func(*RedisStore)

// WithTTL sets an expiry on the stored collection.
func WithTTL(ttl time.Duration) RedisOption {
	return func(s *RedisStore) {
		s.ttl = ttl
	}
}

// WithKey overrides the storage key.
func WithKey(key string) RedisOption {
	return func(s *RedisStore) {
		s.key = key
	}
}

func NewRedisStore(addr, password string, db int, opts ...RedisOption) *RedisStore {
	client := backend.NewClient(&backend.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return NewRedisStoreFromClient(client, opts...)
}

// NewRedisStoreFromClient wraps an existing client (used by tests).
func NewRedisStoreFromClient(client *backend.Client, opts ...RedisOption) *RedisStore {
	s := &RedisStore{
		client: client,
		key:    "admission:students",
		ttl:    0, // no expiry by default
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RedisStore) Load(ctx context.Context) ([]domain.StudentProfile, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if err == backend.Nil {
		return []domain.StudentProfile{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.key, err)
	}

	var students []domain.StudentProfile
	if err := json.Unmarshal(data, &students); err != nil {
		return nil, fmt.Errorf("unmarshal student collection: %w", err)
	}
	return students, nil
}

func (s *RedisStore) Save(ctx context.Context, students []domain.StudentProfile) error {
	data, err := json.Marshal(students)
	if err != nil {
		return fmt.Errorf("marshal student collection: %w", err)
	}
	if err := s.client.Set(ctx, s.key, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("write %s: %w", s.key, err)
	}
	return nil
}

// Ping verifies connectivity at startup.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
