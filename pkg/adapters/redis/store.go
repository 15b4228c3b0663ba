package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aretw0/maboss/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

// DefaultPrefix namespaces every key written by the store.
const DefaultPrefix = "maboss:artifact:"

// Store implements ports.ArtifactStore using Redis.
// Artifacts of one run share the run name; keys are prefix+run+name.
type Store struct {
	client *backend.Client
	prefix string
	run    string
	ttl    time.Duration
}

type Option func(*Store)

// WithTTL sets the expiration for artifacts.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key namespace.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// NewFromURL creates a store from a redis:// or rediss:// URL.
func NewFromURL(rawURL, run string, opts ...Option) (*Store, error) {
	o, err := backend.ParseURL(rawURL)
	if err != nil {
		return nil, &domain.ConfigurationError{Key: "redis", Reason: err.Error()}
	}
	return NewFromClient(backend.NewClient(o), run, opts...), nil
}

// NewFromClient creates a new Redis store from an existing client.
func NewFromClient(client *backend.Client, run string, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: DefaultPrefix,
		run:    run,
		ttl:    0, // No expiration by default
	}

	for _, opt := range opts {
		opt(store)
	}

	return store
}

// Key returns the Redis key an artifact name maps to.
func (s *Store) Key(name string) string {
	return s.prefix + s.run + name
}

// Put writes the artifact, expiring it after the configured TTL if any.
func (s *Store) Put(ctx context.Context, name string, data string) error {
	if err := s.client.Set(ctx, s.Key(name), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save artifact to redis: %w", err)
	}
	return nil
}

// Get retrieves an artifact.
func (s *Store) Get(ctx context.Context, name string) (string, error) {
	val, err := s.client.Get(ctx, s.Key(name)).Result()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return "", domain.ErrArtifactNotFound
		}
		return "", fmt.Errorf("failed to get artifact from redis: %w", err)
	}
	return val, nil
}

// Ping checks connectivity before any artifact is produced.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis unreachable: %w", err)
	}
	return nil
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}
