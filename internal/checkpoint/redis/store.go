package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	backend "github.com/redis/go-redis/v9"

	"exam-prep-assistant/internal/checkpoint"
	"exam-prep-assistant/internal/model"
)

// DefaultPrefix namespaces thread keys.
const DefaultPrefix = "chat:thread:"

// Store implements checkpoint.Store using Redis.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

var _ checkpoint.Store = (*Store)(nil)

type Option func(*Store)

// WithTTL sets the expiration for threads. Zero keeps them forever.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix for threads.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		if prefix != "" {
			s.prefix = prefix
		}
	}
}

// New creates a new Redis store with options.
func New(address, password string, db int, opts ...Option) *Store {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: DefaultPrefix,
	}

	for _, opt := range opts {
		opt(store)
	}

	return store
}

func (s *Store) key(threadID string) string {
	return s.prefix + threadID
}

func (s *Store) indexKey() string {
	return s.prefix + "index"
}

// Ping checks connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Save persists the conversation to Redis.
func (s *Store) Save(ctx context.Context, threadID string, conv model.Conversation) error {
	if threadID == "" {
		return checkpoint.ErrEmptyThreadID
	}
	conv.ThreadID = threadID
	conv.UpdatedAt = time.Now().UTC()

	data, err := json.Marshal(conv)
	if err != nil {
		return fmt.Errorf("failed to marshal conversation: %w", err)
	}

	// Score = expiry time; no TTL means far future.
	score := float64(time.Now().Add(s.ttl).Unix())
	if s.ttl == 0 {
		score = 4102444800 // 2100-01-01
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, s.key(threadID), data, s.ttl)
	pipe.ZAdd(ctx, s.indexKey(), backend.Z{Score: score, Member: threadID})
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}

	return nil
}

// Load retrieves the conversation from Redis.
func (s *Store) Load(ctx context.Context, threadID string) (model.Conversation, error) {
	val, err := s.client.Get(ctx, s.key(threadID)).Bytes()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return model.Conversation{}, checkpoint.ErrThreadNotFound
		}
		return model.Conversation{}, fmt.Errorf("failed to get from redis: %w", err)
	}

	var conv model.Conversation
	if err := json.Unmarshal(val, &conv); err != nil {
		return model.Conversation{}, fmt.Errorf("failed to unmarshal conversation: %w", err)
	}

	return conv, nil
}

// Delete removes the thread.
func (s *Store) Delete(ctx context.Context, threadID string) error {
	pipe := s.client.Pipeline()
	pipe.Del(ctx, s.key(threadID))
	pipe.ZRem(ctx, s.indexKey(), threadID)

	_, err := pipe.Exec(ctx)
	return err
}

// List returns live threads, pruning expired index entries first.
func (s *Store) List(ctx context.Context) ([]string, error) {
	now := float64(time.Now().Unix())
	if err := s.client.ZRemRangeByScore(ctx, s.indexKey(), "-inf", fmt.Sprintf("%f", now)).Err(); err != nil {
		return nil, fmt.Errorf("failed to prune expired threads: %w", err)
	}

	threads, err := s.client.ZRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list threads: %w", err)
	}

	return threads, nil
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}
