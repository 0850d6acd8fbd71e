// Package redis keeps short-lived OAuth state in Redis.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/networknudge/networknudge/internal/domain"
	"github.com/redis/go-redis/v9"
)

const DefaultKeyPrefix = "networknudge:oauth_state:"

type StateStore struct {
	client    *redis.Client
	keyPrefix string
}

type Opts struct {
	URL       string
	KeyPrefix string
}

func New(ctx context.Context, opts Opts) (*StateStore, error) {
	options, err := redis.ParseURL(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}

	client := redis.NewClient(options)

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewWithClient(client, opts.KeyPrefix), nil
}

func NewWithClient(client *redis.Client, keyPrefix string) *StateStore {
	if keyPrefix == "" {
		keyPrefix = DefaultKeyPrefix
	}

	return &StateStore{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

func (s *StateStore) key(state string) string {
	return s.keyPrefix + state
}

func (s *StateStore) SaveState(ctx context.Context, state, accountID string, ttl time.Duration) error {
	if err := s.client.Set(ctx, s.key(state), accountID, ttl).Err(); err != nil {
		return fmt.Errorf("failed to save oauth state: %w", err)
	}

	return nil
}

func (s *StateStore) ConsumeState(ctx context.Context, state string) (string, error) {
	if state == "" {
		return "", domain.ErrInvalidState
	}

	accountID, err := s.client.GetDel(ctx, s.key(state)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", domain.ErrInvalidState
		}
		return "", fmt.Errorf("failed to consume oauth state: %w", err)
	}

	return accountID, nil
}

func (s *StateStore) Close() error {
	return s.client.Close()
}
