// Package inmemory holds tokens and OAuth state in process memory for local runs and tests.
package inmemory

import (
	"context"
	"sync"

	"github.com/networknudge/networknudge/pkg/linkedin"
)

type TokenStore struct {
	mu     sync.RWMutex
	tokens map[string]linkedin.TokenSet
}

func NewTokenStore() *TokenStore {
	return &TokenStore{
		tokens: make(map[string]linkedin.TokenSet),
	}
}

func (s *TokenStore) GetTokens(ctx context.Context, accountID string) (*linkedin.TokenSet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tokens, ok := s.tokens[accountID]
	if !ok {
		return nil, nil
	}

	return &tokens, nil
}

func (s *TokenStore) PutTokens(ctx context.Context, accountID string, tokens linkedin.TokenSet) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tokens[accountID] = tokens

	return nil
}

func (s *TokenStore) DeleteTokens(ctx context.Context, accountID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.tokens, accountID)

	return nil
}
