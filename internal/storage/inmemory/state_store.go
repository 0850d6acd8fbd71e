package inmemory

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/networknudge/networknudge/internal/domain"
)

type pendingState struct {
	accountID string
	expiresAt time.Time
}

type StateStore struct {
	mu     sync.Mutex
	clock  clockwork.Clock
	states map[string]pendingState
}

func NewStateStore(clock clockwork.Clock) *StateStore {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	return &StateStore{
		clock:  clock,
		states: make(map[string]pendingState),
	}
}

func (s *StateStore) SaveState(ctx context.Context, state, accountID string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	for key, pending := range s.states {
		if !now.Before(pending.expiresAt) {
			delete(s.states, key)
		}
	}

	s.states[state] = pendingState{
		accountID: accountID,
		expiresAt: now.Add(ttl),
	}

	return nil
}

func (s *StateStore) ConsumeState(ctx context.Context, state string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pending, ok := s.states[state]
	if !ok {
		return "", domain.ErrInvalidState
	}

	delete(s.states, state)

	if !s.clock.Now().Before(pending.expiresAt) {
		return "", domain.ErrInvalidState
	}

	return pending.accountID, nil
}
