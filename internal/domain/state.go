package domain

import (
	"context"
	"time"
)

const OAuthStateTTL = 10 * time.Minute

// StateStore binds an OAuth state value to the account that started the flow.
type StateStore interface {
	SaveState(ctx context.Context, state, accountID string, ttl time.Duration) error
	// ConsumeState deletes the state and returns its account, or ErrInvalidState.
	ConsumeState(ctx context.Context, state string) (string, error)
}
