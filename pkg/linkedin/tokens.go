package linkedin

import (
	"context"
	"time"
)

// TokenSet is the access/refresh token pair of one account's LinkedIn connection.
type TokenSet struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresAt    int64  `json:"expires_at"` // epoch milliseconds
	TokenType    string `json:"token_type"`
}

// Expiry returns ExpiresAt as a time.
func (t TokenSet) Expiry() time.Time {
	return time.UnixMilli(t.ExpiresAt)
}

// ExpiringWithin reports whether the token expires before now+threshold.
// A TokenSet without an expiry is never considered expiring.
func (t TokenSet) ExpiringWithin(now time.Time, threshold time.Duration) bool {
	if t.ExpiresAt == 0 {
		return false
	}

	return t.ExpiresAt < now.Add(threshold).UnixMilli()
}

// TokenStore persists exactly one TokenSet per account.
type TokenStore interface {
	// GetTokens returns nil without error when the account has no tokens.
	GetTokens(ctx context.Context, accountID string) (*TokenSet, error)
	PutTokens(ctx context.Context, accountID string, tokens TokenSet) error
	DeleteTokens(ctx context.Context, accountID string) error
}

// AccountResolver finds the account a request is made for.
type AccountResolver interface {
	CurrentAccountID(ctx context.Context) (string, error)
}

// AccountResolverFunc adapts a function to AccountResolver.
type AccountResolverFunc func(ctx context.Context) (string, error)

func (f AccountResolverFunc) CurrentAccountID(ctx context.Context) (string, error) {
	return f(ctx)
}

// Quota is a per-key token bucket; github.com/sethvargo/go-limiter stores satisfy it.
type Quota interface {
	Take(ctx context.Context, key string) (tokens, remaining, reset uint64, ok bool, err error)
}
