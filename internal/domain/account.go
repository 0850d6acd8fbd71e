package domain

import (
	"context"
	"errors"

	"github.com/networknudge/networknudge/pkg/linkedin"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrInvalidState = errors.New("invalid or expired oauth state")
)

type AccountContextKey struct{}

// NewContextWithAccountID marks ctx as acting on behalf of accountID.
func NewContextWithAccountID(ctx context.Context, accountID string) context.Context {
	return context.WithValue(ctx, AccountContextKey{}, accountID)
}

func GetAccountID(ctx context.Context) (string, bool) {
	accountID, ok := ctx.Value(AccountContextKey{}).(string)

	return accountID, ok && accountID != ""
}

// ContextAccountResolver lets the LinkedIn client find the account a call runs for.
var ContextAccountResolver = linkedin.AccountResolverFunc(func(ctx context.Context) (string, error) {
	accountID, ok := GetAccountID(ctx)
	if !ok {
		return "", errors.New("no account in context")
	}

	return accountID, nil
})
