package domain

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextAccountResolver(t *testing.T) {
	_, err := ContextAccountResolver.CurrentAccountID(context.Background())
	require.Error(t, err)

	ctx := NewContextWithAccountID(context.Background(), "user-1")
	accountID, err := ContextAccountResolver.CurrentAccountID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "user-1", accountID)

	_, ok := GetAccountID(NewContextWithAccountID(context.Background(), ""))
	assert.False(t, ok)
}
