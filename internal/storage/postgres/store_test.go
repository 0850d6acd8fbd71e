package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/networknudge/networknudge/internal/domain"
	"github.com/networknudge/networknudge/pkg/linkedin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestStore connects to NETWORKNUDGE_TEST_DATABASE_URL or skips.
func newTestStore(t *testing.T) *Store {
	t.Helper()

	databaseURL := os.Getenv("NETWORKNUDGE_TEST_DATABASE_URL")
	if databaseURL == "" {
		t.Skip("NETWORKNUDGE_TEST_DATABASE_URL not set")
	}

	store, err := New(StoreDeps{Context: context.Background(), DatabaseURL: databaseURL})
	require.NoError(t, err)
	t.Cleanup(store.Close)

	return store
}

func TestStore_Tokens(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	userID := uuid.NewString()

	tokens, err := store.GetTokens(ctx, userID)
	require.NoError(t, err)
	assert.Nil(t, tokens)

	first := linkedin.TokenSet{AccessToken: "a1", RefreshToken: "r1", ExpiresAt: 1700000000000, TokenType: "Bearer"}
	require.NoError(t, store.PutTokens(ctx, userID, first))

	second := linkedin.TokenSet{AccessToken: "a2", RefreshToken: "r1", ExpiresAt: 1700003600000, TokenType: "Bearer"}
	require.NoError(t, store.PutTokens(ctx, userID, second))

	tokens, err = store.GetTokens(ctx, userID)
	require.NoError(t, err)
	require.NotNil(t, tokens)
	assert.Equal(t, second, *tokens)

	require.NoError(t, store.DeleteTokens(ctx, userID))

	tokens, err = store.GetTokens(ctx, userID)
	require.NoError(t, err)
	assert.Nil(t, tokens)
}

func TestStore_ConnectionsAndNudges(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	userID := uuid.NewString()

	written, err := store.UpsertConnections(ctx, userID, []domain.Connection{
		{LinkedInID: "li-1", Name: "Ada Lovelace"},
		{LinkedInID: "li-2", Name: "Grace Hopper"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, written)

	_, err = store.UpsertConnections(ctx, userID, []domain.Connection{
		{LinkedInID: "li-1", Name: "Ada King", Headline: "Countess"},
	})
	require.NoError(t, err)

	activityDate := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, store.UpdateLastActivity(ctx, userID, "li-2", domain.ConnectionActivity{
		Date:    activityDate,
		Type:    "job_change",
		Content: "Started a new position",
	}))

	connections, err := store.ListRecentlyActive(ctx, userID, 5)
	require.NoError(t, err)
	require.Len(t, connections, 2)
	assert.Equal(t, "Grace Hopper", connections[0].Name)
	assert.Equal(t, "job_change", connections[0].LastActivityType)
	assert.Equal(t, "Ada King", connections[1].Name)
	assert.Equal(t, "Countess", connections[1].Headline)

	require.NoError(t, store.CreateNudge(ctx, domain.Nudge{
		UserID:              userID,
		ConnectionID:        connections[0].ID,
		Type:                "job_change",
		ActivityDescription: "Started a new position",
		Suggestions:         []string{"Congrats, Grace!"},
		ScheduledFor:        time.Now(),
	}))

	count, err := store.CountPendingSince(ctx, userID, time.Now().Add(-7*24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	entries, err := store.ListUnsentPending(ctx, userID, 5)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Grace Hopper", entries[0].Connection.Name)
	assert.Equal(t, []string{"Congrats, Grace!"}, entries[0].Nudge.Suggestions)

	require.NoError(t, store.MarkSent(ctx, []string{entries[0].Nudge.ID}, time.Now()))

	entries, err = store.ListUnsentPending(ctx, userID, 5)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestStore_ProfilesAndSubscriptions(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	userID := uuid.NewString()

	_, err := store.GetProfile(ctx, userID)
	require.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, store.SetLinkedInConnected(ctx, userID, true))

	profile, err := store.GetProfile(ctx, userID)
	require.NoError(t, err)
	assert.True(t, profile.LinkedInConnected)

	subscription, err := store.GetSubscription(ctx, userID)
	require.NoError(t, err)
	assert.Nil(t, subscription)
}
