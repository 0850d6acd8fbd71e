package inmemory

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/networknudge/networknudge/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_ConnectionsUpsertByLinkedInID(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(clockwork.NewFakeClock())

	_, err := repo.UpsertConnections(ctx, "user-1", []domain.Connection{
		{LinkedInID: "li-1", Name: "Ada Lovelace"},
		{LinkedInID: "li-2", Name: "Grace Hopper"},
	})
	require.NoError(t, err)

	_, err = repo.UpsertConnections(ctx, "user-1", []domain.Connection{
		{LinkedInID: "li-1", Name: "Ada King"},
	})
	require.NoError(t, err)

	_, err = repo.UpsertConnections(ctx, "user-2", []domain.Connection{
		{LinkedInID: "li-1", Name: "Someone Else"},
	})
	require.NoError(t, err)

	older := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	newer := older.Add(24 * time.Hour)

	require.NoError(t, repo.UpdateLastActivity(ctx, "user-1", "li-1", domain.ConnectionActivity{Date: older, Type: "post"}))
	require.NoError(t, repo.UpdateLastActivity(ctx, "user-1", "li-2", domain.ConnectionActivity{Date: newer, Type: "job_change"}))
	require.NoError(t, repo.UpdateLastActivity(ctx, "user-1", "li-2", domain.ConnectionActivity{Date: older, Type: "post"}))

	connections, err := repo.ListRecentlyActive(ctx, "user-1", 5)
	require.NoError(t, err)
	require.Len(t, connections, 2)

	assert.Equal(t, "Grace Hopper", connections[0].Name)
	assert.Equal(t, "job_change", connections[0].LastActivityType)
	assert.Equal(t, "Ada King", connections[1].Name)
}

func TestRepository_Nudges(t *testing.T) {
	ctx := context.Background()
	clock := clockwork.NewFakeClock()
	repo := NewRepository(clock)

	_, err := repo.UpsertConnections(ctx, "user-1", []domain.Connection{{LinkedInID: "li-1", Name: "Ada Lovelace"}})
	require.NoError(t, err)
	connections, err := repo.ListRecentlyActive(ctx, "user-1", 1)
	require.NoError(t, err)

	err = repo.CreateNudge(ctx, domain.Nudge{UserID: "user-1", ConnectionID: "missing"})
	require.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, repo.CreateNudge(ctx, domain.Nudge{UserID: "user-1", ConnectionID: connections[0].ID, Type: "post"}))

	count, err := repo.CountPendingSince(ctx, "user-1", clock.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	entries, err := repo.ListUnsentPending(ctx, "user-1", 5)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Ada Lovelace", entries[0].Connection.Name)

	require.NoError(t, repo.MarkSent(ctx, []string{entries[0].Nudge.ID}, clock.Now()))

	entries, err = repo.ListUnsentPending(ctx, "user-1", 5)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
