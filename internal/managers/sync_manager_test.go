package managers

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/networknudge/networknudge/internal/domain"
	"github.com/networknudge/networknudge/internal/storage/inmemory"
	"github.com/networknudge/networknudge/pkg/linkedin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func connectionsPage(n, offset int) []linkedin.Connection {
	page := make([]linkedin.Connection, 0, n)
	for i := 0; i < n; i++ {
		page = append(page, linkedin.Connection{ID: fmt.Sprintf("li-%d", offset+i)})
	}
	return page
}

func newSyncFixture(client *fakeLinkedInClient, maxPages int) (domain.SyncManager, *inmemory.Repository, *inmemory.TokenStore) {
	repo := inmemory.NewRepository(clockwork.NewFakeClock())
	tokens := inmemory.NewTokenStore()

	manager := NewSyncManager(SyncManagerDependencies{
		Client:      client,
		TokenStore:  tokens,
		Profiles:    repo,
		Connections: repo,
		MaxPages:    maxPages,
	})

	return manager, repo, tokens
}

func TestSyncManager_SyncAccount(t *testing.T) {
	ctx := context.Background()

	older := time.Date(2024, time.March, 1, 10, 0, 0, 0, time.UTC)
	newer := older.Add(48 * time.Hour)

	client := &fakeLinkedInClient{
		connections: []linkedin.ListResult[linkedin.Connection]{
			linkedin.Ok([]linkedin.Connection{
				{ID: "li-1", FirstName: "Ada", LastName: "Lovelace", Headline: "Engineer"},
				{ID: "li-2", FirstName: "Grace", LastName: "Hopper"},
				{FirstName: "No", LastName: "Id"},
			}),
		},
		activities: linkedin.Ok([]linkedin.Activity{
			{ID: "a1", Type: linkedin.ActivityTypePost, Timestamp: older.UnixMilli(), Actor: "Ada Lovelace", Content: "A new post"},
			{ID: "a2", Type: linkedin.ActivityTypePost, Timestamp: newer.UnixMilli(), Actor: "Stranger Danger"},
		}),
		updates: linkedin.Ok([]linkedin.Activity{
			{ID: "u1", Type: linkedin.ActivityTypeJobChange, Timestamp: newer.UnixMilli(), Actor: "Ada Lovelace", Description: "Started a new position"},
		}),
	}

	manager, repo, tokens := newSyncFixture(client, 0)
	require.NoError(t, tokens.PutTokens(ctx, "user-1", linkedin.TokenSet{AccessToken: "a", RefreshToken: "r"}))

	result, err := manager.SyncAccount(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, domain.SyncResult{Connections: 2, Activities: 1}, result)

	assert.Equal(t, []string{"user-1"}, client.accountSeen)
	assert.Equal(t, []linkedin.Page{{Start: 0, Count: linkedin.DefaultPageSize}}, client.pages)

	connections, err := repo.ListRecentlyActive(ctx, "user-1", 5)
	require.NoError(t, err)
	require.Len(t, connections, 2)

	assert.Equal(t, "Ada Lovelace", connections[0].Name)
	assert.Equal(t, "Engineer", connections[0].Headline)
	assert.Equal(t, "job_change", connections[0].LastActivityType)
	assert.Equal(t, "Started a new position", connections[0].LastActivityContent)
	require.NotNil(t, connections[0].LastActivityDate)
	assert.True(t, newer.Equal(*connections[0].LastActivityDate))

	assert.Equal(t, "Grace Hopper", connections[1].Name)
	assert.Nil(t, connections[1].LastActivityDate)
}

func TestSyncManager_PaginatesUntilShortPage(t *testing.T) {
	ctx := context.Background()

	client := &fakeLinkedInClient{
		connections: []linkedin.ListResult[linkedin.Connection]{
			linkedin.Ok(connectionsPage(linkedin.DefaultPageSize, 0)),
			linkedin.Ok([]linkedin.Connection{{ID: "last", FirstName: "Last"}}),
		},
	}

	manager, _, tokens := newSyncFixture(client, 0)
	require.NoError(t, tokens.PutTokens(ctx, "user-1", linkedin.TokenSet{AccessToken: "a"}))

	_, err := manager.SyncAccount(ctx, "user-1")
	require.NoError(t, err)

	assert.Equal(t, []linkedin.Page{
		{Start: 0, Count: linkedin.DefaultPageSize},
		{Start: linkedin.DefaultPageSize, Count: linkedin.DefaultPageSize},
	}, client.pages)
}

func TestSyncManager_StopsAtMaxPages(t *testing.T) {
	ctx := context.Background()

	client := &fakeLinkedInClient{
		connections: []linkedin.ListResult[linkedin.Connection]{
			linkedin.Ok(connectionsPage(linkedin.DefaultPageSize, 0)),
			linkedin.Ok(connectionsPage(linkedin.DefaultPageSize, linkedin.DefaultPageSize)),
			linkedin.Ok(connectionsPage(linkedin.DefaultPageSize, 2*linkedin.DefaultPageSize)),
		},
	}

	manager, _, tokens := newSyncFixture(client, 2)
	require.NoError(t, tokens.PutTokens(ctx, "user-1", linkedin.TokenSet{AccessToken: "a"}))

	_, err := manager.SyncAccount(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, client.pages, 2)
}

func TestSyncManager_Failures(t *testing.T) {
	ctx := context.Background()

	t.Run("no tokens", func(t *testing.T) {
		manager, _, _ := newSyncFixture(&fakeLinkedInClient{}, 0)

		_, err := manager.SyncAccount(ctx, "user-1")
		assert.True(t, linkedin.IsReauthorizationRequired(err))
	})

	t.Run("reauthorization surfaces", func(t *testing.T) {
		client := &fakeLinkedInClient{
			connections: []linkedin.ListResult[linkedin.Connection]{
				linkedin.Degraded[linkedin.Connection](&linkedin.Error{Kind: linkedin.ErrReauthorizationRequired, StatusCode: 401}),
			},
		}
		manager, _, tokens := newSyncFixture(client, 0)
		require.NoError(t, tokens.PutTokens(ctx, "user-1", linkedin.TokenSet{AccessToken: "a"}))

		_, err := manager.SyncAccount(ctx, "user-1")
		assert.True(t, linkedin.IsReauthorizationRequired(err))
	})

	t.Run("other failures degrade", func(t *testing.T) {
		client := &fakeLinkedInClient{
			connections: []linkedin.ListResult[linkedin.Connection]{
				linkedin.Degraded[linkedin.Connection](&linkedin.Error{Kind: linkedin.ErrAPIRequest, StatusCode: 500}),
			},
			activities: linkedin.Degraded[linkedin.Activity](&linkedin.Error{Kind: linkedin.ErrAPIRequest, StatusCode: 500}),
		}
		manager, _, tokens := newSyncFixture(client, 0)
		require.NoError(t, tokens.PutTokens(ctx, "user-1", linkedin.TokenSet{AccessToken: "a"}))

		result, err := manager.SyncAccount(ctx, "user-1")
		require.NoError(t, err)
		assert.Equal(t, domain.SyncResult{Degraded: true}, result)
	})
}

func TestSyncManager_SyncAll(t *testing.T) {
	ctx := context.Background()

	client := &fakeLinkedInClient{}
	manager, repo, tokens := newSyncFixture(client, 0)

	repo.SaveProfile(domain.Profile{ID: "user-1", LinkedInConnected: true})
	repo.SaveProfile(domain.Profile{ID: "user-2", LinkedInConnected: true})
	repo.SaveProfile(domain.Profile{ID: "user-3"})
	require.NoError(t, tokens.PutTokens(ctx, "user-1", linkedin.TokenSet{AccessToken: "a"}))

	synced, err := manager.SyncAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, synced)
	assert.Equal(t, []string{"user-1"}, client.accountSeen)
}
