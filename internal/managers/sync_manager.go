package managers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/networknudge/networknudge/internal/domain"
	"github.com/networknudge/networknudge/pkg/linkedin"
	"github.com/rs/zerolog/log"
)

const defaultSyncMaxPages = 10

type syncManager struct {
	client      linkedin.ClientInterface
	tokenStore  linkedin.TokenStore
	profiles    domain.ProfileRepository
	connections domain.ConnectionRepository
	maxPages    int
}

type SyncManagerDependencies struct {
	Client      linkedin.ClientInterface
	TokenStore  linkedin.TokenStore
	Profiles    domain.ProfileRepository
	Connections domain.ConnectionRepository
	MaxPages    int
}

func NewSyncManager(deps SyncManagerDependencies) domain.SyncManager {
	maxPages := deps.MaxPages
	if maxPages <= 0 {
		maxPages = defaultSyncMaxPages
	}

	return &syncManager{
		client:      deps.Client,
		tokenStore:  deps.TokenStore,
		profiles:    deps.Profiles,
		connections: deps.Connections,
		maxPages:    maxPages,
	}
}

func (m *syncManager) SyncAccount(ctx context.Context, accountID string) (domain.SyncResult, error) {
	tokens, err := m.tokenStore.GetTokens(ctx, accountID)
	if err != nil {
		return domain.SyncResult{}, fmt.Errorf("failed to get linkedin tokens: %w", err)
	}

	if tokens == nil {
		return domain.SyncResult{}, fmt.Errorf("account %s has no linkedin connection: %w", accountID, linkedin.ErrReauthorizationRequired)
	}

	ctx = domain.NewContextWithAccountID(ctx, accountID)

	var result domain.SyncResult

	connections, err := m.readConnections(ctx, &result)
	if err != nil {
		return result, err
	}

	rows := make([]domain.Connection, 0, len(connections))
	byName := make(map[string]string, len(connections))
	for _, connection := range connections {
		if connection.ID == "" {
			continue
		}

		rows = append(rows, domain.Connection{
			LinkedInID: connection.ID,
			Name:       connection.Name(),
			Headline:   connection.Headline,
			ProfileURL: connection.ProfileURL,
			AvatarURL:  connection.PictureURL,
		})

		if name := connection.Name(); name != "" {
			byName[name] = connection.ID
		}
	}

	written, err := m.connections.UpsertConnections(ctx, accountID, rows)
	if err != nil {
		return result, fmt.Errorf("failed to store connections: %w", err)
	}
	result.Connections = written

	activities := m.client.Activities(ctx, linkedin.Page{})
	updates := m.client.ProfileUpdates(ctx, linkedin.Page{})
	result.Degraded = result.Degraded || activities.Degraded() || updates.Degraded()

	latest := latestActivityByConnection(byName, activities.Items, updates.Items)
	for linkedInID, activity := range latest {
		content := activity.Description
		if content == "" {
			content = activity.Content
		}

		err := m.connections.UpdateLastActivity(ctx, accountID, linkedInID, domain.ConnectionActivity{
			Date:    time.UnixMilli(activity.Timestamp).UTC(),
			Type:    strings.ToLower(string(activity.Type)),
			Content: content,
		})
		if err != nil {
			return result, fmt.Errorf("failed to store connection activity: %w", err)
		}
		result.Activities++
	}

	log.Info().
		Str("account_id", accountID).
		Int("connections", result.Connections).
		Int("activities", result.Activities).
		Bool("degraded", result.Degraded).
		Msg("linkedin sync finished")

	return result, nil
}

// readConnections pages through connections until a short page. A reauthorization
// failure is returned; other failures degrade the result.
func (m *syncManager) readConnections(ctx context.Context, result *domain.SyncResult) ([]linkedin.Connection, error) {
	var connections []linkedin.Connection

	page := linkedin.Page{Start: 0, Count: linkedin.DefaultPageSize}
	for i := 0; i < m.maxPages; i++ {
		batch := m.client.Connections(ctx, page)
		if batch.Degraded() {
			if linkedin.IsReauthorizationRequired(batch.Cause) {
				return nil, fmt.Errorf("failed to read connections: %w", batch.Cause)
			}
			result.Degraded = true
			break
		}

		connections = append(connections, batch.Items...)
		if len(batch.Items) < page.Count {
			break
		}
		page.Start += page.Count
	}

	return connections, nil
}

func latestActivityByConnection(byName map[string]string, lists ...[]linkedin.Activity) map[string]linkedin.Activity {
	latest := make(map[string]linkedin.Activity)

	for _, activities := range lists {
		for _, activity := range activities {
			linkedInID, ok := byName[activity.Actor]
			if !ok {
				continue
			}

			if current, seen := latest[linkedInID]; !seen || activity.Timestamp > current.Timestamp {
				latest[linkedInID] = activity
			}
		}
	}

	return latest
}

func (m *syncManager) SyncAll(ctx context.Context) (int, error) {
	profiles, err := m.profiles.ListLinkedInConnected(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list connected accounts: %w", err)
	}

	synced := 0
	for _, profile := range profiles {
		if err := ctx.Err(); err != nil {
			return synced, err
		}

		if _, err := m.SyncAccount(ctx, profile.ID); err != nil {
			log.Error().Err(err).Str("account_id", profile.ID).Msg("linkedin sync failed")
			continue
		}
		synced++
	}

	return synced, nil
}
