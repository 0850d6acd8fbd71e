package managers

import (
	"context"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/networknudge/networknudge/internal/domain"
	"github.com/rs/zerolog/log"
)

const pendingNudgeWindow = 7 * 24 * time.Hour

type nudgeManager struct {
	connections domain.ConnectionRepository
	nudges      domain.NudgeRepository
	limits      domain.NudgeLimitResolver
	clock       clockwork.Clock
}

type NudgeManagerDependencies struct {
	Connections domain.ConnectionRepository
	Nudges      domain.NudgeRepository
	Limits      domain.NudgeLimitResolver
	Clock       clockwork.Clock
}

func NewNudgeManager(deps NudgeManagerDependencies) domain.NudgeManager {
	clock := deps.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	return &nudgeManager{
		connections: deps.Connections,
		nudges:      deps.Nudges,
		limits:      deps.Limits,
		clock:       clock,
	}
}

func (m *nudgeManager) GenerateNudges(ctx context.Context, userID string) (domain.GenerateNudgesResult, error) {
	if userID == "" {
		return domain.GenerateNudgesResult{}, fmt.Errorf("user ID is required: %w", domain.ErrInvalidInput)
	}

	connections, err := m.connections.ListRecentlyActive(ctx, userID, domain.NudgeCandidates)
	if err != nil {
		return domain.GenerateNudgesResult{}, fmt.Errorf("failed to list connections: %w", err)
	}

	if len(connections) == 0 {
		return domain.GenerateNudgesResult{Message: domain.NoConnectionsFound}, nil
	}

	limit, err := m.limits.NudgesLimit(ctx, userID)
	if err != nil {
		return domain.GenerateNudgesResult{}, fmt.Errorf("failed to resolve nudges limit: %w", err)
	}

	now := m.clock.Now()

	existing, err := m.nudges.CountPendingSince(ctx, userID, now.Add(-pendingNudgeWindow))
	if err != nil {
		return domain.GenerateNudgesResult{}, fmt.Errorf("failed to count pending nudges: %w", err)
	}

	toCreate := min(limit-existing, len(connections))
	if toCreate <= 0 {
		return domain.GenerateNudgesResult{Message: domain.NudgeLimitMessage}, nil
	}

	created := 0
	for _, connection := range connections[:toCreate] {
		nudgeType := connection.LastActivityType
		if nudgeType == "" {
			nudgeType = domain.NudgeTypeGeneral
		}

		err := m.nudges.CreateNudge(ctx, domain.Nudge{
			UserID:              userID,
			ConnectionID:        connection.ID,
			Type:                nudgeType,
			ActivityDescription: connection.LastActivityContent,
			Suggestions:         domain.GenerateSuggestions(nudgeType, connection.Name),
			Status:              domain.NudgeStatusPending,
			ScheduledFor:        now,
		})
		if err != nil {
			log.Warn().
				Err(err).
				Str("user_id", userID).
				Str("connection_id", connection.ID).
				Msg("failed to create nudge, skipping")
			continue
		}
		created++
	}

	log.Info().Str("user_id", userID).Int("nudges_created", created).Msg("nudges generated")

	return domain.GenerateNudgesResult{Message: domain.NudgesGenerated, NudgesCreated: created}, nil
}
