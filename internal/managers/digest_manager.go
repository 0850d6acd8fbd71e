package managers

import (
	"context"
	"fmt"

	"github.com/jonboulle/clockwork"
	"github.com/networknudge/networknudge/internal/domain"
	"github.com/rs/zerolog/log"
)

const (
	noDigestRecipients = "No users with email notifications enabled"
	digestsProcessed   = "Email notifications processed"
)

type digestManager struct {
	profiles    domain.ProfileRepository
	nudges      domain.NudgeRepository
	mailer      domain.Mailer
	fromAddress string
	appURL      string
	clock       clockwork.Clock
}

type DigestManagerDependencies struct {
	Profiles    domain.ProfileRepository
	Nudges      domain.NudgeRepository
	Mailer      domain.Mailer
	FromAddress string
	AppURL      string
	Clock       clockwork.Clock
}

func NewDigestManager(deps DigestManagerDependencies) domain.DigestManager {
	clock := deps.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	return &digestManager{
		profiles:    deps.Profiles,
		nudges:      deps.Nudges,
		mailer:      deps.Mailer,
		fromAddress: deps.FromAddress,
		appURL:      deps.AppURL,
		clock:       clock,
	}
}

func (m *digestManager) SendDigests(ctx context.Context) (domain.DigestResult, error) {
	profiles, err := m.profiles.ListDigestRecipients(ctx)
	if err != nil {
		return domain.DigestResult{}, fmt.Errorf("failed to list digest recipients: %w", err)
	}

	if len(profiles) == 0 {
		return domain.DigestResult{Message: noDigestRecipients}, nil
	}

	now := m.clock.Now()
	sent := 0

	for _, profile := range profiles {
		if err := ctx.Err(); err != nil {
			return domain.DigestResult{Message: digestsProcessed, EmailsSent: sent}, err
		}

		if !domain.ShouldSendDigest(profile.NotificationFrequency, profile.Timezone, now) {
			continue
		}

		if profile.Email == "" {
			continue
		}

		entries, err := m.nudges.ListUnsentPending(ctx, profile.ID, domain.DigestMaxNudges)
		if err != nil {
			log.Error().Err(err).Str("user_id", profile.ID).Msg("failed to load pending nudges")
			continue
		}

		if len(entries) == 0 {
			continue
		}

		subject, body := domain.RenderDigest(profile, entries, m.appURL)

		messageID, err := m.mailer.Send(ctx, domain.Email{
			From:    m.fromAddress,
			To:      profile.Email,
			Subject: subject,
			Text:    body,
		})
		if err != nil {
			log.Error().Err(err).Str("user_id", profile.ID).Msg("failed to send digest")
			continue
		}

		nudgeIDs := make([]string, 0, len(entries))
		for _, entry := range entries {
			nudgeIDs = append(nudgeIDs, entry.Nudge.ID)
		}

		if err := m.nudges.MarkSent(ctx, nudgeIDs, now); err != nil {
			log.Error().
				Err(err).
				Str("user_id", profile.ID).
				Str("message_id", messageID).
				Int("nudges", len(entries)).
				Msg("digest sent but nudges not marked sent, next run will send them again")
			continue
		}

		log.Debug().
			Str("user_id", profile.ID).
			Str("message_id", messageID).
			Int("nudges", len(entries)).
			Msg("digest sent")

		sent++
	}

	return domain.DigestResult{Message: digestsProcessed, EmailsSent: sent}, nil
}
