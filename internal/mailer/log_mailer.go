package mailer

import (
	"context"

	"github.com/google/uuid"
	"github.com/networknudge/networknudge/internal/domain"
	"github.com/rs/zerolog/log"
)

// LogMailer writes digests to the log. Used when no Resend key is configured.
type LogMailer struct{}

func (LogMailer) Send(ctx context.Context, email domain.Email) (string, error) {
	id := uuid.NewString()

	log.Info().
		Str("message_id", id).
		Str("to", email.To).
		Str("subject", email.Subject).
		Msg("digest email not delivered, no mail provider configured")

	log.Debug().Str("message_id", id).Msg(email.Text)

	return id, nil
}
