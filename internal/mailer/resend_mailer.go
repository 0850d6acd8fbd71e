package mailer

import (
	"context"
	"fmt"

	"github.com/networknudge/networknudge/internal/domain"
	"github.com/resend/resend-go/v2"
)

type ResendMailer struct {
	client *resend.Client
}

func NewResendMailer(apiKey string) *ResendMailer {
	return &ResendMailer{client: resend.NewClient(apiKey)}
}

func (m *ResendMailer) Send(ctx context.Context, email domain.Email) (string, error) {
	if email.To == "" || email.From == "" {
		return "", fmt.Errorf("sender and recipient are required: %w", domain.ErrInvalidInput)
	}

	request := &resend.SendEmailRequest{
		From:    email.From,
		To:      []string{email.To},
		Subject: email.Subject,
		Text:    email.Text,
	}

	response, err := m.client.Emails.SendWithContext(ctx, request)
	if err != nil {
		return "", fmt.Errorf("failed to send email via resend: %w", err)
	}

	return response.Id, nil
}
