package domain

import "context"

type Email struct {
	From    string
	To      string
	Subject string
	Text    string
}

type Mailer interface {
	Send(ctx context.Context, email Email) (string, error)
}
