package domain

import (
	"context"
	"time"

	"github.com/networknudge/networknudge/pkg/linkedin"
)

type LinkedInStatus struct {
	Connected bool       `json:"connected"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

// LinkedInAccountManager runs the connect flow of a user's LinkedIn account.
type LinkedInAccountManager interface {
	BeginConnect(ctx context.Context, accountID string) (linkedin.AuthorizationRequest, error)
	CompleteConnect(ctx context.Context, accountID, code, state string) error
	Disconnect(ctx context.Context, accountID string) error
	Status(ctx context.Context, accountID string) (LinkedInStatus, error)
}
