package domain

import (
	"context"
	"time"
)

type NotificationFrequency string

const (
	NotificationFrequencyDaily    NotificationFrequency = "daily"
	NotificationFrequencyWeekly   NotificationFrequency = "weekly"
	NotificationFrequencyBiweekly NotificationFrequency = "biweekly"
	NotificationFrequencyNever    NotificationFrequency = "never"
)

type Profile struct {
	ID                    string
	FullName              string
	Email                 string
	LinkedInConnected     bool
	NotificationEmail     bool
	NotificationFrequency NotificationFrequency
	Timezone              string
	CreatedAt             time.Time
}

type ProfileRepository interface {
	GetProfile(ctx context.Context, userID string) (Profile, error)
	SetLinkedInConnected(ctx context.Context, userID string, connected bool) error
	// ListDigestRecipients returns the profiles with e-mail notifications enabled.
	ListDigestRecipients(ctx context.Context) ([]Profile, error)
	ListLinkedInConnected(ctx context.Context) ([]Profile, error)
}
