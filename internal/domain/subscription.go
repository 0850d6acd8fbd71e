package domain

import (
	"context"
	"time"
)

const DefaultNudgesLimit = 5

type Subscription struct {
	UserID               string
	PlanType             string
	Status               string
	NudgesLimit          int
	StripeSubscriptionID string
	CurrentPeriodEnd     *time.Time
}

type SubscriptionRepository interface {
	// GetSubscription returns nil without error when the user has no subscription row.
	GetSubscription(ctx context.Context, userID string) (*Subscription, error)
}

// NudgeLimitResolver decides how many pending nudges a user may hold per week.
type NudgeLimitResolver interface {
	NudgesLimit(ctx context.Context, userID string) (int, error)
}
