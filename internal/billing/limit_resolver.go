package billing

import (
	"context"
	"fmt"

	"github.com/networknudge/networknudge/internal/domain"
	"github.com/rs/zerolog/log"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/subscription"
)

type subscriptionLookup func(id string) (*stripe.Subscription, error)

// LimitResolver reads the nudge allowance from the stored subscription and, when a
// Stripe key is configured, confirms paid plans are still active.
type LimitResolver struct {
	subscriptions domain.SubscriptionRepository
	lookup        subscriptionLookup
}

type LimitResolverDependencies struct {
	Subscriptions   domain.SubscriptionRepository
	StripeSecretKey string
}

func NewLimitResolver(deps LimitResolverDependencies) *LimitResolver {
	resolver := &LimitResolver{subscriptions: deps.Subscriptions}

	if deps.StripeSecretKey != "" {
		stripe.Key = deps.StripeSecretKey
		resolver.lookup = func(id string) (*stripe.Subscription, error) {
			return subscription.Get(id, nil)
		}
	}

	return resolver
}

func (r *LimitResolver) NudgesLimit(ctx context.Context, userID string) (int, error) {
	row, err := r.subscriptions.GetSubscription(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to get subscription: %w", err)
	}

	if row == nil || row.NudgesLimit <= 0 {
		return domain.DefaultNudgesLimit, nil
	}

	if row.StripeSubscriptionID == "" || r.lookup == nil {
		return row.NudgesLimit, nil
	}

	remote, err := r.lookup(row.StripeSubscriptionID)
	if err != nil {
		log.Warn().
			Err(err).
			Str("user_id", userID).
			Msg("failed to check stripe subscription, using stored limit")
		return row.NudgesLimit, nil
	}

	switch remote.Status {
	case stripe.SubscriptionStatusActive, stripe.SubscriptionStatusTrialing:
		return row.NudgesLimit, nil
	default:
		log.Debug().
			Str("user_id", userID).
			Str("status", string(remote.Status)).
			Msg("stripe subscription inactive, using default limit")
		return domain.DefaultNudgesLimit, nil
	}
}
