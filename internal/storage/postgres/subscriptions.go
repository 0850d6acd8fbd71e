package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/networknudge/networknudge/internal/domain"
)

func (s *Store) GetSubscription(ctx context.Context, userID string) (*domain.Subscription, error) {
	var subscription domain.Subscription

	err := s.pool.QueryRow(ctx, `
		SELECT user_id, plan_type, status, nudges_limit, stripe_subscription_id, current_period_end
		FROM subscriptions WHERE user_id = $1
	`, userID).Scan(
		&subscription.UserID,
		&subscription.PlanType,
		&subscription.Status,
		&subscription.NudgesLimit,
		&subscription.StripeSubscriptionID,
		&subscription.CurrentPeriodEnd,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}

	return &subscription, nil
}
