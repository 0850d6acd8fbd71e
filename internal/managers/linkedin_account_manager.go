package managers

import (
	"context"
	"fmt"

	"github.com/networknudge/networknudge/internal/domain"
	"github.com/networknudge/networknudge/pkg/linkedin"
	"github.com/rs/zerolog/log"
)

type linkedInAccountManager struct {
	client     linkedin.ClientInterface
	tokenStore linkedin.TokenStore
	states     domain.StateStore
	profiles   domain.ProfileRepository
}

type LinkedInAccountManagerDependencies struct {
	Client     linkedin.ClientInterface
	TokenStore linkedin.TokenStore
	States     domain.StateStore
	Profiles   domain.ProfileRepository
}

func NewLinkedInAccountManager(deps LinkedInAccountManagerDependencies) domain.LinkedInAccountManager {
	return &linkedInAccountManager{
		client:     deps.Client,
		tokenStore: deps.TokenStore,
		states:     deps.States,
		profiles:   deps.Profiles,
	}
}

func (m *linkedInAccountManager) BeginConnect(ctx context.Context, accountID string) (linkedin.AuthorizationRequest, error) {
	if accountID == "" {
		return linkedin.AuthorizationRequest{}, fmt.Errorf("account ID is required: %w", domain.ErrInvalidInput)
	}

	request := m.client.AuthorizationURL()

	if err := m.states.SaveState(ctx, request.State, accountID, domain.OAuthStateTTL); err != nil {
		return linkedin.AuthorizationRequest{}, fmt.Errorf("failed to save oauth state: %w", err)
	}

	return request, nil
}

func (m *linkedInAccountManager) CompleteConnect(ctx context.Context, accountID, code, state string) error {
	if code == "" {
		return fmt.Errorf("authorization code is required: %w", domain.ErrInvalidInput)
	}

	owner, err := m.states.ConsumeState(ctx, state)
	if err != nil {
		return err
	}

	if owner != accountID {
		log.Warn().
			Str("account_id", accountID).
			Msg("oauth state was issued to a different account")
		return domain.ErrInvalidState
	}

	tokens, err := m.client.ExchangeCode(ctx, code)
	if err != nil {
		return fmt.Errorf("failed to exchange authorization code: %w", err)
	}

	if err := m.tokenStore.PutTokens(ctx, accountID, tokens); err != nil {
		return fmt.Errorf("failed to store linkedin tokens: %w", err)
	}

	if err := m.profiles.SetLinkedInConnected(ctx, accountID, true); err != nil {
		return fmt.Errorf("failed to mark linkedin connected: %w", err)
	}

	log.Info().Str("account_id", accountID).Msg("linkedin account connected")

	return nil
}

func (m *linkedInAccountManager) Disconnect(ctx context.Context, accountID string) error {
	if err := m.tokenStore.DeleteTokens(ctx, accountID); err != nil {
		return fmt.Errorf("failed to revoke linkedin access: %w", err)
	}

	if err := m.profiles.SetLinkedInConnected(ctx, accountID, false); err != nil {
		return fmt.Errorf("failed to mark linkedin disconnected: %w", err)
	}

	log.Info().Str("account_id", accountID).Msg("linkedin account disconnected")

	return nil
}

func (m *linkedInAccountManager) Status(ctx context.Context, accountID string) (domain.LinkedInStatus, error) {
	tokens, err := m.tokenStore.GetTokens(ctx, accountID)
	if err != nil {
		return domain.LinkedInStatus{}, fmt.Errorf("failed to get linkedin tokens: %w", err)
	}

	if tokens == nil || tokens.AccessToken == "" {
		return domain.LinkedInStatus{}, nil
	}

	status := domain.LinkedInStatus{Connected: true}
	if tokens.ExpiresAt != 0 {
		expiresAt := tokens.Expiry().UTC()
		status.ExpiresAt = &expiresAt
	}

	return status, nil
}
