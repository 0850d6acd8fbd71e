package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/networknudge/networknudge/pkg/linkedin"
)

func (s *Store) GetTokens(ctx context.Context, accountID string) (*linkedin.TokenSet, error) {
	var tokensJSON []byte

	err := s.pool.QueryRow(ctx, `
		SELECT linkedin_tokens FROM user_credentials WHERE user_id = $1
	`, accountID).Scan(&tokensJSON)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get linkedin tokens: %w", err)
	}

	if tokensJSON == nil {
		return nil, nil
	}

	var tokens linkedin.TokenSet
	if err := json.Unmarshal(tokensJSON, &tokens); err != nil {
		return nil, fmt.Errorf("failed to unmarshal linkedin tokens: %w", err)
	}

	return &tokens, nil
}

func (s *Store) PutTokens(ctx context.Context, accountID string, tokens linkedin.TokenSet) error {
	tokensJSON, err := json.Marshal(tokens)
	if err != nil {
		return fmt.Errorf("failed to marshal linkedin tokens: %w", err)
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO user_credentials (user_id, linkedin_tokens, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (user_id) DO UPDATE SET linkedin_tokens = EXCLUDED.linkedin_tokens, updated_at = NOW()
	`, accountID, tokensJSON)
	if err != nil {
		return fmt.Errorf("failed to store linkedin tokens: %w", err)
	}

	return nil
}

// DeleteTokens nulls the account's tokens and keeps the credentials row.
func (s *Store) DeleteTokens(ctx context.Context, accountID string) error {
	_, err := s.pool.Exec(ctx, `
		UPDATE user_credentials SET linkedin_tokens = NULL, updated_at = NOW() WHERE user_id = $1
	`, accountID)
	if err != nil {
		return fmt.Errorf("failed to revoke linkedin tokens: %w", err)
	}

	return nil
}
