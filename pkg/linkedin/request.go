package linkedin

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"
)

const defaultRefreshTimeout = 30 * time.Second

// GetJSON performs an authenticated GET and decodes the response into out.
func (c *Client) GetJSON(ctx context.Context, endpoint string, out any) error {
	body, err := c.Get(ctx, endpoint)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", endpoint, err)
	}

	return nil
}

// Get performs an authenticated GET against the REST API for the current account.
//
// Tokens expiring within the refresh threshold are refreshed before the call. A 401 triggers
// at most one refresh and retry, and rate limited responses are retried while the retry
// budget lasts, waiting for the provider's reset period between attempts.
func (c *Client) Get(ctx context.Context, endpoint string) (json.RawMessage, error) {
	accountID, err := c.currentAccountID(ctx)
	if err != nil {
		return nil, err
	}

	tokens, err := c.storedTokens(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if tokens.ExpiringWithin(c.clock.Now(), c.config.RefreshThreshold) {
		log.Debug().
			Str("account_id", accountID).
			Time("expires_at", tokens.Expiry()).
			Msg("linkedin token expiring, refreshing before request")

		tokens, err = c.refreshStored(ctx, accountID, tokens.AccessToken)
		if err != nil {
			return nil, err
		}
	}

	url := strings.TrimSuffix(c.config.APIBaseURL, "/") + endpoint
	budget := c.config.RetryBudget
	refreshed := false

	for attempt := 1; ; attempt++ {
		if err := c.takeQuota(ctx, accountID); err != nil {
			return nil, err
		}

		resp, err := c.doGet(ctx, url, tokens.AccessToken)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrAPIRequest, endpoint, err)
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("%w: failed to read %s response: %w", ErrAPIRequest, endpoint, err)
		}

		switch {
		case resp.StatusCode == http.StatusTooManyRequests:
			wait := c.rateLimitReset(resp)
			if budget <= 0 {
				return nil, &RateLimitError{Attempts: attempt, RetryAfter: wait}
			}

			log.Warn().
				Str("account_id", accountID).
				Str("endpoint", endpoint).
				Dur("retry_after", wait).
				Msg("linkedin rate limited, retrying after reset")

			if err := c.sleep(ctx, wait); err != nil {
				return nil, err
			}
			budget--

		case resp.StatusCode == http.StatusUnauthorized:
			if refreshed || tokens.RefreshToken == "" {
				return nil, &Error{
					Kind:       ErrReauthorizationRequired,
					StatusCode: resp.StatusCode,
					Status:     statusText(resp),
					Endpoint:   endpoint,
				}
			}

			tokens, err = c.refreshStored(ctx, accountID, tokens.AccessToken)
			if err != nil {
				return nil, err
			}
			refreshed = true

		case resp.StatusCode < 200 || resp.StatusCode >= 300:
			apiErr := newStatusError(ErrAPIRequest, resp, endpoint)
			apiErr.Message = gjson.GetBytes(body, "message").String()
			return nil, apiErr

		default:
			if !gjson.ValidBytes(body) {
				return nil, &Error{
					Kind:       ErrAPIRequest,
					StatusCode: resp.StatusCode,
					Status:     statusText(resp),
					Message:    "response is not valid JSON",
					Endpoint:   endpoint,
				}
			}
			return json.RawMessage(body), nil
		}
	}
}

func (c *Client) doGet(ctx context.Context, url, accessToken string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/json")
	if c.config.UserAgent != "" {
		req.Header.Set("User-Agent", c.config.UserAgent)
	}

	return c.httpClient.Do(req)
}

func (c *Client) currentAccountID(ctx context.Context) (string, error) {
	if c.config.AccountResolver == nil {
		return "", ErrNoAccount
	}

	accountID, err := c.config.AccountResolver.CurrentAccountID(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrNoAccount, err)
	}

	if accountID == "" {
		return "", ErrNoAccount
	}

	return accountID, nil
}

func (c *Client) storedTokens(ctx context.Context, accountID string) (TokenSet, error) {
	if c.config.TokenStore == nil {
		return TokenSet{}, fmt.Errorf("%w: no token store configured", ErrConfiguration)
	}

	tokens, err := c.config.TokenStore.GetTokens(ctx, accountID)
	if err != nil {
		return TokenSet{}, fmt.Errorf("failed to load linkedin tokens: %w", err)
	}

	if tokens == nil || tokens.AccessToken == "" {
		return TokenSet{}, &Error{Kind: ErrReauthorizationRequired, Message: "account has no linkedin connection"}
	}

	return *tokens, nil
}

// refreshStored refreshes and persists the account's tokens. Concurrent callers for the
// same account share one refresh, and a token already replaced by a peer is reused.
//
// The shared refresh runs on a detached context bounded by the client timeout. A caller
// whose context ends stops waiting but does not cancel the refresh for the others.
func (c *Client) refreshStored(ctx context.Context, accountID, staleAccessToken string) (TokenSet, error) {
	results := c.refreshes.DoChan(accountID, func() (any, error) {
		flightCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.refreshTimeout())
		defer cancel()

		return c.refreshAndStore(flightCtx, accountID, staleAccessToken)
	})

	select {
	case <-ctx.Done():
		return TokenSet{}, ctx.Err()
	case result := <-results:
		if result.Err != nil {
			return TokenSet{}, result.Err
		}
		return result.Val.(TokenSet), nil
	}
}

func (c *Client) refreshAndStore(ctx context.Context, accountID, staleAccessToken string) (TokenSet, error) {
	current, err := c.storedTokens(ctx, accountID)
	if err != nil {
		return TokenSet{}, err
	}

	if current.AccessToken != staleAccessToken && !current.ExpiringWithin(c.clock.Now(), c.config.RefreshThreshold) {
		return current, nil
	}

	if current.RefreshToken == "" {
		return TokenSet{}, &Error{Kind: ErrReauthorizationRequired, Message: "no refresh token stored"}
	}

	tokens, err := c.RefreshToken(ctx, current.RefreshToken)
	if err != nil {
		return TokenSet{}, err
	}

	if err := c.config.TokenStore.PutTokens(ctx, accountID, tokens); err != nil {
		return TokenSet{}, fmt.Errorf("failed to store refreshed linkedin tokens: %w", err)
	}

	log.Debug().
		Str("account_id", accountID).
		Time("expires_at", tokens.Expiry()).
		Msg("linkedin token refreshed")

	return tokens, nil
}

func (c *Client) refreshTimeout() time.Duration {
	if c.config.Timeout > 0 {
		return c.config.Timeout
	}
	return defaultRefreshTimeout
}

func (c *Client) takeQuota(ctx context.Context, accountID string) error {
	if c.config.Quota == nil {
		return nil
	}

	_, _, reset, ok, err := c.config.Quota.Take(ctx, accountID)
	if err != nil {
		return fmt.Errorf("failed to take linkedin quota: %w", err)
	}

	if !ok {
		wait := time.Unix(0, int64(reset)).Sub(c.clock.Now())
		if wait < 0 {
			wait = 0
		}
		return &RateLimitError{RetryAfter: wait, Local: true}
	}

	return nil
}

// rateLimitReset reads the provider reset header, falling back to the configured default.
func (c *Client) rateLimitReset(resp *http.Response) time.Duration {
	seconds, err := strconv.Atoi(strings.TrimSpace(resp.Header.Get(RateLimitResetHeader)))
	if err != nil || seconds < 0 {
		return c.config.RateLimitReset
	}

	return time.Duration(seconds) * time.Second
}

func (c *Client) sleep(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-c.clock.After(d):
		return nil
	}
}
