package linkedin

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
)

// AuthorizationRequest describes one attempt to send a user through the consent screen.
type AuthorizationRequest struct {
	ClientID    string `json:"client_id"`
	RedirectURI string `json:"redirect_uri"`
	Scope       string `json:"scope"`
	State       string `json:"state"`
	URL         string `json:"url"`
}

// AuthorizationURL builds the consent URL with a fresh random state.
// The caller must persist the state and check it when the provider redirects back.
func (c *Client) AuthorizationURL() AuthorizationRequest {
	state := newState()

	return AuthorizationRequest{
		ClientID:    c.config.ClientID,
		RedirectURI: c.config.RedirectURI,
		Scope:       strings.Join(c.config.Scopes, " "),
		State:       state,
		URL:         c.oauth.AuthCodeURL(state),
	}
}

func newState() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// ExchangeCode trades an authorization code for a TokenSet.
func (c *Client) ExchangeCode(ctx context.Context, code string) (TokenSet, error) {
	if c.config.ClientSecret == "" {
		return TokenSet{}, ErrConfiguration
	}

	if code == "" {
		return TokenSet{}, &Error{Kind: ErrTokenExchange, Message: "authorization code is required"}
	}

	issuedAt := c.clock.Now()

	token, err := c.oauth.Exchange(c.oauthContext(ctx), code)
	if err != nil {
		return TokenSet{}, tokenEndpointError(ErrTokenExchange, err)
	}

	if token.RefreshToken == "" {
		return TokenSet{}, &Error{Kind: ErrTokenExchange, Message: "provider response is missing refresh_token"}
	}

	return c.tokenSetFrom(token, issuedAt), nil
}

// RefreshToken trades a refresh token for a new TokenSet. The given refresh token is kept
// when the provider does not rotate it.
func (c *Client) RefreshToken(ctx context.Context, refreshToken string) (TokenSet, error) {
	if c.config.ClientSecret == "" {
		return TokenSet{}, ErrConfiguration
	}

	if refreshToken == "" {
		return TokenSet{}, &Error{Kind: ErrTokenRefresh, Message: "refresh token is required"}
	}

	issuedAt := c.clock.Now()

	source := c.oauth.TokenSource(c.oauthContext(ctx), &oauth2.Token{RefreshToken: refreshToken})

	token, err := source.Token()
	if err != nil {
		return TokenSet{}, tokenEndpointError(ErrTokenRefresh, err)
	}

	tokens := c.tokenSetFrom(token, issuedAt)
	if tokens.RefreshToken == "" {
		tokens.RefreshToken = refreshToken
	}

	return tokens, nil
}

func (c *Client) tokenSetFrom(token *oauth2.Token, issuedAt time.Time) TokenSet {
	expiresAt := token.Expiry
	if lifetime, ok := expiresIn(token); ok {
		expiresAt = issuedAt.Add(lifetime)
	}

	tokens := TokenSet{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		TokenType:    token.Type(),
	}

	if !expiresAt.IsZero() {
		tokens.ExpiresAt = expiresAt.UnixMilli()
	}

	return tokens
}

// expiresIn reads the raw lifetime so expiry is computed against the client clock.
func expiresIn(token *oauth2.Token) (time.Duration, bool) {
	var seconds int64

	switch v := token.Extra("expires_in").(type) {
	case float64:
		seconds = int64(v)
	case int64:
		seconds = v
	case int:
		seconds = int64(v)
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, false
		}
		seconds = n
	case string:
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, false
		}
		seconds = n
	default:
		return 0, false
	}

	if seconds <= 0 {
		return 0, false
	}

	return time.Duration(seconds) * time.Second, true
}

func tokenEndpointError(kind error, err error) error {
	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) && retrieveErr.Response != nil {
		apiErr := newStatusError(kind, retrieveErr.Response, "")
		apiErr.Message = retrieveErr.ErrorDescription
		if apiErr.Message == "" {
			apiErr.Message = retrieveErr.ErrorCode
		}
		return apiErr
	}

	return fmt.Errorf("%w: %w", kind, err)
}
