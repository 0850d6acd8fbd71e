// Package linkedin is a LinkedIn OAuth 2.0 and REST client.
//
// It obtains, refreshes and applies per-account credentials and shields callers from
// token expiry and rate limiting with a bounded amount of automatic recovery.
package linkedin

import (
	"context"
	"net/http"

	"github.com/jonboulle/clockwork"
	"golang.org/x/oauth2"
	"golang.org/x/sync/singleflight"
)

// ClientInterface is the part of the client used by account, sync and nudge flows
type ClientInterface interface {
	AuthorizationURL() AuthorizationRequest
	ExchangeCode(ctx context.Context, code string) (TokenSet, error)
	RefreshToken(ctx context.Context, refreshToken string) (TokenSet, error)

	Profile(ctx context.Context) (Profile, error)
	Connections(ctx context.Context, page Page) ListResult[Connection]
	Activities(ctx context.Context, page Page) ListResult[Activity]
	ProfileUpdates(ctx context.Context, page Page) ListResult[Activity]
}

// Client provides access to the LinkedIn OAuth and REST endpoints
type Client struct {
	config     *ClientConfig
	httpClient *http.Client
	clock      clockwork.Clock
	oauth      oauth2.Config

	refreshes singleflight.Group // keyed by account ID
}

// NewClient creates a new LinkedIn client with the given options
func NewClient(options ...ClientOption) *Client {
	config := DefaultConfig()

	for _, option := range options {
		option(config)
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: config.Timeout,
		}
	}

	clock := config.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	return &Client{
		config:     config,
		httpClient: httpClient,
		clock:      clock,
		oauth: oauth2.Config{
			ClientID:     config.ClientID,
			ClientSecret: config.ClientSecret,
			Endpoint:     config.Endpoint,
			RedirectURL:  config.RedirectURI,
			Scopes:       config.Scopes,
		},
	}
}

// Config returns a copy of the client configuration.
func (c *Client) Config() ClientConfig {
	return *c.config
}

// oauthContext makes golang.org/x/oauth2 use the client's HTTP client.
func (c *Client) oauthContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
}
