package linkedin

import (
	"net/http"
	"time"

	"github.com/jonboulle/clockwork"
	"golang.org/x/oauth2"
	oauthlinkedin "golang.org/x/oauth2/linkedin"
)

const (
	DefaultAPIBaseURL       = "https://api.linkedin.com/v2"
	DefaultRetryBudget      = 1
	DefaultRefreshThreshold = 5 * time.Minute
	DefaultRateLimitReset   = 60 * time.Second
	DefaultPageSize         = 50

	// RateLimitResetHeader carries the number of seconds until the provider accepts calls again.
	RateLimitResetHeader = "X-Linkedin-Ratelimit-Reset"
)

var DefaultScopes = []string{"openid", "profile", "email"}

// ClientConfig holds the configuration for the LinkedIn client
type ClientConfig struct {
	ClientID     string
	ClientSecret string // Only set in trusted server-side processes
	RedirectURI  string
	Scopes       []string

	Endpoint   oauth2.Endpoint
	APIBaseURL string

	HTTPClient *http.Client
	Timeout    time.Duration
	UserAgent  string
	Clock      clockwork.Clock

	TokenStore      TokenStore
	AccountResolver AccountResolver
	Quota           Quota

	RetryBudget      int
	RefreshThreshold time.Duration
	RateLimitReset   time.Duration
}

// DefaultConfig returns the default configuration
func DefaultConfig() *ClientConfig {
	endpoint := oauthlinkedin.Endpoint
	endpoint.AuthStyle = oauth2.AuthStyleInParams

	return &ClientConfig{
		Scopes:           DefaultScopes,
		Endpoint:         endpoint,
		APIBaseURL:       DefaultAPIBaseURL,
		Timeout:          30 * time.Second,
		UserAgent:        "networknudge/1.0",
		Clock:            clockwork.NewRealClock(),
		RetryBudget:      DefaultRetryBudget,
		RefreshThreshold: DefaultRefreshThreshold,
		RateLimitReset:   DefaultRateLimitReset,
	}
}

// ClientOption is a function that modifies ClientConfig
type ClientOption func(*ClientConfig)

// WithClientID sets the OAuth application client ID
func WithClientID(clientID string) ClientOption {
	return func(c *ClientConfig) {
		c.ClientID = clientID
	}
}

// WithClientSecret sets the confidential OAuth client secret
func WithClientSecret(clientSecret string) ClientOption {
	return func(c *ClientConfig) {
		c.ClientSecret = clientSecret
	}
}

// WithRedirectURI sets the OAuth callback URL registered with the provider
func WithRedirectURI(redirectURI string) ClientOption {
	return func(c *ClientConfig) {
		c.RedirectURI = redirectURI
	}
}

// WithScopes overrides the requested OAuth scopes
func WithScopes(scopes ...string) ClientOption {
	return func(c *ClientConfig) {
		c.Scopes = scopes
	}
}

// WithEndpoint overrides the authorization and token endpoints
func WithEndpoint(endpoint oauth2.Endpoint) ClientOption {
	return func(c *ClientConfig) {
		c.Endpoint = endpoint
	}
}

// WithAPIBaseURL sets the REST API base URL
func WithAPIBaseURL(baseURL string) ClientOption {
	return func(c *ClientConfig) {
		c.APIBaseURL = baseURL
	}
}

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *ClientConfig) {
		c.HTTPClient = client
	}
}

// WithTimeout sets the request timeout used when no HTTP client is provided
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *ClientConfig) {
		c.Timeout = timeout
	}
}

// WithUserAgent sets the user agent string
func WithUserAgent(userAgent string) ClientOption {
	return func(c *ClientConfig) {
		c.UserAgent = userAgent
	}
}

// WithClock sets the clock used for expiry checks and rate limit backoff
func WithClock(clock clockwork.Clock) ClientOption {
	return func(c *ClientConfig) {
		c.Clock = clock
	}
}

// WithTokenStore sets the store holding one TokenSet per account
func WithTokenStore(store TokenStore) ClientOption {
	return func(c *ClientConfig) {
		c.TokenStore = store
	}
}

// WithAccountResolver sets how the current account is found for a request
func WithAccountResolver(resolver AccountResolver) ClientOption {
	return func(c *ClientConfig) {
		c.AccountResolver = resolver
	}
}

// WithQuota enables a local per-account request quota
func WithQuota(quota Quota) ClientOption {
	return func(c *ClientConfig) {
		c.Quota = quota
	}
}

// WithRetryBudget sets how many rate limited responses are retried per request
func WithRetryBudget(retries int) ClientOption {
	return func(c *ClientConfig) {
		c.RetryBudget = retries
	}
}

// WithRefreshThreshold sets how close to expiry a token is refreshed proactively
func WithRefreshThreshold(threshold time.Duration) ClientOption {
	return func(c *ClientConfig) {
		c.RefreshThreshold = threshold
	}
}

// WithRateLimitReset sets the backoff used when the provider sends no usable reset header
func WithRateLimitReset(reset time.Duration) ClientOption {
	return func(c *ClientConfig) {
		c.RateLimitReset = reset
	}
}
