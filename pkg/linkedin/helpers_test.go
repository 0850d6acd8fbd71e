package linkedin

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"golang.org/x/oauth2"
)

const (
	testClientID     = "client-id"
	testClientSecret = "client-secret"
	testRedirectURI  = "https://app.example.com/auth/linkedin/callback"
	testAccountID    = "account-1"
)

var testNow = time.Date(2024, time.March, 4, 9, 0, 0, 0, time.UTC)

// fakeProvider serves the token endpoint and the REST API.
type fakeProvider struct {
	mu         sync.Mutex
	events     []string
	tokenCalls int
	apiCalls   int
	apiTokens  []string
	tokenForms []map[string]string

	tokenHandler func(w http.ResponseWriter, r *http.Request)
	apiHandler   func(w http.ResponseWriter, r *http.Request, call int)

	srv *httptest.Server
}

func newFakeProvider(t *testing.T) *fakeProvider {
	t.Helper()

	p := &fakeProvider{}

	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/v2/accessToken", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		form := map[string]string{}
		for key := range r.PostForm {
			form[key] = r.PostForm.Get(key)
		}

		p.mu.Lock()
		p.tokenCalls++
		p.events = append(p.events, "token")
		p.tokenForms = append(p.tokenForms, form)
		handler := p.tokenHandler
		p.mu.Unlock()

		if handler == nil {
			http.Error(w, "unexpected token call", http.StatusInternalServerError)
			return
		}
		handler(w, r)
	})
	mux.HandleFunc("/v2/", func(w http.ResponseWriter, r *http.Request) {
		p.mu.Lock()
		p.apiCalls++
		call := p.apiCalls
		p.events = append(p.events, "api")
		p.apiTokens = append(p.apiTokens, strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer "))
		handler := p.apiHandler
		p.mu.Unlock()

		if handler == nil {
			http.Error(w, "unexpected api call", http.StatusInternalServerError)
			return
		}
		handler(w, r, call)
	})

	p.srv = httptest.NewServer(mux)
	t.Cleanup(p.srv.Close)

	return p
}

func (p *fakeProvider) endpoint() oauth2.Endpoint {
	return oauth2.Endpoint{
		AuthURL:   p.srv.URL + "/oauth/v2/authorization",
		TokenURL:  p.srv.URL + "/oauth/v2/accessToken",
		AuthStyle: oauth2.AuthStyleInParams,
	}
}

func (p *fakeProvider) counts() (tokenCalls, apiCalls int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.tokenCalls, p.apiCalls
}

func (p *fakeProvider) seenTokens() []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	return append([]string(nil), p.apiTokens...)
}

func (p *fakeProvider) forms() []map[string]string {
	p.mu.Lock()
	defer p.mu.Unlock()

	return append([]map[string]string(nil), p.tokenForms...)
}

func (p *fakeProvider) seenEvents() []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	return append([]string(nil), p.events...)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func issueTokens(accessToken, refreshToken string) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		body := map[string]any{
			"access_token": accessToken,
			"expires_in":   3600,
			"token_type":   "Bearer",
		}
		if refreshToken != "" {
			body["refresh_token"] = refreshToken
		}
		writeJSON(w, http.StatusOK, body)
	}
}

// recordingClock returns immediately from After and remembers every requested sleep.
type recordingClock struct {
	clockwork.FakeClock

	mu     sync.Mutex
	sleeps []time.Duration
}

func newRecordingClock() *recordingClock {
	return &recordingClock{FakeClock: clockwork.NewFakeClockAt(testNow)}
}

func (c *recordingClock) After(d time.Duration) <-chan time.Time {
	c.mu.Lock()
	c.sleeps = append(c.sleeps, d)
	c.mu.Unlock()

	ch := make(chan time.Time, 1)
	ch <- c.Now().Add(d)
	return ch
}

func (c *recordingClock) recorded() []time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()

	return append([]time.Duration(nil), c.sleeps...)
}

type memTokenStore struct {
	mu     sync.Mutex
	tokens map[string]TokenSet
	puts   int
}

func newMemTokenStore() *memTokenStore {
	return &memTokenStore{tokens: map[string]TokenSet{}}
}

func (s *memTokenStore) GetTokens(_ context.Context, accountID string) (*TokenSet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tokens, ok := s.tokens[accountID]
	if !ok {
		return nil, nil
	}
	return &tokens, nil
}

func (s *memTokenStore) PutTokens(_ context.Context, accountID string, tokens TokenSet) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tokens[accountID] = tokens
	s.puts++
	return nil
}

func (s *memTokenStore) DeleteTokens(_ context.Context, accountID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.tokens, accountID)
	return nil
}

func (s *memTokenStore) get(accountID string) TokenSet {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.tokens[accountID]
}

func staticAccount(accountID string) AccountResolver {
	return AccountResolverFunc(func(context.Context) (string, error) {
		return accountID, nil
	})
}

func newTestClient(p *fakeProvider, clock clockwork.Clock, store TokenStore, options ...ClientOption) *Client {
	base := []ClientOption{
		WithClientID(testClientID),
		WithClientSecret(testClientSecret),
		WithRedirectURI(testRedirectURI),
		WithEndpoint(p.endpoint()),
		WithAPIBaseURL(p.srv.URL + "/v2"),
		WithHTTPClient(p.srv.Client()),
		WithClock(clock),
		WithTokenStore(store),
		WithAccountResolver(staticAccount(testAccountID)),
	}

	return NewClient(append(base, options...)...)
}
