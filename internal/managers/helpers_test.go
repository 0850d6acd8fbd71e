package managers

import (
	"context"
	"errors"
	"sync"

	"github.com/networknudge/networknudge/internal/domain"
	"github.com/networknudge/networknudge/pkg/linkedin"
)

type fakeLinkedInClient struct {
	authRequest  linkedin.AuthorizationRequest
	exchanged    linkedin.TokenSet
	exchangeErr  error
	connections  []linkedin.ListResult[linkedin.Connection]
	activities   linkedin.ListResult[linkedin.Activity]
	updates      linkedin.ListResult[linkedin.Activity]
	pages        []linkedin.Page
	accountSeen  []string
	exchangeCode string
}

func (c *fakeLinkedInClient) AuthorizationURL() linkedin.AuthorizationRequest {
	return c.authRequest
}

func (c *fakeLinkedInClient) ExchangeCode(ctx context.Context, code string) (linkedin.TokenSet, error) {
	c.exchangeCode = code
	return c.exchanged, c.exchangeErr
}

func (c *fakeLinkedInClient) RefreshToken(ctx context.Context, refreshToken string) (linkedin.TokenSet, error) {
	return linkedin.TokenSet{}, errors.New("not used")
}

func (c *fakeLinkedInClient) Profile(ctx context.Context) (linkedin.Profile, error) {
	return linkedin.Profile{}, nil
}

func (c *fakeLinkedInClient) Connections(ctx context.Context, page linkedin.Page) linkedin.ListResult[linkedin.Connection] {
	accountID, _ := domain.GetAccountID(ctx)
	c.accountSeen = append(c.accountSeen, accountID)
	c.pages = append(c.pages, page)

	index := len(c.pages) - 1
	if index >= len(c.connections) {
		return linkedin.Ok([]linkedin.Connection{})
	}
	return c.connections[index]
}

func (c *fakeLinkedInClient) Activities(ctx context.Context, page linkedin.Page) linkedin.ListResult[linkedin.Activity] {
	return c.activities
}

func (c *fakeLinkedInClient) ProfileUpdates(ctx context.Context, page linkedin.Page) linkedin.ListResult[linkedin.Activity] {
	return c.updates
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []domain.Email
	err  error
}

func (m *fakeMailer) Send(ctx context.Context, email domain.Email) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return "", m.err
	}
	m.sent = append(m.sent, email)
	return "msg-id", nil
}

type fixedLimit int

func (l fixedLimit) NudgesLimit(ctx context.Context, userID string) (int, error) {
	return int(l), nil
}
