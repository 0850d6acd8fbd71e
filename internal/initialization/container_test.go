package initialization

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/networknudge/networknudge/internal/domain"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewContainer_InMemory(t *testing.T) {
	ctx := context.Background()

	container, err := NewContainer(ctx, &Config{
		HTTPAddress:         ":0",
		LinkedInClientID:    "client-1",
		LinkedInRedirectURI: "https://app.example.com/cb",
		LinkedInAPIBaseURL:  "https://api.linkedin.com/v2",
		LinkedInDailyQuota:  100,
	})
	require.NoError(t, err)
	t.Cleanup(func() { container.Close(ctx) })

	request, err := container.LinkedInAccountManager.BeginConnect(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "client-1", request.ClientID)
	assert.NotEmpty(t, request.State)

	result, err := container.NudgeManager.GenerateNudges(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, domain.NoConnectionsFound, result.Message)

	digests, err := container.DigestManager.SendDigests(ctx)
	require.NoError(t, err)
	assert.Zero(t, digests.EmailsSent)

	scheduler, err := container.Scheduler()
	require.NoError(t, err)
	assert.Len(t, scheduler.Entries(), 2)
}

func TestContainer_HTTPServer(t *testing.T) {
	ctx := context.Background()

	config := &Config{
		LinkedInClientID:    "client-1",
		LinkedInRedirectURI: "https://app.example.com/cb",
	}

	container, err := NewContainer(ctx, config)
	require.NoError(t, err)
	t.Cleanup(func() { container.Close(ctx) })

	_, err = container.HTTPServer(ctx)
	require.Error(t, err)

	config.SessionJWTSecret = "secret"
	config.ServiceAPIKey = "key"

	app, err := container.HTTPServer(ctx)
	require.NoError(t, err)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/health", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
