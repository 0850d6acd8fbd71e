package initialization

import (
	"context"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/networknudge/networknudge/internal/auth"
	"github.com/networknudge/networknudge/internal/billing"
	"github.com/networknudge/networknudge/internal/controllers"
	"github.com/networknudge/networknudge/internal/domain"
	"github.com/networknudge/networknudge/internal/mailer"
	"github.com/networknudge/networknudge/internal/managers"
	"github.com/networknudge/networknudge/internal/scheduler"
	"github.com/networknudge/networknudge/internal/server"
	"github.com/networknudge/networknudge/internal/storage/inmemory"
	"github.com/networknudge/networknudge/internal/storage/postgres"
	"github.com/networknudge/networknudge/internal/storage/redis"
	"github.com/networknudge/networknudge/internal/version"
	"github.com/networknudge/networknudge/pkg/linkedin"

	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog/log"
	"github.com/sethvargo/go-limiter"
	"github.com/sethvargo/go-limiter/memorystore"
)

type repositories interface {
	domain.ProfileRepository
	domain.ConnectionRepository
	domain.NudgeRepository
	domain.SubscriptionRepository
	linkedin.TokenStore
}

type Container struct {
	Config *Config

	LinkedInClient         *linkedin.Client
	LinkedInAccountManager domain.LinkedInAccountManager
	SyncManager            domain.SyncManager
	NudgeManager           domain.NudgeManager
	DigestManager          domain.DigestManager

	repositories repositories
	states       domain.StateStore
	closers      []func(ctx context.Context) error
}

// NewContainer connects the storage backends and builds every manager.
func NewContainer(ctx context.Context, config *Config) (*Container, error) {
	c := &Container{Config: config}

	if err := c.buildStorage(ctx); err != nil {
		c.Close(ctx)
		return nil, err
	}

	options := []linkedin.ClientOption{
		linkedin.WithClientID(config.LinkedInClientID),
		linkedin.WithClientSecret(config.LinkedInClientSecret),
		linkedin.WithRedirectURI(config.LinkedInRedirectURI),
		linkedin.WithAPIBaseURL(config.LinkedInAPIBaseURL),
		linkedin.WithUserAgent(version.UserAgent()),
		linkedin.WithTokenStore(c.repositories),
		linkedin.WithAccountResolver(domain.ContextAccountResolver),
	}

	if config.LinkedInDailyQuota > 0 {
		quota, err := memorystore.New(&memorystore.Config{
			Tokens:   uint64(config.LinkedInDailyQuota),
			Interval: 24 * time.Hour,
		})
		if err != nil {
			c.Close(ctx)
			return nil, fmt.Errorf("failed to create linkedin quota: %w", err)
		}
		c.closers = append(c.closers, closeStore(quota))
		options = append(options, linkedin.WithQuota(quota))
	}

	c.LinkedInClient = linkedin.NewClient(options...)

	c.LinkedInAccountManager = managers.NewLinkedInAccountManager(managers.LinkedInAccountManagerDependencies{
		Client:     c.LinkedInClient,
		TokenStore: c.repositories,
		States:     c.states,
		Profiles:   c.repositories,
	})

	c.SyncManager = managers.NewSyncManager(managers.SyncManagerDependencies{
		Client:      c.LinkedInClient,
		TokenStore:  c.repositories,
		Profiles:    c.repositories,
		Connections: c.repositories,
	})

	c.NudgeManager = managers.NewNudgeManager(managers.NudgeManagerDependencies{
		Connections: c.repositories,
		Nudges:      c.repositories,
		Limits: billing.NewLimitResolver(billing.LimitResolverDependencies{
			Subscriptions:   c.repositories,
			StripeSecretKey: config.StripeSecretKey,
		}),
	})

	var digestMailer domain.Mailer = mailer.LogMailer{}
	if config.ResendAPIKey != "" {
		digestMailer = mailer.NewResendMailer(config.ResendAPIKey)
	} else {
		log.Warn().Msg("RESEND_API_KEY is not set, digests will only be logged")
	}

	c.DigestManager = managers.NewDigestManager(managers.DigestManagerDependencies{
		Profiles:    c.repositories,
		Nudges:      c.repositories,
		Mailer:      digestMailer,
		FromAddress: config.DigestFromAddress,
		AppURL:      config.AppURL,
	})

	log.Info().Msg("Dependencies built successfully")

	return c, nil
}

func (c *Container) buildStorage(ctx context.Context) error {
	if c.Config.DatabaseURL == "" {
		log.Warn().Msg("DATABASE_URL is not set, using in-memory storage")

		c.repositories = inMemoryRepositories{
			Repository: inmemory.NewRepository(clockwork.NewRealClock()),
			TokenStore: inmemory.NewTokenStore(),
		}
	} else {
		store, err := postgres.New(postgres.StoreDeps{
			Context:     ctx,
			DatabaseURL: c.Config.DatabaseURL,
		})
		if err != nil {
			return fmt.Errorf("failed to connect to postgres: %w", err)
		}

		c.repositories = store
		c.closers = append(c.closers, func(context.Context) error {
			store.Close()
			return nil
		})
	}

	if c.Config.RedisURL == "" {
		c.states = inmemory.NewStateStore(clockwork.NewRealClock())
		return nil
	}

	states, err := redis.New(ctx, redis.Opts{URL: c.Config.RedisURL})
	if err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}

	c.states = states
	c.closers = append(c.closers, func(context.Context) error {
		return states.Close()
	})

	return nil
}

// HTTPServer builds the fiber app serving the API.
func (c *Container) HTTPServer(ctx context.Context) (*fiber.App, error) {
	if err := c.Config.ValidateServe(); err != nil {
		return nil, err
	}

	sessions, err := auth.NewSessionVerifier(c.Config.SessionJWTSecret)
	if err != nil {
		return nil, err
	}

	serviceKeys, err := auth.NewServiceKeyVerifier(c.Config.ServiceAPIKey)
	if err != nil {
		return nil, err
	}

	return server.NewHTTPServer(ctx, server.HTTPServerDependencies{
		LinkedInController: controllers.NewLinkedInController(controllers.LinkedInControllerDependencies{
			AccountManager: c.LinkedInAccountManager,
			SyncManager:    c.SyncManager,
		}),
		NudgeController: controllers.NewNudgeController(controllers.NudgeControllerDependencies{
			NudgeManager:  c.NudgeManager,
			DigestManager: c.DigestManager,
		}),
		SessionVerifier:    sessions,
		ServiceKeyVerifier: serviceKeys,
		AllowOrigins:       c.Config.AllowOrigins,
	}), nil
}

func (c *Container) Scheduler() (*scheduler.Scheduler, error) {
	return scheduler.New(scheduler.SchedulerDependencies{
		DigestManager:  c.DigestManager,
		SyncManager:    c.SyncManager,
		DigestSchedule: c.Config.DigestSchedule,
		SyncSchedule:   c.Config.SyncSchedule,
		JobTimeout:     time.Hour,
	})
}

// Close releases storage connections in reverse order of creation.
func (c *Container) Close(ctx context.Context) {
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](ctx); err != nil {
			log.Warn().Err(err).Msg("Failed to close dependency")
		}
	}
	c.closers = nil
}

func closeStore(store limiter.Store) func(ctx context.Context) error {
	return store.Close
}

type inMemoryRepositories struct {
	*inmemory.Repository
	*inmemory.TokenStore
}
