package server

import (
	"context"
	"time"

	"github.com/networknudge/networknudge/internal/controllers"
	"github.com/networknudge/networknudge/internal/middlewares"
	"github.com/networknudge/networknudge/internal/version"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/logger"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"
)

const serviceName = "networknudge"

type HTTPServerDependencies struct {
	LinkedInController *controllers.LinkedInController
	NudgeController    *controllers.NudgeController
	SessionVerifier    middlewares.SessionVerifier
	ServiceKeyVerifier middlewares.ServiceKeyVerifier
	// AllowOrigins feeds the CORS middleware. Empty allows any origin.
	AllowOrigins []string
}

func NewHTTPServer(ctx context.Context, deps HTTPServerDependencies) *fiber.App {
	router := fiber.New(fiber.Config{
		AppName:      serviceName,
		ErrorHandler: controllers.ErrorHandler,
	})

	router.Use(recoverer.New())
	router.Use(cors.New(cors.Config{AllowOrigins: deps.AllowOrigins}))
	router.Use(logger.New())

	router.Get("/health", func(c fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":    "healthy",
			"service":   serviceName,
			"version":   version.GetVersion(),
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	api := router.Group("/api", middlewares.SessionMiddleware(deps.SessionVerifier))

	linkedin := api.Group("/linkedin")
	linkedin.Get("/authorize", deps.LinkedInController.Authorize)
	linkedin.Post("/exchange", deps.LinkedInController.Exchange)
	linkedin.Get("/status", deps.LinkedInController.Status)
	linkedin.Delete("/", deps.LinkedInController.Disconnect)
	linkedin.Post("/sync", deps.LinkedInController.Sync)

	api.Post("/nudges/generate", deps.NudgeController.Generate)

	internal := router.Group("/internal", middlewares.ServiceKeyMiddleware(deps.ServiceKeyVerifier))
	internal.Post("/nudges/generate", deps.NudgeController.GenerateForUser)
	internal.Post("/digests/send", deps.NudgeController.SendDigests)

	return router
}
