package middlewares

import (
	"github.com/networknudge/networknudge/internal/auth"
	"github.com/networknudge/networknudge/internal/domain"

	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog/log"
)

type SessionVerifier interface {
	Verify(token string) (string, error)
}

type ServiceKeyVerifier interface {
	Verify(presented string) error
}

// SessionMiddleware authenticates a user session and puts its account id on the request context.
func SessionMiddleware(verifier SessionVerifier) fiber.Handler {
	return func(c fiber.Ctx) error {
		token, ok := auth.BearerToken(c.Get(fiber.HeaderAuthorization))
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Missing session token",
			})
		}

		accountID, err := verifier.Verify(token)
		if err != nil {
			log.Debug().
				Err(err).
				Str("path", c.Path()).
				Str("method", c.Method()).
				Msg("Session verification failed")

			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid session",
			})
		}

		c.SetContext(domain.NewContextWithAccountID(c.Context(), accountID))

		return c.Next()
	}
}

// ServiceKeyMiddleware guards the routes called by the scheduler and other internal services.
func ServiceKeyMiddleware(verifier ServiceKeyVerifier) fiber.Handler {
	return func(c fiber.Ctx) error {
		key, ok := auth.BearerToken(c.Get(fiber.HeaderAuthorization))
		if !ok || verifier.Verify(key) != nil {
			log.Warn().
				Str("path", c.Path()).
				Str("method", c.Method()).
				Str("ip", c.IP()).
				Msg("Service key verification failed")

			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid service key",
			})
		}

		return c.Next()
	}
}
