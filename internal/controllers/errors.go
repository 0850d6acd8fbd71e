package controllers

import (
	"errors"

	"github.com/networknudge/networknudge/internal/domain"
	"github.com/networknudge/networknudge/pkg/linkedin"

	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog/log"
)

// httpError maps manager errors to a response status.
func httpError(err error, message string) *fiber.Error {
	switch {
	case errors.Is(err, domain.ErrInvalidState):
		return fiber.NewError(fiber.StatusBadRequest, "Invalid or expired state")
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case rejectedAuthorizationCode(err):
		return fiber.NewError(fiber.StatusBadRequest, "LinkedIn rejected the authorization code")
	case linkedin.IsReauthorizationRequired(err):
		return fiber.NewError(fiber.StatusConflict, "LinkedIn authorization required")
	case linkedin.IsRateLimited(err):
		return fiber.NewError(fiber.StatusTooManyRequests, "LinkedIn rate limit exceeded")
	case errors.Is(err, domain.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, "Not found")
	default:
		return fiber.NewError(fiber.StatusInternalServerError, message)
	}
}

func rejectedAuthorizationCode(err error) bool {
	var apiErr *linkedin.Error
	return errors.As(err, &apiErr) && errors.Is(apiErr.Kind, linkedin.ErrTokenExchange) && apiErr.IsClientError()
}

// ErrorHandler renders every error as {"error": "..."}.
func ErrorHandler(c fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	message := "Internal server error"

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		status = fiberErr.Code
		message = fiberErr.Message
	}

	if status >= fiber.StatusInternalServerError {
		log.Error().
			Err(err).
			Str("path", c.Path()).
			Str("method", c.Method()).
			Msg("Request failed")
	}

	return c.Status(status).JSON(fiber.Map{
		"error": message,
	})
}

func sessionAccountID(c fiber.Ctx) (string, error) {
	id, ok := domain.GetAccountID(c.Context())
	if !ok {
		return "", fiber.NewError(fiber.StatusUnauthorized, "Missing session")
	}

	return id, nil
}
